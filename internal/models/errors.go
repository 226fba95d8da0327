package models

import "errors"

var (
	// ErrProviderUnavailable is returned when the location provider or the
	// attraction catalog source cannot be reached.
	ErrProviderUnavailable = errors.New("location provider unavailable")

	// ErrOracleUnavailable is returned when the reward oracle fails to score
	// an attraction for a traveler.
	ErrOracleUnavailable = errors.New("reward oracle unavailable")
)
