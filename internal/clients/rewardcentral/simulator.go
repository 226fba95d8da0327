// Package rewardcentral talks to the reward oracle, which scores an
// attraction for a traveler.
package rewardcentral

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
)

const (
	minPoints = 1
	maxPoints = 1000
)

// Simulator is an in-process reward oracle returning random scores in
// [1, 1000).
type Simulator struct {
	MinLatency time.Duration
	MaxLatency time.Duration
}

// NewSimulator creates a simulator without latency.
func NewSimulator() *Simulator {
	return &Simulator{}
}

// AttractionRewardPoints returns a random score.
func (s *Simulator) AttractionRewardPoints(ctx context.Context, attractionID, travelerID uuid.UUID) (int, error) {
	if s.MaxLatency > 0 {
		d := s.MinLatency
		if span := s.MaxLatency - s.MinLatency; span > 0 {
			d += rand.N(span)
		}
		timer := time.NewTimer(d)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		case <-timer.C:
		}
	}
	return minPoints + rand.IntN(maxPoints-minPoints), nil
}
