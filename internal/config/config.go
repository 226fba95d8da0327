package config

import (
	"errors"
	"fmt"
	"time"
)

// Config holds all the configuration settings for our application.
type Config struct {
	Port int    `yaml:"port"`
	Env  string `yaml:"env"`

	// ProximityBufferMiles is the default distance under which a visit earns a reward.
	ProximityBufferMiles float64 `yaml:"proximity_buffer_miles"`
	// AttractionRangeMiles is the distance under which a point counts as near an attraction.
	AttractionRangeMiles float64 `yaml:"attraction_range_miles"`

	TrackingInterval    time.Duration `yaml:"tracking_interval"`
	TrackingConcurrency int           `yaml:"tracking_concurrency"`

	// InternalUserCount enables test mode when positive: that many travelers
	// with a generated visit history are created on startup.
	InternalUserCount int `yaml:"internal_user_count"`

	TripPricerAPIKey string `yaml:"trip_pricer_api_key"`

	// GpsUtilURL and RewardCentralURL point to remote collaborators. When
	// empty, in-process simulators are used instead.
	GpsUtilURL       string  `yaml:"gps_util_url"`
	RewardCentralURL string  `yaml:"reward_central_url"`
	RewardCentralRPS float64 `yaml:"reward_central_rps"`

	// CatalogGTFSPath loads the attraction catalog from a GTFS static bundle.
	CatalogGTFSPath string `yaml:"catalog_gtfs_path"`

	MaxRetries int    `yaml:"max_retries"`
	SentryDSN  string `yaml:"sentry_dsn"`
}

// NewConfig creates a new instance of a Config struct with default settings.
func NewConfig(port int, env string) *Config {
	return &Config{
		Port:                 port,
		Env:                  env,
		ProximityBufferMiles: 10,
		AttractionRangeMiles: 200,
		TrackingInterval:     5 * time.Minute,
		TrackingConcurrency:  1000,
		InternalUserCount:    100,
		TripPricerAPIKey:     "test-server-api-key",
		MaxRetries:           3,
	}
}

// Validate reports every invalid setting at once.
func (cfg *Config) Validate() error {
	var errs []error
	if cfg.Port <= 0 || cfg.Port > 65535 {
		errs = append(errs, fmt.Errorf("port %d out of range", cfg.Port))
	}
	if cfg.ProximityBufferMiles < 0 {
		errs = append(errs, fmt.Errorf("proximity_buffer_miles must not be negative, got %v", cfg.ProximityBufferMiles))
	}
	if cfg.AttractionRangeMiles < 0 {
		errs = append(errs, fmt.Errorf("attraction_range_miles must not be negative, got %v", cfg.AttractionRangeMiles))
	}
	if cfg.TrackingInterval <= 0 {
		errs = append(errs, errors.New("tracking_interval must be positive"))
	}
	if cfg.TrackingConcurrency <= 0 {
		errs = append(errs, errors.New("tracking_concurrency must be positive"))
	}
	if cfg.InternalUserCount < 0 {
		errs = append(errs, errors.New("internal_user_count must not be negative"))
	}
	if cfg.RewardCentralRPS < 0 {
		errs = append(errs, errors.New("reward_central_rps must not be negative"))
	}
	if cfg.MaxRetries < 0 {
		errs = append(errs, errors.New("max_retries must not be negative"))
	}
	return errors.Join(errs...)
}
