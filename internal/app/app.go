package app

import (
	"log/slog"
	"net/http"

	"tourguide.openclassrooms.org/internal/catalog"
	"tourguide.openclassrooms.org/internal/clients/gpsutil"
	"tourguide.openclassrooms.org/internal/clients/rewardcentral"
	"tourguide.openclassrooms.org/internal/clients/trippricer"
	"tourguide.openclassrooms.org/internal/config"
	"tourguide.openclassrooms.org/internal/gtfs"
	"tourguide.openclassrooms.org/internal/rewards"
	"tourguide.openclassrooms.org/internal/tourguide"
)

// Application wires the configuration, the attraction catalog, the reward
// engine and the tour guide service behind the HTTP API.
type Application struct {
	Config    *config.Config
	Catalog   *catalog.Cache
	Proximity *rewards.Proximity
	Service   *tourguide.Service
	Logger    *slog.Logger
	Version   string
}

// New creates and wires all dependencies for the Application.
//
// Remote collaborators are used when their URL is configured, in-process
// simulators otherwise. A GTFS bundle, when configured, replaces the location
// provider as the source of the attraction catalog. Internal test users are
// created when cfg.InternalUserCount is positive. The tracker is created but
// not started.
func New(cfg *config.Config, logger *slog.Logger, client *http.Client, version string) *Application {
	var (
		locations tourguide.LocationProvider
		source    catalog.Source
	)
	if cfg.GpsUtilURL != "" {
		gps := gpsutil.NewClient(cfg.GpsUtilURL, client, cfg.MaxRetries)
		locations, source = gps, gps
	} else {
		gps := gpsutil.NewSimulator()
		locations, source = gps, gps
	}
	if cfg.CatalogGTFSPath != "" {
		source = gtfs.NewSource(cfg.CatalogGTFSPath, client, cfg.MaxRetries, logger)
	}

	var oracle rewards.Oracle = rewardcentral.NewSimulator()
	if cfg.RewardCentralURL != "" {
		oracle = rewardcentral.NewClient(cfg.RewardCentralURL, client, cfg.MaxRetries, cfg.RewardCentralRPS)
	}

	attractions := catalog.NewCache(source, logger)
	proximity := rewards.NewProximity(cfg.ProximityBufferMiles, cfg.AttractionRangeMiles)
	engine := rewards.NewEngine(attractions, oracle, proximity, logger)

	service := tourguide.NewService(locations, engine, trippricer.NewSimulator(), cfg.TripPricerAPIKey, logger)
	service.Tracker = tourguide.NewTracker(service, cfg.TrackingInterval, cfg.TrackingConcurrency, config.NewBackoffStore(), logger)

	if cfg.InternalUserCount > 0 {
		logger.Info("TestMode enabled, initializing internal users", "count", cfg.InternalUserCount)
		service.InitializeInternalUsers(cfg.InternalUserCount)
	}

	return &Application{
		Config:    cfg,
		Catalog:   attractions,
		Proximity: proximity,
		Service:   service,
		Logger:    logger,
		Version:   version,
	}
}
