// Package tourguide records where travelers are, rewards them for visiting
// attractions and prices trips with the points they earned.
package tourguide

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/google/uuid"
	"tourguide.openclassrooms.org/internal/catalog"
	"tourguide.openclassrooms.org/internal/geo"
	"tourguide.openclassrooms.org/internal/metrics"
	"tourguide.openclassrooms.org/internal/models"
	"tourguide.openclassrooms.org/internal/report"
	"tourguide.openclassrooms.org/internal/rewards"
)

// LocationProvider returns the current location of a traveler.
type LocationProvider interface {
	UserLocation(ctx context.Context, travelerID uuid.UUID) (models.Visit, error)
}

// Pricer quotes trips for a traveler.
type Pricer interface {
	Price(ctx context.Context, apiKey string, travelerID uuid.UUID, adults, children, nights, rewardPoints int) ([]models.Offer, error)
}

// NearbyAttraction is an attraction close to a traveler, with what visiting
// it would be worth.
type NearbyAttraction struct {
	Name               string            `json:"attractionName"`
	AttractionLocation models.Coordinate `json:"attractionLocation"`
	UserLocation       models.Coordinate `json:"userLocation"`
	Distance           float64           `json:"distance"`
	RewardPoints       int               `json:"rewardPoints"`
}

// Service ties travelers, their locations and the reward engine together.
type Service struct {
	Locations LocationProvider
	Engine    *rewards.Engine
	Pricer    Pricer
	Directory *Directory
	APIKey    string
	Logger    *slog.Logger
	Tracker   *Tracker
	Now       func() time.Time
}

// NewService creates a Service with an empty directory.
func NewService(locations LocationProvider, engine *rewards.Engine, pricer Pricer, apiKey string, logger *slog.Logger) *Service {
	return &Service{
		Locations: locations,
		Engine:    engine,
		Pricer:    pricer,
		Directory: NewDirectory(),
		APIKey:    apiKey,
		Logger:    logger,
		Now:       time.Now,
	}
}

// GetUser returns the traveler with the given name.
func (s *Service) GetUser(name string) (*models.Traveler, bool) {
	return s.Directory.Get(name)
}

// GetAllUsers returns every traveler.
func (s *Service) GetAllUsers() []*models.Traveler {
	return s.Directory.All()
}

// AddUser registers t unless its name is taken.
func (s *Service) AddUser(t *models.Traveler) bool {
	return s.Directory.Add(t)
}

// GetUserRewards returns the rewards committed for t.
func (s *Service) GetUserRewards(t *models.Traveler) []models.Reward {
	return t.Rewards()
}

// GetUserLocation returns the last recorded visit of t, tracking a fresh
// location when t has none.
func (s *Service) GetUserLocation(ctx context.Context, t *models.Traveler) (models.Visit, error) {
	if visit, ok := t.LastVisit(); ok {
		return visit, nil
	}
	return s.TrackUserLocation(ctx, t)
}

// TrackUserLocation fetches the current location of t, appends it to the
// history and attributes rewards.
//
// When the provider fails nothing is appended and the error wraps
// models.ErrProviderUnavailable. When the catalog cannot be loaded the visit
// is kept and returned together with the error.
func (s *Service) TrackUserLocation(ctx context.Context, t *models.Traveler) (models.Visit, error) {
	visit, err := s.Locations.UserLocation(ctx, t.ID)
	if err != nil {
		metrics.TrackedLocations.WithLabelValues("error").Inc()
		if errors.Is(err, context.Canceled) {
			return models.Visit{}, err
		}
		err = fmt.Errorf("%w: locating %s: %v", models.ErrProviderUnavailable, t.Name, err)
		report.ReportErrorWithSentryOptions(err, report.SentryReportOptions{
			Tags:        report.TravelerTags(t),
			Level:       sentry.LevelWarning,
			Fingerprint: []string{"location-provider"},
		})
		s.Logger.Warn("Failed to fetch traveler location", "traveler", t.Name, "error", err)
		return models.Visit{}, err
	}

	visit.TravelerID = t.ID
	t.AddVisit(visit)
	metrics.TrackedLocations.WithLabelValues("success").Inc()

	return visit, s.Engine.CalculateRewards(ctx, t)
}

// NearbyAttractions returns the catalog.DefaultNearbyCount attractions closest
// to location.
func (s *Service) NearbyAttractions(ctx context.Context, location models.Coordinate) ([]models.Attraction, error) {
	attractions, err := s.Engine.Catalog.Attractions(ctx)
	if err != nil {
		return nil, err
	}
	return catalog.Nearest(attractions, location, catalog.DefaultNearbyCount), nil
}

// NearbyAttractionsFor locates t and describes the attractions closest to it.
func (s *Service) NearbyAttractionsFor(ctx context.Context, t *models.Traveler) ([]NearbyAttraction, error) {
	visit, err := s.GetUserLocation(ctx, t)
	if err != nil {
		return nil, err
	}
	attractions, err := s.NearbyAttractions(ctx, visit.Coordinate)
	if err != nil {
		return nil, err
	}

	nearby := make([]NearbyAttraction, 0, len(attractions))
	for _, a := range attractions {
		points, err := s.Engine.RewardPoints(ctx, a, t)
		if err != nil {
			return nil, err
		}
		nearby = append(nearby, NearbyAttraction{
			Name:               a.Name,
			AttractionLocation: a.Coordinate,
			UserLocation:       visit.Coordinate,
			Distance:           geo.Distance(a.Coordinate, visit.Coordinate),
			RewardPoints:       points,
		})
	}
	return nearby, nil
}

// GetTripDeals prices trips for t using its preferences and the sum of its
// reward points. The offers are kept on the traveler.
func (s *Service) GetTripDeals(ctx context.Context, t *models.Traveler) ([]models.Offer, error) {
	prefs := t.Preferences
	offers, err := s.Pricer.Price(ctx, s.APIKey, t.ID, prefs.Adults, prefs.Children, prefs.TripDuration, t.RewardPoints())
	if err != nil {
		err = fmt.Errorf("pricing trips for %s: %w", t.Name, err)
		report.ReportErrorWithSentryOptions(err, report.SentryReportOptions{
			Tags:  report.TravelerTags(t),
			Level: sentry.LevelError,
		})
		return nil, err
	}
	t.SetTripDeals(offers)
	return offers, nil
}

// Stop stops background tracking. It is safe to call more than once.
func (s *Service) Stop() {
	if s.Tracker != nil {
		s.Tracker.Stop()
	}
}
