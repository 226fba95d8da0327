// Package gtfs builds an attraction catalog from a GTFS static bundle.
//
// Stations (location_type=1) become attractions. Bundles without any station
// fall back to every stop that carries coordinates.
package gtfs

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/getsentry/sentry-go"
	"github.com/google/uuid"
	remoteGtfs "github.com/jamespfennell/gtfs"
	"tourguide.openclassrooms.org/internal/config"
	"tourguide.openclassrooms.org/internal/geo"
	"tourguide.openclassrooms.org/internal/models"
	"tourguide.openclassrooms.org/internal/report"
	"tourguide.openclassrooms.org/internal/utils"
)

const stationType = 1

// Source reads attractions from a GTFS static bundle located either on disk
// or behind an http(s) URL.
type Source struct {
	Location   string
	Client     *http.Client
	MaxRetries int
	Logger     *slog.Logger
}

// NewSource creates a Source for the bundle at location.
func NewSource(location string, client *http.Client, maxRetries int, logger *slog.Logger) *Source {
	return &Source{
		Location:   location,
		Client:     client,
		MaxRetries: maxRetries,
		Logger:     logger,
	}
}

// Attractions loads and parses the bundle, then converts its stations.
func (s *Source) Attractions(ctx context.Context) ([]models.Attraction, error) {
	data, err := s.readBundle(ctx)
	if err != nil {
		return nil, err
	}

	staticBundle, err := remoteGtfs.ParseStatic(data, remoteGtfs.ParseStaticOptions{})
	if err != nil {
		err = fmt.Errorf("failed to parse GTFS static data from %s: %w", s.Location, err)
		report.ReportErrorWithSentryOptions(err, report.SentryReportOptions{
			Tags:  utils.MakeMap("gtfs_location", s.Location),
			Level: sentry.LevelError,
		})
		return nil, err
	}

	attractions := AttractionsFromStatic(s.Location, staticBundle)
	staticBundle = nil // drop reference, GC can collect earlier
	if len(attractions) == 0 {
		return nil, fmt.Errorf("GTFS bundle %s has no located stops", s.Location)
	}
	s.Logger.Info("Built attraction catalog from GTFS bundle", "location", s.Location, "attractions", len(attractions))
	return attractions, nil
}

func (s *Source) readBundle(ctx context.Context) ([]byte, error) {
	if !strings.HasPrefix(s.Location, "http://") && !strings.HasPrefix(s.Location, "https://") {
		data, err := os.ReadFile(s.Location)
		if err != nil {
			return nil, fmt.Errorf("failed to read GTFS bundle: %w", err)
		}
		return data, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.Location, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request for %s: %w", s.Location, err)
	}

	resp, err := config.DoWithBackoff(ctx, s.Client, req, s.MaxRetries)
	if err != nil {
		err = fmt.Errorf("failed to make GET request to %s: %w", s.Location, err)
		report.ReportErrorWithSentryOptions(err, report.SentryReportOptions{
			Tags: utils.MakeMap("gtfs_location", s.Location),
		})
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err = fmt.Errorf("unexpected response status %d when downloading GTFS bundle from %s", resp.StatusCode, s.Location)
		report.ReportErrorWithSentryOptions(err, report.SentryReportOptions{
			Tags: utils.MakeMap("gtfs_location", s.Location),
			ExtraContext: map[string]interface{}{
				"status": resp.Status,
			},
		})
		return nil, err
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read GTFS bundle response body from %s: %w", s.Location, err)
	}
	return data, nil
}

// AttractionsFromStatic converts the stations of a parsed bundle into
// attractions, in bundle order. IDs are derived from the bundle location and
// the stop ID, so reloading the same bundle yields the same IDs.
func AttractionsFromStatic(location string, staticBundle *remoteGtfs.Static) []models.Attraction {
	var stations, located []models.Attraction
	for _, stop := range staticBundle.Stops {
		if stop.Latitude == nil || stop.Longitude == nil {
			continue
		}
		coord := models.Coordinate{Latitude: *stop.Latitude, Longitude: *stop.Longitude}
		if !geo.IsValidLatLon(coord) {
			continue
		}
		name := stop.Name
		if name == "" {
			name = stop.Id
		}
		attraction := models.Attraction{
			ID:         uuid.NewSHA1(uuid.NameSpaceURL, []byte(location+"#"+stop.Id)),
			Name:       name,
			Coordinate: coord,
		}
		located = append(located, attraction)
		if stop.Type == stationType {
			stations = append(stations, attraction)
		}
	}
	if len(stations) > 0 {
		return stations
	}
	return located
}
