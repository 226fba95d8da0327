package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/getsentry/sentry-go"
	"tourguide.openclassrooms.org/internal/metrics"
	"tourguide.openclassrooms.org/internal/models"
	"tourguide.openclassrooms.org/internal/report"
)

// Source fetches the full attraction catalog from an external provider.
type Source interface {
	Attractions(ctx context.Context) ([]models.Attraction, error)
}

// Cache holds the attraction catalog, fetched from its Source at most once.
//
// The loaded path is lock-free: attractions is written before loaded is set
// and never written again, so readers that observe loaded can read it without
// holding mu. mu is only taken while the catalog is still empty.
// A failed fetch is not cached; the next caller tries again.
type Cache struct {
	source Source
	logger *slog.Logger

	loaded      atomic.Bool
	mu          sync.Mutex
	attractions []models.Attraction
}

// NewCache creates an empty cache backed by source.
func NewCache(source Source, logger *slog.Logger) *Cache {
	return &Cache{
		source: source,
		logger: logger,
	}
}

// Attractions returns a copy of the catalog, fetching it on first use.
func (c *Cache) Attractions(ctx context.Context) ([]models.Attraction, error) {
	if c.loaded.Load() {
		return append([]models.Attraction(nil), c.attractions...), nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.loaded.Load() {
		attractions, err := c.source.Attractions(ctx)
		if err != nil {
			metrics.CatalogFetches.WithLabelValues("error").Inc()
			err = fmt.Errorf("%w: failed to fetch attraction catalog: %w", models.ErrProviderUnavailable, err)
			report.ReportErrorWithSentryOptions(err, report.SentryReportOptions{
				Level:       sentry.LevelError,
				Fingerprint: []string{"catalog-fetch"},
			})
			c.logger.Error("Failed to fetch attraction catalog", "error", err)
			return nil, err
		}

		c.attractions = append([]models.Attraction(nil), attractions...)
		c.loaded.Store(true)
		metrics.CatalogFetches.WithLabelValues("success").Inc()
		metrics.CatalogSize.Set(float64(len(attractions)))
		c.logger.Info("Loaded attraction catalog", "attractions", len(attractions))
	}

	return append([]models.Attraction(nil), c.attractions...), nil
}

// Loaded reports whether the catalog has been fetched.
func (c *Cache) Loaded() bool {
	return c.loaded.Load()
}
