package rewards

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/google/uuid"
	"tourguide.openclassrooms.org/internal/geo"
	"tourguide.openclassrooms.org/internal/metrics"
	"tourguide.openclassrooms.org/internal/models"
	"tourguide.openclassrooms.org/internal/report"
)

// Oracle scores an attraction for a traveler.
type Oracle interface {
	AttractionRewardPoints(ctx context.Context, attractionID, travelerID uuid.UUID) (int, error)
}

// Catalog provides the attraction catalog.
type Catalog interface {
	Attractions(ctx context.Context) ([]models.Attraction, error)
}

// Engine attributes rewards to travelers for visits near attractions.
type Engine struct {
	Catalog   Catalog
	Oracle    Oracle
	Proximity *Proximity
	Logger    *slog.Logger
}

// NewEngine creates a reward engine.
func NewEngine(catalog Catalog, oracle Oracle, proximity *Proximity, logger *slog.Logger) *Engine {
	return &Engine{
		Catalog:   catalog,
		Oracle:    oracle,
		Proximity: proximity,
		Logger:    logger,
	}
}

type candidate struct {
	visit      models.Visit
	attraction models.Attraction
}

// CalculateRewards grants the traveler a reward for every attraction that one
// of its visits qualifies for and that it has not been rewarded for yet.
//
// Each newly qualifying attraction is scored once, concurrently, using the
// earliest qualifying visit. A failed score only drops that attraction. The
// traveler never ends up with two rewards for the same attraction name, even
// when CalculateRewards runs concurrently for the same traveler.
//
// The only error returned is a catalog failure, wrapping
// models.ErrProviderUnavailable; nothing is committed in that case.
func (e *Engine) CalculateRewards(ctx context.Context, traveler *models.Traveler) error {
	start := time.Now()
	defer func() {
		metrics.RewardCalculationDuration.Observe(time.Since(start).Seconds())
	}()

	visits := traveler.Visits()
	attractions, err := e.Catalog.Attractions(ctx)
	if err != nil {
		return fmt.Errorf("calculating rewards for %s: %w", traveler.Name, err)
	}

	candidates := e.findCandidates(traveler, visits, attractions)
	if len(candidates) == 0 {
		return nil
	}
	metrics.RewardCandidates.Add(float64(len(candidates)))

	var wg sync.WaitGroup
	for _, c := range candidates {
		wg.Add(1)
		go func(c candidate) {
			defer wg.Done()
			e.scoreAndCommit(ctx, traveler, c)
		}(c)
	}
	wg.Wait()

	return nil
}

// findCandidates pairs each attraction not yet rewarded with the first visit
// that qualifies for it.
func (e *Engine) findCandidates(traveler *models.Traveler, visits []models.Visit, attractions []models.Attraction) []candidate {
	var candidates []candidate
	seen := make(map[string]struct{})

	for _, attraction := range attractions {
		if _, ok := seen[attraction.Name]; ok {
			continue
		}
		if traveler.HasRewardFor(attraction.Name) {
			continue
		}
		for _, visit := range visits {
			if e.Proximity.QualifiesForReward(visit, attraction) {
				seen[attraction.Name] = struct{}{}
				candidates = append(candidates, candidate{visit: visit, attraction: attraction})
				break
			}
		}
	}
	return candidates
}

func (e *Engine) scoreAndCommit(ctx context.Context, traveler *models.Traveler, c candidate) {
	points, err := e.RewardPoints(ctx, c.attraction, traveler)
	if err != nil {
		metrics.OracleFailures.Inc()
		opts := report.SentryReportOptions{
			Tags:  report.TravelerTags(traveler),
			Level: sentry.LevelWarning,
			ExtraContext: map[string]interface{}{
				"attraction": c.attraction.Name,
			},
		}
		report.ReportErrorWithSentryOptions(err, opts)
		e.Logger.Warn("Failed to score attraction", "traveler", traveler.Name, "attraction", c.attraction.Name, "error", err)
		return
	}

	reward := models.Reward{Visit: c.visit, Attraction: c.attraction, Points: points}
	if !traveler.AddRewardIfAbsent(reward) {
		metrics.RewardCommitConflicts.Inc()
		return
	}
	metrics.RewardsGranted.WithLabelValues(geo.S2CellToken(c.attraction.Coordinate, geo.RegionLevel)).Inc()
}

// RewardPoints asks the oracle how many points the attraction is worth to the traveler.
func (e *Engine) RewardPoints(ctx context.Context, attraction models.Attraction, traveler *models.Traveler) (int, error) {
	points, err := e.Oracle.AttractionRewardPoints(ctx, attraction.ID, traveler.ID)
	if err != nil {
		return 0, fmt.Errorf("%w: scoring %s for %s: %w", models.ErrOracleUnavailable, attraction.Name, traveler.Name, err)
	}
	if points < 0 {
		return 0, fmt.Errorf("%w: negative score %d for %s", models.ErrOracleUnavailable, points, attraction.Name)
	}
	return points, nil
}
