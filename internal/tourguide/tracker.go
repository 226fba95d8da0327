package tourguide

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
	"tourguide.openclassrooms.org/internal/config"
	"tourguide.openclassrooms.org/internal/metrics"
	"tourguide.openclassrooms.org/internal/models"
)

// TrackSummary counts the outcome of one TrackAll pass.
type TrackSummary struct {
	Tracked int
	Skipped int
	Failed  int
}

// Tracker periodically tracks the location of every traveler.
//
// A traveler whose location could not be fetched is skipped until its
// backoff expires. Start runs the loop in the background; Stop cancels it
// and waits for the pass in flight to finish.
type Tracker struct {
	Service     *Service
	Interval    time.Duration
	Concurrency int
	Backoff     *config.BackoffStore
	Logger      *slog.Logger

	mu      sync.Mutex
	cancel  context.CancelFunc
	done    chan struct{}
	stopped bool
}

// NewTracker creates a tracker for every traveler of service.
func NewTracker(service *Service, interval time.Duration, concurrency int, backoff *config.BackoffStore, logger *slog.Logger) *Tracker {
	return &Tracker{
		Service:     service,
		Interval:    interval,
		Concurrency: concurrency,
		Backoff:     backoff,
		Logger:      logger,
	}
}

// Start launches the tracking loop. A first pass runs immediately. Calling
// Start on a running or stopped tracker does nothing.
func (tr *Tracker) Start(ctx context.Context) {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	if tr.cancel != nil || tr.stopped {
		return
	}

	ctx, tr.cancel = context.WithCancel(ctx)
	tr.done = make(chan struct{})
	go tr.run(ctx, tr.done)
}

// Stop cancels the tracking loop and waits for it to exit. It is safe to call
// more than once, and before Start.
func (tr *Tracker) Stop() {
	tr.mu.Lock()
	tr.stopped = true
	cancel, done := tr.cancel, tr.done
	tr.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

func (tr *Tracker) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(tr.Interval)
	defer ticker.Stop()

	for {
		tr.TrackAll(ctx)
		select {
		case <-ctx.Done():
			tr.Logger.Info("Stopping tracker")
			return
		case <-ticker.C:
		}
	}
}

// TrackAll tracks every traveler once, at most Concurrency at a time.
func (tr *Tracker) TrackAll(ctx context.Context) TrackSummary {
	start := time.Now()
	travelers := tr.Service.GetAllUsers()

	var tracked, skipped, failed atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(tr.Concurrency, 1))

	for _, t := range travelers {
		if gctx.Err() != nil {
			break
		}
		key := t.ID.String()
		if tr.Backoff.ShouldSkip(key, time.Now()) {
			skipped.Add(1)
			continue
		}
		g.Go(func() error {
			visit, err := tr.Service.TrackUserLocation(gctx, t)
			switch {
			case err == nil:
				tr.Backoff.ResetBackoff(key)
				tracked.Add(1)
			case gctx.Err() != nil:
			case visit == (models.Visit{}):
				tr.Backoff.UpdateBackoff(key)
				failed.Add(1)
			default:
				// The visit was recorded; only reward attribution failed.
				tr.Backoff.ResetBackoff(key)
				tracked.Add(1)
			}
			return nil
		})
	}
	_ = g.Wait()

	elapsed := time.Since(start)
	metrics.TrackerRunDuration.Observe(elapsed.Seconds())

	summary := TrackSummary{
		Tracked: int(tracked.Load()),
		Skipped: int(skipped.Load()),
		Failed:  int(failed.Load()),
	}
	tr.Logger.Info("Tracked travelers",
		"travelers", len(travelers),
		"tracked", summary.Tracked,
		"skipped", summary.Skipped,
		"failed", summary.Failed,
		"duration", elapsed)
	return summary
}
