package middleware

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/common/expfmt"
)

// CachedPromHandler serves a Prometheus text exposition rebuilt every ttl,
// so concurrent scrapes never trigger a gather of their own.
type CachedPromHandler struct {
	gatherer prometheus.Gatherer
	ttl      time.Duration
	logger   *slog.Logger
	fallback http.Handler

	mu    sync.RWMutex
	cache []byte
}

// NewCachedPromHandler gathers once, then keeps the cache fresh until ctx
// is cancelled.
func NewCachedPromHandler(ctx context.Context, gatherer prometheus.Gatherer, ttl time.Duration, logger *slog.Logger) *CachedPromHandler {
	c := &CachedPromHandler{
		gatherer: gatherer,
		ttl:      ttl,
		logger:   logger,
		fallback: promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}),
	}
	c.refresh()
	go c.refreshLoop(ctx)
	return c
}

func (c *CachedPromHandler) refreshLoop(ctx context.Context) {
	ticker := time.NewTicker(c.ttl)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.refresh()
		}
	}
}

func (c *CachedPromHandler) refresh() {
	families, err := c.gatherer.Gather()
	if err != nil {
		// Gather returns whatever it could collect along with the error.
		c.logger.Warn("Failed to gather some metrics", "error", err)
	}

	var buf bytes.Buffer
	enc := expfmt.NewEncoder(&buf, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			c.logger.Error("Failed to encode metric family", "metric", mf.GetName(), "error", err)
			return
		}
	}

	c.mu.Lock()
	c.cache = buf.Bytes()
	c.mu.Unlock()
}

// ServeHTTP writes the cached exposition, falling back to a live gather
// while the cache is empty.
func (c *CachedPromHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	c.mu.RLock()
	cache := c.cache
	c.mu.RUnlock()

	if len(cache) == 0 {
		c.fallback.ServeHTTP(w, r)
		return
	}
	w.Header().Set("Content-Type", string(expfmt.NewFormat(expfmt.TypeTextPlain)))
	_, _ = w.Write(cache)
}
