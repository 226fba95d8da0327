package config

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// retryBaseDelay is the wait before the first retry of DoWithBackoff.
var retryBaseDelay = 200 * time.Millisecond

const retryMaxDelay = 5 * time.Second

// DoWithBackoff sends req, retrying up to maxRetries times on transport
// errors and 5xx responses with exponential backoff and jitter.
//
// A 5xx response on the last attempt is returned as is so the caller can
// inspect it. Waiting stops as soon as ctx is done.
func DoWithBackoff(ctx context.Context, client *http.Client, req *http.Request, maxRetries int) (*http.Response, error) {
	delay := retryBaseDelay
	var lastErr error

	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			timer := time.NewTimer(withJitter(delay, retryMaxDelay))
			select {
			case <-ctx.Done():
				timer.Stop()
				return nil, fmt.Errorf("retry aborted after %d attempts: %w", attempt, ctx.Err())
			case <-timer.C:
			}
			delay = min(time.Duration(float64(delay)*BACKOFF_FACTOR), retryMaxDelay)
		}

		resp, err := client.Do(req.WithContext(ctx))
		if err != nil {
			lastErr = err
			if ctx.Err() != nil {
				return nil, fmt.Errorf("request aborted: %w", ctx.Err())
			}
			continue
		}
		if resp.StatusCode >= http.StatusInternalServerError && attempt < maxRetries {
			_, _ = io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			lastErr = fmt.Errorf("server returned status %d", resp.StatusCode)
			continue
		}
		return resp, nil
	}

	return nil, fmt.Errorf("max retries exceeded (%d): %w", maxRetries, lastErr)
}
