package config

import (
	"math/rand/v2"
	"sync"
	"time"
)

const (
	BASE_BACKOFF   = 30 * time.Second
	MAX_BACKOFF    = 30 * time.Minute
	BACKOFF_FACTOR = 2.0
	JITTER_FACTOR  = 0.5
)

type backoffData struct {
	BackoffDelay time.Duration
	NextRetryAt  time.Time
}

// BackoffStore remembers, per key, when a failing operation may be retried.
// The delay doubles on every consecutive failure, with jitter, up to a cap.
type BackoffStore struct {
	mu       sync.RWMutex
	base     time.Duration
	max      time.Duration
	backoffs map[string]backoffData
}

// NewBackoffStore creates a store using BASE_BACKOFF and MAX_BACKOFF.
func NewBackoffStore() *BackoffStore {
	return NewBackoffStoreWithLimits(BASE_BACKOFF, MAX_BACKOFF)
}

// NewBackoffStoreWithLimits creates a store with a custom initial and maximum delay.
func NewBackoffStoreWithLimits(base, max time.Duration) *BackoffStore {
	return &BackoffStore{
		base:     base,
		max:      max,
		backoffs: make(map[string]backoffData),
	}
}

// NextRetryAt returns when key may be retried, if it is backing off.
func (s *BackoffStore) NextRetryAt(key string) (time.Time, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if backoff, exists := s.backoffs[key]; exists {
		return backoff.NextRetryAt.UTC(), true
	}
	return time.Time{}, false
}

// ShouldSkip reports whether key is still backing off at now.
func (s *BackoffStore) ShouldSkip(key string, now time.Time) bool {
	next, ok := s.NextRetryAt(key)
	return ok && now.Before(next)
}

// UpdateBackoff records a failure for key.
func (s *BackoffStore) UpdateBackoff(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if backoff, exists := s.backoffs[key]; exists {
		backoff.BackoffDelay = s.calculateNewBackoffDelay(backoff.BackoffDelay)
		backoff.NextRetryAt = s.calculateNextRetryAt(backoff.BackoffDelay)
		s.backoffs[key] = backoff
	} else {
		s.backoffs[key] = backoffData{
			BackoffDelay: s.base,
			NextRetryAt:  s.calculateNextRetryAt(s.base),
		}
	}
}

// ResetBackoff forgets past failures for key.
func (s *BackoffStore) ResetBackoff(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.backoffs, key)
}

// Len returns the number of keys currently backing off.
func (s *BackoffStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.backoffs)
}

func (s *BackoffStore) calculateNextRetryAt(backoff time.Duration) time.Time {
	return time.Now().Add(withJitter(backoff, s.max)).UTC()
}

func (s *BackoffStore) calculateNewBackoffDelay(backoffDelay time.Duration) time.Duration {
	backoffDelay = time.Duration(float64(backoffDelay) * BACKOFF_FACTOR)
	if backoffDelay >= s.max {
		backoffDelay = s.max
	}
	return backoffDelay
}

func withJitter(backoff, max time.Duration) time.Duration {
	jitter := time.Duration(rand.Float64() * float64(backoff) * JITTER_FACTOR)
	backoff += jitter
	if backoff > max {
		backoff = max
	}
	return backoff
}
