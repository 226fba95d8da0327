package models

import (
	"sync"

	"github.com/google/uuid"
)

// Preferences hold the trip parameters sent to the pricing engine.
type Preferences struct {
	Adults         int `json:"numberOfAdults"`
	Children       int `json:"numberOfChildren"`
	TripDuration   int `json:"tripDuration"`
	TicketQuantity int `json:"ticketQuantity"`
}

// DefaultPreferences returns the preferences assigned to new travelers.
func DefaultPreferences() Preferences {
	return Preferences{
		Adults:         1,
		Children:       0,
		TripDuration:   1,
		TicketQuantity: 1,
	}
}

// Traveler is a user of the service along with its visit history and rewards.
//
// The visit history is append-only. The reward collection never holds two
// rewards for the same attraction name; it is only grown through
// AddRewardIfAbsent. All mutable state is guarded by the traveler's own lock,
// so travelers never contend with each other.
type Traveler struct {
	ID          uuid.UUID
	Name        string
	Phone       string
	Email       string
	Preferences Preferences

	mu        sync.RWMutex
	visits    []Visit
	rewards   []Reward
	rewarded  map[string]struct{}
	tripDeals []Offer
}

// NewTraveler creates a traveler with default preferences and no history.
func NewTraveler(id uuid.UUID, name, phone, email string) *Traveler {
	return &Traveler{
		ID:          id,
		Name:        name,
		Phone:       phone,
		Email:       email,
		Preferences: DefaultPreferences(),
		rewarded:    make(map[string]struct{}),
	}
}

// AddVisit appends a visit to the history.
func (t *Traveler) AddVisit(v Visit) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.visits = append(t.visits, v)
}

// Visits returns a copy of the visit history in insertion order.
func (t *Traveler) Visits() []Visit {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return append([]Visit(nil), t.visits...)
}

// LastVisit returns the most recently appended visit.
func (t *Traveler) LastVisit() (Visit, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if len(t.visits) == 0 {
		return Visit{}, false
	}
	return t.visits[len(t.visits)-1], true
}

// HasRewardFor reports whether a reward for the named attraction was committed.
func (t *Traveler) HasRewardFor(attractionName string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, ok := t.rewarded[attractionName]
	return ok
}

// AddRewardIfAbsent commits the reward unless one already exists for the same
// attraction name. It returns true when the reward was added.
func (t *Traveler) AddRewardIfAbsent(r Reward) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.rewarded == nil {
		t.rewarded = make(map[string]struct{})
	}
	if _, ok := t.rewarded[r.Attraction.Name]; ok {
		return false
	}
	t.rewarded[r.Attraction.Name] = struct{}{}
	t.rewards = append(t.rewards, r)
	return true
}

// Rewards returns a copy of the committed rewards in commit order.
func (t *Traveler) Rewards() []Reward {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return append([]Reward(nil), t.rewards...)
}

// RewardPoints is the sum of all committed reward points.
func (t *Traveler) RewardPoints() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	total := 0
	for _, r := range t.rewards {
		total += r.Points
	}
	return total
}

// SetTripDeals replaces the last offers computed for the traveler.
func (t *Traveler) SetTripDeals(offers []Offer) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.tripDeals = append([]Offer(nil), offers...)
}

// TripDeals returns the last offers computed for the traveler.
func (t *Traveler) TripDeals() []Offer {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return append([]Offer(nil), t.tripDeals...)
}
