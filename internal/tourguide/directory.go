package tourguide

import (
	"sync"

	"tourguide.openclassrooms.org/internal/metrics"
	"tourguide.openclassrooms.org/internal/models"
)

// Directory is a thread-safe in-memory store of travelers indexed by name.
// Travelers are listed in insertion order.
type Directory struct {
	mu     sync.RWMutex
	byName map[string]*models.Traveler
	order  []*models.Traveler
}

// NewDirectory creates an empty directory.
func NewDirectory() *Directory {
	return &Directory{
		byName: make(map[string]*models.Traveler),
	}
}

// Add stores t unless a traveler with the same name exists. It returns true
// when t was added.
func (d *Directory) Add(t *models.Traveler) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, exists := d.byName[t.Name]; exists {
		return false
	}
	d.byName[t.Name] = t
	d.order = append(d.order, t)
	metrics.Travelers.Set(float64(len(d.order)))
	return true
}

// Get returns the traveler with the given name.
func (d *Directory) Get(name string) (*models.Traveler, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	t, ok := d.byName[name]
	return t, ok
}

// All returns every traveler.
func (d *Directory) All() []*models.Traveler {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return append([]*models.Traveler(nil), d.order...)
}

// Len returns the number of travelers.
func (d *Directory) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.order)
}
