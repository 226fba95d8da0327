package rewards

import (
	"math"
	"sync/atomic"

	"tourguide.openclassrooms.org/internal/geo"
	"tourguide.openclassrooms.org/internal/metrics"
	"tourguide.openclassrooms.org/internal/models"
)

const (
	// DefaultProximityBuffer is the distance in miles under which a visit
	// qualifies for a reward.
	DefaultProximityBuffer = 10.0

	// DefaultAttractionProximityRange is the distance in miles under which a
	// point counts as near an attraction.
	DefaultAttractionProximityRange = 200.0
)

// Proximity decides whether locations are close enough to attractions.
//
// The reward buffer can be changed at any time and applies to every check
// made afterwards; rewards already granted are not revisited. The attraction
// range is fixed at construction.
type Proximity struct {
	defaultBuffer   float64
	buffer          atomic.Uint64 // math.Float64bits of the current buffer
	attractionRange float64
}

// NewProximity creates a classifier with the given default reward buffer and
// attraction range, both in miles.
func NewProximity(defaultBuffer, attractionRange float64) *Proximity {
	p := &Proximity{
		defaultBuffer:   defaultBuffer,
		attractionRange: attractionRange,
	}
	p.SetProximityBuffer(defaultBuffer)
	return p
}

// SetProximityBuffer changes the reward buffer, in miles.
func (p *Proximity) SetProximityBuffer(miles float64) {
	p.buffer.Store(math.Float64bits(miles))
	metrics.ProximityBufferMiles.Set(miles)
}

// ResetProximityBuffer restores the default reward buffer.
func (p *Proximity) ResetProximityBuffer() {
	p.SetProximityBuffer(p.defaultBuffer)
}

// ProximityBuffer returns the current reward buffer, in miles.
func (p *Proximity) ProximityBuffer() float64 {
	return math.Float64frombits(p.buffer.Load())
}

// AttractionRange returns the fixed attraction range, in miles.
func (p *Proximity) AttractionRange() float64 {
	return p.attractionRange
}

// IsWithinAttractionProximity reports whether point lies within the
// attraction range of the attraction.
func (p *Proximity) IsWithinAttractionProximity(attraction models.Attraction, point models.Coordinate) bool {
	return geo.Distance(attraction.Coordinate, point) <= p.attractionRange
}

// QualifiesForReward reports whether the visit is within the reward buffer of
// the attraction.
func (p *Proximity) QualifiesForReward(visit models.Visit, attraction models.Attraction) bool {
	return geo.Distance(attraction.Coordinate, visit.Coordinate) <= p.ProximityBuffer()
}
