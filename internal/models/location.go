package models

import (
	"time"

	"github.com/google/uuid"
)

// Coordinate is a latitude/longitude pair in degrees.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Attraction is a point of interest from the attraction catalog.
//
// Rewards are deduplicated by Name, not by ID: two catalog entries sharing a
// name are treated as the same attraction.
type Attraction struct {
	ID         uuid.UUID  `json:"attractionId"`
	Name       string     `json:"attractionName"`
	City       string     `json:"city,omitempty"`
	State      string     `json:"state,omitempty"`
	Coordinate Coordinate `json:"location"`
}

// Visit records where a traveler was at a given time.
type Visit struct {
	TravelerID uuid.UUID  `json:"userId"`
	Coordinate Coordinate `json:"location"`
	Timestamp  time.Time  `json:"timeVisited"`
}

// NewVisit creates a Visit for the traveler at the given coordinate.
func NewVisit(travelerID uuid.UUID, coordinate Coordinate, timestamp time.Time) Visit {
	return Visit{
		TravelerID: travelerID,
		Coordinate: coordinate,
		Timestamp:  timestamp,
	}
}

// Reward is the points granted to a traveler for visiting near an attraction.
type Reward struct {
	Visit      Visit      `json:"visitedLocation"`
	Attraction Attraction `json:"attraction"`
	Points     int        `json:"rewardPoints"`
}

// Offer is a priced trip returned by the pricing engine.
type Offer struct {
	TripID uuid.UUID `json:"tripId"`
	Name   string    `json:"name"`
	Price  float64   `json:"price"`
}
