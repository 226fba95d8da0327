// Package trippricer prices trips for a traveler across several providers.
package trippricer

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"

	"github.com/google/uuid"
	"tourguide.openclassrooms.org/internal/models"
)

// OffersPerQuote is the number of offers returned by every quote.
const OffersPerQuote = 5

var providerNames = []string{
	"Holiday Travels",
	"Enterprize Ventures Limited",
	"Sunny Days",
	"FlyAway Trips",
	"United Partners Vacations",
	"Dream Trips",
	"Live Free",
	"Dancing Waves Cruselines and Partners",
	"AdventureCo",
	"Cure-Your-Blues",
}

// ErrMissingAPIKey is returned when a quote is requested without an API key.
var ErrMissingAPIKey = errors.New("trip pricer: missing api key")

// Simulator is an in-process pricing engine. Each quote holds
// OffersPerQuote offers from distinct providers.
type Simulator struct{}

// NewSimulator creates a pricing simulator.
func NewSimulator() *Simulator {
	return &Simulator{}
}

// Price quotes trips for the traveler. Accumulated reward points lower every
// price, which never drops below zero.
func (s *Simulator) Price(ctx context.Context, apiKey string, travelerID uuid.UUID, adults, children, nights, rewardPoints int) ([]models.Offer, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	nights = max(nights, 1)
	order := rand.Perm(len(providerNames))
	offers := make([]models.Offer, 0, OffersPerQuote)
	for _, idx := range order[:OffersPerQuote] {
		perNight := 100 + rand.Float64()*900
		price := perNight*float64(adults)*float64(nights) +
			perNight/2*float64(children)*float64(nights) -
			float64(rewardPoints)/3
		offers = append(offers, models.Offer{
			TripID: travelerID,
			Name:   providerNames[idx],
			Price:  math.Round(math.Max(price, 0)*100) / 100,
		})
	}
	return offers, nil
}
