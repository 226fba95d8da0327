// Package gpsutil talks to the location provider: it returns the attraction
// catalog and the current location of a traveler.
package gpsutil

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"tourguide.openclassrooms.org/internal/models"
)

// maxMercatorLatitude bounds generated latitudes to the Web Mercator range.
const maxMercatorLatitude = 85.05112878

type attractionSeed struct {
	name, city, state string
	lat, lon          float64
}

var seeds = []attractionSeed{
	{"Disneyland", "Anaheim", "CA", 33.817595, -117.922008},
	{"Jackson Hole", "Jackson Hole", "WY", 43.582767, -110.821999},
	{"Mojave National Preserve", "Kelso", "CA", 35.141689, -115.510399},
	{"Joshua Tree National Park", "Joshua Tree National Park", "CA", 33.881866, -115.90065},
	{"Buffalo National River", "St Joe", "AR", 35.985512, -92.757652},
	{"Hot Springs National Park", "Hot Springs", "AR", 34.52153, -93.042267},
	{"Kartchner Caverns State Park", "Benson", "AZ", 31.837551, -110.347382},
	{"Legend Valley", "Thornville", "OH", 39.937778, -82.40667},
	{"Flowers Bakery of London", "Flowers Bakery of London", "TN", 37.131527, -84.07486},
	{"McKinley Tower", "Anchorage", "AK", 61.218887, -149.877502},
	{"Flatiron Building", "New York City", "NY", 40.741112, -73.989723},
	{"Fallingwater", "Mill Run", "PA", 39.906113, -79.468056},
	{"Union Station", "Washington D.C.", "CA", 38.897095, -77.006332},
	{"Roger Dean Stadium", "Jupiter", "FL", 26.890959, -80.116577},
	{"Texas Memorial Stadium", "Austin", "TX", 30.283682, -97.732536},
	{"Bryant-Denny Stadium", "Tuscaloosa", "AL", 33.208973, -87.550438},
	{"Tiger Stadium", "Baton Rouge", "LA", 30.412035, -91.183815},
	{"Neyland Stadium", "Knoxville", "TN", 35.955013, -83.925011},
	{"Kyle Field", "College Station", "TX", 30.61025, -96.339844},
	{"San Diego Zoo", "San Diego", "CA", 32.735317, -117.149048},
	{"Zoo Tampa at Lowry Park", "Tampa", "FL", 28.012804, -82.469269},
	{"Franklin Park Zoo", "Boston", "MA", 42.302601, -71.086731},
	{"El Paso Zoo", "El Paso", "TX", 31.769125, -106.44487},
	{"Kansas City Zoo", "Kansas City", "MO", 39.007504, -94.529625},
	{"Bronx Zoo", "Bronx", "NY", 40.852905, -73.872971},
	{"Cinderella Castle", "Orlando", "FL", 28.419411, -81.5812},
}

// attractionNamespace scopes the name-derived attraction IDs.
var attractionNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://tourguide.openclassrooms.org/attractions"))

// DefaultAttractions returns the built-in catalog of 26 attractions.
func DefaultAttractions() []models.Attraction {
	attractions := make([]models.Attraction, 0, len(seeds))
	for _, s := range seeds {
		attractions = append(attractions, models.Attraction{
			ID:    uuid.NewSHA1(attractionNamespace, []byte(s.name)),
			Name:  s.name,
			City:  s.city,
			State: s.state,
			Coordinate: models.Coordinate{
				Latitude:  s.lat,
				Longitude: s.lon,
			},
		})
	}
	return attractions
}

// Simulator is an in-process location provider. Locations are uniformly
// random over the Web Mercator range.
type Simulator struct {
	// MinLatency and MaxLatency bound an artificial delay added to every call.
	MinLatency time.Duration
	MaxLatency time.Duration
	Now        func() time.Time
}

// NewSimulator creates a simulator without latency.
func NewSimulator() *Simulator {
	return &Simulator{Now: time.Now}
}

// Attractions returns the built-in catalog.
func (s *Simulator) Attractions(ctx context.Context) ([]models.Attraction, error) {
	if err := s.sleep(ctx); err != nil {
		return nil, err
	}
	return DefaultAttractions(), nil
}

// UserLocation returns a random location for the traveler, stamped now.
func (s *Simulator) UserLocation(ctx context.Context, travelerID uuid.UUID) (models.Visit, error) {
	if err := s.sleep(ctx); err != nil {
		return models.Visit{}, err
	}
	coord := models.Coordinate{
		Latitude:  -maxMercatorLatitude + rand.Float64()*2*maxMercatorLatitude,
		Longitude: -180 + rand.Float64()*360,
	}
	return models.NewVisit(travelerID, coord, s.Now()), nil
}

func (s *Simulator) sleep(ctx context.Context) error {
	if s.MaxLatency <= 0 {
		return ctx.Err()
	}
	d := s.MinLatency
	if span := s.MaxLatency - s.MinLatency; span > 0 {
		d += rand.N(span)
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
