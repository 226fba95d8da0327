package catalog

import (
	"slices"

	"tourguide.openclassrooms.org/internal/geo"
	"tourguide.openclassrooms.org/internal/models"
)

// DefaultNearbyCount is the number of attractions returned by nearby lookups.
const DefaultNearbyCount = 5

// Nearest returns the n attractions closest to location, closest first.
// Attractions at equal distance keep their catalog order. The input slice is
// not modified. Fewer than n attractions are returned if the catalog is short.
func Nearest(attractions []models.Attraction, location models.Coordinate, n int) []models.Attraction {
	if n <= 0 || len(attractions) == 0 {
		return []models.Attraction{}
	}

	type ranked struct {
		attraction models.Attraction
		distance   float64
	}

	candidates := make([]ranked, len(attractions))
	for i, a := range attractions {
		candidates[i] = ranked{attraction: a, distance: geo.Distance(a.Coordinate, location)}
	}

	slices.SortStableFunc(candidates, func(a, b ranked) int {
		switch {
		case a.distance < b.distance:
			return -1
		case a.distance > b.distance:
			return 1
		default:
			return 0
		}
	})

	n = min(n, len(candidates))
	result := make([]models.Attraction, n)
	for i := range result {
		result[i] = candidates[i].attraction
	}
	return result
}
