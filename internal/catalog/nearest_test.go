package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"tourguide.openclassrooms.org/internal/models"
)

func names(attractions []models.Attraction) []string {
	result := make([]string, len(attractions))
	for i, a := range attractions {
		result[i] = a.Name
	}
	return result
}

func TestNearestShortCatalog(t *testing.T) {
	attractions := testAttractions()
	anaheim := models.Coordinate{Latitude: 33.8366, Longitude: -117.9143}

	nearest := Nearest(attractions, anaheim, DefaultNearbyCount)

	assert.Equal(t, []string{"Disneyland", "Jackson Hole", "Bronx Zoo"}, names(nearest))
}

func TestNearestLimitsResults(t *testing.T) {
	attractions := testAttractions()
	newYork := models.Coordinate{Latitude: 40.7128, Longitude: -74.0060}

	nearest := Nearest(attractions, newYork, 2)

	assert.Equal(t, []string{"Bronx Zoo", "Jackson Hole"}, names(nearest))
	assert.Equal(t, "Disneyland", attractions[0].Name, "input must not be reordered")
}

func TestNearestKeepsCatalogOrderOnTies(t *testing.T) {
	point := models.Coordinate{Latitude: 10, Longitude: 10}
	attractions := []models.Attraction{
		{Name: "far", Coordinate: models.Coordinate{Latitude: 30, Longitude: 30}},
		{Name: "first", Coordinate: point},
		{Name: "second", Coordinate: point},
		{Name: "third", Coordinate: point},
	}

	nearest := Nearest(attractions, point, 3)

	assert.Equal(t, []string{"first", "second", "third"}, names(nearest))
}

func TestNearestEmpty(t *testing.T) {
	assert.Empty(t, Nearest(nil, models.Coordinate{}, 5))
	assert.Empty(t, Nearest(testAttractions(), models.Coordinate{}, 0))
}
