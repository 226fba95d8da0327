package app

import (
	"io"
	"strings"

	"github.com/twpayne/go-kml/v2"
	"tourguide.openclassrooms.org/internal/models"
)

// writeAttractionsKML writes the catalog as a KML document with one
// placemark per attraction.
func writeAttractionsKML(w io.Writer, attractions []models.Attraction) error {
	placemarks := make([]kml.Element, 0, len(attractions)+1)
	placemarks = append(placemarks, kml.Name("TourGuide attractions"))
	for _, a := range attractions {
		placemarks = append(placemarks, kml.Placemark(
			kml.Name(a.Name),
			kml.Description(describe(a)),
			kml.Point(
				kml.Coordinates(kml.Coordinate{Lon: a.Coordinate.Longitude, Lat: a.Coordinate.Latitude}),
			),
		))
	}
	return kml.KML(kml.Document(placemarks...)).WriteIndent(w, "", "  ")
}

func describe(a models.Attraction) string {
	parts := make([]string, 0, 2)
	if a.City != "" {
		parts = append(parts, a.City)
	}
	if a.State != "" {
		parts = append(parts, a.State)
	}
	return strings.Join(parts, ", ")
}
