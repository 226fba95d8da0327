package geo

import (
	"math"

	"github.com/golang/geo/s2"
	"tourguide.openclassrooms.org/internal/models"
)

// StatuteMilesPerNauticalMile converts nautical miles to statute miles.
const StatuteMilesPerNauticalMile = 1.15077945

// nauticalMilesPerDegree is one minute of arc per nautical mile.
const nauticalMilesPerDegree = 60.0

// Distance returns the great-circle distance between a and b in statute miles,
// using the spherical law of cosines.
//
// The cosine of the central angle is clamped to [-1, 1]: for identical or
// nearly identical points rounding can push it just above 1, and acos would
// return NaN instead of 0.
func Distance(a, b models.Coordinate) float64 {
	if a == b {
		return 0
	}

	lat1 := degreesToRadians(a.Latitude)
	lon1 := degreesToRadians(a.Longitude)
	lat2 := degreesToRadians(b.Latitude)
	lon2 := degreesToRadians(b.Longitude)

	cosAngle := math.Sin(lat1)*math.Sin(lat2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Cos(lon1-lon2)
	angle := math.Acos(clamp(cosAngle, -1, 1))

	nauticalMiles := nauticalMilesPerDegree * radiansToDegrees(angle)
	return StatuteMilesPerNauticalMile * nauticalMiles
}

// GreatCircleMiles computes the same distance as Distance through the s2
// library's angle arithmetic. It exists to cross-check Distance.
func GreatCircleMiles(a, b models.Coordinate) float64 {
	p1 := s2.LatLngFromDegrees(a.Latitude, a.Longitude)
	p2 := s2.LatLngFromDegrees(b.Latitude, b.Longitude)
	return StatuteMilesPerNauticalMile * nauticalMilesPerDegree * p1.Distance(p2).Degrees()
}

// IsValidLatLon returns true if the coordinate falls within the valid
// geographic bounds: latitude in [-90, 90] and longitude in [-180, 180].
func IsValidLatLon(c models.Coordinate) bool {
	if math.IsNaN(c.Latitude) || math.IsNaN(c.Longitude) {
		return false
	}
	return c.Latitude >= -90 && c.Latitude <= 90 && c.Longitude >= -180 && c.Longitude <= 180
}

func degreesToRadians(d float64) float64 {
	return d * math.Pi / 180
}

func radiansToDegrees(r float64) float64 {
	return r * 180 / math.Pi
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
