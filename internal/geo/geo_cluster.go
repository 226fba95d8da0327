package geo

import (
	"github.com/golang/geo/s2"
	"tourguide.openclassrooms.org/internal/models"
)

// RegionLevel is the S2 cell level used to label rewards by region.
// Level 4 cells are roughly 600 km across, which keeps metric cardinality low.
const RegionLevel = 4

// S2CellToken returns the token of the S2 cell containing c at the given level.
// Nearby coordinates share a token, so it works as a stable region label.
func S2CellToken(c models.Coordinate, level int) string {
	ll := s2.LatLngFromDegrees(c.Latitude, c.Longitude)
	return s2.CellIDFromLatLng(ll).Parent(level).ToToken()
}
