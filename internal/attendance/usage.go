package attendance

import (
	"math"

	"parksim/internal/config"
)

// Boardings converts an hour's park-wide visitor count into boardings for one
// ride. The potential demand is the ride's attraction rate applied to the
// visitor count; the result is clamped to the ride's hourly capacity ceiling
// and is always within [0, capacity_cap]. No randomness is involved.
func Boardings(ride config.RideConfig, hourlyVisitors int) int {
	if hourlyVisitors <= 0 {
		return 0
	}
	potential := int(math.Round(float64(hourlyVisitors) * ride.AttractionRate))
	if potential > ride.CapacityCap {
		return ride.CapacityCap
	}
	return potential
}
