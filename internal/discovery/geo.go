// internal/discovery/geo.go

package discovery

import (
	"math"

	"github.com/sparkd-app/sparkd-backend/internal/profile"
)

// earthRadiusKM is the mean sphere radius used by the Haversine formula
const earthRadiusKM = 6371.0

// HaversineKM returns the great-circle distance in kilometers between two
// coordinates given in degrees.
func HaversineKM(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := toRadians(lat2 - lat1)
	dLng := toRadians(lng2 - lng1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*
			math.Sin(dLng/2)*math.Sin(dLng/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKM * c
}

// DistanceKM is HaversineKM over coordinate pairs
func DistanceKM(a, b profile.Coordinates) float64 {
	return HaversineKM(a.Lat, a.Lng, b.Lat, b.Lng)
}

// ValidCoordinates rejects NaN, infinities and out-of-range degrees
func ValidCoordinates(lat, lng float64) bool {
	if math.IsNaN(lat) || math.IsNaN(lng) || math.IsInf(lat, 0) || math.IsInf(lng, 0) {
		return false
	}
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}

func toRadians(degrees float64) float64 {
	return degrees * math.Pi / 180
}
