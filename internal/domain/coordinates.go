package domain

import "math"

// EarthRadiusKm is the mean Earth radius used for great-circle distances.
const EarthRadiusKm = 6371.0

// Immutable geographic coordinates (latitude, longitude) in decimal degrees.
// Latitude must lie in [-90, 90] and longitude in [-180, 180]; range
// checking is the caller's responsibility (see ValidCoordinate).
type Coordinates struct {
	Lat float64
	Lon float64
}

// Haversine returns the great-circle distance between a and b in kilometers.
//
// The result is left at full precision so radius comparisons do not
// accumulate rounding error; reporting paths round with RoundKm.
// Identical points return exactly 0 rather than risking NaN from
// atan2(0, 0) under floating-point noise.
func Haversine(a, b Coordinates) float64 {
	if a == b {
		return 0
	}

	lat1 := radians(a.Lat)
	lat2 := radians(b.Lat)
	dLat := radians(b.Lat - a.Lat)
	dLon := radians(b.Lon - a.Lon)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return EarthRadiusKm * c
}

// RoundKm rounds a distance to two decimal places for reporting.
func RoundKm(km float64) float64 {
	return math.Round(km*100) / 100
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }

// ValidCoordinate reports whether lat/lon form a usable coordinate pair.
func ValidCoordinate(lat, lon float64) bool {
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}
