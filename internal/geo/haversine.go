// Package geo provides the spherical-earth distance math used by the
// nearby views and the compass formatting used in dispatch summaries.
package geo

import "math"

// EarthRadiusMeters is the spherical-earth approximation radius.
const EarthRadiusMeters = 6371000.0

// Haversine returns the great-circle distance in meters between two
// latitude/longitude points.
func Haversine(lat1, lng1, lat2, lng2 float64) float64 {
	phi1 := lat1 * math.Pi / 180
	phi2 := lat2 * math.Pi / 180
	dPhi := (lat2 - lat1) * math.Pi / 180
	dLambda := (lng2 - lng1) * math.Pi / 180

	a := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusMeters * c
}

var compassDirs = []string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}

// CompassDirection maps a heading in degrees to one of the eight compass
// points. NaN headings yield "-", matching the capture fallback.
func CompassDirection(degrees float64) string {
	if math.IsNaN(degrees) {
		return "-"
	}
	idx := int(math.Round(degrees/45)) % 8
	if idx < 0 {
		idx += 8
	}
	return compassDirs[idx]
}
