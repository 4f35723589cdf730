// Package geo provides pure geographic math helpers.
package geo

import "math"

const earthRadiusMeters = 6371000

// DistanceMeters calculates the great-circle distance between a query center
// and a point using the haversine formula.
func DistanceMeters(centerLat, centerLng, pointLat, pointLng float64) float64 {
	φ1 := centerLat * math.Pi / 180
	φ2 := pointLat * math.Pi / 180
	Δφ := (pointLat - centerLat) * math.Pi / 180
	Δλ := (pointLng - centerLng) * math.Pi / 180

	a := math.Sin(Δφ/2)*math.Sin(Δφ/2) +
		math.Cos(φ1)*math.Cos(φ2)*
			math.Sin(Δλ/2)*math.Sin(Δλ/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMeters * c
}
