package domain

import "math"

// Immutable geographic coordinates (latitude, longitude).
type Coordinates struct {
	Lat float64
	Lng float64
}

// Return coordinates as [lng, lat] for external API compatibility
// (ORS request bodies use longitude-first ordering).
func (c Coordinates) LngLatToList() []float64 { return []float64{c.Lng, c.Lat} }

// Equal reports whether both coordinate pairs match exactly.
// Round-trip detection treats start and end as the same location only
// when the caller passed identical values.
func (c Coordinates) Equal(o Coordinates) bool {
	return c.Lat == o.Lat && c.Lng == o.Lng
}

// DistanceKm returns the great-circle (haversine) distance to another
// coordinate in kilometers.
func (c Coordinates) DistanceKm(o Coordinates) float64 {
	const earthRadiusKm = 6371.0
	dLat := (o.Lat - c.Lat) * math.Pi / 180
	dLng := (o.Lng - c.Lng) * math.Pi / 180
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(c.Lat*math.Pi/180)*math.Cos(o.Lat*math.Pi/180)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return earthRadiusKm * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}
