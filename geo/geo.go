// Package geo provides planar distance math for proximity queries and
// duplicate detection over WGS84 coordinates.
package geo

import "math"

const earthRadiusKm = 6371.0

// Meridian arc length of one degree of latitude.
const metersPerDegree = earthRadiusKm * 1000 * math.Pi / 180

// Distance returns the great-circle distance in meters between two
// (lat, lon) pairs given in degrees. It is commutative and
// deterministic for identical inputs.
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	phi1 := radians(lat1)
	phi2 := radians(lat2)
	dPhi := radians(lat2 - lat1)
	dLambda := radians(lon2 - lon1)

	a := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c * 1000
}

// WithinRadius reports whether (lat, lon) lies within radius meters of
// the center point.
func WithinRadius(centerLat, centerLon, lat, lon, radius float64) bool {
	return Distance(centerLat, centerLon, lat, lon) <= radius
}

// BoundingBox returns the latitude and longitude half-widths, in
// degrees, of a box guaranteed to contain every point within radius
// meters of a center at the given latitude. It is a coarse pre-filter
// for SQL range conditions; candidates inside the box still need the
// exact Distance check. Near the poles the longitude width degenerates,
// so it widens to the full range rather than under-covering.
func BoundingBox(lat, radius float64) (latDelta, lonDelta float64) {
	latDelta = radius / metersPerDegree
	cosLat := math.Cos(radians(lat))
	if cosLat < 1e-6 {
		return latDelta, 180
	}
	return latDelta, latDelta / cosLat
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
