package geo

import "math"

const earthRadiusMeters = 6_371_000.0

// Haversine returns the great-circle distance in meters between two points.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	lat1r := lat1 * math.Pi / 180
	lat2r := lat2 * math.Pi / 180
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1r)*math.Cos(lat2r)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMeters * c
}

// HaversineKm is Haversine in kilometers, the unit edge distances use.
func HaversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	return Haversine(lat1, lon1, lat2, lon2) / 1000
}

// EquirectangularDist returns an approximate distance in meters.
// Good to well under 1% for the few-hundred-km spans between neighboring
// cities; use it to rank candidates, not to report distances.
func EquirectangularDist(lat1, lon1, lat2, lon2 float64) float64 {
	x := (lon2 - lon1) * math.Cos((lat1+lat2)/2*math.Pi/180) * math.Pi / 180
	y := (lat2 - lat1) * math.Pi / 180
	return math.Sqrt(x*x+y*y) * earthRadiusMeters
}

// DegreeSpan returns the half-widths, in degrees of latitude and longitude,
// of the smallest box centered on latitude lat that contains every point
// within meters of the center. When the circle reaches a pole the longitude
// span is 180.
func DegreeSpan(lat, meters float64) (dLat, dLon float64) {
	angular := meters / earthRadiusMeters
	dLat = angular * 180 / math.Pi

	cosLat := math.Cos(lat * math.Pi / 180)
	s := math.Sin(angular)
	if angular >= math.Pi/2 || s >= cosLat {
		return dLat, 180
	}
	dLon = math.Asin(s/cosLat) * 180 / math.Pi
	return dLat, dLon
}
