package geo

import "math"

const earthRadiusKm = 6371.0

// Distance computes the great-circle distance in km between two
// coordinate pairs (degrees) using the haversine formula, rounded to
// two decimal places.
func Distance(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := radians(lat2 - lat1)
	dLng := radians(lng2 - lng1)

	a := math.Pow(math.Sin(dLat/2), 2) +
		math.Cos(radians(lat1))*math.Cos(radians(lat2))*math.Pow(math.Sin(dLng/2), 2)

	// Clamp so antipodal points don't produce NaN through float drift.
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(math.Max(0, 1-a)))

	return math.Round(earthRadiusKm*c*100) / 100
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
