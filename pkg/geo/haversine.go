// Package geo provides great-circle distance computation over WGS84
// coordinates.
package geo

import "math"

const earthRadiusKm = 6371.0

// DistanceKm returns the haversine distance in kilometers between two points.
func DistanceKm(lat1, lng1, lat2, lng2 float64) float64 {
	phi1 := lat1 * math.Pi / 180.0
	lam1 := lng1 * math.Pi / 180.0
	phi2 := lat2 * math.Pi / 180.0
	lam2 := lng2 * math.Pi / 180.0

	dPhi := phi2 - phi1
	dLam := lam2 - lam1

	a := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLam/2)*math.Sin(dLam/2)

	// Floating point can overshoot 1.0 at antipodal or zero distances, which
	// would push Asin out of its domain.
	s := math.Min(1.0, math.Sqrt(a))
	return 2 * math.Asin(s) * earthRadiusKm
}

// DistancesKm computes the distance in kilometers from one origin to every
// target point in a single pass. lats and lngs must have equal length.
func DistancesKm(originLat, originLng float64, lats, lngs []float64) []float64 {
	phi1 := originLat * math.Pi / 180.0
	lam1 := originLng * math.Pi / 180.0
	cosPhi1 := math.Cos(phi1)

	out := make([]float64, len(lats))
	for i := range lats {
		phi2 := lats[i] * math.Pi / 180.0
		lam2 := lngs[i] * math.Pi / 180.0

		dPhi := phi2 - phi1
		dLam := lam2 - lam1

		a := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
			cosPhi1*math.Cos(phi2)*math.Sin(dLam/2)*math.Sin(dLam/2)

		s := math.Min(1.0, math.Sqrt(a))
		out[i] = 2 * math.Asin(s) * earthRadiusKm
	}
	return out
}
