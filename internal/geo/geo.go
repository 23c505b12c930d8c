package geo

import "math"

const EarthRadiusMeters = 6371000

// Immutable geographic coordinates in degrees.
type Coordinates struct {
	Lat float64
	Lng float64
}

// ComputeDistance returns the great-circle distance in meters between two points.
func ComputeDistance(from, to Coordinates) float64 {
	if from == to {
		return 0
	}

	phi1 := from.Lat * math.Pi / 180
	phi2 := to.Lat * math.Pi / 180
	deltaPhi := (to.Lat - from.Lat) * math.Pi / 180
	deltaLambda := (to.Lng - from.Lng) * math.Pi / 180

	a := math.Sin(deltaPhi/2)*math.Sin(deltaPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(deltaLambda/2)*math.Sin(deltaLambda/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusMeters * c
}
