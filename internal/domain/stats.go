package domain

import "math"

// BusStat is derived from catalogue state on demand and never stored.
type BusStat struct {
	Name            string
	StopCount       int
	UniqueStopCount int
	// Sum of known directed road distances along the traversal, in meters.
	RoadLength int
	// Sum of great-circle segment lengths along the traversal, in meters.
	GeoLength float64
	// RoadLength / GeoLength; NaN when GeoLength is zero.
	Curvature float64
	// Number of traversal legs with no recorded directed road distance.
	MissingLegs int
}

func (s BusStat) CurvatureDefined() bool {
	return !math.IsNaN(s.Curvature) && !math.IsInf(s.Curvature, 0)
}

// Complete reports whether every leg of the traversal had a recorded road distance.
func (s BusStat) Complete() bool {
	return s.MissingLegs == 0
}

// StopStat lists the buses visiting a stop. A found stop may have no buses.
type StopStat struct {
	Name  string
	Found bool
	Buses []string
}
