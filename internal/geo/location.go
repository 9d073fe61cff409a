// Package geo provides the node location type and the two distance models
// the scenario loader uses to derive link base latency.
package geo

import "math"

// Location is a point in a planar (X, Y) or lat/lon coordinate system,
// depending on the DistanceModel in effect.
type Location struct {
	X float64
	Y float64
}

// DistanceModel selects how two Locations are converted to a distance.
type DistanceModel string

const (
	Euclidean DistanceModel = "euclidean"
	Haversine DistanceModel = "haversine"
)

// earthRadiusMeters is used by Haversine, treating X as longitude and Y as
// latitude in degrees.
const earthRadiusMeters = 6371000.0

// Distance computes the distance between a and b under the given model.
func Distance(a, b Location, model DistanceModel) float64 {
	switch model {
	case Haversine:
		return haversine(a, b)
	case Euclidean, "":
		return euclidean(a, b)
	default:
		return euclidean(a, b)
	}
}

func euclidean(a, b Location) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return math.Sqrt(dx*dx + dy*dy)
}

func haversine(a, b Location) float64 {
	lat1 := a.Y * math.Pi / 180
	lat2 := b.Y * math.Pi / 180
	dLat := (b.Y - a.Y) * math.Pi / 180
	dLon := (b.X - a.X) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return earthRadiusMeters * c
}

// BaseLatency derives a link's base latency from the distance between its
// endpoints, following the scenario config formula: a propagation term
// (distance over signal speed) plus hopDelay charged per hopDelayDistance
// (30km by default) of distance, doubled and rounded to milliseconds.
//
// baseLatency = round(2*distance*(1/signalSpeed + hopDelay/30km), 3)
func BaseLatency(distanceMeters, signalSpeedMetersPerSec, hopDelaySeconds, hopDelayDistanceMeters float64) float64 {
	if signalSpeedMetersPerSec <= 0 {
		signalSpeedMetersPerSec = 2e8
	}
	if hopDelayDistanceMeters <= 0 {
		hopDelayDistanceMeters = 30000
	}
	raw := 2 * distanceMeters * (1/signalSpeedMetersPerSec + hopDelaySeconds/hopDelayDistanceMeters)
	return math.Round(raw*1000) / 1000
}
