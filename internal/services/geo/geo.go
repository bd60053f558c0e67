// Package geo implements spec §4.1: geography lookups and timing math on
// top of a read-only ports.DistanceMatrixProvider and an immutable
// domain.Config, plus the literal platform-cluster and compatibility
// tables the rest of the pipeline consults.
package geo

import (
	"math"

	"pax-route-planner/internal/domain"
	"pax-route-planner/internal/ports"
)

// Distance looks up the nautical-mile distance a->b, falling back to b->a,
// and finally to cfg.SentinelDistanceNM when neither direction is known
// (spec §4.1).
func Distance(provider ports.DistanceMatrixProvider, cfg domain.Config, a, b string) float64 {
	if a == b {
		return 0
	}
	if nm, ok := provider.Distance(a, b); ok {
		return nm
	}
	if nm, ok := provider.Distance(b, a); ok {
		return nm
	}
	return cfg.SentinelDistanceNM
}

// TravelMinutes converts a nautical-mile distance at a given speed (knots)
// into whole minutes, rounded up.
func TravelMinutes(distanceNM, speedKnots float64) int {
	if speedKnots <= 0 {
		return 0
	}
	return int(math.Ceil((distanceNM / speedKnots) * 60))
}

// StopOverheadMinutes is the per-stop time cost beyond travel: one minute
// per passenger moved, plus the Aqua approach overhead (spec §4.1).
func StopOverheadMinutes(boat domain.Boat, passengersMoved int) int {
	return boat.StopOverheadMinutes(passengersMoved)
}

// ClusterOf returns the cluster for a platform, OTHER if unlisted (spec
// §4.1).
func ClusterOf(cfg domain.Config, platform string) domain.Cluster {
	if c, ok := cfg.ClusterOf[platform]; ok {
		return c
	}
	return domain.ClusterOther
}

// Compatible reports whether two platforms' clusters may share a route
// without the incompatible-switch penalty.
func Compatible(cfg domain.Config, platformA, platformB string) bool {
	return cfg.ClusterCompatible(ClusterOf(cfg, platformA), ClusterOf(cfg, platformB))
}
