package evaluate

import (
	"pax-route-planner/internal/domain"
	"pax-route-planner/internal/ports"
	"pax-route-planner/internal/services/geo"
)

// rawPenaltyTotals walks the route's final stop order once and returns the
// unweighted priority-time, pax-arrival, and comfort components (spec
// §4.3 step 9). These feed into the Assignment Optimizer's secondary score
// (spec §4.5), which applies its own weights on top of the raw totals —
// a separate concern from the Stop Sequencer's own weighted ordering score.
func rawPenaltyTotals(provider ports.DistanceMatrixProvider, cfg domain.Config, r domain.Route, speedKnots float64) (priorityTime, paxArrival, comfort float64) {
	current := domain.TMIB
	onboard := r.PreLoad()
	elapsed := 0.0

	walk := func(stops []domain.Stop) {
		for _, s := range stops {
			d := geo.Distance(provider, cfg, current, s.Platform)
			legMinutes := float64(geo.TravelMinutes(d, speedKnots))
			arrival := elapsed + legMinutes

			priorityTime += arrival * cfg.PriorityWeight[s.Priority]
			paxArrival += arrival * float64(s.PaxMoved())
			comfort += float64(onboard) * legMinutes

			onboard -= s.PaxMoved()
			elapsed = arrival
			current = s.Platform
		}
	}

	walk(r.PreM9Stops)
	if r.UsesHub {
		d := geo.Distance(provider, cfg, current, domain.PCM09)
		elapsed += float64(geo.TravelMinutes(d, speedKnots))
		current = domain.PCM09
		onboard = r.PostLoad()
	}
	walk(r.PostM9Stops)

	return priorityTime, paxArrival, comfort
}

// clusterCohesionPenalty walks the concatenated stop sequence (skipping the
// hub itself, which has no cluster of its own) and charges a penalty for
// each cluster switch: 0 within a cluster, +compatible for a compatible
// switch, +incompatible otherwise, plus a per-NM charge once the jump
// exceeds the threshold distance (spec §4.5).
func clusterCohesionPenalty(provider ports.DistanceMatrixProvider, cfg domain.Config, r domain.Route) float64 {
	platforms := make([]string, 0, len(r.PreM9Stops)+len(r.PostM9Stops))
	for _, s := range r.PreM9Stops {
		platforms = append(platforms, s.Platform)
	}
	for _, s := range r.PostM9Stops {
		platforms = append(platforms, s.Platform)
	}
	if len(platforms) < 2 {
		return 0
	}

	penalty := 0.0
	for i := 1; i < len(platforms); i++ {
		a, b := platforms[i-1], platforms[i]
		clusterA, clusterB := geo.ClusterOf(cfg, a), geo.ClusterOf(cfg, b)

		switch {
		case clusterA == clusterB:
			penalty += cfg.ClusterSameWeight
		case cfg.ClusterCompatible(clusterA, clusterB):
			penalty += cfg.ClusterCompatibleWeight
		default:
			penalty += cfg.ClusterIncompatibleWeight
		}

		if clusterA != clusterB {
			d := geo.Distance(provider, cfg, a, b)
			if over := d - cfg.ClusterJumpDistanceThresholdNM; over > 0 {
				penalty += over * cfg.ClusterJumpDistanceWeight
			}
		}
	}

	return penalty
}
