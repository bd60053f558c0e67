package evaluate

import (
	"pax-route-planner/internal/domain"
	"pax-route-planner/internal/ports"
	"pax-route-planner/internal/services/geo"
)

// split decides which platforms' TMIB drops move ahead of the M9 hub (spec
// §4.3.1). A demand with no M9 component that moves pre-M9 disappears from
// the post segment entirely; a demand with both components that moves
// keeps its M9 drop post-M9 as a loop visit (the platform appears twice).
func split(cfg domain.Config, demands []domain.Demand, capacity int) (pre, post []domain.Stop) {
	totalTMIB, totalM9 := 0, 0
	for _, d := range demands {
		totalTMIB += d.TMIB
		totalM9 += d.M9
	}

	if totalTMIB+totalM9 <= capacity {
		return nil, toPostStops(demands)
	}

	candidates := make([]domain.Demand, 0, len(demands))
	fixed := make([]domain.Demand, 0, len(demands))
	for _, d := range demands {
		if d.TMIB > 0 {
			candidates = append(candidates, d)
		} else {
			fixed = append(fixed, d)
		}
	}

	if len(candidates) == 0 {
		return nil, toPostStops(demands)
	}

	needed := totalTMIB + totalM9 - capacity

	var best splitChoice
	haveBest := false

	n := len(candidates)
	for mask := 0; mask < (1 << n); mask++ {
		moved := 0
		for i, d := range candidates {
			if mask&(1<<i) != 0 {
				moved += d.TMIB
			}
		}
		feasible := moved >= needed
		choice := splitChoice{
			mask:        mask,
			feasible:    feasible,
			estCost:     estimatedCost(cfg, demands, candidates, mask),
			splitCount:  popcount(mask),
			movedExcess: moved - needed,
		}
		if !haveBest || choice.less(best) {
			best = choice
			haveBest = true
		}
	}

	return materialize(candidates, fixed, best.mask)
}

// splitChoice ranks one candidate subset by the lexicographic tuple spec
// §4.3.1 describes: estimated route cost, number of split platforms, moved
// surplus, then pre-stop count (equal to split count in this model).
type splitChoice struct {
	mask        int
	feasible    bool
	estCost     float64
	splitCount  int
	movedExcess int // moved TMIB beyond what capacity required, >=0 when feasible
}

// less ranks a ahead of b: a feasible split always beats an infeasible one
// (so the caller gets the closest-to-capacity attempt even when nothing
// actually fits); among equally-feasible splits, the lexicographic tuple
// from spec §4.3.1 decides.
func (a splitChoice) less(b splitChoice) bool {
	if a.feasible != b.feasible {
		return a.feasible
	}
	if a.feasible {
		if a.estCost != b.estCost {
			return a.estCost < b.estCost
		}
		if a.splitCount != b.splitCount {
			return a.splitCount < b.splitCount
		}
		return a.movedExcess < b.movedExcess
	}
	// both infeasible: prefer whichever moves closer to the requirement.
	return a.movedExcess > b.movedExcess
}

func estimatedCost(cfg domain.Config, all, candidates []domain.Demand, mask int) float64 {
	cost := 0.0
	moved := map[string]bool{}
	for i, d := range candidates {
		if mask&(1<<i) != 0 {
			moved[d.Platform] = true
		}
	}

	for _, d := range all {
		switch {
		case d.TMIB == 0:
			cost += staticDistance(cfg, domain.PCM09, d.Platform)
		case moved[d.Platform] && d.M9 == 0:
			cost += staticDistance(cfg, domain.TMIB, d.Platform)
		case moved[d.Platform] && d.M9 > 0:
			cost += staticDistance(cfg, domain.TMIB, d.Platform)
			cost += staticDistance(cfg, domain.PCM09, d.Platform)
			cost += cfg.LoopPlatformCostNM
		default:
			cost += staticDistance(cfg, domain.PCM09, d.Platform)
		}
	}

	return cost
}

// staticDistance is a table-free estimate used only to rank candidate
// splits before the real sequencer runs: 1.0 when both platforms share a
// cluster, 3.0 otherwise. The distance provider is not consulted here; it
// is used once a split is chosen and sequencing runs for real.
func staticDistance(cfg domain.Config, from, to string) float64 {
	if geo.ClusterOf(cfg, from) == geo.ClusterOf(cfg, to) {
		return 1.0
	}
	return 3.0
}

func materialize(candidates, fixed []domain.Demand, mask int) (pre, post []domain.Stop) {
	for i, d := range candidates {
		if mask&(1<<i) != 0 {
			pre = append(pre, domain.NewPreM9Stop(d.Platform, d.TMIB, d.Priority))
			if d.M9 > 0 {
				post = append(post, domain.NewPostM9Stop(d.Platform, 0, d.M9, d.Priority))
			}
		} else {
			post = append(post, domain.NewPostM9Stop(d.Platform, d.TMIB, d.M9, d.Priority))
		}
	}
	for _, d := range fixed {
		post = append(post, domain.NewPostM9Stop(d.Platform, d.TMIB, d.M9, d.Priority))
	}
	return pre, post
}

func toPostStops(demands []domain.Demand) []domain.Stop {
	out := make([]domain.Stop, 0, len(demands))
	for _, d := range demands {
		out = append(out, domain.NewPostM9Stop(d.Platform, d.TMIB, d.M9, d.Priority))
	}
	return out
}

// promoteP1 moves a post-M9, TMIB-only, priority-1 stop ahead of the hub
// when the detour it would add is cheap (spec §4.3.2).
func promoteP1(provider ports.DistanceMatrixProvider, cfg domain.Config, pre, post []domain.Stop) ([]domain.Stop, []domain.Stop) {
	direct := geo.Distance(provider, cfg, domain.TMIB, domain.PCM09)

	keep := post[:0:0]
	for _, s := range post {
		if s.Priority == 1 && s.M9Drop == 0 && s.TMIBDrop > 0 {
			detour := geo.Distance(provider, cfg, domain.TMIB, s.Platform) +
				geo.Distance(provider, cfg, s.Platform, domain.PCM09) - direct
			if detour <= cfg.P1PromotionDetourMaxNM {
				pre = append(pre, domain.NewPreM9Stop(s.Platform, s.TMIBDrop, s.Priority))
				continue
			}
		}
		keep = append(keep, s)
	}

	return pre, keep
}

func popcount(mask int) int {
	count := 0
	for mask > 0 {
		count += mask & 1
		mask >>= 1
	}
	return count
}

