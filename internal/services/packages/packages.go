// Package packages implements the Package Former (spec §4.4): converts raw
// per-platform demands into atomic DemandPackage units — fusing mandatory
// pairs when they fit one boat, and splitting one large TMIB-only demand
// under boat scarcity.
package packages

import (
	"sort"

	"pax-route-planner/internal/domain"
	"pax-route-planner/internal/services/geo"
)

// Form runs the full spec §4.4 pipeline over one day's demand list and the
// boats available to serve it.
func Form(cfg domain.Config, demands []domain.Demand, availableBoats []domain.Boat) []domain.DemandPackage {
	maxCapacity := maxCapacityOf(availableBoats)

	byPlatform := make(map[string]domain.Demand, len(demands))
	order := make([]string, 0, len(demands))
	for _, d := range demands {
		if d.IsZero() {
			continue
		}
		byPlatform[d.Platform] = d
		order = append(order, d.Platform)
	}

	var out []domain.DemandPackage
	used := map[string]bool{}

	for _, pair := range cfg.MandatoryPairs {
		a, okA := byPlatform[pair[0]]
		b, okB := byPlatform[pair[1]]
		if !okA || !okB {
			continue
		}
		if a.TMIB+b.TMIB > maxCapacity {
			continue
		}
		out = append(out, domain.DemandPackage{Kind: domain.MandatoryPair, Demands: []domain.Demand{a, b}})
		used[pair[0]] = true
		used[pair[1]] = true
	}

	var singletons []domain.Demand
	for _, platform := range order {
		if used[platform] {
			continue
		}
		singletons = append(singletons, byPlatform[platform])
	}

	singletons, split := applyScarcitySplit(cfg, singletons, len(availableBoats))

	for _, d := range singletons {
		out = append(out, domain.DemandPackage{Kind: domain.Singleton, Demands: []domain.Demand{d}})
	}
	if split != nil {
		out = append(out, split.small, split.large)
	}

	return out
}

type scarcitySplitResult struct {
	small, large domain.DemandPackage
}

// applyScarcitySplit implements spec §4.4 step 3: under boat scarcity,
// break one large TMIB-only singleton into a package of 4 and a package of
// the remainder, preferring a candidate from cluster M2M3 or M9_NEAR and,
// among those, the largest TMIB count.
func applyScarcitySplit(cfg domain.Config, singletons []domain.Demand, availableBoatCount int) ([]domain.Demand, *scarcitySplitResult) {
	if availableBoatCount > cfg.ScarcityBoatThreshold {
		return singletons, nil
	}

	var candidates []int // indexes into singletons
	for i, d := range singletons {
		if d.M9 == 0 && d.TMIB >= cfg.ScarcitySplitMinTMIB {
			candidates = append(candidates, i)
		}
	}
	if len(candidates) == 0 {
		return singletons, nil
	}

	preferred := map[domain.Cluster]bool{}
	for _, c := range cfg.ScarcityPreferredClusters {
		preferred[c] = true
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		di, dj := singletons[candidates[i]], singletons[candidates[j]]
		pi, pj := preferred[geo.ClusterOf(cfg, di.Platform)], preferred[geo.ClusterOf(cfg, dj.Platform)]
		if pi != pj {
			return pi
		}
		return di.TMIB > dj.TMIB
	})

	chosen := candidates[0]
	d := singletons[chosen]

	small := cfg.ScarcitySplitSmallSide
	large := d.TMIB - small

	result := &scarcitySplitResult{
		small: domain.DemandPackage{Kind: domain.SplitPiece, Demands: []domain.Demand{{Platform: d.Platform, TMIB: small, Priority: d.Priority}}},
		large: domain.DemandPackage{Kind: domain.SplitPiece, Demands: []domain.Demand{{Platform: d.Platform, TMIB: large, Priority: d.Priority}}},
	}

	remaining := make([]domain.Demand, 0, len(singletons)-1)
	for i, s := range singletons {
		if i != chosen {
			remaining = append(remaining, s)
		}
	}

	return remaining, result
}

func maxCapacityOf(boats []domain.Boat) int {
	max := 0
	for _, b := range boats {
		if b.Capacity > max {
			max = b.Capacity
		}
	}
	return max
}
