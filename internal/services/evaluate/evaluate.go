// Package evaluate implements the Route Evaluator (spec §4.3): given one
// boat and one bundle of demands, decides whether the route touches the M9
// hub, splits stops into pre-M9 and post-M9 segments, sequences each
// segment via the Stop Sequencer, and computes distance and penalties. It
// never panics on an infeasible bundle — it returns a Rejected Result
// (spec §9: "never an exception").
package evaluate

import (
	"fmt"

	"pax-route-planner/internal/domain"
	"pax-route-planner/internal/ports"
	"pax-route-planner/internal/services/geo"
	"pax-route-planner/internal/services/sequence"
)

// Input is one candidate route to evaluate: a single boat carrying one
// bundle of demands, with the two opportunistic cross-hub pools available
// to draw from (read-only; the caller commits consumption separately).
type Input struct {
	Boat    domain.Boat
	Demands []domain.Demand
	Pending domain.PendingPools
}

// Result is the evaluator's tagged outcome. Exactly one of Route (Valid)
// or Reason (not Valid) is meaningful.
type Result struct {
	Valid    bool
	Reason   string
	Route    domain.Route
	Consumed domain.PendingPools
}

// Evaluate runs the full spec §4.3 pipeline against one boat/bundle pair.
func Evaluate(provider ports.DistanceMatrixProvider, cfg domain.Config, in Input) Result {
	demands := mergeDuplicates(in.Demands)

	if in.Boat.Type == domain.AquaHelix {
		for _, d := range demands {
			short := domain.ShortName(d.Platform)
			if !cfg.InGangway(short) {
				return Result{Valid: false, Reason: fmt.Sprintf("platform %s has no Aqua Helix gangway", d.Platform)}
			}
		}
	}

	totalTMIBDeliver, totalM9Pickup := 0, 0
	for _, d := range demands {
		totalTMIBDeliver += d.TMIB
		totalM9Pickup += d.M9
	}

	spareForM9 := in.Boat.Capacity - totalTMIBDeliver
	tmibToM9 := clamp(in.Pending.TMIBToM9, 0, max0(spareForM9))

	if totalTMIBDeliver+tmibToM9 > in.Boat.Capacity {
		return Result{Valid: false, Reason: "pre-M9 load exceeds capacity"}
	}

	distant := false
	for _, d := range demands {
		if cfg.IsDistant(d.Platform) {
			distant = true
			break
		}
	}
	usesHub := totalM9Pickup > 0 || tmibToM9 > 0 || distant

	var preStops, postStops []domain.Stop
	if usesHub {
		preStops, postStops = split(cfg, demands, in.Boat.Capacity)
		preStops, postStops = promoteP1(provider, cfg, preStops, postStops)
	} else {
		for _, d := range demands {
			postStops = append(postStops, domain.NewPostM9Stop(d.Platform, d.TMIB, d.M9, d.Priority))
		}
	}

	postLoadBase := totalTMIBDeliver - preDropped(preStops) + totalM9Pickup
	spareAfterHub := max0(in.Boat.Capacity - postLoadBase)
	m9PickupExtra := 0
	if usesHub {
		m9PickupExtra = clamp(in.Pending.M9ToTMIB, 0, spareAfterHub)
	}

	route := domain.Route{
		Boat:          in.Boat,
		PreM9Stops:    preStops,
		UsesHub:       usesHub,
		PostM9Stops:   postStops,
		TMIBToM9Count: tmibToM9,
		M9Pickup:      totalM9Pickup + m9PickupExtra,
	}

	preResult := sequence.Sequence(provider, cfg, sequence.Input{
		Start:          domain.TMIB,
		Stops:          preStops,
		SpeedKnots:     in.Boat.SpeedKnots,
		InitialOnboard: totalTMIBDeliver + tmibToM9,
	})

	postStart := domain.TMIB
	postOnboard := totalTMIBDeliver + tmibToM9
	if usesHub {
		postStart = domain.PCM09
		postOnboard = route.PostLoad()
	}
	postResult := sequence.Sequence(provider, cfg, sequence.Input{
		Start:          postStart,
		Stops:          postStops,
		SpeedKnots:     in.Boat.SpeedKnots,
		InitialOnboard: postOnboard,
	})

	route.PreM9Stops = preResult.Stops
	route.PostM9Stops = postResult.Stops

	total := preResult.TotalDistanceNM + postResult.TotalDistanceNM
	if usesHub {
		hubAnchor := domain.TMIB
		if len(preResult.Stops) > 0 {
			hubAnchor = preResult.Stops[len(preResult.Stops)-1].Platform
		}
		total += geo.Distance(provider, cfg, hubAnchor, domain.PCM09)
	}
	route.TotalDistanceNM = total

	if err := route.Validate(); err != nil {
		return Result{Valid: false, Reason: err.Error()}
	}

	route.PriorityTimeRaw, route.PaxArrivalRaw, route.ComfortRaw = rawPenaltyTotals(provider, cfg, route, in.Boat.SpeedKnots)
	route.ClusterPenalty = clusterCohesionPenalty(provider, cfg, route)

	return Result{
		Valid: true,
		Route: route,
		Consumed: domain.PendingPools{
			TMIBToM9: tmibToM9,
			M9ToTMIB: m9PickupExtra,
		},
	}
}

func mergeDuplicates(demands []domain.Demand) []domain.Demand {
	order := make([]string, 0, len(demands))
	byPlatform := map[string]domain.Demand{}
	for _, d := range demands {
		if existing, ok := byPlatform[d.Platform]; ok {
			byPlatform[d.Platform] = domain.Merge(existing, d)
			continue
		}
		byPlatform[d.Platform] = d
		order = append(order, d.Platform)
	}
	out := make([]domain.Demand, 0, len(order))
	for _, p := range order {
		out = append(out, byPlatform[p])
	}
	return out
}

func preDropped(preStops []domain.Stop) int {
	total := 0
	for _, s := range preStops {
		total += s.TMIBDrop
	}
	return total
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func max0(v int) int {
	if v < 0 {
		return 0
	}
	return v
}
