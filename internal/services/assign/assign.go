// Package assign implements the Assignment Optimizer (spec §4.5): it
// enumerates every mapping from packages to boats and picks the one
// minimizing the lexicographic objective (pending_m9_tmib, total_dist,
// secondary), subject to the relaxation cascade of feasibility constraints.
package assign

import (
	"pax-route-planner/internal/domain"
	"pax-route-planner/internal/ports"
	"pax-route-planner/internal/services/evaluate"
)

// Input is everything one Assign call needs: the boats competing for work
// and the packages that must be distributed among them.
type Input struct {
	Boats    []domain.Boat
	Packages []domain.DemandPackage
	Pending  domain.PendingPools

	MaxDistantBoats int // 0 means use cfg.MaxDistantBoatsDefault
}

// BoatRoute pairs a boat with the route the optimizer built for it.
type BoatRoute struct {
	Boat  domain.Boat
	Route domain.Route
}

// Result is the best feasible assignment found, or Feasible=false if the
// full relaxation cascade exhausted every option without success.
type Result struct {
	Feasible      bool
	Routes        []BoatRoute
	PendingM9TMIB int
	TotalDist     float64
	Secondary     float64
	Consumed      domain.PendingPools
}

// constraints is one point in the relaxation cascade (spec §4.5).
type constraints struct {
	requireZeroM9 bool
	enforceAll    bool
	enforceDistant bool
}

// Assign runs the full spec §4.5 pipeline, including the relaxation
// cascade, and returns the best assignment found at the first cascade step
// that yields any feasible candidate.
func Assign(provider ports.DistanceMatrixProvider, cfg domain.Config, in Input) Result {
	if len(in.Packages) == 0 {
		return Result{Feasible: true, PendingM9TMIB: in.Pending.TMIBToM9}
	}

	maxDistant := in.MaxDistantBoats
	if maxDistant == 0 {
		maxDistant = cfg.MaxDistantBoatsDefault
	}

	cascade := []constraints{
		{requireZeroM9: true, enforceAll: true, enforceDistant: true},
		{requireZeroM9: true, enforceAll: false, enforceDistant: true},
		{requireZeroM9: true, enforceAll: false, enforceDistant: false},
		{requireZeroM9: false, enforceAll: true, enforceDistant: true},
		{requireZeroM9: false, enforceAll: false, enforceDistant: true},
		{requireZeroM9: false, enforceAll: false, enforceDistant: false},
	}

	for _, c := range cascade {
		if result, ok := bestFor(provider, cfg, in, c, maxDistant); ok {
			return result
		}
	}

	return Result{Feasible: false}
}

// bestFor enumerates every package->boat mapping in lexicographic order
// (spec §5 determinism) and returns the lexicographically-smallest
// feasible candidate under the given constraint point.
func bestFor(provider ports.DistanceMatrixProvider, cfg domain.Config, in Input, c constraints, maxDistant int) (Result, bool) {
	nBoats := len(in.Boats)
	nPackages := len(in.Packages)
	if nBoats == 0 {
		return Result{}, false
	}

	assignment := make([]int, nPackages)

	var best Result
	haveBest := false

	for {
		candidate, ok := evaluateAssignment(provider, cfg, in, assignment, c, maxDistant)
		if ok && (!haveBest || lessObjective(candidate, best)) {
			best = candidate
			haveBest = true
		}
		if !advance(assignment, nBoats) {
			break
		}
	}

	return best, haveBest
}

// advance increments assignment as a mixed-radix counter (base nBoats),
// the iterative equivalent of nested loops over every package's boat
// choice, enumerated in lexicographic order.
func advance(assignment []int, nBoats int) bool {
	for i := len(assignment) - 1; i >= 0; i-- {
		assignment[i]++
		if assignment[i] < nBoats {
			return true
		}
		assignment[i] = 0
	}
	return false
}

func lessObjective(a, b Result) bool {
	if a.PendingM9TMIB != b.PendingM9TMIB {
		return a.PendingM9TMIB < b.PendingM9TMIB
	}
	if a.TotalDist != b.TotalDist {
		return a.TotalDist < b.TotalDist
	}
	return a.Secondary < b.Secondary
}

// evaluateAssignment builds and scores the routes for one candidate
// package->boat mapping, returning ok=false if any constraint or any
// individual route is infeasible.
func evaluateAssignment(provider ports.DistanceMatrixProvider, cfg domain.Config, in Input, assignment []int, c constraints, maxDistant int) (Result, bool) {
	bundles := make([][]domain.Demand, len(in.Boats))
	for pkgIdx, boatIdx := range assignment {
		bundles[boatIdx] = append(bundles[boatIdx], in.Packages[pkgIdx].Demands...)
	}

	remaining := in.Pending
	routes := make([]BoatRoute, 0, len(in.Boats))
	totalDist := 0.0
	distantRoutes := 0

	for i, boat := range in.Boats {
		bundle := bundles[i]
		if len(bundle) == 0 {
			continue
		}

		result := evaluate.Evaluate(provider, cfg, evaluate.Input{
			Boat:    boat,
			Demands: bundle,
			Pending: remaining,
		})
		if !result.Valid {
			return Result{}, false
		}

		remaining = remaining.Sub(result.Consumed)
		routes = append(routes, BoatRoute{Boat: boat, Route: result.Route})
		totalDist += result.Route.TotalDistanceNM

		if routeTouchesDistant(cfg, result.Route) {
			distantRoutes++
		}
	}

	if c.enforceAll {
		for i := range in.Boats {
			if len(bundles[i]) == 0 {
				return Result{}, false
			}
		}
	}
	if c.requireZeroM9 && remaining.TMIBToM9 != 0 {
		return Result{}, false
	}
	if c.enforceDistant && distantRoutes > maxDistant {
		return Result{}, false
	}

	m9ConsolidationPenalty := 0.0
	if distantRoutes > 1 {
		m9ConsolidationPenalty = float64(distantRoutes-1) * cfg.M9ConsolidationWeight
	}

	priorityMixPenalty := priorityMixPenaltyFor(cfg, in.Boats, bundles)

	clusterWeight := 0.0
	if len(in.Boats) <= 2 {
		clusterWeight = 1.0
	}

	priorityTimeRaw, paxArrivalRaw, comfortRaw, clusterRaw := 0.0, 0.0, 0.0, 0.0
	for _, br := range routes {
		priorityTimeRaw += br.Route.PriorityTimeRaw
		paxArrivalRaw += br.Route.PaxArrivalRaw
		comfortRaw += br.Route.ComfortRaw
		clusterRaw += br.Route.ClusterPenalty
	}

	secondary := m9ConsolidationPenalty +
		priorityMixPenalty +
		priorityTimeRaw*cfg.PriorityTimeWeight +
		comfortRaw*cfg.ComfortWeight +
		paxArrivalRaw*cfg.PaxArrivalWeight +
		clusterRaw*clusterWeight

	return Result{
		Feasible:      true,
		Routes:        routes,
		PendingM9TMIB: remaining.TMIBToM9,
		TotalDist:     totalDist,
		Secondary:     secondary,
		Consumed:      in.Pending.Sub(remaining),
	}, true
}

func routeTouchesDistant(cfg domain.Config, r domain.Route) bool {
	for _, p := range r.Destinations() {
		if cfg.IsDistant(p) {
			return true
		}
	}
	return false
}

// priorityMixPenaltyFor implements spec §4.5's priority-mix rule: a flat
// 120.0 if a priority-2/3 demand sits on a boat other than one carrying a
// priority-1 demand, while it would have fit (by spare capacity) onto a
// boat that does carry priority-1.
func priorityMixPenaltyFor(cfg domain.Config, boats []domain.Boat, bundles [][]domain.Demand) float64 {
	p1BoatIdx := map[int]bool{}
	loadOf := make([]int, len(boats))
	for i, bundle := range bundles {
		for _, d := range bundle {
			loadOf[i] += d.TMIB
			if d.Priority == 1 {
				p1BoatIdx[i] = true
			}
		}
	}
	if len(p1BoatIdx) == 0 {
		return 0
	}

	for i, bundle := range bundles {
		if p1BoatIdx[i] {
			continue
		}
		for _, d := range bundle {
			if d.Priority != 2 && d.Priority != 3 {
				continue
			}
			for j := range boats {
				if !p1BoatIdx[j] {
					continue
				}
				spare := boats[j].Capacity - loadOf[j]
				if d.TMIB <= spare {
					return cfg.PriorityMixPenalty
				}
			}
		}
	}

	return 0
}
