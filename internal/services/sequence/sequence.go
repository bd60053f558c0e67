// Package sequence implements the Stop Sequencer (spec §4.2): given a start
// platform and an unordered set of stops, returns an ordered sequence
// minimizing either pure travel distance (no priority stops present) or a
// weighted sequence score (priority stops present).
package sequence

import (
	"sort"

	"pax-route-planner/internal/domain"
	"pax-route-planner/internal/ports"
	"pax-route-planner/internal/services/geo"
)

// Input bundles everything the sequencer needs to order one segment of a
// route (the pre-M9 leg starting at TMIB, or the post-M9 leg starting at
// M9 — or at TMIB when the route never reaches the hub).
type Input struct {
	Start          string
	Stops          []domain.Stop
	SpeedKnots     float64
	InitialOnboard int
}

// Result is the ordered stop sequence plus its total travel distance.
type Result struct {
	Stops           []domain.Stop
	TotalDistanceNM float64
	Score           float64
}

// Sequence orders in.Stops starting from in.Start per spec §4.2.
func Sequence(provider ports.DistanceMatrixProvider, cfg domain.Config, in Input) Result {
	n := len(in.Stops)
	if n == 0 {
		return Result{}
	}
	if n == 1 {
		d := geo.Distance(provider, cfg, in.Start, in.Stops[0].Platform)
		return Result{Stops: in.Stops, TotalDistanceNM: d, Score: d}
	}

	hasPriority := false
	for _, s := range in.Stops {
		if s.Priority >= 1 && s.Priority <= 3 {
			hasPriority = true
			break
		}
	}

	if !hasPriority {
		if n <= cfg.ExhaustiveCutoffNoPriority {
			return exhaustiveByDistance(provider, cfg, in)
		}
		return nearestNeighbor(provider, cfg, in)
	}

	if n <= cfg.ExhaustiveCutoffPriority {
		return exhaustiveByScore(provider, cfg, in)
	}
	return greedyLookahead(provider, cfg, in)
}

// exhaustiveByDistance enumerates every permutation of in.Stops, in
// lexicographic index order (spec §5 determinism), and keeps the first one
// achieving the minimum total distance.
func exhaustiveByDistance(provider ports.DistanceMatrixProvider, cfg domain.Config, in Input) Result {
	best := Result{}
	first := true

	forEachPermutation(len(in.Stops), func(order []int) {
		ordered := reorder(in.Stops, order)
		dist := totalDistance(provider, cfg, in.Start, ordered)
		if first || dist < best.TotalDistanceNM {
			best = Result{Stops: ordered, TotalDistanceNM: dist, Score: dist}
			first = false
		}
	})

	return best
}

// exhaustiveByScore enumerates every permutation and keeps the one with the
// minimum sequence score (spec §4.2).
func exhaustiveByScore(provider ports.DistanceMatrixProvider, cfg domain.Config, in Input) Result {
	best := Result{}
	first := true

	forEachPermutation(len(in.Stops), func(order []int) {
		ordered := reorder(in.Stops, order)
		dist, score := sequenceScore(provider, cfg, in.Start, ordered, in.SpeedKnots, in.InitialOnboard)
		if first || score < best.Score {
			best = Result{Stops: ordered, TotalDistanceNM: dist, Score: score}
			first = false
		}
	})

	return best
}

// nearestNeighbor greedily picks the closest unvisited stop at each step,
// tie-broken alphabetically by platform for determinism.
func nearestNeighbor(provider ports.DistanceMatrixProvider, cfg domain.Config, in Input) Result {
	remaining := append([]domain.Stop(nil), in.Stops...)
	ordered := make([]domain.Stop, 0, len(remaining))
	current := in.Start
	total := 0.0

	for len(remaining) > 0 {
		bestIdx := -1
		bestDist := 0.0
		for i, s := range remaining {
			d := geo.Distance(provider, cfg, current, s.Platform)
			if bestIdx == -1 || d < bestDist || (d == bestDist && s.Platform < remaining[bestIdx].Platform) {
				bestIdx = i
				bestDist = d
			}
		}

		chosen := remaining[bestIdx]
		ordered = append(ordered, chosen)
		total += bestDist
		current = chosen.Platform
		remaining = append(remaining[:bestIdx], remaining[bestIdx+1:]...)
	}

	return Result{Stops: ordered, TotalDistanceNM: total, Score: total}
}

// greedyLookahead picks, at each step, the remaining stop minimizing the
// one-step score contribution (spec §4.2, ">7 stops" case).
func greedyLookahead(provider ports.DistanceMatrixProvider, cfg domain.Config, in Input) Result {
	remaining := append([]domain.Stop(nil), in.Stops...)
	ordered := make([]domain.Stop, 0, len(remaining))

	current := in.Start
	onboard := in.InitialOnboard
	elapsed := 0.0
	totalDist := 0.0
	totalScore := 0.0

	for len(remaining) > 0 {
		bestIdx := -1
		var bestDelta stepDelta

		for i, s := range remaining {
			restHasP1 := anyP1Except(remaining, i)
			d := stepScore(provider, cfg, current, s, elapsed, onboard, in.SpeedKnots, restHasP1)
			if bestIdx == -1 || d.score < bestDelta.score || (d.score == bestDelta.score && s.Platform < remaining[bestIdx].Platform) {
				bestIdx = i
				bestDelta = d
			}
		}

		chosen := remaining[bestIdx]
		ordered = append(ordered, chosen)
		totalDist += bestDelta.distance
		totalScore += bestDelta.score
		elapsed += bestDelta.legMinutes
		onboard -= chosen.PaxMoved()
		current = chosen.Platform
		remaining = append(remaining[:bestIdx], remaining[bestIdx+1:]...)
	}

	return Result{Stops: ordered, TotalDistanceNM: totalDist, Score: totalScore}
}

func anyP1Except(stops []domain.Stop, except int) bool {
	for i, s := range stops {
		if i != except && s.Priority == 1 {
			return true
		}
	}
	return false
}

type stepDelta struct {
	distance   float64
	legMinutes float64
	score      float64
}

// stepScore is the incremental cost of visiting stop next, well after
// elapsed minutes and with onboard passengers, used by the one-stop
// lookahead heuristic.
func stepScore(provider ports.DistanceMatrixProvider, cfg domain.Config, current string, next domain.Stop, elapsed float64, onboard int, speedKnots float64, p1RemainsAfter bool) stepDelta {
	d := geo.Distance(provider, cfg, current, next.Platform)
	legMinutes := float64(geo.TravelMinutes(d, speedKnots))
	arrival := elapsed + legMinutes

	score := d
	score += arrival * cfg.PriorityWeight[next.Priority] * cfg.PriorityTimeWeight
	score += arrival * float64(next.PaxMoved()) * cfg.PaxArrivalWeight
	score += float64(onboard) * legMinutes * cfg.ComfortWeight

	if next.Priority != 1 && p1RemainsAfter {
		score += cfg.P1PrecedenceWeight
	}

	return stepDelta{distance: d, legMinutes: legMinutes, score: score}
}

// sequenceScore computes the full spec §4.2 score for one complete ordering.
func sequenceScore(provider ports.DistanceMatrixProvider, cfg domain.Config, start string, ordered []domain.Stop, speedKnots float64, initialOnboard int) (totalDistance, score float64) {
	current := start
	onboard := initialOnboard
	elapsed := 0.0

	priorityTime := 0.0
	paxArrival := 0.0
	comfort := 0.0
	backtrack := 0.0
	p1Violations := 0.0

	for i, s := range ordered {
		d := geo.Distance(provider, cfg, current, s.Platform)
		legMinutes := float64(geo.TravelMinutes(d, speedKnots))
		arrival := elapsed + legMinutes

		totalDistance += d
		priorityTime += arrival * cfg.PriorityWeight[s.Priority]
		paxArrival += arrival * float64(s.PaxMoved())
		comfort += float64(onboard) * legMinutes

		if i > 0 {
			prevPlatform := ordered[i-1].Platform
			distPrev := geo.Distance(provider, cfg, start, prevPlatform)
			distNext := geo.Distance(provider, cfg, start, s.Platform)
			if dec := distPrev - distNext; dec > 0 {
				backtrack += dec
			}
		}

		if s.Priority != 1 {
			for _, later := range ordered[i+1:] {
				if later.Priority == 1 {
					p1Violations++
					break
				}
			}
		}

		onboard -= s.PaxMoved()
		elapsed = arrival
		current = s.Platform
	}

	score = totalDistance +
		priorityTime*cfg.PriorityTimeWeight +
		paxArrival*cfg.PaxArrivalWeight +
		comfort*cfg.ComfortWeight +
		backtrack*cfg.BacktrackWeight +
		p1Violations*cfg.P1PrecedenceWeight

	return totalDistance, score
}

func totalDistance(provider ports.DistanceMatrixProvider, cfg domain.Config, start string, ordered []domain.Stop) float64 {
	current := start
	total := 0.0
	for _, s := range ordered {
		total += geo.Distance(provider, cfg, current, s.Platform)
		current = s.Platform
	}
	return total
}

func reorder(stops []domain.Stop, order []int) []domain.Stop {
	out := make([]domain.Stop, len(order))
	for i, idx := range order {
		out[i] = stops[idx]
	}
	return out
}

// forEachPermutation calls fn once for every permutation of [0,n) in
// lexicographic order (spec §5: "enumerate permutations in lexicographic
// index order").
func forEachPermutation(n int, fn func(order []int)) {
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}

	fn(append([]int(nil), order...))

	for nextPermutation(order) {
		fn(append([]int(nil), order...))
	}
}

// nextPermutation advances order to its successor in lexicographic order,
// returning false once order is already the last (descending) permutation.
func nextPermutation(order []int) bool {
	n := len(order)
	i := n - 2
	for i >= 0 && order[i] >= order[i+1] {
		i--
	}
	if i < 0 {
		return false
	}

	j := n - 1
	for order[j] <= order[i] {
		j--
	}

	order[i], order[j] = order[j], order[i]
	sort.Ints(order[i+1:])
	return true
}
