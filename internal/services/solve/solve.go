// Package solve implements the Solver Pipeline (spec §4.6): parses fixed
// routes and subtracts their demand, runs the Aqua direct phase, the
// combinatorial Assignment Optimizer, a residual-fill pass for any demand
// that still could not be placed, and emits the final Plan.
package solve

import (
	"sort"

	"pax-route-planner/internal/domain"
	"pax-route-planner/internal/ports"
	"pax-route-planner/internal/services/assign"
	"pax-route-planner/internal/services/evaluate"
	"pax-route-planner/internal/services/packages"
)

// Solve runs the full pipeline against one day's scenario.
func Solve(provider ports.DistanceMatrixProvider, cfg domain.Config, scenario domain.Scenario) domain.Plan {
	available := scenario.AvailableBoats()

	ordinary, pending := extractPending(scenario.Demands)

	fixedTexts := make([]string, 0)
	var fixedBoats, freeBoats []domain.Boat
	for _, b := range available {
		if b.HasFixedRoute() {
			fixedBoats = append(fixedBoats, b)
			fixedTexts = append(fixedTexts, b.FixedRoute)
		} else {
			freeBoats = append(freeBoats, b)
		}
	}

	ordinary = subtractFixedRoutes(ordinary, fixedTexts)

	plan := domain.Plan{}
	var warnings []domain.Warning

	for _, b := range fixedBoats {
		plan.Routes = append(plan.Routes, domain.Route{Boat: b, FixedRouteText: b.FixedRoute})
	}

	aquaBoats, surferBoats := partitionByType(freeBoats)
	sortByDeparture(aquaBoats)
	sortByDeparture(surferBoats)

	var committed []domain.Route
	remaining := ordinary
	remainingBoats := append(append([]domain.Boat(nil), surferBoats...), aquaBoats...)

	committed, remaining, remainingBoats = aquaDirectPhase(provider, cfg, aquaBoats, remaining, remainingBoats)
	plan.Routes = append(plan.Routes, committed...)

	// Distant dedication phase (spec §4.6 step 4) is a feature flag that
	// defaults to off; no dedicated boats are carved out here.

	if len(remainingBoats) > 0 && len(remaining) > 0 {
		pkgs := packages.Form(cfg, remaining, remainingBoats)
		result := assign.Assign(provider, cfg, assign.Input{
			Boats:    remainingBoats,
			Packages: pkgs,
			Pending:  pending,
		})

		if result.Feasible {
			for _, br := range result.Routes {
				plan.Routes = append(plan.Routes, br.Route)
			}
			pending = pending.Sub(result.Consumed)
		} else {
			served, dropped := residualFill(provider, cfg, remainingBoats, pkgs, pending)
			plan.Routes = append(plan.Routes, served...)
			for _, pkg := range dropped {
				for _, d := range pkg.Demands {
					warnings = append(warnings, domain.Warning{
						Platform: d.Platform,
						Message:  "demand could not be placed within fleet capacity",
					})
				}
			}
		}
	} else if len(remaining) > 0 {
		for _, d := range remaining {
			warnings = append(warnings, domain.Warning{
				Platform: d.Platform,
				Message:  "no available boat to serve remaining demand",
			})
		}
	}

	if pending.TMIBToM9 > 0 {
		warnings = append(warnings, domain.Warning{
			Platform: domain.PCM09,
			Message:  "TMIB-pool passengers destined for M9 remain unserved",
		})
	}
	if pending.M9ToTMIB > 0 {
		warnings = append(warnings, domain.Warning{
			Platform: domain.TMIB,
			Message:  "M9-pool passengers destined for TMIB remain unserved",
		})
	}

	sort.SliceStable(plan.Routes, func(i, j int) bool {
		return plan.Routes[i].Boat.DepartAt < plan.Routes[j].Boat.DepartAt
	})

	total := 0.0
	for _, r := range plan.Routes {
		total += r.TotalDistanceNM
	}
	plan.TotalNM = total
	plan.Warnings = warnings

	return plan
}

// extractPending pulls the two sentinel-keyed pseudo-demand rows (platform
// TMIB or PCM-09) out of the raw demand list into the cross-hub pending
// pools, and returns the remaining ordinary, platform-keyed demand.
func extractPending(demands []domain.Demand) ([]domain.Demand, domain.PendingPools) {
	pending := domain.PendingPools{}
	ordinary := make([]domain.Demand, 0, len(demands))
	for _, d := range demands {
		switch d.Platform {
		case domain.PCM09:
			pending.TMIBToM9 += d.TMIB
		case domain.TMIB:
			pending.M9ToTMIB += d.M9
		default:
			ordinary = append(ordinary, d)
		}
	}
	return ordinary, pending
}

func partitionByType(boats []domain.Boat) (aqua, surfer []domain.Boat) {
	for _, b := range boats {
		if b.Type == domain.AquaHelix {
			aqua = append(aqua, b)
		} else {
			surfer = append(surfer, b)
		}
	}
	return aqua, surfer
}

func sortByDeparture(boats []domain.Boat) {
	sort.SliceStable(boats, func(i, j int) bool { return boats[i].DepartAt < boats[j].DepartAt })
}

// aquaDirectPhase implements spec §4.6 step 3: for each Aqua, in departure
// order, attempt a direct (no-hub) route over whatever outstanding
// gangway-eligible, TMIB-only demand remains; commit it when it fits.
// Demand it claims, and the boat itself, are removed from what later
// phases see.
func aquaDirectPhase(provider ports.DistanceMatrixProvider, cfg domain.Config, aquaBoats []domain.Boat, demands []domain.Demand, pool []domain.Boat) (committed []domain.Route, remainingDemands []domain.Demand, remainingBoats []domain.Boat) {
	remainingDemands = demands
	remainingBoats = pool

	for _, boat := range aquaBoats {
		var gangway []domain.Demand
		var rest []domain.Demand
		for _, d := range remainingDemands {
			if d.M9 == 0 && cfg.InGangway(domain.ShortName(d.Platform)) {
				gangway = append(gangway, d)
			} else {
				rest = append(rest, d)
			}
		}
		if len(gangway) == 0 {
			continue
		}

		result := evaluate.Evaluate(provider, cfg, evaluate.Input{Boat: boat, Demands: gangway})
		if !result.Valid || result.Route.UsesHub {
			continue
		}

		committed = append(committed, result.Route)
		remainingDemands = rest
		remainingBoats = removeBoat(remainingBoats, boat)
	}

	return committed, remainingDemands, remainingBoats
}

func removeBoat(boats []domain.Boat, target domain.Boat) []domain.Boat {
	out := make([]domain.Boat, 0, len(boats))
	for _, b := range boats {
		if b.Name != target.Name {
			out = append(out, b)
		}
	}
	return out
}

// residualFill implements a best-effort spec §4.6 step 6/§7 degradation:
// when the combinatorial phase cannot place every package at once, drop
// the lowest-priority packages one at a time and retry until an
// assignment succeeds or nothing is left to drop.
func residualFill(provider ports.DistanceMatrixProvider, cfg domain.Config, boats []domain.Boat, pkgs []domain.DemandPackage, pending domain.PendingPools) (served []domain.Route, dropped []domain.DemandPackage) {
	remaining := append([]domain.DemandPackage(nil), pkgs...)

	sort.SliceStable(remaining, func(i, j int) bool {
		return maxPriority(remaining[i]) > maxPriority(remaining[j])
	})

	for len(remaining) > 0 {
		result := assign.Assign(provider, cfg, assign.Input{Boats: boats, Packages: remaining, Pending: pending})
		if result.Feasible {
			for _, br := range result.Routes {
				served = append(served, br.Route)
			}
			return served, dropped
		}

		last := remaining[len(remaining)-1]
		dropped = append(dropped, last)
		remaining = remaining[:len(remaining)-1]
	}

	return served, dropped
}

func maxPriority(pkg domain.DemandPackage) int {
	max := 0
	for _, d := range pkg.Demands {
		if d.Priority > max {
			max = d.Priority
		}
	}
	return max
}
