package solve

import (
	"strings"
	"testing"

	"pax-route-planner/internal/domain"
	"pax-route-planner/internal/services/geo"
)

type mapProvider map[string]float64

func (m mapProvider) Distance(a, b string) (float64, bool) {
	if v, ok := m[a+"|"+b]; ok {
		return v, true
	}
	return 0, false
}

func TestSolveSingleBoatSingleDemand(t *testing.T) {
	cfg := geo.DefaultConfig()
	provider := mapProvider{"TMIB|PCM-01": 4}

	scenario := domain.Scenario{
		Boats: []domain.Boat{
			{Name: "Surfer I", Available: true, Capacity: 24, Type: domain.Surfer, SpeedKnots: 18, DepartAt: 480},
		},
		Demands: []domain.Demand{
			{Platform: "PCM-01", TMIB: 10},
		},
	}

	plan := Solve(provider, cfg, scenario)

	if len(plan.Routes) != 1 {
		t.Fatalf("expected 1 route, got %d", len(plan.Routes))
	}
	if !plan.SortedByDeparture() {
		t.Fatalf("expected routes sorted by departure")
	}
}

func TestSolveSortsByDepartureTime(t *testing.T) {
	cfg := geo.DefaultConfig()
	provider := mapProvider{
		"TMIB|PCM-01": 4,
		"TMIB|PCM-07": 3,
	}

	scenario := domain.Scenario{
		Boats: []domain.Boat{
			{Name: "Late", Available: true, Capacity: 24, Type: domain.Surfer, SpeedKnots: 18, DepartAt: 600},
			{Name: "Early", Available: true, Capacity: 24, Type: domain.Surfer, SpeedKnots: 18, DepartAt: 480},
		},
		Demands: []domain.Demand{
			{Platform: "PCM-01", TMIB: 10},
			{Platform: "PCM-07", TMIB: 10},
		},
	}

	plan := Solve(provider, cfg, scenario)

	if !plan.SortedByDeparture() {
		t.Fatalf("expected routes sorted by departure time ascending")
	}
}

func TestSolveUnavailableBoatIsIgnored(t *testing.T) {
	cfg := geo.DefaultConfig()
	provider := mapProvider{"TMIB|PCM-01": 4}

	scenario := domain.Scenario{
		Boats: []domain.Boat{
			{Name: "Surfer I", Available: false, Capacity: 24, Type: domain.Surfer, SpeedKnots: 18},
		},
		Demands: []domain.Demand{{Platform: "PCM-01", TMIB: 10}},
	}

	plan := Solve(provider, cfg, scenario)

	if len(plan.Routes) != 0 {
		t.Fatalf("expected no routes when the only boat is unavailable")
	}
	if len(plan.Warnings) == 0 {
		t.Fatalf("expected a warning for unmet demand")
	}
}

func TestSolveFixedRouteSubtractsDemandAndIsEmittedAsIs(t *testing.T) {
	cfg := geo.DefaultConfig()
	provider := mapProvider{}

	scenario := domain.Scenario{
		Boats: []domain.Boat{
			{Name: "Surfer I", Available: true, Capacity: 24, Type: domain.Surfer, SpeedKnots: 18, DepartAt: 480, FixedRoute: "TMIB +6/M1 -6"},
		},
		Demands: []domain.Demand{
			{Platform: "PCM-01", TMIB: 6},
		},
	}

	plan := Solve(provider, cfg, scenario)

	if len(plan.Routes) != 1 {
		t.Fatalf("expected exactly 1 route, got %d", len(plan.Routes))
	}
	if !plan.Routes[0].IsFixed() {
		t.Fatalf("expected the route to be emitted as a fixed route")
	}
	if len(plan.Warnings) != 0 {
		t.Fatalf("expected fixed route to fully satisfy the only demand, got warnings: %+v", plan.Warnings)
	}
}

func TestRouteStringFormatsDirectRoute(t *testing.T) {
	r := domain.Route{
		Boat: domain.Boat{Name: "Surfer I", DepartAt: 480},
		PostM9Stops: []domain.Stop{
			domain.NewPostM9Stop("PCM-01", 6, 0, 0),
		},
		TMIBToM9Count: 0,
	}
	r.PostM9Stops[0] = domain.NewPostM9Stop("PCM-01", 6, 0, 0)

	s := RouteString(r)
	if !strings.Contains(s, "Surfer I 08:00 TMIB +6/M1 -6") {
		t.Fatalf("unexpected route string: %s", s)
	}
}

func TestRouteStringRendersHubAndCombinedStop(t *testing.T) {
	r := domain.Route{
		Boat:    domain.Boat{Name: "Surfer I", DepartAt: 480},
		UsesHub: true,
		PreM9Stops: []domain.Stop{
			domain.NewPreM9Stop("PCM-06", 4, 0),
		},
		PostM9Stops: []domain.Stop{
			domain.NewPostM9Stop("PCB-01", 3, 2, 0),
		},
		TMIBToM9Count: 0,
		M9Pickup:      5,
	}

	s := RouteString(r)
	if !strings.Contains(s, "M6 -4") {
		t.Fatalf("expected pre-M9 stop M6 -4, got %s", s)
	}
	if !strings.Contains(s, "M9 +5") {
		t.Fatalf("expected hub token M9 +5, got %s", s)
	}
	if !strings.Contains(s, "B1 -3 (-2)") {
		t.Fatalf("expected combined stop B1 -3 (-2), got %s", s)
	}
}
