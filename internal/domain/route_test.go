package domain

import "testing"

func TestRoutePreLoadAndPostLoad(t *testing.T) {
	route := Route{
		Boat:          Boat{Name: "Surfer I", Capacity: 24},
		UsesHub:       true,
		TMIBToM9Count: 2,
		M9Pickup:      3,
		PreM9Stops: []Stop{
			NewPreM9Stop("PCM-01", 4, 0),
		},
		PostM9Stops: []Stop{
			NewPostM9Stop("PCM-07", 1, 2, 0),
		},
	}

	if got := route.PreLoad(); got != 7 {
		t.Fatalf("PreLoad() = %d, want 7 (2 TMIBToM9 + 4 pre-drop + 1 post-drop)", got)
	}
	if got := route.PostLoad(); got != 4 {
		t.Fatalf("PostLoad() = %d, want 4 (7 - 2 - 4 + 3)", got)
	}
}

func TestRouteValidateRejectsOverCapacity(t *testing.T) {
	route := Route{
		Boat: Boat{Name: "Surfer I", Capacity: 5},
		PreM9Stops: []Stop{
			NewPreM9Stop("PCM-01", 10, 0),
		},
	}

	if err := route.Validate(); err == nil {
		t.Fatal("expected Validate to reject a pre-load that exceeds capacity")
	}
}

func TestRouteValidateRejectsHubTrafficWithoutUsesHub(t *testing.T) {
	route := Route{
		Boat:     Boat{Name: "Surfer I", Capacity: 24},
		UsesHub:  false,
		M9Pickup: 1,
	}

	if err := route.Validate(); err == nil {
		t.Fatal("expected Validate to reject hub traffic on a route that doesn't use the hub")
	}
}

func TestRouteValidateRejectsPreM9StopWithM9Drop(t *testing.T) {
	route := Route{
		Boat:    Boat{Name: "Surfer I", Capacity: 24},
		UsesHub: true,
		PreM9Stops: []Stop{
			{Stage: PreM9Stage, Platform: "PCM-01", TMIBDrop: 2, M9Drop: 1},
		},
	}

	if err := route.Validate(); err == nil {
		t.Fatal("expected Validate to reject a pre-M9 stop carrying an M9 drop")
	}
}

func TestRouteDestinationsPreservesOrderAndLoopVisits(t *testing.T) {
	route := Route{
		PreM9Stops: []Stop{
			NewPreM9Stop("PCM-01", 2, 0),
			NewPreM9Stop("PCM-07", 3, 0),
		},
		PostM9Stops: []Stop{
			NewPostM9Stop("PCM-01", 0, 1, 0),
		},
	}

	want := []string{"PCM-01", "PCM-07", "PCM-01"}
	got := route.Destinations()
	if len(got) != len(want) {
		t.Fatalf("Destinations() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Destinations()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestRouteIsFixed(t *testing.T) {
	if (Route{}).IsFixed() {
		t.Fatal("empty FixedRouteText should not be IsFixed")
	}
	if !(Route{FixedRouteText: "TMIB-M1-M9"}).IsFixed() {
		t.Fatal("non-empty FixedRouteText should be IsFixed")
	}
}
