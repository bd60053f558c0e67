package packages

import (
	"testing"

	"pax-route-planner/internal/domain"
	"pax-route-planner/internal/services/geo"
)

func boats(n int, capacity int) []domain.Boat {
	out := make([]domain.Boat, n)
	for i := range out {
		out[i] = domain.Boat{Name: "boat", Capacity: capacity}
	}
	return out
}

func TestFormFusesMandatoryPair(t *testing.T) {
	cfg := geo.DefaultConfig()
	demands := []domain.Demand{
		{Platform: "PCM-02", TMIB: 5},
		{Platform: "PCM-03", TMIB: 4},
	}

	pkgs := Form(cfg, demands, boats(3, 24))

	if len(pkgs) != 1 {
		t.Fatalf("expected the mandatory pair to fuse into one package, got %d", len(pkgs))
	}
	if pkgs[0].Kind != domain.MandatoryPair {
		t.Fatalf("expected MandatoryPair kind, got %s", pkgs[0].Kind)
	}
	if pkgs[0].TotalTMIB() != 9 {
		t.Fatalf("expected combined TMIB of 9, got %d", pkgs[0].TotalTMIB())
	}
}

func TestFormSkipsMandatoryPairWhenOneSideEmpty(t *testing.T) {
	cfg := geo.DefaultConfig()
	demands := []domain.Demand{{Platform: "PCM-02", TMIB: 5}}

	pkgs := Form(cfg, demands, boats(3, 24))

	if len(pkgs) != 1 || pkgs[0].Kind != domain.Singleton {
		t.Fatalf("expected a lone singleton when the pair's other side has no demand, got %+v", pkgs)
	}
}

func TestFormSkipsMandatoryPairWhenTooLargeForAnyBoat(t *testing.T) {
	cfg := geo.DefaultConfig()
	demands := []domain.Demand{
		{Platform: "PCM-02", TMIB: 20},
		{Platform: "PCM-03", TMIB: 20},
	}

	pkgs := Form(cfg, demands, boats(3, 24))

	for _, p := range pkgs {
		if p.Kind == domain.MandatoryPair {
			t.Fatalf("expected no fusion when combined TMIB exceeds every boat's capacity")
		}
	}
}

func TestFormScarcitySplitRequiresTwoOrFewerBoats(t *testing.T) {
	cfg := geo.DefaultConfig()
	demands := []domain.Demand{{Platform: "PCM-02", TMIB: 15}}

	pkgs := Form(cfg, demands, boats(3, 24))

	if len(pkgs) != 1 || pkgs[0].Kind != domain.Singleton {
		t.Fatalf("expected no split with 3 available boats, got %+v", pkgs)
	}
}

func TestFormScarcitySplitFiresOnSoleLargeTMIBOnlyDemand(t *testing.T) {
	cfg := geo.DefaultConfig()
	demands := []domain.Demand{{Platform: "PCM-02", TMIB: 20, Priority: 1}}

	pkgs := Form(cfg, demands, boats(2, 24))

	if len(pkgs) != 2 {
		t.Fatalf("expected the split to produce two packages, got %d", len(pkgs))
	}
	total := 0
	for _, p := range pkgs {
		if p.Kind != domain.SplitPiece {
			t.Fatalf("expected SplitPiece kind, got %s", p.Kind)
		}
		total += p.TotalTMIB()
	}
	if total != 20 {
		t.Fatalf("expected split pieces to sum to original 20, got %d", total)
	}
}

func TestFormScarcitySplitIgnoresM9Demand(t *testing.T) {
	cfg := geo.DefaultConfig()
	demands := []domain.Demand{{Platform: "PCM-02", TMIB: 20, M9: 1}}

	pkgs := Form(cfg, demands, boats(2, 24))

	if len(pkgs) != 1 || pkgs[0].Kind != domain.Singleton {
		t.Fatalf("expected no split for a mixed TMIB+M9 demand, got %+v", pkgs)
	}
}

func TestFormScarcitySplitBelowThresholdDoesNotFire(t *testing.T) {
	cfg := geo.DefaultConfig()
	demands := []domain.Demand{{Platform: "PCM-02", TMIB: 10}}

	pkgs := Form(cfg, demands, boats(2, 24))

	if len(pkgs) != 1 || pkgs[0].Kind != domain.Singleton {
		t.Fatalf("expected no split below the tmib>=12 threshold, got %+v", pkgs)
	}
}

func TestFormScarcitySplitPrefersPreferredCluster(t *testing.T) {
	cfg := geo.DefaultConfig()
	demands := []domain.Demand{
		{Platform: "PCM-02", TMIB: 15}, // M2M3: preferred
		{Platform: "PCM-06", TMIB: 18}, // M6_AREA: not preferred
	}

	pkgs := Form(cfg, demands, boats(2, 24))

	var splitPlatform string
	splitCount := 0
	for _, p := range pkgs {
		if p.Kind == domain.SplitPiece {
			splitCount++
			splitPlatform = p.Demands[0].Platform
		}
	}
	if splitCount != 2 {
		t.Fatalf("expected exactly one demand split into two pieces, got %d split packages", splitCount)
	}
	if splitPlatform != "PCM-02" {
		t.Fatalf("expected the preferred-cluster demand (PCM-02) to be the one split, got %s", splitPlatform)
	}
}
