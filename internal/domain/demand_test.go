package domain

import "testing"

func TestDemandTotalAndIsZero(t *testing.T) {
	d := Demand{Platform: "PCM-01", M9: 2, TMIB: 3}
	if d.Total() != 5 {
		t.Fatalf("Total() = %d, want 5", d.Total())
	}
	if d.IsZero() {
		t.Fatal("non-zero demand reported IsZero")
	}
	if !(Demand{Platform: "PCM-01"}).IsZero() {
		t.Fatal("all-zero demand should report IsZero")
	}
}

func TestMergeSumsCountsAndTakesMaxPriority(t *testing.T) {
	a := Demand{Platform: "PCM-01", M9: 2, TMIB: 1, Priority: 1}
	b := Demand{Platform: "PCM-01", M9: 3, TMIB: 0, Priority: 2}

	got := Merge(a, b)
	if got.M9 != 5 || got.TMIB != 1 {
		t.Fatalf("Merge() counts = %+v, want M9=5 TMIB=1", got)
	}
	if got.Priority != 2 {
		t.Fatalf("Merge() Priority = %d, want 2 (the max)", got.Priority)
	}
}

func TestDemandPackageTotals(t *testing.T) {
	pkg := DemandPackage{
		Kind: MandatoryPair,
		Demands: []Demand{
			{Platform: "PCM-02", M9: 4, TMIB: 6},
			{Platform: "PCM-03", M9: 1, TMIB: 9},
		},
	}

	if pkg.TotalTMIB() != 15 {
		t.Fatalf("TotalTMIB() = %d, want 15", pkg.TotalTMIB())
	}
	if pkg.TotalM9() != 5 {
		t.Fatalf("TotalM9() = %d, want 5", pkg.TotalM9())
	}
	if !pkg.FitsCapacity(15) {
		t.Fatal("package should fit a boat with exactly matching capacity")
	}
	if pkg.FitsCapacity(14) {
		t.Fatal("package should not fit a boat one short of its TMIB total")
	}
}
