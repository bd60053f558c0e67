package geo

import "testing"

func TestStaticTableRoundTrip(t *testing.T) {
	tbl := NewStaticTable(map[[2]string]float64{
		{"TMIB", "PCM-01"}: 4.2,
	})

	nm, ok := tbl.Distance("TMIB", "PCM-01")
	if !ok || nm != 4.2 {
		t.Fatalf("expected 4.2 nm, got %v ok=%v", nm, ok)
	}

	if _, ok := tbl.Distance("PCM-01", "TMIB"); ok {
		t.Fatalf("reverse direction should not be stored without an explicit Set")
	}
}

func TestStaticTableSetOverwrites(t *testing.T) {
	tbl := NewStaticTable(nil)
	tbl.Set("A", "B", 1.0)
	tbl.Set("A", "B", 2.5)

	nm, ok := tbl.Distance("A", "B")
	if !ok || nm != 2.5 {
		t.Fatalf("expected overwritten value 2.5, got %v ok=%v", nm, ok)
	}
}
