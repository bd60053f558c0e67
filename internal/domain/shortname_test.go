package domain

import "testing"

func TestShortNameMapsKnownPrefixes(t *testing.T) {
	cases := map[string]string{
		TMIB:     TMIB,
		PCM09:    "M9",
		"PCM-01": "M1",
		"PCM-07": "M7",
		"PCB-01": "B1",
		"PGA-07": "PGA7",
		"PDO-02": "PDO2",
		"PRB-01": "PRB1",
	}

	for id, want := range cases {
		if got := ShortName(id); got != want {
			t.Errorf("ShortName(%q) = %q, want %q", id, got, want)
		}
	}
}

func TestShortNameStripsLeadingZeroButKeepsAZero(t *testing.T) {
	if got := ShortName("PCM-00"); got != "M0" {
		t.Fatalf("ShortName(%q) = %q, want %q", "PCM-00", got, "M0")
	}
}

func TestShortNameFallsBackToIDForUnknownPrefix(t *testing.T) {
	if got := ShortName("UNKNOWN-1"); got != "UNKNOWN-1" {
		t.Fatalf("ShortName(%q) = %q, want unchanged input", "UNKNOWN-1", got)
	}
}
