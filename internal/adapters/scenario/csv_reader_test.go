package scenario

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"pax-route-planner/internal/domain"
	"pax-route-planner/internal/services/geo"
)

func writeTempCSV(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "scenario.csv")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write temp csv: %v", err)
	}
	return path
}

func TestReadScenarioParsesCrewChangeBoatsAndDemands(t *testing.T) {
	csv := "" +
		",,,,\n" +
		",,,,\n" +
		",,,,\n" +
		",,SIM,,\n" +
		",,6,,\n" +
		",,,,\n" +
		",,,,\n" +
		",,,,\n" +
		",Surfer I,SIM,06:30,\n" +
		",Surfer II,NAO,07:20,\n" +
		",,,,\n" +
		",PCM-01,0,10,1\n" +
		",PCM-07,2,5,0\n"

	path := writeTempCSV(t, csv)

	r := CSVScenarioReader{Cfg: geo.DefaultConfig()}
	sc, err := r.ReadScenario(path)
	if err != nil {
		t.Fatalf("ReadScenario: %v", err)
	}

	if !sc.CrewChange || sc.CrewChangeM9Count != 6 {
		t.Fatalf("expected crew change true/6, got %v/%d", sc.CrewChange, sc.CrewChangeM9Count)
	}

	if len(sc.Boats) != 2 {
		t.Fatalf("expected 2 boats, got %d", len(sc.Boats))
	}
	if sc.Boats[0].Name != "Surfer I" || !sc.Boats[0].Available || sc.Boats[0].DepartAt != 6*60+30 {
		t.Fatalf("unexpected first boat: %+v", sc.Boats[0])
	}
	if sc.Boats[1].Available {
		t.Fatalf("expected second boat unavailable")
	}

	if len(sc.Demands) != 2 {
		t.Fatalf("expected 2 demands, got %d", len(sc.Demands))
	}
	if sc.Demands[0].Platform != "PCM-01" || sc.Demands[0].TMIB != 10 || sc.Demands[0].Priority != 1 {
		t.Fatalf("unexpected first demand: %+v", sc.Demands[0])
	}
	if sc.Demands[1].M9 != 2 {
		t.Fatalf("unexpected second demand M9: %+v", sc.Demands[1])
	}
}

func TestFileReportWriterWritesHeaderRoutesAndWarnings(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "report.txt")

	plan := &domain.Plan{
		Routes: []domain.Route{
			{Boat: domain.Boat{Name: "Surfer I", DepartAt: 480}, PostM9Stops: []domain.Stop{domain.NewPostM9Stop("PCM-01", 6, 0, 0)}},
		},
		Warnings: []domain.Warning{{Platform: "PCM-07", Message: "demand could not be placed within fleet capacity"}},
		TotalNM:  12.5,
	}

	if err := (FileReportWriter{}).WriteReport(path, plan, true, 6); err != nil {
		t.Fatalf("WriteReport: %v", err)
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}

	got := string(contents)
	for _, want := range []string{"DISTRIBUICAO DE PAX", "Troca de turma: 6 M9", "Surfer I 08:00", "AVISO: PCM-07", "TOTAL NM: 12.5"} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected report to contain %q, got:\n%s", want, got)
		}
	}
}
