package scenario

import (
	"bufio"
	"fmt"
	"os"

	"pax-route-planner/internal/domain"
	"pax-route-planner/internal/services/solve"
)

// FileReportWriter implements ports.ReportWriter (spec §6.4): header line,
// optional crew-change line, one route line per boat in departure order,
// then trailing warnings and the total NM.
type FileReportWriter struct{}

// WriteReport writes the plan to path, truncating any existing file.
func (FileReportWriter) WriteReport(path string, plan *domain.Plan, crewChange bool, crewChangeM9Count int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("write report: create %q: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)

	fmt.Fprintln(w, "DISTRIBUICAO DE PAX")
	if crewChange {
		fmt.Fprintf(w, "Troca de turma: %d M9\n", crewChangeM9Count)
	}

	for _, route := range plan.Routes {
		fmt.Fprintln(w, solve.RouteString(route))
	}

	for _, warn := range plan.Warnings {
		fmt.Fprintf(w, "AVISO: %s: %s\n", warn.Platform, warn.Message)
	}

	fmt.Fprintf(w, "TOTAL NM: %.1f\n", plan.TotalNM)

	if err := w.Flush(); err != nil {
		return fmt.Errorf("write report: flush %q: %w", path, err)
	}
	return nil
}
