// Package scenario implements the spreadsheet-shaped boundary adapters of
// spec §6.1 and §6.4: a CSV-backed ports.ScenarioReader and a plain-text
// ports.ReportWriter. A stdlib encoding/csv reader/writer stands in for the
// out-of-scope spreadsheet engine — no xlsx/excel library appears anywhere
// in the retrieved corpus (DESIGN.md).
package scenario

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"pax-route-planner/internal/domain"
)

const (
	crewChangeFlagRow  = 3 // C4, zero-indexed row 3
	crewChangeCountRow = 4 // C5
	colCrewCell        = 2 // column C

	boatBlockStartRow = 8 // row 9, zero-indexed

	colName       = 1 // B
	colAvailable  = 2 // C
	colDepartTime = 3 // D
	colFixedRoute = 4 // E

	colPlatform = 1 // B
	colM9       = 2 // C
	colTMIB     = 3 // D
	colPriority = 4 // E
)

// CSVScenarioReader implements ports.ScenarioReader against the fixed cell
// layout spec §6.1 describes, serialized as CSV. Speeds and Cfg supply the
// per-boat-type/name speed table and cluster/gangway data that the cell
// layout itself does not carry (spec §6.3 geography is a separate input).
type CSVScenarioReader struct {
	Speeds domain.SpeedTable
	Cfg    domain.Config
}

// ReadScenario parses one day's scenario file.
func (r CSVScenarioReader) ReadScenario(path string) (*domain.Scenario, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: open %q: %w", path, err)
	}
	defer f.Close()

	rows, err := readAllRows(f)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %q: %w", path, err)
	}

	sc := &domain.Scenario{}

	if cell(rows, crewChangeFlagRow, colCrewCell) != "" {
		sc.CrewChange = isYes(cell(rows, crewChangeFlagRow, colCrewCell))
	}
	if v := cell(rows, crewChangeCountRow, colCrewCell); v != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return nil, fmt.Errorf("read scenario: C5 crew-change M9 headcount: invalid int %q: %w", v, err)
		}
		sc.CrewChangeM9Count = n
	}

	i := boatBlockStartRow
	for ; i < len(rows); i++ {
		if isBlankRow(rows[i]) {
			i++
			break
		}

		name := strings.TrimSpace(cell(rows, i, colName))
		if name == "" {
			continue
		}
		available := isYes(cell(rows, i, colAvailable))
		departAt, err := parseHHMM(cell(rows, i, colDepartTime))
		if err != nil {
			return nil, fmt.Errorf("read scenario: row %d: boat %q departure time: %w", i+1, name, err)
		}

		boat := domain.NewBoat(name, available, departAt, r.Speeds, r.Cfg)
		boat.FixedRoute = strings.TrimSpace(cell(rows, i, colFixedRoute))
		sc.Boats = append(sc.Boats, boat)
	}

	for ; i < len(rows); i++ {
		if isBlankRow(rows[i]) {
			continue
		}

		platform := strings.TrimSpace(cell(rows, i, colPlatform))
		if platform == "" {
			continue
		}

		m9, err := parseIntCell(cell(rows, i, colM9))
		if err != nil {
			return nil, fmt.Errorf("read scenario: row %d: platform %q M9 count: %w", i+1, platform, err)
		}
		tmib, err := parseIntCell(cell(rows, i, colTMIB))
		if err != nil {
			return nil, fmt.Errorf("read scenario: row %d: platform %q TMIB count: %w", i+1, platform, err)
		}
		priority, err := parseIntCell(cell(rows, i, colPriority))
		if err != nil {
			return nil, fmt.Errorf("read scenario: row %d: platform %q priority: %w", i+1, platform, err)
		}

		sc.Demands = append(sc.Demands, domain.Demand{
			Platform: platform,
			M9:       m9,
			TMIB:     tmib,
			Priority: priority,
		})
	}

	return sc, nil
}

func readAllRows(rd io.Reader) ([][]string, error) {
	r := csv.NewReader(rd)
	r.FieldsPerRecord = -1

	var rows [][]string
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csv read: %w", err)
		}
		rows = append(rows, rec)
	}
	return rows, nil
}

func cell(rows [][]string, row, col int) string {
	if row < 0 || row >= len(rows) {
		return ""
	}
	if col < 0 || col >= len(rows[row]) {
		return ""
	}
	return rows[row][col]
}

func isBlankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func isYes(v string) bool {
	return strings.EqualFold(strings.TrimSpace(v), "SIM")
}

func parseIntCell(v string) (int, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0, nil
	}
	return strconv.Atoi(v)
}

// parseHHMM parses a "HH:MM" cell into minutes of day.
func parseHHMM(v string) (int, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0, nil
	}
	parts := strings.SplitN(v, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("expected HH:MM, got %q", v)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("expected HH:MM, got %q: %w", v, err)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("expected HH:MM, got %q: %w", v, err)
	}
	return h*60 + m, nil
}
