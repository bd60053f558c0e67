// Package geo provides the read-only ports.DistanceMatrixProvider adapter
// (spec §6.3): an in-memory distance table, loadable from a CSV export of
// the operator-maintained geography sheet.
package geo

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// StaticTable is an in-memory, read-only distance table. Safe for
// concurrent reads once built (spec §5): nothing mutates it after
// construction.
type StaticTable struct {
	entries map[string]float64
}

// NewStaticTable builds a StaticTable from a set of directed entries.
func NewStaticTable(entries map[[2]string]float64) *StaticTable {
	t := &StaticTable{entries: make(map[string]float64, len(entries))}
	for k, nm := range entries {
		t.entries[key(k[0], k[1])] = nm
	}
	return t
}

// Distance returns the stored entry for a->b, if any. It does not fall
// back to b->a or to a sentinel — that policy lives in geo.Distance, one
// layer up, per spec §4.1.
func (t *StaticTable) Distance(a, b string) (float64, bool) {
	nm, ok := t.entries[key(a, b)]
	return nm, ok
}

// Set records (or overwrites) one directed distance entry.
func (t *StaticTable) Set(a, b string, nm float64) {
	if t.entries == nil {
		t.entries = make(map[string]float64)
	}
	t.entries[key(a, b)] = nm
}

func key(a, b string) string {
	return a + "\x00" + b
}

// LoadDistanceCSV reads a distance matrix from a three-column CSV
// (origin,destination,nm), one directed entry per row, header optional.
// A stdlib encoding/csv reader is used rather than a spreadsheet library:
// no xlsx/excel package appears anywhere in the retrieved corpus, so this
// repo treats the operator-maintained geography sheet as pre-exported CSV
// (DESIGN.md).
func LoadDistanceCSV(path string) (*StaticTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load distance csv: open %q: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	t := &StaticTable{entries: make(map[string]float64)}

	first := true
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("load distance csv: read %q: %w", path, err)
		}
		if first {
			first = false
			if len(rec) >= 3 && strings.EqualFold(strings.TrimSpace(rec[2]), "nm") {
				continue // header row
			}
		}
		if len(rec) < 3 {
			continue
		}

		origin := strings.TrimSpace(rec[0])
		dest := strings.TrimSpace(rec[1])
		if origin == "" || dest == "" {
			continue
		}

		nm, err := strconv.ParseFloat(strings.TrimSpace(rec[2]), 64)
		if err != nil {
			return nil, fmt.Errorf("load distance csv: row %s->%s: invalid nm %q: %w", origin, dest, rec[2], err)
		}

		t.entries[key(origin, dest)] = nm
	}

	return t, nil
}
