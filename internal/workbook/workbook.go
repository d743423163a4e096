package workbook

import (
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"

	"github.com/quadgen/dss-templater/internal/types"
)

// Workbook is a read-only view over an opened xlsx file. It is loaded once
// per run and never mutated.
type Workbook struct {
	f *excelize.File
}

// Open opens a workbook from disk. Failure here is fatal for the run.
func Open(path string) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open workbook %s: %w", path, err)
	}
	return &Workbook{f: f}, nil
}

// OpenReader opens a workbook from a byte stream.
func OpenReader(r io.Reader) (*Workbook, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("cannot open workbook: %w", err)
	}
	return &Workbook{f: f}, nil
}

// Close releases the underlying file handle.
func (w *Workbook) Close() error {
	if w == nil || w.f == nil {
		return nil
	}
	return w.f.Close()
}

// SheetNames returns the worksheet names in workbook order.
func (w *Workbook) SheetNames() []string {
	return w.f.GetSheetList()
}

// Sheet resolves a worksheet by canonical name with optional alternate
// spellings and loads it as a Table. Resolution order: exact match, then
// case/trim-insensitive match on the canonical name, then each alternate in
// order. Returns nil when no sheet matches or the sheet cannot be read; a
// missing sheet is not fatal, it just leaves its placeholders unresolved.
func (w *Workbook) Sheet(canonical string, alternates ...string) *Table {
	available := w.f.GetSheetList()

	resolved := ""
	for _, name := range available {
		if name == canonical {
			resolved = name
			break
		}
	}
	if resolved == "" {
		resolved = matchInsensitive(available, canonical)
	}
	if resolved == "" {
		for _, alt := range alternates {
			if resolved = matchInsensitive(available, alt); resolved != "" {
				break
			}
		}
	}
	if resolved == "" {
		return nil
	}

	rows, err := w.f.GetRows(resolved)
	if err != nil {
		log.Warn().Err(err).Str("sheet", resolved).Msg("Failed to read worksheet")
		return nil
	}
	if len(rows) == 0 {
		return &Table{Name: resolved}
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = strings.TrimSpace(h)
	}
	return &Table{Name: resolved, Headers: headers, Rows: rows[1:]}
}

// matchInsensitive finds a sheet name equal to want after lowercasing and
// trimming, or "" if none matches.
func matchInsensitive(available []string, want string) string {
	wantLower := strings.ToLower(strings.TrimSpace(want))
	for _, name := range available {
		if strings.ToLower(strings.TrimSpace(name)) == wantLower {
			return name
		}
	}
	return ""
}

// Table is an immutable worksheet snapshot: a header row plus data rows as
// raw strings. Cell access goes through Cell, which degrades to an absent
// value on any out-of-range or empty read.
type Table struct {
	Name    string
	Headers []string
	Rows    [][]string
}

// InvalidColumn indicates a column was not found.
const InvalidColumn = -1

// Len returns the number of data rows. Safe on a nil table.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// FindColumn resolves a header from a list of acceptable spellings.
// Both sides are normalized by lowercasing and stripping spaces and
// underscores; candidates are tried in caller order and the first header
// matching any candidate wins.
func (t *Table) FindColumn(candidates ...string) (int, bool) {
	if t == nil || len(t.Headers) == 0 {
		return InvalidColumn, false
	}
	normalized := make(map[string]int, len(t.Headers))
	for i, h := range t.Headers {
		key := normalizeHeader(h)
		if _, seen := normalized[key]; !seen {
			normalized[key] = i
		}
	}
	for _, cand := range candidates {
		if idx, ok := normalized[normalizeHeader(cand)]; ok {
			return idx, true
		}
	}
	return InvalidColumn, false
}

func normalizeHeader(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "_", "")
	return s
}

// Cell returns the value at (row, col) as a CellValue. Absent on a nil
// table, unresolved column, out-of-range row, or blank cell. Never errors.
func (t *Table) Cell(row, col int) types.CellValue {
	if t == nil || col == InvalidColumn || col < 0 || row < 0 || row >= len(t.Rows) {
		return types.Absent
	}
	r := t.Rows[row]
	// excelize drops trailing empty cells, so short rows are normal
	if col >= len(r) {
		return types.Absent
	}
	if strings.TrimSpace(r[col]) == "" {
		return types.Absent
	}
	return types.Cell(r[col])
}

// Value returns the trimmed cell value at (row, col), or def on any
// failure path.
func (t *Table) Value(row, col int, def string) string {
	return t.Cell(row, col).StringOr(def)
}
