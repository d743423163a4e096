package workbook

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"
)

// buildWorkbook writes an xlsx with the given sheets and reopens it through
// the package API.
func buildWorkbook(t *testing.T, sheets map[string][][]interface{}) *Workbook {
	t.Helper()

	f := excelize.NewFile()
	first := true
	for name, rows := range sheets {
		if first {
			if err := f.SetSheetName("Sheet1", name); err != nil {
				t.Fatalf("rename sheet: %v", err)
			}
			first = false
		} else {
			if _, err := f.NewSheet(name); err != nil {
				t.Fatalf("new sheet: %v", err)
			}
		}
		for i, row := range rows {
			cell, _ := excelize.CoordinatesToCellName(1, i+1)
			if err := f.SetSheetRow(name, cell, &row); err != nil {
				t.Fatalf("set row: %v", err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	wb, err := OpenReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	t.Cleanup(func() { wb.Close() })
	return wb
}

func TestSheetAliasResolution(t *testing.T) {
	wb := buildWorkbook(t, map[string][][]interface{}{
		"Mixed_Mode_Info": {{"eNodeB Name"}, {"SITE1"}},
		"5g info":         {{"NRCellDU"}, {"SITE1_N066A_1"}},
	})

	tests := []struct {
		name       string
		canonical  string
		alternates []string
		found      bool
	}{
		{"Alternate spelling", "Mixed Mode Info", []string{"MixedModeInfo", "Mixed_Mode_Info"}, true},
		{"Case insensitive canonical", "5G Info", nil, true},
		{"Absent sheet", "eUtran Parameters", []string{"EUtranParameters"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := wb.Sheet(tt.canonical, tt.alternates...)
			if (table != nil) != tt.found {
				t.Errorf("Sheet(%q) found = %v, want %v", tt.canonical, table != nil, tt.found)
			}
		})
	}
}

func TestSheetExactMatchWins(t *testing.T) {
	wb := buildWorkbook(t, map[string][][]interface{}{
		"5G Info": {{"NRCellDU"}, {"exact"}},
	})

	table := wb.Sheet("5G Info", "5GInfo")
	if table == nil || table.Name != "5G Info" {
		t.Fatalf("expected exact sheet match, got %+v", table)
	}
	if table.Len() != 1 {
		t.Errorf("Len() = %d, want 1", table.Len())
	}
}

func TestFindColumnNormalization(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{"All caps no spaces", "ENODEBNAME"},
		{"Underscores", "e_nodeb_name"},
		{"Extra whitespace", "  eNodeB   Name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := &Table{Headers: []string{"Other", tt.header}}
			idx, ok := table.FindColumn("eNodeB Name", "eNodeBName")
			if !ok || idx != 1 {
				t.Errorf("FindColumn() = (%d, %v), want (1, true)", idx, ok)
			}
		})
	}
}

func TestFindColumnCandidateOrder(t *testing.T) {
	table := &Table{Headers: []string{"gNodeB Name", "gNB Name"}}
	// first candidate wins even when a later candidate matches an earlier header
	idx, ok := table.FindColumn("gNB Name", "gNodeB Name")
	if !ok || idx != 1 {
		t.Errorf("FindColumn() = (%d, %v), want (1, true)", idx, ok)
	}
}

func TestFindColumnMissing(t *testing.T) {
	var nilTable *Table
	if idx, ok := nilTable.FindColumn("anything"); ok || idx != InvalidColumn {
		t.Errorf("nil table FindColumn() = (%d, %v), want (%d, false)", idx, ok, InvalidColumn)
	}

	table := &Table{Headers: []string{"eNBId"}}
	if _, ok := table.FindColumn("sectorId"); ok {
		t.Error("FindColumn() on absent header succeeded")
	}
}

func TestCellDefaults(t *testing.T) {
	table := &Table{
		Headers: []string{"A", "B"},
		Rows:    [][]string{{"x", "y"}, {"only"}},
	}

	tests := []struct {
		name     string
		row, col int
		def      string
		expected string
	}{
		{"Present cell", 0, 1, "d", "y"},
		{"Row out of range", 5, 0, "d", "d"},
		{"Short row", 1, 1, "d", "d"},
		{"Unresolved column", 0, InvalidColumn, "d", "d"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := table.Value(tt.row, tt.col, tt.def); got != tt.expected {
				t.Errorf("Value(%d, %d) = %q, want %q", tt.row, tt.col, got, tt.expected)
			}
		})
	}

	var nilTable *Table
	if got := nilTable.Value(0, 0, "d"); got != "d" {
		t.Errorf("nil table Value() = %q, want %q", got, "d")
	}
}

func TestBlankCellIsAbsent(t *testing.T) {
	table := &Table{Headers: []string{"DSS"}, Rows: [][]string{{"   "}}}
	if !table.Cell(0, 0).IsEmpty() {
		t.Error("blank cell not reported absent")
	}
}
