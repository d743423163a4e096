package types

import (
	"testing"
)

func TestCellValueInt(t *testing.T) {
	tests := []struct {
		name     string
		cell     CellValue
		expected int
		ok       bool
	}{
		{"Plain integer", Cell("100"), 100, true},
		{"Spreadsheet float", Cell("100.0"), 100, true},
		{"Float truncation", Cell("200.9"), 200, true},
		{"Whitespace padding", Cell("  42  "), 42, true},
		{"Non-numeric", Cell("SITE1"), 0, false},
		{"Empty string", Cell(""), 0, false},
		{"Absent", Absent, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, ok := tt.cell.Int()
			if n != tt.expected || ok != tt.ok {
				t.Errorf("Int() = (%d, %v), want (%d, %v)", n, ok, tt.expected, tt.ok)
			}
		})
	}
}

func TestCellValueBool(t *testing.T) {
	tests := []struct {
		name     string
		cell     CellValue
		expected bool
	}{
		{"Excel TRUE", Cell("TRUE"), true},
		{"Lowercase true", Cell("true"), true},
		{"Numeric flag", Cell("1"), true},
		{"Excel FALSE", Cell("FALSE"), false},
		{"Zero", Cell("0"), false},
		{"Arbitrary text", Cell("yes"), false},
		{"Absent", Absent, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cell.Bool(); got != tt.expected {
				t.Errorf("Bool() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestCellValueString(t *testing.T) {
	if got := Cell("  GSITE1  ").String(); got != "GSITE1" {
		t.Errorf("String() = %q, want %q", got, "GSITE1")
	}
	if got := Absent.StringOr("default"); got != "default" {
		t.Errorf("StringOr() = %q, want %q", got, "default")
	}
	if got := Cell("   ").StringOr("default"); got != "default" {
		t.Errorf("StringOr() on blank = %q, want %q", got, "default")
	}
	if !Cell("  ").IsEmpty() {
		t.Error("IsEmpty() on blank = false, want true")
	}
	if Cell("NO").IsEmpty() {
		t.Error("IsEmpty() on value = true, want false")
	}
}
