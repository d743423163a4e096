package types

import (
	"strconv"
	"strings"
)

// CellValue represents a single spreadsheet cell as it arrives from the
// workbook: either absent (missing column, short row, empty cell) or a raw
// string. Coercion to a target type is explicit and always reports success.
type CellValue struct {
	Raw     string
	Present bool
}

// Cell creates a present cell value from a raw string.
func Cell(raw string) CellValue {
	return CellValue{Raw: raw, Present: true}
}

// Absent is the missing cell value.
var Absent = CellValue{}

// IsEmpty returns true if the cell is absent or contains only whitespace.
func (c CellValue) IsEmpty() bool {
	return !c.Present || strings.TrimSpace(c.Raw) == ""
}

// String returns the trimmed raw value, or the empty string when absent.
func (c CellValue) String() string {
	if !c.Present {
		return ""
	}
	return strings.TrimSpace(c.Raw)
}

// StringOr returns the trimmed raw value, or def when the cell is empty.
func (c CellValue) StringOr(def string) string {
	if c.IsEmpty() {
		return def
	}
	return strings.TrimSpace(c.Raw)
}

// Int coerces the cell to an integer. Spreadsheet exports routinely render
// integers as floats ("100.0"), so the value is parsed as a float and
// truncated.
func (c CellValue) Int() (int, bool) {
	if c.IsEmpty() {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(c.Raw), 64)
	if err != nil {
		return 0, false
	}
	return int(f), true
}

// Bool coerces the cell to a boolean. Excel renders boolean cells as
// "TRUE"/"FALSE"; "1" is accepted for numeric flag columns. Anything else,
// including absence, is false.
func (c CellValue) Bool() bool {
	if !c.Present {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(c.Raw)) {
	case "true", "1":
		return true
	}
	return false
}
