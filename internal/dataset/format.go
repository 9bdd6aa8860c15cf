package dataset

import (
	"strconv"
)

// DateLayout is how dates are rendered in exports and text output.
const DateLayout = "2006-01-02"

// FormatNumber renders a float without trailing zeros or exponent notation.
func FormatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Value returns the export representation of a column for a record. Canonical
// columns use the typed value; other columns use the raw text.
func (r *Record) Value(column string) string {
	if f, ok := FieldForColumn(column); ok {
		return r.Text(f)
	}
	return r.Fields[column]
}
