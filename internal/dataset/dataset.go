// =============================================================================
// Procurement Analytics - Normalized Dataset
// =============================================================================
//
// A Dataset is the clean, typed result of ingestion. Downstream code (filters,
// aggregation, export) trusts it without further defensive checks:
//   - Amount is always present and numeric.
//   - Date is always present; DateValid is false only for unparseable cells.
//   - POValue and Percent are zero when their column is absent.
//
// A Dataset is immutable once returned by the loader.
//
// =============================================================================

package dataset

import (
	"time"

	"github.com/ginjaninja78/procurement-analytics/internal/schema"
	"github.com/ginjaninja78/procurement-analytics/internal/types"
)

// Record is one normalized procurement row.
type Record struct {
	// Row is the 1-based row number in the source file.
	Row int

	Amount  float64
	POValue float64
	Percent float64

	// Date is the PO/invoice date. When DateValid is false the cell could not
	// be parsed and Date is the zero time.
	Date      time.Time
	DateValid bool

	VendorName     string
	ProjectManager string
	PONumber       string
	PRNumber       string

	// Fields holds the raw text of every column, keyed by the normalized
	// header. Untouched original columns are only available here.
	Fields map[string]string
}

// Text returns the value of a text field. Numeric and date fields are
// rendered the way the CSV export writes them.
func (r *Record) Text(f schema.Field) string {
	switch f {
	case schema.VendorName:
		return r.VendorName
	case schema.ProjectManager:
		return r.ProjectManager
	case schema.PONumber:
		return r.PONumber
	case schema.PRNumber:
		return r.PRNumber
	case schema.Date:
		if !r.DateValid {
			return ""
		}
		return r.Date.Format(DateLayout)
	default:
		return FormatNumber(r.Number(f))
	}
}

// Number returns the value of a numeric field, or 0 for other fields.
func (r *Record) Number(f schema.Field) float64 {
	switch f {
	case schema.Amount:
		return r.Amount
	case schema.POValue:
		return r.POValue
	case schema.Percent:
		return r.Percent
	default:
		return 0
	}
}

// SourceInfo describes where a dataset came from.
type SourceInfo struct {
	Name   string
	Format types.Format
	Sheet  string

	// Hash is the hex SHA-256 of the input bytes.
	Hash string
}

// CoercionStats counts values that were absorbed during coercion.
type CoercionStats struct {
	// NumericFailures counts unparseable numeric cells per field that were
	// replaced with 0.
	NumericFailures map[schema.Field]int

	// InvalidDates counts rows whose date cell could not be parsed.
	InvalidDates int

	// DateSynthesized is true when no date column existed and every row was
	// stamped with the load time.
	DateSynthesized bool
}

// Dataset is the normalized result of loading one input file.
type Dataset struct {
	// Columns lists the dataset's columns in order: source columns with
	// canonical names substituted, plus App_Date if it was synthesized.
	Columns []string

	Records []Record

	Resolution *schema.Resolution

	Source SourceInfo

	Stats CoercionStats
}

// Has reports whether a canonical field came from a source column.
func (d *Dataset) Has(f schema.Field) bool {
	return d.Resolution != nil && d.Resolution.Has(f)
}

// Len returns the number of records.
func (d *Dataset) Len() int {
	return len(d.Records)
}

// FieldForColumn maps a dataset column back to its canonical field.
func FieldForColumn(column string) (schema.Field, bool) {
	for _, def := range schema.Canonical {
		if def.Column == column {
			return def.Field, true
		}
	}
	return "", false
}
