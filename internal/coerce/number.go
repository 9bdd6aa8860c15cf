// =============================================================================
// Procurement Analytics - Type Coercion
// =============================================================================
//
// This package turns spreadsheet cell values into typed numbers and dates.
//
// NUMERIC CELLS:
//   Spreadsheets from non-technical users routinely contain stray text in
//   numeric columns ("RM 1,200", "-", "TBC"). The default policy absorbs every
//   failure as 0.0; the strict policy reports it instead.
//
// DATE CELLS:
//   Dates have no meaningful zero. A failed parse returns ok=false and the
//   caller keeps the row with an invalid date.
//
// =============================================================================

package coerce

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	// ErrNotNumeric is returned when a cell cannot be read as a number.
	ErrNotNumeric = errors.New("value is not numeric")

	// ErrNotDate is returned when a cell cannot be read as a date.
	ErrNotDate = errors.New("value is not a date")
)

// CurrencyMarker is stripped from numeric cells before parsing.
const CurrencyMarker = "RM"

// NoValue is the spreadsheet sentinel for an empty numeric cell.
const NoValue = "-"

// =============================================================================
// FAILURE POLICY
// =============================================================================

// Policy decides what happens when a numeric cell cannot be parsed.
type Policy string

const (
	// PolicyZero substitutes 0.0 for any unparseable cell.
	PolicyZero Policy = "zero"

	// PolicyStrict reports unparseable cells as errors.
	PolicyStrict Policy = "strict"
)

// ParsePolicy validates a policy name. An empty name selects PolicyZero.
func ParsePolicy(name string) (Policy, error) {
	switch Policy(strings.ToLower(strings.TrimSpace(name))) {
	case "", PolicyZero:
		return PolicyZero, nil
	case PolicyStrict:
		return PolicyStrict, nil
	default:
		return "", fmt.Errorf("unknown numeric failure policy %q (want %q or %q)", name, PolicyZero, PolicyStrict)
	}
}

// Apply coerces v under the policy. replaced is true when PolicyZero
// substituted 0 for an unparseable value; with PolicyStrict the parse error is
// returned instead.
func (p Policy) Apply(v any) (f float64, replaced bool, err error) {
	f, err = ParseNumber(v)
	if err == nil {
		return f, false, nil
	}
	if p == PolicyStrict {
		return 0, false, err
	}
	return 0, true, nil
}

// =============================================================================
// NUMBER COERCION
// =============================================================================

// Number converts a cell value to a finite float64, returning 0.0 when the
// value cannot be parsed for any reason. It never panics.
func Number(v any) float64 {
	f, err := ParseNumber(v)
	if err != nil {
		return 0
	}
	return f
}

// ParseNumber is the strict form of Number.
//
// CLEANING STEPS (strings):
//   1. Remove thousands separators (",").
//   2. Remove the currency marker ("RM").
//   3. Trim surrounding whitespace.
//   4. Map an empty cell or a lone "-" to 0.
//   5. Parse as a decimal number.
func ParseNumber(v any) (float64, error) {
	switch x := v.(type) {
	case nil:
		return 0, fmt.Errorf("%w: nil", ErrNotNumeric)
	case string:
		return parseNumberString(x)
	case []byte:
		return parseNumberString(string(x))
	case float64:
		return finite(x)
	case float32:
		return finite(float64(x))
	case int:
		return float64(x), nil
	case int64:
		return float64(x), nil
	case int32:
		return float64(x), nil
	case uint:
		return float64(x), nil
	case uint64:
		return float64(x), nil
	case uint32:
		return float64(x), nil
	case decimal.Decimal:
		f, _ := x.Float64()
		return finite(f)
	case fmt.Stringer:
		return parseNumberString(x.String())
	default:
		return 0, fmt.Errorf("%w: unsupported type %T", ErrNotNumeric, v)
	}
}

// maxMagnitude bounds the decimal exponent of parseable numbers.
const maxMagnitude = 310

func parseNumberString(raw string) (float64, error) {
	s := strings.ReplaceAll(raw, ",", "")
	s = strings.ReplaceAll(s, CurrencyMarker, "")
	s = strings.TrimSpace(s)

	if s == "" || s == NoValue {
		return 0, nil
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrNotNumeric, raw)
	}

	// Reject magnitudes float64 cannot hold before converting; Float64 would
	// otherwise expand the full power of ten.
	switch mag := d.NumDigits() + int(d.Exponent()); {
	case mag > maxMagnitude:
		return 0, fmt.Errorf("%w: %q is out of range", ErrNotNumeric, raw)
	case mag < -maxMagnitude:
		return 0, nil
	}

	f, _ := d.Float64()
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: %q is out of range", ErrNotNumeric, raw)
	}
	return f, nil
}

func finite(f float64) (float64, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: %v", ErrNotNumeric, f)
	}
	return f, nil
}
