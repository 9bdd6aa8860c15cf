package coerce

import (
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// DateOptions tunes best-effort date parsing.
type DateOptions struct {
	// ExcelSerial accepts bare numbers as Excel serial dates. Only enable it
	// for spreadsheet sources, where date cells are read as raw serials.
	ExcelSerial bool

	// DayFirst tries dd/mm layouts before mm/dd for ambiguous dates.
	DayFirst bool

	// Location is used for layouts without a zone. Defaults to UTC.
	Location *time.Location
}

// Excel serials outside this range are not dates (1900-01-01 .. 9999-12-31).
const (
	minExcelSerial = 1
	maxExcelSerial = 2958465
)

// isoLayouts are unambiguous and always tried first.
var isoLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	time.RFC3339,
	time.RFC3339Nano,
	"2006/01/02",
	"2006/1/2",
	"2006-1-2",
	"2006.01.02",
}

var monthFirstLayouts = []string{
	"01/02/2006", "1/2/2006", "01/02/06", "1/2/06",
	"01-02-2006", "1-2-2006", "01-02-06", "1-2-06",
	"01/02/2006 15:04:05", "1/2/2006 15:04:05", "1/2/2006 15:04",
}

var dayFirstLayouts = []string{
	"02/01/2006", "2/1/2006", "02/01/06", "2/1/06",
	"02-01-2006", "2-1-2006", "02.01.2006", "2.1.2006",
	"02/01/2006 15:04:05", "2/1/2006 15:04:05", "2/1/2006 15:04",
}

// namedMonthLayouts are unambiguous and tried last.
var namedMonthLayouts = []string{
	"2-Jan-2006", "02-Jan-2006", "2-Jan-06", "02-Jan-06",
	"2 Jan 2006", "02 Jan 2006", "2 January 2006",
	"Jan 2, 2006", "January 2, 2006", "Jan 2 2006",
	"02/Jan/2006", "2/Jan/2006",
}

// Date converts a cell value to a time.
//
// RETURNS:
//   - The parsed time and true, or the zero time and false if v is not a
//     recognizable date. It never panics.
func Date(v any, opts DateOptions) (time.Time, bool) {
	t, err := ParseDate(v, opts)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// ParseDate is the error-returning form of Date.
func ParseDate(v any, opts DateOptions) (time.Time, error) {
	switch x := v.(type) {
	case time.Time:
		if x.IsZero() {
			return time.Time{}, ErrNotDate
		}
		return x, nil
	case *time.Time:
		if x == nil || x.IsZero() {
			return time.Time{}, ErrNotDate
		}
		return *x, nil
	case float64:
		if opts.ExcelSerial {
			return fromSerial(x)
		}
		return time.Time{}, ErrNotDate
	case int:
		if opts.ExcelSerial {
			return fromSerial(float64(x))
		}
		return time.Time{}, ErrNotDate
	case string:
		return parseDateString(x, opts)
	default:
		return time.Time{}, ErrNotDate
	}
}

func parseDateString(raw string, opts DateOptions) (time.Time, error) {
	s := strings.TrimSpace(raw)
	if s == "" || s == NoValue {
		return time.Time{}, ErrNotDate
	}

	if opts.ExcelSerial {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return fromSerial(f)
		}
	}

	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}

	order := [][]string{isoLayouts, monthFirstLayouts, dayFirstLayouts, namedMonthLayouts}
	if opts.DayFirst {
		order[1], order[2] = dayFirstLayouts, monthFirstLayouts
	}

	for _, layouts := range order {
		for _, layout := range layouts {
			if t, err := time.ParseInLocation(layout, s, loc); err == nil {
				return t, nil
			}
		}
	}

	return time.Time{}, ErrNotDate
}

func fromSerial(f float64) (time.Time, error) {
	if f < minExcelSerial || f > maxExcelSerial {
		return time.Time{}, ErrNotDate
	}
	t, err := excelize.ExcelDateToTime(f, false)
	if err != nil {
		return time.Time{}, ErrNotDate
	}
	return t, nil
}
