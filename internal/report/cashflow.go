package report

import (
	"sort"

	"github.com/ginjaninja78/procurement-analytics/internal/filter"
)

// MonthLayout is the year-month key format.
const MonthLayout = "2006-01"

// MonthFlow is the paid vs committed total of one calendar month.
type MonthFlow struct {
	Month       string  `json:"month"`
	Paid        float64 `json:"paid"`
	POValue     float64 `json:"po_value"`
	Outstanding float64 `json:"outstanding"`
	Count       int     `json:"count"`
}

// MonthlyFlow groups the view by the year-month of Date, in chronological
// order. Records without a valid date are left out; UndatedCount reports how
// many.
func MonthlyFlow(view filter.View) []MonthFlow {
	type month struct {
		paid, po accumulator
		count    int
	}
	months := make(map[string]*month)

	for _, rec := range view.Records {
		if !rec.DateValid {
			continue
		}
		key := rec.Date.Format(MonthLayout)
		m, ok := months[key]
		if !ok {
			m = &month{}
			months[key] = m
		}
		m.paid.add(rec.Amount)
		m.po.add(rec.POValue)
		m.count++
	}

	keys := make([]string, 0, len(months))
	for key := range months {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	flows := make([]MonthFlow, 0, len(keys))
	for _, key := range keys {
		m := months[key]
		flows = append(flows, MonthFlow{
			Month:       key,
			Paid:        m.paid.value(),
			POValue:     m.po.value(),
			Outstanding: difference(m.po, m.paid),
			Count:       m.count,
		})
	}
	return flows
}

// UndatedCount counts records in the view without a valid date.
func UndatedCount(view filter.View) int {
	n := 0
	for _, rec := range view.Records {
		if !rec.DateValid {
			n++
		}
	}
	return n
}
