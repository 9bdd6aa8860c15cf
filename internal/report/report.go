// =============================================================================
// Procurement Analytics - Aggregation Engine
// =============================================================================
//
// Every function in this package is a pure function of a filtered view (plus,
// for aging, the reference time). None of them fail: empty views produce
// zero totals and empty slices.
//
// VIEWS:
//   - Totals / unique vendors / pending count (KPI strip)
//   - Group sums by project manager or vendor, and the top-N vendors
//   - Budget vs actual per project manager
//   - Monthly paid vs outstanding cash flow
//   - Aging buckets of pending POs
//
// =============================================================================

package report

import (
	"sort"

	"github.com/ginjaninja78/procurement-analytics/internal/dataset"
	"github.com/ginjaninja78/procurement-analytics/internal/filter"
	"github.com/ginjaninja78/procurement-analytics/internal/schema"
)

// =============================================================================
// TOTALS AND COUNTS
// =============================================================================

// Totals are the headline sums of a view.
type Totals struct {
	Amount      float64 `json:"total_paid"`
	POValue     float64 `json:"total_po_value"`
	Outstanding float64 `json:"outstanding"`
}

// ComputeTotals sums Amount and POValue over every record in the view.
func ComputeTotals(view filter.View) Totals {
	var paid, po accumulator
	for _, rec := range view.Records {
		paid.add(rec.Amount)
		po.add(rec.POValue)
	}
	return Totals{
		Amount:      paid.value(),
		POValue:     po.value(),
		Outstanding: difference(po, paid),
	}
}

// UniqueVendorCount counts distinct non-empty vendor names.
func UniqueVendorCount(view filter.View) int {
	seen := make(map[string]struct{})
	for _, rec := range view.Records {
		if rec.VendorName != "" {
			seen[rec.VendorName] = struct{}{}
		}
	}
	return len(seen)
}

// PendingCount counts records below the view's pending threshold.
func PendingCount(view filter.View) int {
	n := 0
	for _, rec := range view.Records {
		if view.IsPending(rec) {
			n++
		}
	}
	return n
}

// =============================================================================
// GROUP SUMS
// =============================================================================

// GroupTotal is the sum of one value field for one group.
type GroupTotal struct {
	Key   string  `json:"key"`
	Sum   float64 `json:"sum"`
	Count int     `json:"count"`
}

// GroupSum sums valueField per distinct value of keyField. Groups appear in
// first-seen order. Records with an empty key are skipped.
func GroupSum(view filter.View, keyField, valueField schema.Field) []GroupTotal {
	index := make(map[string]int)
	var sums []accumulator
	groups := []GroupTotal{}

	for _, rec := range view.Records {
		key := rec.Text(keyField)
		if key == "" {
			continue
		}
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, GroupTotal{Key: key})
			sums = append(sums, accumulator{})
		}
		sums[i].add(rec.Number(valueField))
		groups[i].Count++
	}

	for i := range groups {
		groups[i].Sum = sums[i].value()
	}
	return groups
}

// TopN returns the n largest groups by sum, largest first. Ties keep their
// input order. n <= 0 returns every group.
func TopN(groups []GroupTotal, n int) []GroupTotal {
	sorted := append([]GroupTotal{}, groups...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Sum > sorted[j].Sum
	})
	if n > 0 && len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// =============================================================================
// BUDGET VS ACTUAL
// =============================================================================

// BudgetLine compares committed PO value with payments for one project
// manager.
type BudgetLine struct {
	ProjectManager string  `json:"project_manager"`
	Budget         float64 `json:"budget"`
	Actual         float64 `json:"actual"`
	Variance       float64 `json:"variance"`
}

// BudgetVsActual groups by project manager, largest budget first.
func BudgetVsActual(view filter.View) []BudgetLine {
	index := make(map[string]int)
	var budgets, actuals []accumulator
	var names []string

	for _, rec := range view.Records {
		if rec.ProjectManager == "" {
			continue
		}
		i, ok := index[rec.ProjectManager]
		if !ok {
			i = len(names)
			index[rec.ProjectManager] = i
			names = append(names, rec.ProjectManager)
			budgets = append(budgets, accumulator{})
			actuals = append(actuals, accumulator{})
		}
		budgets[i].add(rec.POValue)
		actuals[i].add(rec.Amount)
	}

	lines := make([]BudgetLine, len(names))
	for i, name := range names {
		lines[i] = BudgetLine{
			ProjectManager: name,
			Budget:         budgets[i].value(),
			Actual:         actuals[i].value(),
			Variance:       difference(budgets[i], actuals[i]),
		}
	}
	sort.SliceStable(lines, func(i, j int) bool {
		return lines[i].Budget > lines[j].Budget
	})
	return lines
}

// =============================================================================
// DETAILS
// =============================================================================

// Details returns the view's records newest first. Records without a valid
// date sort last, in dataset order.
func Details(view filter.View) []*dataset.Record {
	out := append([]*dataset.Record{}, view.Records...)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.DateValid != b.DateValid {
			return a.DateValid
		}
		if !a.DateValid {
			return false
		}
		return a.Date.After(b.Date)
	})
	return out
}
