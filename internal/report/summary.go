package report

import (
	"time"

	"github.com/ginjaninja78/procurement-analytics/internal/filter"
	"github.com/ginjaninja78/procurement-analytics/internal/schema"
)

// Options tunes Summarize.
type Options struct {
	// Now is the reference time for aging. Zero means time.Now().
	Now time.Time

	// TopVendors is the size of the vendor concentration list.
	TopVendors int

	Aging AgingPolicy
}

// Summary bundles every view of the dashboard for one filtered view.
type Summary struct {
	Rows          int `json:"rows"`
	Totals        `json:"totals"`
	UniqueVendors int `json:"unique_vendors"`
	Pending       int `json:"pending"`

	SpendByPM  []GroupTotal  `json:"spend_by_project_manager"`
	TopVendors []GroupTotal  `json:"top_vendors"`
	Budget     []BudgetLine  `json:"budget_vs_actual"`
	Monthly    []MonthFlow   `json:"monthly_flow"`
	Undated    int           `json:"undated_rows"`
	Aging      []AgingBucket `json:"aging"`

	GeneratedAt time.Time `json:"generated_at"`
}

// Summarize computes every view for the dashboard.
func Summarize(view filter.View, opts Options) Summary {
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	top := opts.TopVendors
	if top == 0 {
		top = 10
	}

	return Summary{
		Rows:          view.Len(),
		Totals:        ComputeTotals(view),
		UniqueVendors: UniqueVendorCount(view),
		Pending:       PendingCount(view),
		SpendByPM:     GroupSum(view, schema.ProjectManager, schema.Amount),
		TopVendors:    TopN(GroupSum(view, schema.VendorName, schema.Amount), top),
		Budget:        BudgetVsActual(view),
		Monthly:       MonthlyFlow(view),
		Undated:       UndatedCount(view),
		Aging:         Aging(view, now, opts.Aging),
		GeneratedAt:   now,
	}
}
