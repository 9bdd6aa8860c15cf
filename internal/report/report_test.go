package report

import (
	"testing"
	"time"

	"github.com/ginjaninja78/procurement-analytics/internal/dataset"
	"github.com/ginjaninja78/procurement-analytics/internal/filter"
	"github.com/ginjaninja78/procurement-analytics/internal/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func trackerDataset() *dataset.Dataset {
	return &dataset.Dataset{
		Records: []dataset.Record{
			{PONumber: "PO-1", VendorName: "Acme", ProjectManager: "Alice", Amount: 100, POValue: 150, Percent: 66.7, Date: day(2026, 1, 15), DateValid: true},
			{PONumber: "PO-2", VendorName: "Beta", ProjectManager: "Bob", Amount: 200, POValue: 200, Percent: 100, Date: day(2026, 2, 10), DateValid: true},
			{PONumber: "PO-3", VendorName: "Acme", ProjectManager: "Alice", Amount: 50, POValue: 500, Percent: 10, Date: day(2025, 11, 1), DateValid: true},
			{PONumber: "PO-4", VendorName: "", ProjectManager: "Bob", Amount: 0, POValue: 80, Percent: 0},
		},
	}
}

func TestComputeTotals(t *testing.T) {
	view := filter.All(trackerDataset())

	totals := ComputeTotals(view)
	assert.Equal(t, 350.0, totals.Amount)
	assert.Equal(t, 930.0, totals.POValue)
	assert.Equal(t, 580.0, totals.Outstanding)
}

func TestComputeTotals_DecimalSum(t *testing.T) {
	ds := &dataset.Dataset{Records: []dataset.Record{{Amount: 0.1}, {Amount: 0.2}}}

	totals := ComputeTotals(filter.All(ds))
	assert.Equal(t, 0.3, totals.Amount)
}

func TestEmptyView(t *testing.T) {
	view := filter.All(&dataset.Dataset{})

	assert.Equal(t, Totals{}, ComputeTotals(view))
	assert.Zero(t, UniqueVendorCount(view))
	assert.Zero(t, PendingCount(view))
	assert.Empty(t, GroupSum(view, schema.VendorName, schema.Amount))
	assert.Empty(t, MonthlyFlow(view))
	assert.Empty(t, BudgetVsActual(view))
	assert.Empty(t, Details(view))

	buckets := Aging(view, now, AgingFresh)
	require.Len(t, buckets, 4)
	for _, b := range buckets {
		assert.Zero(t, b.Count)
	}
}

func TestCounts(t *testing.T) {
	view := filter.All(trackerDataset())

	assert.Equal(t, 2, UniqueVendorCount(view))
	assert.Equal(t, 3, PendingCount(view))

	custom := filter.Apply(trackerDataset(), filter.Criteria{Threshold: 50})
	assert.Equal(t, 2, PendingCount(custom))
}

func TestGroupSum(t *testing.T) {
	view := filter.All(trackerDataset())

	byPM := GroupSum(view, schema.ProjectManager, schema.Amount)
	assert.Equal(t, []GroupTotal{
		{Key: "Alice", Sum: 150, Count: 2},
		{Key: "Bob", Sum: 200, Count: 2},
	}, byPM)

	byVendor := GroupSum(view, schema.VendorName, schema.POValue)
	assert.Equal(t, []GroupTotal{
		{Key: "Acme", Sum: 650, Count: 2},
		{Key: "Beta", Sum: 200, Count: 1},
	}, byVendor)
}

func TestTopN(t *testing.T) {
	groups := []GroupTotal{
		{Key: "a", Sum: 10},
		{Key: "b", Sum: 30},
		{Key: "c", Sum: 10},
		{Key: "d", Sum: 20},
	}

	assert.Equal(t, []string{"b", "d"}, keys(TopN(groups, 2)))
	assert.Equal(t, []string{"b", "d", "a", "c"}, keys(TopN(groups, 0)))
	assert.Equal(t, []string{"b", "d", "a", "c"}, keys(TopN(groups, 10)))
	assert.Equal(t, "a", groups[0].Key, "input must not be reordered")
}

func keys(groups []GroupTotal) []string {
	var out []string
	for _, g := range groups {
		out = append(out, g.Key)
	}
	return out
}

func TestMonthlyFlow(t *testing.T) {
	ds := &dataset.Dataset{
		Records: []dataset.Record{
			{Amount: 200, POValue: 200, Date: day(2026, 2, 10), DateValid: true},
			{Amount: 100, POValue: 150, Date: day(2026, 1, 15), DateValid: true},
			{Amount: 999, POValue: 999},
		},
	}
	view := filter.All(ds)

	flows := MonthlyFlow(view)
	assert.Equal(t, []MonthFlow{
		{Month: "2026-01", Paid: 100, POValue: 150, Outstanding: 50, Count: 1},
		{Month: "2026-02", Paid: 200, POValue: 200, Outstanding: 0, Count: 1},
	}, flows)
	assert.Equal(t, 1, UndatedCount(view))
}

func TestAgeDays(t *testing.T) {
	ref := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)

	assert.Equal(t, 0, AgeDays(ref, ref))
	assert.Equal(t, 0, AgeDays(ref, day(2026, 3, 1)))
	assert.Equal(t, 1, AgeDays(ref, day(2026, 2, 28)))
	assert.Equal(t, -1, AgeDays(ref, day(2026, 3, 2)))
}

func TestAging(t *testing.T) {
	view := filter.All(trackerDataset())

	buckets := Aging(view, now, AgingFresh)
	assert.Equal(t, []AgingBucket{
		{Label: "0-30 Days", Count: 1, POValue: 80},
		{Label: "31-60 Days", Count: 1, POValue: 150},
		{Label: "61-90 Days", Count: 0, POValue: 0},
		{Label: "90+ Days", Count: 1, POValue: 500},
	}, buckets)

	total := 0
	for _, b := range buckets {
		total += b.Count
	}
	assert.Equal(t, PendingCount(view), total)
}

func TestAging_SeparateUndated(t *testing.T) {
	view := filter.All(trackerDataset())

	buckets := Aging(view, now, AgingSeparate)
	require.Len(t, buckets, 5)
	assert.Equal(t, AgingBucket{Label: UndatedLabel, Count: 1, POValue: 80}, buckets[4])
	assert.Zero(t, buckets[0].Count)
}

func TestAging_Boundaries(t *testing.T) {
	tests := []struct {
		age  int
		want string
	}{
		{-5, "0-30 Days"},
		{30, "0-30 Days"},
		{31, "31-60 Days"},
		{60, "31-60 Days"},
		{61, "61-90 Days"},
		{90, "61-90 Days"},
		{91, "90+ Days"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, bucketFor(tt.age), "age %d", tt.age)
	}
}

func TestParseAgingPolicy(t *testing.T) {
	p, err := ParseAgingPolicy("")
	require.NoError(t, err)
	assert.Equal(t, AgingFresh, p)

	p, err = ParseAgingPolicy(" Separate ")
	require.NoError(t, err)
	assert.Equal(t, AgingSeparate, p)

	_, err = ParseAgingPolicy("later")
	assert.Error(t, err)
}

func TestBudgetVsActual(t *testing.T) {
	view := filter.All(trackerDataset())

	assert.Equal(t, []BudgetLine{
		{ProjectManager: "Alice", Budget: 650, Actual: 150, Variance: 500},
		{ProjectManager: "Bob", Budget: 280, Actual: 200, Variance: 80},
	}, BudgetVsActual(view))
}

func TestDetails(t *testing.T) {
	view := filter.All(trackerDataset())

	var got []string
	for _, rec := range Details(view) {
		got = append(got, rec.PONumber)
	}
	assert.Equal(t, []string{"PO-2", "PO-1", "PO-3", "PO-4"}, got)
	assert.Equal(t, "PO-1", view.Records[0].PONumber)
}

func TestSummarize(t *testing.T) {
	view := filter.Apply(trackerDataset(), filter.Criteria{ProjectManager: "Alice"})

	s := Summarize(view, Options{Now: now, TopVendors: 1})
	assert.Equal(t, 2, s.Rows)
	assert.Equal(t, 150.0, s.Totals.Amount)
	assert.Equal(t, 1, s.UniqueVendors)
	assert.Equal(t, 2, s.Pending)
	assert.Equal(t, []GroupTotal{{Key: "Acme", Sum: 150, Count: 2}}, s.TopVendors)
	assert.Len(t, s.Monthly, 2)
	assert.Zero(t, s.Undated)
	assert.Equal(t, now, s.GeneratedAt)
}
