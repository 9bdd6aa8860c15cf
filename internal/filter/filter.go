// Package filter selects the subset of a dataset that one report pass works
// on. Views never copy or mutate records.
package filter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ginjaninja78/procurement-analytics/internal/dataset"
)

// DefaultPendingThreshold is the payment percentage below which a PO is
// pending. It sits under 100 to absorb rounding in spreadsheet percentages.
const DefaultPendingThreshold = 99.9

// Status is the payment-status bucket filter.
type Status string

const (
	StatusAll     Status = "all"
	StatusPaid    Status = "paid"
	StatusPending Status = "pending"
)

// ParseStatus validates a status name. An empty name selects StatusAll.
func ParseStatus(name string) (Status, error) {
	switch Status(strings.ToLower(strings.TrimSpace(name))) {
	case "", StatusAll:
		return StatusAll, nil
	case StatusPaid:
		return StatusPaid, nil
	case StatusPending:
		return StatusPending, nil
	default:
		return "", fmt.Errorf("unknown payment status %q (want all, paid or pending)", name)
	}
}

// Criteria are the predicates of one view. Zero values match everything.
type Criteria struct {
	// ProjectManager must equal the record's project manager exactly.
	ProjectManager string

	// VendorContains is a case-insensitive substring of the vendor name.
	VendorContains string

	Status Status

	// Threshold separates paid from pending. Zero selects the default.
	Threshold float64
}

func (c Criteria) threshold() float64 {
	if c.Threshold == 0 {
		return DefaultPendingThreshold
	}
	return c.Threshold
}

// View is a filtered, read-only selection of dataset records.
type View struct {
	Dataset  *dataset.Dataset
	Criteria Criteria
	Records  []*dataset.Record
}

// Len returns the number of records in the view.
func (v View) Len() int {
	return len(v.Records)
}

// Threshold returns the pending threshold the view was built with.
func (v View) Threshold() float64 {
	return v.Criteria.threshold()
}

// IsPending reports whether a record is below the view's pending threshold.
func (v View) IsPending(r *dataset.Record) bool {
	return r.Percent < v.Threshold()
}

// All returns an unfiltered view of the dataset.
func All(ds *dataset.Dataset) View {
	return Apply(ds, Criteria{})
}

// Apply builds the view of ds selected by c, preserving dataset order.
func Apply(ds *dataset.Dataset, c Criteria) View {
	view := View{Dataset: ds, Criteria: c}
	if ds == nil {
		return view
	}

	needle := strings.ToLower(c.VendorContains)
	threshold := c.threshold()

	view.Records = make([]*dataset.Record, 0, len(ds.Records))
	for i := range ds.Records {
		rec := &ds.Records[i]

		if c.ProjectManager != "" && rec.ProjectManager != c.ProjectManager {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(rec.VendorName), needle) {
			continue
		}
		switch c.Status {
		case StatusPaid:
			if rec.Percent < threshold {
				continue
			}
		case StatusPending:
			if rec.Percent >= threshold {
				continue
			}
		}

		view.Records = append(view.Records, rec)
	}

	return view
}

// ProjectManagers returns the distinct, non-empty project managers of ds in
// sorted order.
func ProjectManagers(ds *dataset.Dataset) []string {
	seen := make(map[string]bool)
	var managers []string
	for _, rec := range ds.Records {
		if rec.ProjectManager == "" || seen[rec.ProjectManager] {
			continue
		}
		seen[rec.ProjectManager] = true
		managers = append(managers, rec.ProjectManager)
	}
	sort.Strings(managers)
	return managers
}
