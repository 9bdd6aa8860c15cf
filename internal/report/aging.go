package report

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/ginjaninja78/procurement-analytics/internal/dataset"
	"github.com/ginjaninja78/procurement-analytics/internal/filter"
)

// AgingPolicy decides how pending records without a valid date are aged.
type AgingPolicy string

const (
	// AgingFresh gives undated records an age of 0 days, placing them in the
	// first bucket.
	AgingFresh AgingPolicy = "fresh"

	// AgingSeparate puts undated records in their own bucket after the four
	// age ranges.
	AgingSeparate AgingPolicy = "separate"
)

// ParseAgingPolicy validates a policy name. An empty name selects AgingFresh.
func ParseAgingPolicy(name string) (AgingPolicy, error) {
	switch AgingPolicy(strings.ToLower(strings.TrimSpace(name))) {
	case "", AgingFresh:
		return AgingFresh, nil
	case AgingSeparate:
		return AgingSeparate, nil
	default:
		return "", fmt.Errorf("unknown undated aging policy %q (want fresh or separate)", name)
	}
}

// UndatedLabel is the bucket label for undated records under AgingSeparate.
const UndatedLabel = "Undated"

// bucketRange is one fixed age range; max < 0 means unbounded.
type bucketRange struct {
	label string
	max   int
}

var bucketRanges = []bucketRange{
	{"0-30 Days", 30},
	{"31-60 Days", 60},
	{"61-90 Days", 90},
	{"90+ Days", -1},
}

// AgingBucket is the count and committed value of pending POs in one age
// range.
type AgingBucket struct {
	Label   string  `json:"label"`
	Count   int     `json:"count"`
	POValue float64 `json:"po_value"`
}

// AgedRecord is one pending record with its computed age.
type AgedRecord struct {
	Record  *dataset.Record `json:"-"`
	AgeDays int             `json:"age_days"`
	Bucket  string          `json:"bucket"`
}

// AgeDays returns the whole days between date and now, rounded down. Future
// dates give negative ages.
func AgeDays(now, date time.Time) int {
	return int(math.Floor(now.Sub(date).Hours() / 24))
}

func bucketFor(days int) string {
	for _, b := range bucketRanges {
		if b.max < 0 || days <= b.max {
			return b.label
		}
	}
	return bucketRanges[len(bucketRanges)-1].label
}

// AgingRecords ages every pending record of the view.
func AgingRecords(view filter.View, now time.Time, policy AgingPolicy) []AgedRecord {
	var aged []AgedRecord
	for _, rec := range view.Records {
		if !view.IsPending(rec) {
			continue
		}

		entry := AgedRecord{Record: rec}
		switch {
		case rec.DateValid:
			entry.AgeDays = AgeDays(now, rec.Date)
			entry.Bucket = bucketFor(entry.AgeDays)
		case policy == AgingSeparate:
			entry.Bucket = UndatedLabel
		default:
			entry.Bucket = bucketFor(0)
		}
		aged = append(aged, entry)
	}
	return aged
}

// Aging buckets the pending records of the view. The four age ranges are
// always returned in order, even when empty; AgingSeparate adds an Undated
// bucket. Bucket counts sum to PendingCount(view).
func Aging(view filter.View, now time.Time, policy AgingPolicy) []AgingBucket {
	labels := make([]string, 0, len(bucketRanges)+1)
	for _, b := range bucketRanges {
		labels = append(labels, b.label)
	}
	if policy == AgingSeparate {
		labels = append(labels, UndatedLabel)
	}

	index := make(map[string]int, len(labels))
	sums := make([]accumulator, len(labels))
	buckets := make([]AgingBucket, len(labels))
	for i, label := range labels {
		index[label] = i
		buckets[i].Label = label
	}

	for _, entry := range AgingRecords(view, now, policy) {
		i := index[entry.Bucket]
		buckets[i].Count++
		sums[i].add(entry.Record.POValue)
	}

	for i := range buckets {
		buckets[i].POValue = sums[i].value()
	}
	return buckets
}
