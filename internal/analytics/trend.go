package analytics

import (
	"sort"
	"time"
)

// bucketByDay counts occurrences per calendar day across the range, drops
// the empty days and returns the series sorted ascending by date. Times
// outside the range never produce a bucket.
func bucketByDay(r DateRange, times []time.Time) []TrendPoint {
	buckets := make(map[string]int)
	for d := r.Start; !d.After(r.End); d = d.AddDate(0, 0, 1) {
		buckets[d.Format(dayFormat)] = 0
	}
	for _, t := range times {
		if !r.Contains(t) {
			continue
		}
		key := t.Format(dayFormat)
		if _, ok := buckets[key]; ok {
			buckets[key]++
		}
	}
	out := make([]TrendPoint, 0, len(buckets))
	for date, count := range buckets {
		if count == 0 {
			continue
		}
		out = append(out, TrendPoint{Date: date, Count: count})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}
