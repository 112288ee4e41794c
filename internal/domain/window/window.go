// Package window selects records by timestamp.
//
// Two policies exist and are not interchangeable: the accuracy path keeps
// both bounds (Inclusive), the pairwise path drops the end bound (HalfOpen).
// A record stamped exactly at a boundary is classified differently by each.
package window

import (
	"math"

	"github.com/okian/benchboard/internal/domain/model"
)

// Unbounded limits, for callers that do not restrict one side.
const (
	MinTimestamp int64 = 0
	MaxTimestamp int64 = math.MaxInt64
)

// Window is a timestamp range with a bound policy.
type Window struct {
	Start     int64
	End       int64
	inclusive bool
}

// Inclusive keeps start <= ts <= end.
func Inclusive(start, end int64) Window {
	return Window{Start: start, End: end, inclusive: true}
}

// HalfOpen keeps start <= ts < end.
func HalfOpen(start, end int64) Window {
	return Window{Start: start, End: end}
}

// Contains reports whether ts falls inside the window. Fractional
// timestamps are compared as they are.
func (w Window) Contains(ts float64) bool {
	if ts < float64(w.Start) {
		return false
	}
	if w.inclusive {
		return ts <= float64(w.End)
	}
	return ts < float64(w.End)
}

// Filter returns the records inside w, preserving order. The input is not modified.
func Filter(records []model.PerformanceRecord, w Window) []model.PerformanceRecord {
	out := make([]model.PerformanceRecord, 0, len(records))
	for i := range records {
		if w.Contains(records[i].Timestamp) {
			out = append(out, records[i])
		}
	}
	return out
}
