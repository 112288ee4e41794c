// Package display derives the timeline marks and table column descriptors
// the leaderboard front end renders.
package display

import (
	"sort"
	"time"

	"github.com/okian/benchboard/internal/domain/model"
	"github.com/okian/benchboard/internal/domain/types"
)

// DefaultReference is 2024-01-01T00:00:00Z in epoch milliseconds.
const DefaultReference int64 = 1704067200000

// secondsCutoff separates epoch seconds from epoch milliseconds.
const secondsCutoff = 10_000_000_000

// Label formats an epoch-millisecond instant as M/D/YYYY in UTC.
func Label(ms int64) string {
	return time.UnixMilli(ms).UTC().Format("1/2/2006")
}

// MarksFromModels returns one mark per distinct release date, then the
// reference date, ascending. The reference is not deduplicated: a model
// released on the reference date yields two equal marks.
func MarksFromModels(models []model.ModelDescriptor, reference int64) []types.DateMark {
	seen := make(map[int64]struct{}, len(models))
	values := make([]int64, 0, len(models)+1)
	for _, m := range models {
		if !m.HasReleaseDate() {
			continue
		}
		if _, ok := seen[m.ReleaseDate]; ok {
			continue
		}
		seen[m.ReleaseDate] = struct{}{}
		values = append(values, m.ReleaseDate)
	}
	values = append(values, reference)
	sort.SliceStable(values, func(i, j int) bool { return values[i] < values[j] })

	out := make([]types.DateMark, 0, len(values))
	for _, v := range values {
		out = append(out, types.DateMark{Value: v, Label: Label(v)})
	}
	return out
}

// MarksFromTimestamps returns one mark per timestamp, in input order. Values
// below 10^10 are read as seconds, the rest as milliseconds; the mark keeps
// the raw value.
func MarksFromTimestamps(timestamps []int64) []types.DateMark {
	out := make([]types.DateMark, 0, len(timestamps))
	for _, ts := range timestamps {
		ms := ts
		if ts < secondsCutoff {
			ms = ts * 1000
		}
		out = append(out, types.DateMark{Value: ts, Label: Label(ms)})
	}
	return out
}
