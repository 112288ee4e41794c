// Package pairwise turns per-item results into head-to-head matches and
// tallies the win rates between models.
package pairwise

import (
	"github.com/okian/benchboard/internal/domain/model"
	"github.com/okian/benchboard/internal/domain/window"
)

// Group is every record produced for one item, in record order.
type Group struct {
	ItemID  string
	Records []model.PerformanceRecord
}

// Topic is the topic of the group's first record.
func (g Group) Topic() string {
	if len(g.Records) == 0 {
		return ""
	}
	return g.Records[0].Topic
}

// Restrict keeps the records of the listed models stamped inside [start, end).
func Restrict(records []model.PerformanceRecord, models []model.ModelDescriptor, start, end int64) []model.PerformanceRecord {
	known := make(map[string]struct{}, len(models))
	for _, m := range models {
		known[m.ModelRepr] = struct{}{}
	}
	w := window.HalfOpen(start, end)
	out := make([]model.PerformanceRecord, 0, len(records))
	for i := range records {
		if _, ok := known[records[i].Model]; !ok {
			continue
		}
		if w.Contains(records[i].Timestamp) {
			out = append(out, records[i])
		}
	}
	return out
}

// GroupByItem groups records by ItemID. Groups come out in the order their
// item was first seen.
func GroupByItem(records []model.PerformanceRecord) []Group {
	index := make(map[string]int)
	var groups []Group
	for _, r := range records {
		i, ok := index[r.ItemID]
		if !ok {
			i = len(groups)
			index[r.ItemID] = i
			groups = append(groups, Group{ItemID: r.ItemID})
		}
		groups[i].Records = append(groups[i].Records, r)
	}
	return groups
}

// Comparable drops groups with fewer than two records.
func Comparable(groups []Group) []Group {
	out := make([]Group, 0, len(groups))
	for _, g := range groups {
		if len(g.Records) >= 2 {
			out = append(out, g)
		}
	}
	return out
}

// Outcome scores a reward comparison: 1/0 for a strict win, 0.5 each on a tie.
func Outcome(rewardA, rewardB float64) (scoreA, scoreB float64) {
	switch {
	case rewardA > rewardB:
		return 1, 0
	case rewardA < rewardB:
		return 0, 1
	default:
		return 0.5, 0.5
	}
}

// Models lists the distinct models of records in first-appearance order.
func Models(records []model.PerformanceRecord) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, r := range records {
		if _, ok := seen[r.Model]; ok {
			continue
		}
		seen[r.Model] = struct{}{}
		out = append(out, r.Model)
	}
	return out
}
