package elo

import (
	"github.com/okian/benchboard/internal/domain/model"
	"github.com/okian/benchboard/internal/domain/pairwise"
	"github.com/okian/benchboard/internal/domain/ranking"
	"github.com/okian/benchboard/internal/domain/types"
)

// Result bundles the win-rate table and the ratings computed from the same
// restricted record set.
type Result struct {
	Winrates []types.WinrateEdge `json:"winrates"`
	Ratings  []Rating            `json:"elo"`
}

// Compute restricts records to the listed models and [start, end), then
// derives win rates and ratings from that one set.
func Compute(records []model.PerformanceRecord, models []model.ModelDescriptor, start, end int64, opts ...Option) Result {
	restricted := pairwise.Restrict(records, models, start, end)
	return Result{
		Winrates: pairwise.FromRestricted(restricted),
		Ratings:  NewEngine(opts...).Rate(restricted),
	}
}

// BuildLeaderboard returns the ELO leaderboard in rating order, ranked with
// contaminated models left unnumbered.
func BuildLeaderboard(records []model.PerformanceRecord, models []model.ModelDescriptor, start, end int64, opts ...Option) []types.EloRow {
	return Rows(Compute(records, models, start, end, opts...).Ratings, models, start)
}

// Rows maps ratings to leaderboard rows without reordering them.
func Rows(ratings []Rating, models []model.ModelDescriptor, start int64) []types.EloRow {
	index := model.Index(models)
	rows := make([]types.EloRow, 0, len(ratings))
	for _, r := range ratings {
		row := types.EloRow{
			Standing: ranking.Standing{Contaminated: ranking.Contaminated(index[r.Model], start)},
			Model:    r.Model,
			ELO:      r.Elo,
		}
		for _, t := range r.Topics {
			row.Topics = append(row.Topics, types.TopicScore{Topic: t.Topic, Elo: t.Elo})
		}
		rows = append(rows, row)
	}
	ranking.Assign(rows)
	return rows
}
