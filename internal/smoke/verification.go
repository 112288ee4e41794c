package smoke

import (
	"fmt"
	"math"

	"github.com/okian/benchboard/internal/domain/elo"
	"github.com/okian/benchboard/internal/domain/score"
	"github.com/okian/benchboard/internal/domain/types"
)

const tolerance = 1e-9

// Row is the part of a leaderboard row the invariants look at.
type Row struct {
	Model        string
	Rank         *int
	Contaminated bool
	Score        float64
}

// RowsFromJSON extracts rows from decoded leaderboard objects, reading the
// sort key from field.
func RowsFromJSON(objs []map[string]any, field string) ([]Row, error) {
	out := make([]Row, 0, len(objs))
	for i, obj := range objs {
		var r Row
		var ok bool
		if r.Model, ok = obj[types.FieldModel].(string); !ok {
			return nil, fmt.Errorf("row %d: missing %q", i, types.FieldModel)
		}
		if r.Contaminated, ok = obj[types.FieldContaminated].(bool); !ok {
			return nil, fmt.Errorf("row %d: missing %q", i, types.FieldContaminated)
		}
		if r.Score, ok = obj[field].(float64); !ok {
			return nil, fmt.Errorf("row %d: missing %q", i, field)
		}
		switch rank := obj[types.FieldRank].(type) {
		case nil:
		case float64:
			n := int(rank)
			r.Rank = &n
		default:
			return nil, fmt.Errorf("row %d: rank has type %T", i, rank)
		}
		out = append(out, r)
	}
	return out, nil
}

// CheckRanked verifies ordering and rank assignment of a leaderboard.
func CheckRanked(board string, rows []Row) []string {
	var violations []string
	next := 1
	for i, r := range rows {
		if i > 0 && r.Score > rows[i-1].Score+tolerance {
			violations = append(violations, fmt.Sprintf("%s: row %d (%s) scores %v above row %d", board, i, r.Model, r.Score, i-1))
		}
		if r.Score != score.Missing && !isRounded(r.Score) {
			violations = append(violations, fmt.Sprintf("%s: %s score %v is not rounded to one decimal", board, r.Model, r.Score))
		}
		switch {
		case r.Contaminated && r.Rank != nil:
			violations = append(violations, fmt.Sprintf("%s: contaminated %s has rank %d", board, r.Model, *r.Rank))
		case !r.Contaminated && r.Rank == nil:
			violations = append(violations, fmt.Sprintf("%s: %s has no rank", board, r.Model))
		case !r.Contaminated:
			if *r.Rank != next {
				violations = append(violations, fmt.Sprintf("%s: %s has rank %d, want %d", board, r.Model, *r.Rank, next))
			}
			next++
		}
	}
	return violations
}

// CheckWinrates verifies that every edge has a mirror with the same match
// count and a complementary win rate.
func CheckWinrates(edges []types.WinrateEdge) []string {
	type pair struct{ a, b string }
	index := make(map[pair]types.WinrateEdge, len(edges))
	for _, e := range edges {
		index[pair{e.Model, e.Opponent}] = e
	}

	var violations []string
	for _, e := range edges {
		if e.Matches <= 0 {
			violations = append(violations, fmt.Sprintf("winrates: %s vs %s has %d matches", e.Model, e.Opponent, e.Matches))
		}
		if e.Winrate < 0 || e.Winrate > 1 {
			violations = append(violations, fmt.Sprintf("winrates: %s vs %s win rate %v out of range", e.Model, e.Opponent, e.Winrate))
		}
		mirror, ok := index[pair{e.Opponent, e.Model}]
		if !ok {
			violations = append(violations, fmt.Sprintf("winrates: %s vs %s has no mirror edge", e.Model, e.Opponent))
			continue
		}
		if mirror.Matches != e.Matches {
			violations = append(violations, fmt.Sprintf("winrates: %s vs %s played %d, mirror %d", e.Model, e.Opponent, e.Matches, mirror.Matches))
		}
		// Both sides are rounded separately, so the sum may be off by one step.
		if math.Abs(e.Winrate+mirror.Winrate-1) > 0.1+tolerance {
			violations = append(violations, fmt.Sprintf("winrates: %s vs %s rates %v and %v do not complement", e.Model, e.Opponent, e.Winrate, mirror.Winrate))
		}
	}
	return violations
}

// CheckRatings verifies that ELO updates were zero-sum: every model starts
// at the default rating, so the total is unchanged up to display rounding.
func CheckRatings(ratings []elo.Rating) []string {
	if len(ratings) == 0 {
		return nil
	}
	var sum float64
	for _, r := range ratings {
		sum += r.Elo
	}
	want := elo.DefaultRating * float64(len(ratings))
	if math.Abs(sum-want) > 0.05*float64(len(ratings))+tolerance {
		return []string{fmt.Sprintf("ratings: total %v, want %v", sum, want)}
	}
	return nil
}

func isRounded(v float64) bool {
	return math.Abs(v*10-math.Round(v*10)) < 1e-6
}
