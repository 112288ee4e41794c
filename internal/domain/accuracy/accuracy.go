// Package accuracy builds the pass@1 leaderboard.
package accuracy

import (
	"sort"
	"time"

	"github.com/okian/benchboard/internal/domain/model"
	"github.com/okian/benchboard/internal/domain/ranking"
	"github.com/okian/benchboard/internal/domain/score"
	"github.com/okian/benchboard/internal/domain/types"
	"github.com/okian/benchboard/internal/domain/window"
)

// DateLayout formats release dates in cutoff labels.
const DateLayout = "1/2/2006"

// Breakdown is a model's pass@1 per category, rounded to one decimal.
// Categories without data are absent.
type Breakdown struct {
	Average score.Optional
	Easy    score.Optional
	Medium  score.Optional
	Hard    score.Optional
	Exec    score.Optional
	Cot     score.Optional
}

// PassAtOne aggregates the records of one model stamped inside [start, end].
func PassAtOne(records []model.PerformanceRecord, modelRepr string, start, end int64) Breakdown {
	w := window.Inclusive(start, end)

	var all, easy, medium, hard, exec, cot []float64
	for i := range records {
		r := &records[i]
		if r.Model != modelRepr || !w.Contains(r.Timestamp) {
			continue
		}
		if v, ok := r.Pass1.Get(); ok {
			all = append(all, v)
			switch r.Difficulty {
			case model.DifficultyEasy:
				easy = append(easy, v)
			case model.DifficultyMedium:
				medium = append(medium, v)
			case model.DifficultyHard:
				hard = append(hard, v)
			}
		}
		if v, ok := r.ExecPass1.Get(); ok {
			exec = append(exec, v)
		}
		if v, ok := r.CotPass1.Get(); ok {
			cot = append(cot, v)
		}
	}

	return Breakdown{
		Average: score.Mean(all).Round1(),
		Easy:    score.Mean(easy).Round1(),
		Medium:  score.Mean(medium).Round1(),
		Hard:    score.Mean(hard).Round1(),
		Exec:    score.Mean(exec).Round1(),
		Cot:     score.Mean(cot).Round1(),
	}
}

// DetectSchema returns SchemaCOT when any record carries a chain-of-thought score.
func DetectSchema(records []model.PerformanceRecord) types.Schema {
	for i := range records {
		if records[i].CotPass1.Valid() {
			return types.SchemaCOT
		}
	}
	return types.SchemaStandard
}

// CutoffLabel renders the tooltip for a model's release date. Release dates
// are epoch milliseconds.
func CutoffLabel(releaseDate int64) string {
	return types.CutoffLabelPrefix + time.UnixMilli(releaseDate).UTC().Format(DateLayout)
}

// BuildLeaderboard returns one row per model with a release date, sorted by
// Pass@1 descending and ranked with contaminated rows left unnumbered.
func BuildLeaderboard(records []model.PerformanceRecord, models []model.ModelDescriptor, start, end int64) []types.AccuracyRow {
	schema := DetectSchema(records)

	rows := make([]types.AccuracyRow, 0, len(models))
	for _, m := range models {
		if !m.HasReleaseDate() {
			continue
		}
		b := PassAtOne(records, m.ModelRepr, start, end)
		row := types.AccuracyRow{
			Standing:    ranking.Standing{Contaminated: ranking.Contaminated(m, start)},
			Schema:      schema,
			Model:       m.ModelRepr,
			CutoffLabel: CutoffLabel(m.ReleaseDate),
		}
		if schema == types.SchemaCOT {
			row.Pass1 = b.Cot.OrMissing()
			row.Pass1NoCOT = b.Exec.OrMissing()
		} else {
			row.Pass1 = b.Average.OrMissing()
			row.Easy = b.Easy.OrMissing()
			row.Medium = b.Medium.OrMissing()
			row.Hard = b.Hard.OrMissing()
		}
		rows = append(rows, row)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Pass1 > rows[j].Pass1
	})
	ranking.Assign(rows)
	return rows
}
