package pairwise

import (
	"github.com/okian/benchboard/internal/domain/model"
	"github.com/okian/benchboard/internal/domain/score"
	"github.com/okian/benchboard/internal/domain/types"
)

// Table holds directional win and match counts between models.
type Table struct {
	wins    map[string]map[string]float64
	matches map[string]map[string]int
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{
		wins:    make(map[string]map[string]float64),
		matches: make(map[string]map[string]int),
	}
}

// Record adds one match between a and b with their rewards.
func (t *Table) Record(a, b string, rewardA, rewardB float64) {
	sa, sb := Outcome(rewardA, rewardB)
	t.addMatch(a, b, sa)
	t.addMatch(b, a, sb)
}

func (t *Table) addMatch(m, opp string, won float64) {
	if t.wins[m] == nil {
		t.wins[m] = make(map[string]float64)
		t.matches[m] = make(map[string]int)
	}
	t.wins[m][opp] += won
	t.matches[m][opp]++
}

// Wins returns how many matches m won against opp, ties counting half.
func (t *Table) Wins(m, opp string) float64 { return t.wins[m][opp] }

// Matches returns how many matches m played against opp.
func (t *Table) Matches(m, opp string) int { return t.matches[m][opp] }

// Edges emits one edge per ordered pair of distinct models that met at
// least once, walking models in the given order.
func (t *Table) Edges(models []string) []types.WinrateEdge {
	var out []types.WinrateEdge
	for _, m := range models {
		for _, opp := range models {
			if m == opp {
				continue
			}
			n := t.Matches(m, opp)
			if n == 0 {
				continue
			}
			out = append(out, types.WinrateEdge{
				Model:    m,
				Opponent: opp,
				Winrate:  score.Round1(t.Wins(m, opp) / float64(n)),
				Matches:  n,
			})
		}
	}
	return out
}

// Tally plays every unordered pair inside each group once. Pairs of two
// records from the same model are skipped.
func Tally(groups []Group) *Table {
	t := NewTable()
	for _, g := range groups {
		for i := 0; i < len(g.Records); i++ {
			for j := i + 1; j < len(g.Records); j++ {
				a, b := g.Records[i], g.Records[j]
				if a.Model == b.Model {
					continue
				}
				t.Record(a.Model, b.Model, a.Reward, b.Reward)
			}
		}
	}
	return t
}

// Winrates computes the win-rate edges of the listed models over [start, end).
func Winrates(records []model.PerformanceRecord, models []model.ModelDescriptor, start, end int64) []types.WinrateEdge {
	restricted := Restrict(records, models, start, end)
	return FromRestricted(restricted)
}

// FromRestricted computes win-rate edges from records already restricted
// to a window and model list.
func FromRestricted(restricted []model.PerformanceRecord) []types.WinrateEdge {
	return Tally(Comparable(GroupByItem(restricted))).Edges(Models(restricted))
}
