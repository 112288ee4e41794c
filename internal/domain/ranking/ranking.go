// Package ranking assigns leaderboard positions with contamination
// suppression: contaminated rows stay in place but take no rank number.
package ranking

import "github.com/okian/benchboard/internal/domain/model"

// Standing is the rank state embedded in every leaderboard row.
type Standing struct {
	Rank         *int // nil when Contaminated
	Contaminated bool
}

// Position returns the standing for in-place updates.
func (s *Standing) Position() *Standing { return s }

// RankValue returns the rank and whether the row is ranked.
func (s Standing) RankValue() (int, bool) {
	if s.Rank == nil {
		return 0, false
	}
	return *s.Rank, true
}

// Ranked is implemented by pointers to rows embedding Standing.
type Ranked interface {
	Position() *Standing
}

// Assign numbers rows that are already in display order. Non-contaminated
// rows receive 1, 2, 3, ... in sequence; contaminated rows receive nil and
// do not consume a number.
func Assign[T any, PT interface {
	*T
	Ranked
}](rows []T) {
	next := 1
	for i := range rows {
		s := PT(&rows[i]).Position()
		if s.Contaminated {
			s.Rank = nil
			continue
		}
		rank := next
		s.Rank = &rank
		next++
	}
}

// Contaminated reports whether m was released at or after the window start.
// A model without a release date is never contaminated.
func Contaminated(m model.ModelDescriptor, start int64) bool {
	return m.HasReleaseDate() && m.ReleaseDate >= start
}
