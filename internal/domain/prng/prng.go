// Package prng provides the seeded generator used to order ELO matches.
package prng

// LCG parameters. The period is at most lcgModulus values.
const (
	lcgMultiplier = 9301
	lcgIncrement  = 49297
	lcgModulus    = 233280
)

// DefaultSeed is the seed the ELO engine uses unless told otherwise.
const DefaultSeed = 42

// Source is a linear congruential generator producing values in [0,1).
// A Source is not safe for concurrent use; the sequence can only be
// restarted by constructing a new Source.
type Source struct {
	state int64
}

// New returns a Source seeded with seed.
func New(seed int64) *Source {
	return &Source{state: seed}
}

// Next advances the generator and returns the next value in [0,1).
func (s *Source) Next() float64 {
	// Go's % keeps the dividend's sign; fold negatives back into range.
	s.state = (s.state*lcgMultiplier + lcgIncrement) % lcgModulus
	if s.state < 0 {
		s.state += lcgModulus
	}
	return float64(s.state) / lcgModulus
}
