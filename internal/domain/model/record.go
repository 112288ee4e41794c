// Package model contains the engine's input types.
package model

import "github.com/okian/benchboard/internal/domain/score"

// Difficulty tags a problem's difficulty bucket.
type Difficulty string

// Known difficulties. The zero value means untagged.
const (
	DifficultyNone   Difficulty = ""
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// PerformanceRecord is one evaluation result of a model on one item.
// Records are treated as immutable by every consumer.
type PerformanceRecord struct {
	Model     string // joins ModelDescriptor.ModelRepr
	ItemID    string // post or problem id shared across models
	Timestamp float64 // epoch seconds or milliseconds, same unit as query windows; may be fractional
	Reward    float64

	Pass1     score.Optional // "pass@1"
	ExecPass1 score.Optional // "Pass@1", the non chain-of-thought variant
	CotPass1  score.Optional // "Pass@1-COT"

	Difficulty Difficulty
	Platform   string
	Topic      string
}

// ModelDescriptor carries a model's metadata.
type ModelDescriptor struct {
	ModelRepr   string
	ReleaseDate int64 // epoch; zero means unknown
	DisplayName string
	Link        string
}

// HasReleaseDate reports whether the release date is known.
func (m ModelDescriptor) HasReleaseDate() bool {
	return m.ReleaseDate != 0
}

// Index maps ModelRepr to descriptor. Later duplicates win.
func Index(models []ModelDescriptor) map[string]ModelDescriptor {
	out := make(map[string]ModelDescriptor, len(models))
	for _, m := range models {
		out[m.ModelRepr] = m
	}
	return out
}
