package elo

import "github.com/okian/benchboard/internal/domain/prng"

// Defaults for a new Engine.
const (
	DefaultKFactor = 32
	DefaultRating  = 1000
	DefaultSeed    = prng.DefaultSeed
)

// Option configures an Engine.
type Option func(*Engine)

// WithKFactor sets the update step. Non-positive values are ignored.
func WithKFactor(k float64) Option {
	return func(e *Engine) {
		if k > 0 {
			e.k = k
		}
	}
}

// WithTopics sets the topics that get their own rating table.
func WithTopics(topics ...string) Option {
	return func(e *Engine) {
		e.topics = append([]string(nil), topics...)
	}
}

// WithSeed sets the seed of the match-order generator.
func WithSeed(seed int64) Option {
	return func(e *Engine) {
		e.seed = seed
	}
}
