package worker

import (
	"sync/atomic"

	"github.com/okian/benchboard/pkg/logger"
)

// Option applies a configuration option to a worker or pool.
type Option func(*settings)

type settings struct {
	name      string
	logger    logger.Logger
	processed *atomic.Int64
	failed    *atomic.Int64
}

// WithName sets the worker name, or the prefix of pool worker names.
func WithName(name string) Option {
	return func(s *settings) {
		if name != "" {
			s.name = name
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(l logger.Logger) Option {
	return func(s *settings) {
		if l != nil {
			s.logger = l
		}
	}
}

// withCounters shares the pool's counters with its workers.
func withCounters(processed, failed *atomic.Int64) Option {
	return func(s *settings) {
		s.processed = processed
		s.failed = failed
	}
}
