package repository

import (
	"context"
	"time"

	"github.com/okian/benchboard/pkg/logger"
)

// Option applies a configuration option to the MemoryStore.
type Option func(*MemoryStore)

// WithPath sets the dataset file.
func WithPath(path string) Option {
	return func(s *MemoryStore) {
		s.path = path
	}
}

// WithReloadInterval enables polling the dataset file for changes.
func WithReloadInterval(interval time.Duration) Option {
	return func(s *MemoryStore) {
		if interval > 0 {
			s.reloadInterval = interval
		}
	}
}

// WithLogger sets the logger used for load reports and skipped rows.
func WithLogger(l logger.Logger) Option {
	return func(s *MemoryStore) {
		if l != nil {
			s.log = l
		}
	}
}

// WithOnLoad runs fn after every published dataset. fn must not block.
func WithOnLoad(fn func(ctx context.Context, ds *Dataset)) Option {
	return func(s *MemoryStore) {
		s.onLoad = fn
	}
}
