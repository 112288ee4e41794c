package service

import (
	"time"

	"github.com/okian/benchboard/internal/adapters/repository"
	"github.com/okian/benchboard/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithKFactor sets the default ELO update step.
func WithKFactor(k float64) Option {
	return func(s *Service) {
		if k > 0 {
			s.kFactor = k
		}
	}
}

// WithTopics sets the topics rated separately on the ELO leaderboard.
func WithTopics(topics ...string) Option {
	return func(s *Service) {
		s.topics = append([]string(nil), topics...)
	}
}

// WithReferenceDate sets the mark always present on the release timeline.
func WithReferenceDate(ms int64) Option {
	return func(s *Service) {
		s.reference = ms
	}
}

// WithDatasetPath sets the file loaded on Start.
func WithDatasetPath(path string) Option {
	return func(s *Service) {
		s.datasetPath = path
	}
}

// WithReloadInterval polls the dataset file for changes.
func WithReloadInterval(interval time.Duration) Option {
	return func(s *Service) {
		if interval > 0 {
			s.reloadInterval = interval
		}
	}
}

// WithDataset serves ds instead of reading a file.
func WithDataset(ds *repository.Dataset) Option {
	return func(s *Service) {
		s.initial = ds
	}
}

// WithCacheSize bounds the snapshot cache. Zero disables it.
func WithCacheSize(size int) Option {
	return func(s *Service) {
		s.cacheSize = size
	}
}

// WithWarmWorkers precomputes snapshots on that many goroutines after each
// dataset load. Zero disables warm-up.
func WithWarmWorkers(n int) Option {
	return func(s *Service) {
		if n >= 0 {
			s.warmWorkers = n
		}
	}
}

// WithWarmQueueSize bounds the pending warm-up windows.
func WithWarmQueueSize(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.warmQueueSize = n
		}
	}
}
