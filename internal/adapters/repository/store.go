// Package repository loads benchmark datasets and serves immutable
// snapshots of them to concurrent readers.
package repository

import (
	"context"
	"errors"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/benchboard/pkg/logger"
	"github.com/okian/benchboard/pkg/metrics"
)

// Store provides read access to the current dataset.
type Store interface {
	// Snapshot returns the current dataset. Returns ErrDatasetNotLoaded
	// before the first successful load.
	Snapshot(ctx context.Context) (*Dataset, error)
}

// MemoryStore keeps the dataset in memory behind an atomic pointer.
// Readers never block; a reload publishes a whole new Dataset.
type MemoryStore struct {
	path           string
	reloadInterval time.Duration
	log            logger.Logger
	onLoad         func(context.Context, *Dataset)

	snapshot atomic.Pointer[Dataset]

	mu      sync.Mutex // serializes loads
	modTime time.Time

	wg       sync.WaitGroup
	stopChan chan struct{}
	stopOnce sync.Once
}

// NewMemoryStore constructs a store. With a path and a reload interval it
// polls the file and republishes when the modification time changes.
func NewMemoryStore(ctx context.Context, opts ...Option) *MemoryStore {
	s := &MemoryStore{
		log:      logger.Nop(),
		stopChan: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.path != "" && s.reloadInterval > 0 {
		s.startPeriodicReload(ctx)
	}
	return s
}

// Snapshot implements Store.
func (s *MemoryStore) Snapshot(_ context.Context) (*Dataset, error) {
	ds := s.snapshot.Load()
	if ds == nil {
		return nil, ErrDatasetNotLoaded
	}
	return ds, nil
}

// Replace publishes ds as the current dataset and notifies the load hook.
func (s *MemoryStore) Replace(ctx context.Context, ds *Dataset) {
	s.snapshot.Store(ds)
	metrics.RecordDatasetLoad(len(ds.Records), len(ds.Models))
	if s.onLoad != nil {
		s.onLoad(ctx, ds)
	}
}

// Load reads the configured file and publishes it.
func (s *MemoryStore) Load(ctx context.Context) (LoadStats, error) {
	if s.path == "" {
		return LoadStats{}, ErrNoPath
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked(ctx)
}

func (s *MemoryStore) loadLocked(ctx context.Context) (LoadStats, error) {
	start := time.Now()
	info, err := os.Stat(s.path)
	if err != nil {
		return LoadStats{}, err
	}
	ds, err := LoadFile(ctx, s.path, s.log)
	if err != nil {
		metrics.RecordErrorByComponent("repository", "load")
		return LoadStats{}, err
	}
	s.modTime = info.ModTime()
	s.Replace(ctx, ds)
	s.log.Info(ctx, "dataset loaded",
		logger.String("path", s.path),
		logger.Int("records", ds.Stats.Records),
		logger.Int("models", ds.Stats.Models),
		logger.Int("skipped_records", ds.Stats.SkippedRecords),
		logger.Int("skipped_models", ds.Stats.SkippedModels),
		logger.Duration("took", time.Since(start)),
	)
	return ds.Stats, nil
}

// reloadIfChanged loads the file when its modification time moved.
func (s *MemoryStore) reloadIfChanged(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	info, err := os.Stat(s.path)
	if err != nil {
		s.log.Warn(ctx, "dataset stat failed", logger.String("path", s.path), logger.Error(err))
		return
	}
	if info.ModTime().Equal(s.modTime) && s.snapshot.Load() != nil {
		return
	}
	if _, err := s.loadLocked(ctx); err != nil && !errors.Is(err, context.Canceled) {
		s.log.Error(ctx, "dataset reload failed", logger.String("path", s.path), logger.Error(err))
	}
}

func (s *MemoryStore) startPeriodicReload(ctx context.Context) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(s.reloadInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-s.stopChan:
				return
			case <-ticker.C:
				s.reloadIfChanged(ctx)
			}
		}
	}()
}

// Close stops the reload goroutine.
func (s *MemoryStore) Close() error {
	s.stopOnce.Do(func() { close(s.stopChan) })
	s.wg.Wait()
	return nil
}
