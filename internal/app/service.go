// Package service wires the dataset store to the leaderboard engine and
// exposes the operations served over HTTP and the CLI.
package service

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/okian/benchboard/internal/adapters/cache"
	"github.com/okian/benchboard/internal/adapters/mq/queue"
	"github.com/okian/benchboard/internal/adapters/mq/worker"
	"github.com/okian/benchboard/internal/adapters/repository"
	"github.com/okian/benchboard/internal/domain/accuracy"
	"github.com/okian/benchboard/internal/domain/display"
	"github.com/okian/benchboard/internal/domain/elo"
	"github.com/okian/benchboard/internal/domain/types"
	"github.com/okian/benchboard/internal/domain/window"
	"github.com/okian/benchboard/pkg/logger"
	"github.com/okian/benchboard/pkg/metrics"
)

// Mark sources.
const (
	SourceModels     = "models"
	SourceTimestamps = "timestamps"
)

// Query selects the evaluation window and ELO step of a request.
type Query struct {
	Start   int64   `json:"start"`
	End     int64   `json:"end"`
	KFactor float64 `json:"k,omitempty"` // zero means the service default
}

// AllTime covers every timestamp.
func AllTime() Query {
	return Query{Start: window.MinTimestamp, End: window.MaxTimestamp}
}

// Validate checks the window bounds and K.
func (q Query) Validate() error {
	if q.Start > q.End {
		return fmt.Errorf("%w: start %d after end %d", ErrInvalidWindow, q.Start, q.End)
	}
	if q.KFactor < 0 {
		return fmt.Errorf("%w: %v", ErrInvalidK, q.KFactor)
	}
	return nil
}

func (q Query) key(version int64) string {
	return strconv.FormatInt(version, 10) + "|" + strconv.FormatInt(q.Start, 10) + "|" +
		strconv.FormatInt(q.End, 10) + "|" + strconv.FormatFloat(q.KFactor, 'g', -1, 64)
}

// Snapshot is every view of one window, computed together.
type Snapshot struct {
	Query           Query                    `json:"query"`
	Accuracy        []types.AccuracyRow      `json:"accuracy"`
	AccuracyColumns []types.ColumnDescriptor `json:"accuracy_columns"`
	Elo             []types.EloRow           `json:"elo"`
	EloColumns      []types.ColumnDescriptor `json:"elo_columns"`
	Winrates        []types.WinrateEdge      `json:"winrates"`
	ModelMarks      []types.DateMark         `json:"model_marks"`
	TimestampMarks  []types.DateMark         `json:"timestamp_marks"`
}

// Service serves leaderboards computed from the current dataset.
type Service struct {
	mu sync.RWMutex

	store     *repository.MemoryStore
	snapshots *cache.Cache[*Snapshot]
	warmQueue *queue.InMemoryQueue[Query]
	warmers   *worker.Pool[Query]

	kFactor        float64
	topics         []string
	reference      int64
	datasetPath    string
	reloadInterval time.Duration
	cacheSize      int
	warmWorkers    int
	warmQueueSize  int
	initial        *repository.Dataset

	started bool
	logger  logger.Logger
}

// New constructs a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		kFactor:       elo.DefaultKFactor,
		topics:        []string{"Politics", "Entertainment"},
		reference:     display.DefaultReference,
		cacheSize:     64,
		warmQueueSize: 256,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start builds the store and loads the dataset.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting leaderboard service...")
	s.snapshots = cache.New[*Snapshot](cache.WithMaxSize(s.cacheSize))
	if s.warmWorkers > 0 && s.cacheSize > 0 {
		s.warmQueue = queue.NewInMemoryQueue[Query](
			queue.WithCapacity(s.warmQueueSize),
			queue.WithName("warmup"),
		)
		s.warmers = worker.NewPool[Query](s.warmWorkers, s.warmQueue, worker.HandlerFunc[Query](s.warm),
			worker.WithName("warmup"),
			worker.WithLogger(s.logger),
		)
		s.warmers.Start(ctx)
	}
	s.store = repository.NewMemoryStore(ctx,
		repository.WithPath(s.datasetPath),
		repository.WithReloadInterval(s.reloadInterval),
		repository.WithLogger(s.logger.Named("repository")),
		repository.WithOnLoad(s.onLoad),
	)

	switch {
	case s.initial != nil:
		s.store.Replace(ctx, s.initial)
	case s.datasetPath != "":
		if _, err := s.store.Load(ctx); err != nil {
			_ = s.store.Close()
			if s.warmers != nil {
				_ = s.warmers.Shutdown(ctx)
			}
			return fmt.Errorf("load dataset: %w", err)
		}
	default:
		s.logger.Warn(ctx, "no dataset configured, requests fail until one is loaded")
	}

	s.started = true
	s.logger.Info(ctx, "leaderboard service started",
		logger.Float64("k_factor", s.kFactor),
		logger.Any("topics", s.topics),
		logger.String("dataset", s.datasetPath),
		logger.Int("warm_workers", s.warmWorkers),
	)
	return nil
}

// Stop drains the warm-up workers and releases the store.
func (s *Service) Stop() {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return
	}
	s.started = false
	warmers := s.warmers
	s.mu.Unlock()

	ctx := context.Background()
	// Workers take the read lock, so they are stopped without holding it.
	if warmers != nil {
		if err := warmers.Shutdown(ctx); err != nil {
			s.logger.Warn(ctx, "warm-up workers did not stop", logger.Error(err))
		}
	}
	_ = s.store.Close()
	s.logger.Info(ctx, "leaderboard service stopped")
}

// Replace swaps in a new dataset and drops cached results.
func (s *Service) Replace(ctx context.Context, ds *repository.Dataset) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return ErrNotStarted
	}
	if ds.LoadedAt.IsZero() {
		ds.LoadedAt = time.Now()
	}
	s.store.Replace(ctx, ds)
	return nil
}

// onLoad drops snapshots of older datasets and queues the windows a
// timeline slider can select: all time and every release mark to the end.
func (s *Service) onLoad(ctx context.Context, ds *repository.Dataset) {
	s.snapshots.Purge(ctx)
	if s.warmQueue == nil {
		return
	}

	queries := []Query{AllTime()}
	for i, m := range display.MarksFromModels(ds.Models, s.reference) {
		// Marks are sorted; a release on the reference date repeats it.
		if i > 0 && queries[len(queries)-1].Start == m.Value {
			continue
		}
		queries = append(queries, Query{Start: m.Value, End: window.MaxTimestamp})
	}
	var queued int
	for _, q := range queries {
		if s.warmQueue.Enqueue(ctx, q) {
			queued++
		}
	}
	s.logger.Debug(ctx, "queued snapshot warm-up",
		logger.Int("queued", queued),
		logger.Int("dropped", len(queries)-queued),
	)
}

func (s *Service) warm(ctx context.Context, q Query) error {
	_, err := s.Snapshot(ctx, q)
	return err
}

func (s *Service) dataset(ctx context.Context) (*repository.Dataset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return nil, ErrNotStarted
	}
	return s.store.Snapshot(ctx)
}

func (s *Service) engineOptions(q Query) []elo.Option {
	k := s.kFactor
	if q.KFactor > 0 {
		k = q.KFactor
	}
	return []elo.Option{elo.WithKFactor(k), elo.WithTopics(s.topics...)}
}

// AccuracyLeaderboard builds the pass@1 leaderboard for q.
func (s *Service) AccuracyLeaderboard(ctx context.Context, q Query) ([]types.AccuracyRow, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	ds, err := s.dataset(ctx)
	if err != nil {
		return nil, err
	}
	return s.accuracy(ds, q), nil
}

func (s *Service) accuracy(ds *repository.Dataset, q Query) []types.AccuracyRow {
	start := time.Now()
	rows := accuracy.BuildLeaderboard(ds.Records, ds.Models, q.Start, q.End)
	_ = metrics.RecordBuild(metrics.BoardAccuracy, len(rows), time.Since(start))
	return rows
}

// Winrates computes the win-rate table and ratings for q.
func (s *Service) Winrates(ctx context.Context, q Query) (elo.Result, error) {
	if err := q.Validate(); err != nil {
		return elo.Result{}, err
	}
	ds, err := s.dataset(ctx)
	if err != nil {
		return elo.Result{}, err
	}
	return s.compute(ds, q), nil
}

func (s *Service) compute(ds *repository.Dataset, q Query) elo.Result {
	start := time.Now()
	res := elo.Compute(ds.Records, ds.Models, q.Start, q.End, s.engineOptions(q)...)
	_ = metrics.RecordBuild(metrics.BoardWinrates, len(res.Winrates), time.Since(start))
	metrics.SetWinrateEdges(len(res.Winrates))
	var played int
	for _, r := range res.Ratings {
		played += r.Matches
	}
	metrics.RecordEloMatches(played / 2)
	return res
}

// EloLeaderboard builds the ELO leaderboard for q.
func (s *Service) EloLeaderboard(ctx context.Context, q Query) ([]types.EloRow, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	ds, err := s.dataset(ctx)
	if err != nil {
		return nil, err
	}
	return s.eloRows(ds, s.compute(ds, q), q), nil
}

func (s *Service) eloRows(ds *repository.Dataset, res elo.Result, q Query) []types.EloRow {
	start := time.Now()
	rows := elo.Rows(res.Ratings, ds.Models, q.Start)
	_ = metrics.RecordBuild(metrics.BoardElo, len(rows), time.Since(start))
	return rows
}

// Marks returns the timeline marks from model release dates or from the
// distinct record timestamps.
func (s *Service) Marks(ctx context.Context, source string) ([]types.DateMark, error) {
	ds, err := s.dataset(ctx)
	if err != nil {
		return nil, err
	}
	return s.marks(ds, source)
}

func (s *Service) marks(ds *repository.Dataset, source string) ([]types.DateMark, error) {
	start := time.Now()
	var out []types.DateMark
	switch source {
	case "", SourceModels:
		out = display.MarksFromModels(ds.Models, s.reference)
	case SourceTimestamps:
		out = display.MarksFromTimestamps(ds.Timestamps())
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSource, source)
	}
	_ = metrics.RecordBuild(metrics.BoardMarks, len(out), time.Since(start))
	return out, nil
}

// Columns returns the column descriptors of the accuracy or ELO leaderboard.
func (s *Service) Columns(ctx context.Context, board string) ([]types.ColumnDescriptor, error) {
	ds, err := s.dataset(ctx)
	if err != nil {
		return nil, err
	}
	return s.columns(ds, board)
}

func (s *Service) columns(ds *repository.Dataset, board string) ([]types.ColumnDescriptor, error) {
	var fields []string
	switch board {
	case "", metrics.BoardAccuracy:
		fields = types.AccuracyFieldNames(accuracy.DetectSchema(ds.Records))
	case metrics.BoardElo:
		fields = types.EloFieldNames(s.topics)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBoard, board)
	}
	start := time.Now()
	out := display.Columns(fields, ds.Models)
	_ = metrics.RecordBuild(metrics.BoardColumns, len(out), time.Since(start))
	return out, nil
}

// Snapshot computes every view of q concurrently. Results are cached per
// dataset version and query.
func (s *Service) Snapshot(ctx context.Context, q Query) (*Snapshot, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	ds, err := s.dataset(ctx)
	if err != nil {
		return nil, err
	}
	key := q.key(ds.LoadedAt.UnixNano())
	if snap, ok := s.snapshots.Get(ctx, key); ok {
		return snap, nil
	}

	start := time.Now()
	snap := &Snapshot{Query: q}
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		snap.Accuracy = s.accuracy(ds, q)
		return nil
	})
	g.Go(func() error {
		res := s.compute(ds, q)
		snap.Winrates = res.Winrates
		snap.Elo = s.eloRows(ds, res, q)
		return nil
	})
	g.Go(func() (err error) {
		if snap.ModelMarks, err = s.marks(ds, SourceModels); err != nil {
			return err
		}
		snap.TimestampMarks, err = s.marks(ds, SourceTimestamps)
		return err
	})
	g.Go(func() (err error) {
		if snap.AccuracyColumns, err = s.columns(ds, metrics.BoardAccuracy); err != nil {
			return err
		}
		snap.EloColumns, err = s.columns(ds, metrics.BoardElo)
		return err
	})
	if err := g.Wait(); err != nil {
		metrics.RecordErrorByComponent("service", "snapshot")
		return nil, err
	}
	_ = metrics.RecordBuild(metrics.BoardSnapshot, len(snap.Accuracy)+len(snap.Elo), time.Since(start))

	s.snapshots.Put(ctx, key, snap)
	return snap, nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats(ctx context.Context) map[string]any {
	s.mu.RLock()
	started := s.started
	stats := map[string]any{
		"started":   started,
		"kFactor":   s.kFactor,
		"topics":    s.topics,
		"dataset":   s.datasetPath,
		"reference": s.reference,
	}
	s.mu.RUnlock()

	if !started {
		return stats
	}
	hits, misses := s.snapshots.Stats()
	stats["cacheEntries"] = s.snapshots.Len()
	stats["cacheHits"] = hits
	stats["cacheMisses"] = misses
	if s.warmers != nil {
		stats["warmQueued"] = s.warmQueue.Len(ctx)
		stats["warmDone"] = s.warmers.Processed()
		stats["warmFailed"] = s.warmers.Failed()
	}
	if ds, err := s.dataset(ctx); err == nil {
		stats["records"] = ds.Stats.Records
		stats["models"] = ds.Stats.Models
		stats["skippedRecords"] = ds.Stats.SkippedRecords
		stats["skippedModels"] = ds.Stats.SkippedModels
		stats["loadedAt"] = ds.LoadedAt.UTC().Format(time.RFC3339)
	}
	return stats
}
