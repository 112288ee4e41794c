// Package worker runs queued jobs on a fixed pool of goroutines.
package worker

import (
	"context"
	"fmt"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/okian/benchboard/pkg/logger"
	"github.com/okian/benchboard/pkg/metrics"
)

const (
	defaultWorkerCount  = 1
	poolShutdownTimeout = 30 * time.Second
)

// Job statuses reported to metrics.
const (
	StatusDone   = "done"
	StatusFailed = "failed"
)

// Handler processes one job.
type Handler[T any] interface {
	Handle(ctx context.Context, job T) error
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc[T any] func(ctx context.Context, job T) error

// Handle implements Handler.
func (f HandlerFunc[T]) Handle(ctx context.Context, job T) error { return f(ctx, job) }

// Queue defines how workers receive jobs.
type Queue[T any] interface {
	Dequeue(ctx context.Context) <-chan T
}

// Worker processes jobs until stopped.
type Worker interface {
	// Run starts the worker loop until ctx is canceled.
	Run(ctx context.Context)

	// Shutdown stops the worker and waits for the current job.
	Shutdown(ctx context.Context) error
}

// InMemoryWorker implements Worker for one goroutine.
type InMemoryWorker[T any] struct {
	queue   Queue[T]
	handler Handler[T]
	name    string

	processed *atomic.Int64
	failed    *atomic.Int64

	shutdown chan struct{}
	done     chan struct{}

	logger logger.Logger
}

// NewInMemoryWorker creates a worker reading q and handing jobs to h.
func NewInMemoryWorker[T any](q Queue[T], h Handler[T], opts ...Option) *InMemoryWorker[T] {
	s := settings{name: "worker"}
	for _, opt := range opts {
		opt(&s)
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}
	if s.processed == nil {
		s.processed = new(atomic.Int64)
	}
	if s.failed == nil {
		s.failed = new(atomic.Int64)
	}
	return &InMemoryWorker[T]{
		queue:     q,
		handler:   h,
		name:      s.name,
		processed: s.processed,
		failed:    s.failed,
		shutdown:  make(chan struct{}),
		done:      make(chan struct{}),
		logger:    s.logger.Named(s.name),
	}
}

// Run implements Worker.
func (w *InMemoryWorker[T]) Run(ctx context.Context) {
	defer close(w.done)

	jobs := w.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.shutdown:
			return
		case job, ok := <-jobs:
			if !ok {
				return
			}
			if err := w.process(ctx, job); err != nil {
				w.logger.Error(ctx, "job failed", logger.Error(err))
			}
		}
	}
}

// Shutdown implements Worker.
func (w *InMemoryWorker[T]) Shutdown(ctx context.Context) error {
	select {
	case <-w.shutdown:
	default:
		close(w.shutdown)
	}

	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		w.logger.Warn(ctx, "shutdown timed out")
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}

// Processed returns the number of jobs this worker completed.
func (w *InMemoryWorker[T]) Processed() int64 { return w.processed.Load() }

func (w *InMemoryWorker[T]) process(ctx context.Context, job T) error {
	start := time.Now()
	err := w.handler.Handle(ctx, job)
	took := time.Since(start)

	if err != nil {
		w.failed.Add(1)
		metrics.RecordJob(StatusFailed, took)
		metrics.RecordErrorByComponent("worker", "handler_error")
		return fmt.Errorf("%s: %w", w.name, err)
	}
	w.processed.Add(1)
	metrics.RecordJob(StatusDone, took)
	return nil
}

// Pool manages a fixed set of workers sharing one queue.
type Pool[T any] struct {
	workers []*InMemoryWorker[T]
	queue   Queue[T]

	processed atomic.Int64
	failed    atomic.Int64

	logger logger.Logger
}

// NewPool creates workerCount workers reading q.
func NewPool[T any](workerCount int, q Queue[T], h Handler[T], opts ...Option) *Pool[T] {
	if workerCount < 1 {
		workerCount = defaultWorkerCount
	}
	s := settings{name: "pool"}
	for _, opt := range opts {
		opt(&s)
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}

	p := &Pool[T]{
		workers: make([]*InMemoryWorker[T], workerCount),
		queue:   q,
		logger:  s.logger.Named(s.name),
	}
	for i := range p.workers {
		p.workers[i] = NewInMemoryWorker(q, h,
			WithName(s.name+"-"+strconv.Itoa(i)),
			WithLogger(s.logger),
			withCounters(&p.processed, &p.failed),
		)
	}
	return p
}

// Start launches every worker.
func (p *Pool[T]) Start(ctx context.Context) {
	for _, w := range p.workers {
		go w.Run(ctx)
	}
	p.logger.Debug(ctx, "worker pool started", logger.Int("workers", len(p.workers)))
}

// Size returns the number of workers.
func (p *Pool[T]) Size() int { return len(p.workers) }

// Processed returns the number of jobs completed by the pool.
func (p *Pool[T]) Processed() int64 { return p.processed.Load() }

// Failed returns the number of jobs whose handler returned an error.
func (p *Pool[T]) Failed() int64 { return p.failed.Load() }

// Shutdown closes the queue if it can be closed, then stops the workers.
func (p *Pool[T]) Shutdown(ctx context.Context) error {
	if closer, ok := p.queue.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			p.logger.Error(ctx, "error closing queue", logger.Error(err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, poolShutdownTimeout)
	defer cancel()

	var firstErr error
	for i, w := range p.workers {
		if err := w.Shutdown(shutdownCtx); err != nil {
			p.logger.Warn(ctx, "worker shutdown timed out", logger.Int("worker_id", i))
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}
