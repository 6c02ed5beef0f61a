package workers

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Lifecycle is the part of the demo store the worker drives.
type Lifecycle interface {
	Initialize(ctx context.Context) error
	Reset(ctx context.Context) error
}

type JobKind int

const (
	// JobRefresh regenerates only when the dataset is stale.
	JobRefresh JobKind = iota
	// JobReset regenerates unconditionally.
	JobReset
)

func (k JobKind) String() string {
	switch k {
	case JobReset:
		return "reset"
	default:
		return "refresh"
	}
}

// RefreshWorker keeps a long-running server's demo dataset inside its
// freshness window and runs queued lifecycle jobs off the request path.
type RefreshWorker struct {
	demo     Lifecycle
	interval time.Duration
	jobs     chan JobKind
	done     chan struct{}
	logger   *zap.Logger
}

func NewRefreshWorker(demo Lifecycle, interval time.Duration, logger *zap.Logger) *RefreshWorker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RefreshWorker{
		demo:     demo,
		interval: interval,
		jobs:     make(chan JobKind, 8),
		done:     make(chan struct{}),
		logger:   logger,
	}
}

// Start runs the worker until ctx is cancelled. A non-positive interval
// disables the periodic refresh; queued jobs still run.
func (w *RefreshWorker) Start(ctx context.Context) {
	go func() {
		defer close(w.done)

		var tick <-chan time.Time
		if w.interval > 0 {
			ticker := time.NewTicker(w.interval)
			defer ticker.Stop()
			tick = ticker.C
		}

		w.logger.Info("refresh worker started", zap.Duration("interval", w.interval))
		for {
			select {
			case job := <-w.jobs:
				w.run(ctx, job)
			case <-tick:
				w.run(ctx, JobRefresh)
			case <-ctx.Done():
				w.logger.Info("refresh worker shutting down")
				return
			}
		}
	}()
}

// Enqueue schedules a job and reports false when the queue is full.
func (w *RefreshWorker) Enqueue(kind JobKind) bool {
	select {
	case w.jobs <- kind:
		return true
	default:
		w.logger.Warn("refresh queue full, dropping job", zap.Stringer("job", kind))
		return false
	}
}

// Done is closed once the worker goroutine has exited.
func (w *RefreshWorker) Done() <-chan struct{} {
	return w.done
}

func (w *RefreshWorker) run(ctx context.Context, kind JobKind) {
	var err error
	switch kind {
	case JobReset:
		err = w.demo.Reset(ctx)
	default:
		err = w.demo.Initialize(ctx)
	}
	if err != nil {
		w.logger.Error("demo lifecycle job failed", zap.Stringer("job", kind), zap.Error(err))
	}
}
