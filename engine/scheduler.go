package engine

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"primegrid/prime"
)

// Options configures a single computation run.
type Options struct {
	TotalTasks    int
	ChunkSize     uint64
	NumWorkers    int
	ProgressEvery int64
	Yield         prime.YieldFunc
	Compute       ComputeFunc
}

// Scheduler owns the worker pool for one or more runs. Each run builds a
// fresh TaskSource and ResultSink, so independent runs never share state.
type Scheduler struct {
	opts    Options
	metrics *Metrics
	logger  *zap.SugaredLogger
}

// NewScheduler creates a Scheduler. metrics may be nil. Non-positive worker
// counts are treated as a single worker; a nil Compute falls back to
// prime.Compute.
func NewScheduler(opts Options, logger *zap.Logger, metrics *Metrics) *Scheduler {
	if opts.NumWorkers <= 0 {
		opts.NumWorkers = 1
	}
	if opts.Compute == nil {
		opts.Compute = prime.Compute
	}
	return &Scheduler{
		opts:    opts,
		metrics: metrics,
		logger:  logger.Sugar(),
	}
}

// Run executes all tasks across the pool and returns the final progress plus
// the results ordered by ascending task id. Quiescence is observed by joining
// every worker; the first worker error aborts the join and is returned with
// no partial results.
func (s *Scheduler) Run(ctx context.Context) (Progress, []TaskResult, error) {
	runID := uuid.NewString()
	logger := s.logger.With("run", runID)

	if s.opts.TotalTasks <= 0 {
		logger.Info("No tasks to run")
		sink := NewResultSink(0, s.metrics)
		return sink.Snapshot(), sink.Drain(), nil
	}

	source := NewTaskSource(s.opts.TotalTasks, s.opts.ChunkSize)
	sink := NewResultSink(s.opts.TotalTasks, s.metrics)

	logger.Infof("Starting run: %d tasks x %d numbers, %d workers, range [2, %d]",
		s.opts.TotalTasks, s.opts.ChunkSize, s.opts.NumWorkers,
		uint64(s.opts.TotalTasks)*s.opts.ChunkSize)

	group, ctx := errgroup.WithContext(ctx)
	for i := 0; i < s.opts.NumWorkers; i++ {
		w := &worker{
			id:            i + 1,
			source:        source,
			sink:          sink,
			compute:       s.opts.Compute,
			yield:         s.opts.Yield,
			progressEvery: s.opts.ProgressEvery,
			metrics:       s.metrics,
			logger:        logger,
		}
		group.Go(func() error {
			return w.run(ctx)
		})
	}

	if err := group.Wait(); err != nil {
		logger.Errorf("Run failed: %v", err)
		return Progress{}, nil, err
	}

	progress := sink.Snapshot()
	logger.Infof("Run complete: %d tasks, %d primes", progress.Completed, progress.TotalPrimes)
	return progress, sink.Drain(), nil
}
