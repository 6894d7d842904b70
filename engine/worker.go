package engine

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"primegrid/prime"
)

// ComputeFunc produces the ascending primes in [start, end].
type ComputeFunc func(start, end uint64, yield prime.YieldFunc) []uint64

// worker structure. Each worker loops pulling a task, computing its primes
// and recording the result, until the shared source is exhausted. Tasks are
// never retried; a malformed task aborts the whole run.
type worker struct {
	id            int
	source        *TaskSource
	sink          *ResultSink
	compute       ComputeFunc
	yield         prime.YieldFunc
	progressEvery int64
	metrics       *Metrics
	logger        *zap.SugaredLogger
}

// run drives the worker until exhaustion or failure. The context is checked
// between tasks only; a claimed task always runs to completion.
func (w *worker) run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		task, ok := w.source.Next()
		if !ok {
			w.logger.Debugf("Worker %d done: task source exhausted", w.id)
			return nil
		}
		if !task.Valid() {
			return fmt.Errorf("worker %d: invalid task %d bounds [%d, %d]",
				w.id, task.ID, task.Start, task.End)
		}

		if w.metrics != nil {
			w.metrics.WorkersActive.Inc()
		}
		begin := time.Now()
		primes := w.compute(task.Start, task.End, w.yield)
		elapsed := time.Since(begin)
		if w.metrics != nil {
			w.metrics.WorkersActive.Dec()
			w.metrics.TaskSeconds.Observe(elapsed.Seconds())
		}

		w.sink.Record(TaskResult{
			TaskID:   task.ID,
			Start:    task.Start,
			End:      task.End,
			WorkerID: w.id,
			Primes:   primes,
		})
		w.logger.Debugf("Worker %d finished task %d: [%d, %d], %d primes, took %s",
			w.id, task.ID, task.Start, task.End, len(primes), elapsed)

		w.reportProgress()
	}
}

// reportProgress logs a snapshot every progressEvery completions and at the
// final one. Best effort: counts observed here may already be stale.
func (w *worker) reportProgress() {
	if w.progressEvery <= 0 {
		return
	}
	p := w.sink.Snapshot()
	if p.Completed%w.progressEvery == 0 || p.Completed == p.TotalTasks {
		w.logger.Infof("Progress: %.2f%% (%d/%d tasks, %d primes)",
			p.Percent(), p.Completed, p.TotalTasks, p.TotalPrimes)
	}
}
