package engine

import (
	"sort"
	"sync"
	"sync/atomic"
)

// Progress is a point-in-time view of the run, derived from the sink's
// counters. Snapshots are eventually consistent and never block workers.
type Progress struct {
	Completed   int64
	TotalPrimes uint64
	TotalTasks  int64
}

// Percent returns completion as a percentage, 0 when there are no tasks.
func (p Progress) Percent() float64 {
	if p.TotalTasks == 0 {
		return 0
	}
	return 100 * float64(p.Completed) / float64(p.TotalTasks)
}

// ResultSink accumulates task results from concurrent workers. Results are
// appended under a mutex; the running totals are plain atomics so Snapshot
// never contends with Record.
type ResultSink struct {
	mu          sync.Mutex
	results     []TaskResult
	completed   atomic.Int64
	totalPrimes atomic.Uint64
	totalTasks  int64
	metrics     *Metrics
}

// NewResultSink creates a sink expecting totalTasks results.
// metrics may be nil.
func NewResultSink(totalTasks int, metrics *Metrics) *ResultSink {
	return &ResultSink{
		results:    make([]TaskResult, 0, totalTasks),
		totalTasks: int64(totalTasks),
		metrics:    metrics,
	}
}

// Record appends a result and advances the running totals. Safe for
// concurrent use; each result must be recorded exactly once.
func (s *ResultSink) Record(result TaskResult) {
	s.mu.Lock()
	s.results = append(s.results, result)
	s.mu.Unlock()

	found := uint64(len(result.Primes))
	s.completed.Add(1)
	s.totalPrimes.Add(found)

	if s.metrics != nil {
		s.metrics.TasksCompleted.Inc()
		s.metrics.PrimesFound.Add(float64(found))
	}
}

// Snapshot returns the current progress without blocking writers.
func (s *ResultSink) Snapshot() Progress {
	return Progress{
		Completed:   s.completed.Load(),
		TotalPrimes: s.totalPrimes.Load(),
		TotalTasks:  s.totalTasks,
	}
}

// Drain returns all recorded results sorted by ascending task id. It must
// only be called after quiescence; it is not safe concurrently with Record.
func (s *ResultSink) Drain() []TaskResult {
	sort.SliceStable(s.results, func(i, j int) bool {
		return s.results[i].TaskID < s.results[j].TaskID
	})
	return s.results
}
