package engine

import "sync/atomic"

// FirstCandidate is the lowest number any task examines; primes start at 2.
const FirstCandidate = 2

// Task is an immutable sub-range of the target interval.
type Task struct {
	ID    int
	Start uint64
	End   uint64
}

// Valid reports whether the task bounds are well-formed. A task with
// Start > End escaping generation is a logic defect and fatal for the run.
func (t Task) Valid() bool {
	return t.Start <= t.End
}

// TaskResult holds the primes one worker found in one task's range.
// It is immutable once constructed; ownership passes to the ResultSink.
type TaskResult struct {
	TaskID   int
	Start    uint64
	End      uint64
	WorkerID int
	Primes   []uint64
}

// TaskSource hands out each task id exactly once to any number of concurrent
// callers. A single fetch-and-increment on the shared counter claims an id,
// which maps deterministically to its range:
//
//	start = id*chunk + FirstCandidate
//	end   = (id+1)*chunk
//
// Next never blocks; once the counter passes totalTasks it reports exhaustion
// to every caller.
type TaskSource struct {
	next  atomic.Int64
	total int64
	chunk uint64
}

// NewTaskSource creates a TaskSource for totalTasks tasks of chunk numbers each.
func NewTaskSource(totalTasks int, chunk uint64) *TaskSource {
	return &TaskSource{total: int64(totalTasks), chunk: chunk}
}

// Next claims the next unclaimed task. The second return value is false once
// the source is exhausted; exhaustion is terminal.
func (s *TaskSource) Next() (Task, bool) {
	id := s.next.Add(1) - 1
	if id >= s.total {
		return Task{}, false
	}
	return Task{
		ID:    int(id),
		Start: uint64(id)*s.chunk + FirstCandidate,
		End:   uint64(id+1) * s.chunk,
	}, true
}

// Remaining returns the number of unclaimed tasks.
func (s *TaskSource) Remaining() int64 {
	claimed := s.next.Load()
	if claimed > s.total {
		claimed = s.total
	}
	return s.total - claimed
}
