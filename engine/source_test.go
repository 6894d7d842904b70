package engine

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskSourceRanges(t *testing.T) {
	source := NewTaskSource(4, 25)
	want := []Task{
		{ID: 0, Start: 2, End: 25},
		{ID: 1, Start: 27, End: 50},
		{ID: 2, Start: 52, End: 75},
		{ID: 3, Start: 77, End: 100},
	}
	for _, expected := range want {
		task, ok := source.Next()
		require.True(t, ok)
		assert.Equal(t, expected, task)
		assert.True(t, task.Valid())
	}
	_, ok := source.Next()
	assert.False(t, ok)
}

func TestTaskSourceExactlyOnce(t *testing.T) {
	const totalTasks = 1000
	source := NewTaskSource(totalTasks, 100)

	var mu sync.Mutex
	seen := make(map[int]int)

	var wg sync.WaitGroup
	for g := 0; g < 64; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				task, ok := source.Next()
				if !ok {
					return
				}
				mu.Lock()
				seen[task.ID]++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	require.Len(t, seen, totalTasks)
	for id := 0; id < totalTasks; id++ {
		assert.Equal(t, 1, seen[id], "task %d handed out exactly once", id)
	}
}

func TestTaskSourceExhaustionTerminal(t *testing.T) {
	source := NewTaskSource(1, 10)
	_, ok := source.Next()
	require.True(t, ok)
	for i := 0; i < 3; i++ {
		_, ok := source.Next()
		assert.False(t, ok)
	}
	assert.Equal(t, int64(0), source.Remaining())
}

func TestTaskSourceEmpty(t *testing.T) {
	source := NewTaskSource(0, 100)
	_, ok := source.Next()
	assert.False(t, ok)
	assert.Equal(t, int64(0), source.Remaining())
}

func TestTaskSourcePartitionContiguity(t *testing.T) {
	const chunk = 1000
	source := NewTaskSource(50, chunk)
	prevEnd := uint64(0)
	for {
		task, ok := source.Next()
		if !ok {
			break
		}
		if task.ID == 0 {
			assert.Equal(t, uint64(FirstCandidate), task.Start)
		} else {
			assert.Equal(t, prevEnd+FirstCandidate, task.Start)
		}
		assert.Equal(t, task.Start+chunk-FirstCandidate, task.End)
		prevEnd = task.End
	}
	assert.Equal(t, uint64(50*chunk), prevEnd)
}
