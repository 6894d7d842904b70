package output

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"primegrid/engine"
)

func TestWriteLineFormat(t *testing.T) {
	results := []engine.TaskResult{
		{TaskID: 0, Start: 2, End: 25, WorkerID: 1, Primes: []uint64{2, 3, 5, 7, 11, 13, 17, 19, 23}},
		{TaskID: 1, Start: 27, End: 50, WorkerID: 2, Primes: []uint64{29, 31, 37, 41, 43, 47}},
	}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, results))

	want := "2-25,1,2,3,5,7,11,13,17,19,23\n" +
		"27-50,2,29,31,37,41,43,47\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteEmptyPrimes(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, []engine.TaskResult{
		{TaskID: 0, Start: 24, End: 24, WorkerID: 3},
	}))
	assert.Equal(t, "24-24,3\n", buf.String())
}

func TestWriteOrdersByTaskID(t *testing.T) {
	// Completion order is nondeterministic; serialization is not.
	results := []engine.TaskResult{
		{TaskID: 2, Start: 52, End: 75, WorkerID: 1, Primes: []uint64{53}},
		{TaskID: 0, Start: 2, End: 25, WorkerID: 2, Primes: []uint64{2}},
		{TaskID: 1, Start: 27, End: 50, WorkerID: 1, Primes: []uint64{29}},
	}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, results))
	assert.Equal(t, "2-25,2,2\n27-50,1,29\n52-75,1,53\n", buf.String())

	// The caller's slice is left untouched.
	assert.Equal(t, 2, results[0].TaskID)
}

func TestWriteFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "primes.csv")
	results := []engine.TaskResult{
		{TaskID: 0, Start: 2, End: 10, WorkerID: 1, Primes: []uint64{2, 3, 5, 7}},
	}
	require.NoError(t, WriteFile(path, results))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "2-10,1,2,3,5,7\n", string(data))
}

func TestWriteFileBadPath(t *testing.T) {
	err := WriteFile(filepath.Join(t.TempDir(), "missing", "primes.csv"), nil)
	assert.Error(t, err)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestWritePropagatesIOError(t *testing.T) {
	err := Write(failingWriter{}, []engine.TaskResult{{TaskID: 0, Start: 2, End: 10}})
	assert.EqualError(t, err, "disk full")
}
