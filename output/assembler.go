// Package output serializes a completed run. One line per task, ordered by
// ascending task id regardless of completion order:
//
//	<start>-<end>,<workerId>[,<prime>]*
package output

import (
	"bufio"
	"io"
	"os"
	"sort"
	"strconv"

	"primegrid/engine"
)

// Write serializes results to w, sorting a copy by task id first so callers
// may pass results in completion order.
func Write(w io.Writer, results []engine.TaskResult) error {
	ordered := make([]engine.TaskResult, len(results))
	copy(ordered, results)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].TaskID < ordered[j].TaskID
	})

	buffered := bufio.NewWriter(w)
	line := make([]byte, 0, 1024)
	for _, result := range ordered {
		line = line[:0]
		line = strconv.AppendUint(line, result.Start, 10)
		line = append(line, '-')
		line = strconv.AppendUint(line, result.End, 10)
		line = append(line, ',')
		line = strconv.AppendInt(line, int64(result.WorkerID), 10)
		for _, p := range result.Primes {
			line = append(line, ',')
			line = strconv.AppendUint(line, p, 10)
		}
		line = append(line, '\n')
		if _, err := buffered.Write(line); err != nil {
			return err
		}
	}
	return buffered.Flush()
}

// WriteFile serializes results to the file at path, creating or truncating it.
func WriteFile(path string, results []engine.TaskResult) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(file, results); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
