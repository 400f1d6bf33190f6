// Package journal implements the file-backed task store. The journal file is
// the sole owner of durable state: it is read fully into memory, transformed,
// and written back whole. Positions are recomputed on every load and are not
// stable identifiers across invocations.
package journal

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/oklog/ulid/v2"

	"github.com/mkantor/tasklog/internal/errors"
	"github.com/mkantor/tasklog/internal/task"
)

// Load reads the full journal from path. A missing file is not an error:
// the first run starts with an empty journal. A file that exists but cannot
// be parsed yields CORRUPT_JOURNAL; any other read failure yields IO_FAILURE.
func Load(path string) ([]task.Task, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return []task.Task{}, nil
		}
		return nil, errors.NewIOFailure(path, err)
	}

	// An empty or whitespace-only file counts as an empty journal, matching
	// the behavior of a freshly created file.
	if strings.TrimSpace(string(data)) == "" {
		return []task.Task{}, nil
	}

	var tasks []task.Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, errors.NewCorruptJournal(path, err)
	}
	if tasks == nil {
		tasks = []task.Task{}
	}
	return tasks, nil
}

// Save serializes the full journal and replaces the file at path atomically.
// The previous journal is never left partially written: the new content goes
// to a uniquely named temp file in the same directory, which is renamed over
// the target only after it is fully written and closed.
func Save(tasks []task.Task, path string) error {
	if tasks == nil {
		tasks = []task.Task{}
	}
	return AtomicWrite(path, func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(tasks)
	})
}

// Add appends a new task with the current time as its creation timestamp.
// The input slice is not modified. Empty or blank text yields INVALID_INPUT.
func Add(tasks []task.Task, text string, due *task.Date) ([]task.Task, error) {
	t, err := task.New(text, due)
	if err != nil {
		return nil, err
	}
	out := make([]task.Task, 0, len(tasks)+1)
	out = append(out, tasks...)
	out = append(out, t)
	return out, nil
}

// Remove deletes the task at the given 1-based position and returns the
// shortened journal along with the removed task. Positions address tasks in
// ascending creation order (ties broken by insertion order), regardless of
// how the journal was last displayed; insertion order of the remaining tasks
// is preserved. Positions outside [1, len] yield POSITION_OUT_OF_RANGE.
func Remove(tasks []task.Task, position int) ([]task.Task, task.Task, error) {
	if position < 1 || position > len(tasks) {
		return nil, task.Task{}, errors.NewPositionOutOfRange(position, len(tasks))
	}

	target := AscendingOrder(tasks)[position-1]
	removed := tasks[target]

	out := make([]task.Task, 0, len(tasks)-1)
	out = append(out, tasks[:target]...)
	out = append(out, tasks[target+1:]...)
	return out, removed, nil
}

// AscendingOrder returns the indexes of tasks sorted by creation time,
// ascending, with a stable tie-break by insertion order. This is the
// canonical order that positions address.
func AscendingOrder(tasks []task.Task) []int {
	idx := make([]int, len(tasks))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return tasks[idx[a]].CreatedAt.Before(tasks[idx[b]].CreatedAt)
	})
	return idx
}

// DescendingOrder returns the indexes of tasks sorted by creation time,
// descending, with the same stable tie-break as AscendingOrder: tasks
// created at the same instant keep their insertion order in both listings.
func DescendingOrder(tasks []task.Task) []int {
	idx := make([]int, len(tasks))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return tasks[idx[b]].CreatedAt.Before(tasks[idx[a]].CreatedAt)
	})
	return idx
}

// AtomicWrite writes content produced by the write callback to path using a
// temp file plus rename, so a crash mid-write never corrupts an existing
// file. The temp file is removed on any failure.
func AtomicWrite(path string, write func(w io.Writer) error) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return errors.NewIOFailure(path, fmt.Errorf("failed to create directory: %w", err))
	}

	tempPath := path + "." + ulid.Make().String() + ".tmp"
	file, err := openFileNoFollow(tempPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return errors.NewIOFailure(path, fmt.Errorf("failed to create temp file: %w", err))
	}

	// Clean up the temp file on failure; the original file is preserved.
	success := false
	defer func() {
		if file != nil {
			file.Close()
		}
		if !success {
			os.Remove(tempPath)
		}
	}()

	if err := write(file); err != nil {
		return errors.NewIOFailure(path, err)
	}

	// Close before the atomic replace (required on Windows, fine elsewhere).
	if err := file.Close(); err != nil {
		return errors.NewIOFailure(path, fmt.Errorf("failed to close temp file: %w", err))
	}
	file = nil

	// os.Rename would follow a symlink destination.
	if info, err := os.Lstat(path); err == nil && info.Mode()&os.ModeSymlink != 0 {
		return errors.NewIOFailure(path, fmt.Errorf("destination is a symlink"))
	}

	// Note: on Windows, os.Rename fails if the destination exists. We fail
	// safely (preserving the existing file) instead of doing a non-atomic
	// delete+rename that could lose the original.
	if err := os.Rename(tempPath, path); err != nil {
		if runtime.GOOS == "windows" {
			if _, statErr := os.Stat(path); statErr == nil {
				return errors.NewIOFailure(path, fmt.Errorf("destination exists; in-place replace is not supported on Windows: %w", err))
			}
		}
		return errors.NewIOFailure(path, fmt.Errorf("failed to finalize write: %w", err))
	}

	success = true
	return nil
}
