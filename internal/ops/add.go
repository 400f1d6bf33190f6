package ops

import (
	"strings"

	"github.com/mkantor/tasklog/internal/errors"
	"github.com/mkantor/tasklog/internal/journal"
	"github.com/mkantor/tasklog/internal/task"
)

// AddInput contains parameters for the Add operation.
type AddInput struct {
	JournalFile string
	Text        string // required
	DueDate     string // optional, yyyy-mm-dd
}

// AddOutput contains the result of the Add operation.
type AddOutput struct {
	Added Item `json:"added"`
	Total int  `json:"total"`
}

// Add appends a task to the journal and persists it.
// Invalid input is rejected before the journal file is read.
func Add(input AddInput) (*AddOutput, error) {
	if strings.TrimSpace(input.Text) == "" {
		return nil, errors.NewInvalidInput("task text must not be empty")
	}

	var due *task.Date
	if input.DueDate != "" {
		d, err := task.ParseDate(input.DueDate)
		if err != nil {
			return nil, err
		}
		due = &d
	}

	tasks, err := journal.Load(input.JournalFile)
	if err != nil {
		return nil, err
	}

	updated, err := journal.Add(tasks, input.Text, due)
	if err != nil {
		return nil, err
	}

	if err := journal.Save(updated, input.JournalFile); err != nil {
		return nil, err
	}

	// The new task is the last insertion; report its canonical position.
	pos := canonicalPositions(updated)[len(updated)-1]
	return &AddOutput{
		Added: itemFromTask(pos, updated[len(updated)-1]),
		Total: len(updated),
	}, nil
}
