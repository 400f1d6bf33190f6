package ops

import (
	"github.com/mkantor/tasklog/internal/journal"
)

// DoneInput contains parameters for the Done operation.
type DoneInput struct {
	JournalFile string
	Position    int // 1-based, in ascending creation order
}

// DoneOutput contains the result of the Done operation.
type DoneOutput struct {
	Removed   Item `json:"removed"`
	Remaining int  `json:"remaining"`
}

// Done removes the task at the given position and persists the journal.
// Positions always address ascending creation order, whatever order the last
// listing used. Positions are recomputed per invocation, so an edit between a
// listing and a done can retarget a different record; callers that need
// certainty should list immediately before removing.
func Done(input DoneInput) (*DoneOutput, error) {
	tasks, err := journal.Load(input.JournalFile)
	if err != nil {
		return nil, err
	}

	updated, removed, err := journal.Remove(tasks, input.Position)
	if err != nil {
		return nil, err
	}

	if err := journal.Save(updated, input.JournalFile); err != nil {
		return nil, err
	}

	return &DoneOutput{
		Removed:   itemFromTask(input.Position, removed),
		Remaining: len(updated),
	}, nil
}
