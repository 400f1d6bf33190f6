package ops

import (
	"github.com/mkantor/tasklog/internal/journal"
)

// ListInput contains parameters for the List operation.
type ListInput struct {
	JournalFile string
	Order       Order // default: ascending
}

// ListOutput contains the result of the List operation.
type ListOutput struct {
	Items []Item `json:"items"`
	Count int    `json:"count"`
	Order Order  `json:"order"`
}

// List returns the journal ordered by creation time, ascending or descending,
// with a stable tie-break by insertion order. Read-only: the journal file is
// never written. Each item carries its canonical ascending position even in a
// descending listing, so positions stay valid for `done`.
func List(input ListInput) (*ListOutput, error) {
	order, err := ParseOrder(string(input.Order))
	if err != nil {
		return nil, err
	}

	tasks, err := journal.Load(input.JournalFile)
	if err != nil {
		return nil, err
	}

	var items []Item
	if order == OrderDescending {
		items = descendingItems(tasks)
	} else {
		items = ascendingItems(tasks)
	}

	return &ListOutput{
		Items: items,
		Count: len(items),
		Order: order,
	}, nil
}
