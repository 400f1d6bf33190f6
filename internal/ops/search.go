package ops

import (
	"github.com/mkantor/tasklog/internal/journal"
)

// SearchInput contains parameters for the Search operation.
type SearchInput struct {
	JournalFile string
	Keyword     string // empty matches every task
}

// SearchOutput contains the result of the Search operation.
type SearchOutput struct {
	Items   []Item `json:"items"`
	Count   int    `json:"count"`
	Keyword string `json:"keyword"`
}

// Search returns the subsequence of the journal whose text contains the
// keyword, case-insensitively, in original insertion order. No match is an
// empty result, not an error. Read-only: the journal file is never written.
func Search(input SearchInput) (*SearchOutput, error) {
	tasks, err := journal.Load(input.JournalFile)
	if err != nil {
		return nil, err
	}

	positions := canonicalPositions(tasks)
	items := make([]Item, 0, len(tasks))
	for i, t := range tasks {
		if t.MatchesKeyword(input.Keyword) {
			items = append(items, itemFromTask(positions[i], t))
		}
	}

	return &SearchOutput{
		Items:   items,
		Count:   len(items),
		Keyword: input.Keyword,
	}, nil
}
