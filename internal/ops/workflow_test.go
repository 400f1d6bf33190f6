package ops

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mkantor/tasklog/internal/errors"
)

// TestFullWorkflow exercises the complete journal lifecycle:
// add → list → search → done → list → export → done (out of range)
func TestFullWorkflow(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "journal.json")

	// 1. Add three tasks, one with a due date
	_, err := Add(AddInput{JournalFile: path, Text: "write report"})
	require.NoError(t, err)
	_, err = Add(AddInput{JournalFile: path, Text: "Pay rent", DueDate: "2026-03-01"})
	require.NoError(t, err)
	addOut, err := Add(AddInput{JournalFile: path, Text: "book flights"})
	require.NoError(t, err)
	require.Equal(t, 3, addOut.Total)
	require.Equal(t, 3, addOut.Added.Position)

	// 2. List ascending - insertion order
	listOut, err := List(ListInput{JournalFile: path})
	require.NoError(t, err)
	require.Len(t, listOut.Items, 3)
	require.Equal(t, "write report", listOut.Items[0].Text)
	require.Equal(t, "2026-03-01", listOut.Items[1].DueDate)

	// 3. List descending - reversed, positions still canonical
	listOut, err = List(ListInput{JournalFile: path, Order: OrderDescending})
	require.NoError(t, err)
	require.Equal(t, "book flights", listOut.Items[0].Text)
	require.Equal(t, 3, listOut.Items[0].Position)

	// 4. Search is case-insensitive and keeps journal positions
	searchOut, err := Search(SearchInput{JournalFile: path, Keyword: "RENT"})
	require.NoError(t, err)
	require.Len(t, searchOut.Items, 1)
	require.Equal(t, "Pay rent", searchOut.Items[0].Text)
	require.Equal(t, 2, searchOut.Items[0].Position)

	// 5. Done removes by position; later positions shift down
	doneOut, err := Done(DoneInput{JournalFile: path, Position: 2})
	require.NoError(t, err)
	require.Equal(t, "Pay rent", doneOut.Removed.Text)
	require.Equal(t, 2, doneOut.Remaining)

	listOut, err = List(ListInput{JournalFile: path})
	require.NoError(t, err)
	require.Equal(t, "write report", listOut.Items[0].Text)
	require.Equal(t, "book flights", listOut.Items[1].Text)
	require.Equal(t, 2, listOut.Items[1].Position)

	// 6. Export the remaining journal
	exportOut, err := Export(ExportInput{JournalFile: path, Path: filepath.Join(tmpDir, "out.jsonl")})
	require.NoError(t, err)
	require.Equal(t, 2, exportOut.Count)

	// 7. Removing a now-vacated position fails and leaves the journal alone
	_, err = Done(DoneInput{JournalFile: path, Position: 3})
	require.Error(t, err)
	var jErr *errors.JournalError
	require.ErrorAs(t, err, &jErr)
	require.Equal(t, errors.ErrPositionOutOfRange, jErr.Code)

	listOut, err = List(ListInput{JournalFile: path})
	require.NoError(t, err)
	require.Len(t, listOut.Items, 2)
}
