// Package ops implements the journal operations behind the CLI, MCP, and web
// surfaces. Every operation validates its input before any file is touched,
// and mutating operations write the journal back only after the full
// transformation has succeeded.
package ops

import (
	"time"

	"github.com/mkantor/tasklog/internal/errors"
	"github.com/mkantor/tasklog/internal/journal"
	"github.com/mkantor/tasklog/internal/task"
)

// Order is a listing order keyed by creation time.
type Order string

const (
	OrderAscending  Order = "asc"
	OrderDescending Order = "desc"
)

// ParseOrder validates an order string. The empty string means ascending.
func ParseOrder(s string) (Order, error) {
	switch Order(s) {
	case "", OrderAscending:
		return OrderAscending, nil
	case OrderDescending:
		return OrderDescending, nil
	default:
		return "", errors.NewInvalidInput("order must be one of: asc, desc")
	}
}

// Item is one task as presented to callers. Position is the task's 1-based
// index in ascending creation order, which is what `done` addresses; it is
// recomputed on every load and is not a stable identifier.
type Item struct {
	Position  int    `json:"position"`
	Text      string `json:"text"`
	DueDate   string `json:"due_date,omitempty"`
	CreatedAt string `json:"created_at"`
}

// itemFromTask builds the presentation form of a task.
func itemFromTask(position int, t task.Task) Item {
	item := Item{
		Position:  position,
		Text:      t.Text,
		CreatedAt: t.CreatedAt.UTC().Format(time.RFC3339),
	}
	if t.DueDate != nil {
		item.DueDate = t.DueDate.String()
	}
	return item
}

// ascendingItems returns all tasks as Items in ascending creation order,
// positions 1..n.
func ascendingItems(tasks []task.Task) []Item {
	perm := journal.AscendingOrder(tasks)
	items := make([]Item, len(perm))
	for i, idx := range perm {
		items[i] = itemFromTask(i+1, tasks[idx])
	}
	return items
}

// descendingItems returns all tasks as Items in descending creation order.
// Ties keep their insertion order, and every item carries its canonical
// ascending position.
func descendingItems(tasks []task.Task) []Item {
	pos := canonicalPositions(tasks)
	perm := journal.DescendingOrder(tasks)
	items := make([]Item, len(perm))
	for i, idx := range perm {
		items[i] = itemFromTask(pos[idx], tasks[idx])
	}
	return items
}

// canonicalPositions maps each task's insertion index to its 1-based position
// in ascending creation order.
func canonicalPositions(tasks []task.Task) []int {
	perm := journal.AscendingOrder(tasks)
	pos := make([]int, len(perm))
	for i, idx := range perm {
		pos[idx] = i + 1
	}
	return pos
}
