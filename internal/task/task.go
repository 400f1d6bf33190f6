package task

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/mkantor/tasklog/internal/errors"
)

// dueDateLayout is the wire format for due dates.
const dueDateLayout = "2006-01-02"

// dueDatePattern rejects inputs that time.Parse would accept loosely
// (e.g. single-digit months), keeping the wire format strict.
var dueDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// timeNow is a seam for tests.
var timeNow = func() time.Time { return time.Now().UTC() }

// Task is one journal entry.
type Task struct {
	// Text is the task description. Never empty after a successful add.
	Text string `json:"text"`

	// DueDate is the optional calendar date the task is due (nil means unset).
	DueDate *Date `json:"due_date,omitempty"`

	// CreatedAt is assigned at creation time and is the default sort key
	// for listings.
	CreatedAt time.Time `json:"created_at"`
}

// New creates a task with CreatedAt set to the current time.
// The text must contain at least one non-whitespace character.
func New(text string, due *Date) (Task, error) {
	if strings.TrimSpace(text) == "" {
		return Task{}, errors.NewInvalidInput("task text must not be empty")
	}
	return Task{
		Text:      text,
		DueDate:   due,
		CreatedAt: timeNow(),
	}, nil
}

// MatchesKeyword reports whether the task text contains the keyword,
// case-insensitively. Every task matches the empty keyword.
func (t Task) MatchesKeyword(keyword string) bool {
	return strings.Contains(strings.ToLower(t.Text), strings.ToLower(keyword))
}

// Date is a calendar date (year-month-day) with no time component.
// It marshals as "yyyy-mm-dd".
type Date struct {
	t time.Time
}

// ParseDate parses a "yyyy-mm-dd" string into a Date.
// Malformed input yields an INVALID_INPUT error.
func ParseDate(s string) (Date, error) {
	if !dueDatePattern.MatchString(s) {
		return Date{}, errors.NewInvalidInput(fmt.Sprintf("invalid date %q: use yyyy-mm-dd format", s))
	}
	t, err := time.ParseInLocation(dueDateLayout, s, time.UTC)
	if err != nil {
		return Date{}, errors.NewInvalidInput(fmt.Sprintf("invalid date %q: use yyyy-mm-dd format", s))
	}
	return Date{t: t}, nil
}

// String returns the date in "yyyy-mm-dd" form.
func (d Date) String() string {
	return d.t.Format(dueDateLayout)
}

// Time returns the date as midnight UTC.
func (d Date) Time() time.Time {
	return d.t
}

// Equal reports whether two dates are the same calendar day.
func (d Date) Equal(other Date) bool {
	return d.t.Equal(other.t)
}

// MarshalJSON implements json.Marshaler.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
