package task

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/mkantor/tasklog/internal/errors"
)

func TestNew(t *testing.T) {
	before := time.Now().UTC()
	tk, err := New("buy milk", nil)
	after := time.Now().UTC()

	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if tk.Text != "buy milk" {
		t.Errorf("Text = %q, want %q", tk.Text, "buy milk")
	}
	if tk.DueDate != nil {
		t.Errorf("DueDate = %v, want nil", tk.DueDate)
	}
	if tk.CreatedAt.Before(before) || tk.CreatedAt.After(after) {
		t.Errorf("CreatedAt = %v, want between %v and %v", tk.CreatedAt, before, after)
	}
}

func TestNew_EmptyText(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{name: "empty string", text: ""},
		{name: "whitespace only", text: "   \t  "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.text, nil)
			if !errors.Is(err, errors.ErrInvalidInput) {
				t.Errorf("New(%q) should return ErrInvalidInput, got: %v", tt.text, err)
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "valid date", input: "2026-09-15"},
		{name: "valid leap day", input: "2024-02-29"},
		{name: "empty", input: "", wantErr: true},
		{name: "wrong separator", input: "2026/09/15", wantErr: true},
		{name: "single digit month", input: "2026-9-15", wantErr: true},
		{name: "trailing garbage", input: "2026-09-15x", wantErr: true},
		{name: "month out of range", input: "2026-13-01", wantErr: true},
		{name: "nonexistent leap day", input: "2025-02-29", wantErr: true},
		{name: "not a date", input: "tomorrow", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := ParseDate(tt.input)
			if tt.wantErr {
				if !errors.Is(err, errors.ErrInvalidInput) {
					t.Errorf("ParseDate(%q) should return ErrInvalidInput, got: %v", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDate(%q) failed: %v", tt.input, err)
			}
			if d.String() != tt.input {
				t.Errorf("String() = %q, want %q", d.String(), tt.input)
			}
		})
	}
}

func TestDate_JSONRoundTrip(t *testing.T) {
	d, err := ParseDate("2026-03-01")
	if err != nil {
		t.Fatalf("ParseDate failed: %v", err)
	}

	data, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(data) != `"2026-03-01"` {
		t.Errorf("Marshal = %s, want %q", data, `"2026-03-01"`)
	}

	var back Date
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if !back.Equal(d) {
		t.Errorf("round trip changed date: %v != %v", back, d)
	}
}

func TestTask_JSONMissingDueDate(t *testing.T) {
	// Records written before due dates existed must still load.
	raw := `{"text": "water plants", "created_at": "2026-01-05T09:30:00Z"}`

	var tk Task
	if err := json.Unmarshal([]byte(raw), &tk); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if tk.Text != "water plants" {
		t.Errorf("Text = %q, want %q", tk.Text, "water plants")
	}
	if tk.DueDate != nil {
		t.Errorf("DueDate = %v, want nil", tk.DueDate)
	}
	want := time.Date(2026, 1, 5, 9, 30, 0, 0, time.UTC)
	if !tk.CreatedAt.Equal(want) {
		t.Errorf("CreatedAt = %v, want %v", tk.CreatedAt, want)
	}
}

func TestTask_JSONOmitsUnsetDueDate(t *testing.T) {
	tk, err := New("no deadline", nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	data, err := json.Marshal(tk)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if _, ok := m["due_date"]; ok {
		t.Error("due_date should be omitted when unset")
	}
}

func TestMatchesKeyword(t *testing.T) {
	tk := Task{Text: "Pay rent"}

	tests := []struct {
		keyword string
		want    bool
	}{
		{keyword: "rent", want: true},
		{keyword: "RENT", want: true},
		{keyword: "Pay", want: true},
		{keyword: "", want: true},
		{keyword: "groceries", want: false},
	}

	for _, tt := range tests {
		if got := tk.MatchesKeyword(tt.keyword); got != tt.want {
			t.Errorf("MatchesKeyword(%q) = %v, want %v", tt.keyword, got, tt.want)
		}
	}
}
