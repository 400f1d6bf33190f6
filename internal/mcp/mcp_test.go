package mcp

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/mkantor/tasklog/internal/config"
	"github.com/mkantor/tasklog/internal/ops"
)

// testSetup creates a temporary journal path and config for testing.
func testSetup(t *testing.T) (string, *config.Config) {
	t.Helper()
	tmpDir := t.TempDir()
	return filepath.Join(tmpDir, "journal.json"), config.DefaultConfig(tmpDir)
}

// makeRequest creates a CallToolRequest with the given arguments.
func makeRequest(args map[string]any) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Arguments: args,
		},
	}
}

// resultText extracts the JSON text content from a tool result.
func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if len(result.Content) == 0 {
		t.Fatal("result has no content")
	}
	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("content is %T, want TextContent", result.Content[0])
	}
	return text.Text
}

// assertErrorCode checks that an error result carries the expected code.
func assertErrorCode(t *testing.T, result *mcp.CallToolResult, code string) {
	t.Helper()
	var payload struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal([]byte(resultText(t, result)), &payload); err != nil {
		t.Fatalf("error payload is not JSON: %v", err)
	}
	if payload.Error.Code != code {
		t.Errorf("error code = %q, want %q", payload.Error.Code, code)
	}
}

func TestHandleAdd(t *testing.T) {
	journalFile, cfg := testSetup(t)
	h := NewHandlers(journalFile, cfg)
	ctx := context.Background()

	tests := []struct {
		name      string
		args      map[string]any
		wantError bool
		errorCode string
	}{
		{
			name: "add with text",
			args: map[string]any{"text": "buy milk"},
		},
		{
			name: "add with due date",
			args: map[string]any{"text": "file taxes", "due_date": "2026-04-15"},
		},
		{
			name:      "add without text",
			args:      map[string]any{},
			wantError: true,
			errorCode: "INVALID_INPUT",
		},
		{
			name:      "add with malformed due date",
			args:      map[string]any{"text": "ok", "due_date": "soon"},
			wantError: true,
			errorCode: "INVALID_INPUT",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := h.HandleAdd(ctx, makeRequest(tt.args))
			if err != nil {
				t.Fatalf("handler returned error: %v", err)
			}

			if tt.wantError {
				if !result.IsError {
					t.Error("expected error result, got success")
				}
				if tt.errorCode != "" {
					assertErrorCode(t, result, tt.errorCode)
				}
			} else if result.IsError {
				t.Errorf("expected success, got error: %s", resultText(t, result))
			}
		})
	}
}

func TestHandleDone(t *testing.T) {
	journalFile, cfg := testSetup(t)
	h := NewHandlers(journalFile, cfg)
	ctx := context.Background()

	for _, text := range []string{"a", "b", "c"} {
		result, err := h.HandleAdd(ctx, makeRequest(map[string]any{"text": text}))
		if err != nil || result.IsError {
			t.Fatalf("seeding add %q failed", text)
		}
	}

	result, err := h.HandleDone(ctx, makeRequest(map[string]any{"position": 2}))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if result.IsError {
		t.Fatalf("expected success, got error: %s", resultText(t, result))
	}

	var output ops.DoneOutput
	if err := json.Unmarshal([]byte(resultText(t, result)), &output); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if output.Removed.Text != "b" {
		t.Errorf("Removed.Text = %q, want %q", output.Removed.Text, "b")
	}
	if output.Remaining != 2 {
		t.Errorf("Remaining = %d, want 2", output.Remaining)
	}
}

func TestHandleDone_OutOfRange(t *testing.T) {
	journalFile, cfg := testSetup(t)
	h := NewHandlers(journalFile, cfg)

	result, err := h.HandleDone(context.Background(), makeRequest(map[string]any{"position": 1}))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if !result.IsError {
		t.Fatal("expected error result, got success")
	}
	assertErrorCode(t, result, "POSITION_OUT_OF_RANGE")
}

func TestHandleList(t *testing.T) {
	journalFile, cfg := testSetup(t)
	h := NewHandlers(journalFile, cfg)
	ctx := context.Background()

	for _, text := range []string{"oldest", "newest"} {
		if _, err := h.HandleAdd(ctx, makeRequest(map[string]any{"text": text})); err != nil {
			t.Fatalf("seeding add failed: %v", err)
		}
	}

	result, err := h.HandleList(ctx, makeRequest(map[string]any{"order": "desc"}))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if result.IsError {
		t.Fatalf("expected success, got error: %s", resultText(t, result))
	}

	var output ops.ListOutput
	if err := json.Unmarshal([]byte(resultText(t, result)), &output); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if output.Count != 2 || output.Items[0].Text != "newest" {
		t.Errorf("output = %+v, want newest first", output)
	}
}

func TestHandleList_InvalidOrder(t *testing.T) {
	journalFile, cfg := testSetup(t)
	h := NewHandlers(journalFile, cfg)

	result, err := h.HandleList(context.Background(), makeRequest(map[string]any{"order": "sideways"}))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if !result.IsError {
		t.Fatal("expected error result, got success")
	}
	assertErrorCode(t, result, "INVALID_INPUT")
}

func TestHandleSearch(t *testing.T) {
	journalFile, cfg := testSetup(t)
	h := NewHandlers(journalFile, cfg)
	ctx := context.Background()

	for _, text := range []string{"Pay rent", "buy milk"} {
		if _, err := h.HandleAdd(ctx, makeRequest(map[string]any{"text": text})); err != nil {
			t.Fatalf("seeding add failed: %v", err)
		}
	}

	result, err := h.HandleSearch(ctx, makeRequest(map[string]any{"keyword": "RENT"}))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if result.IsError {
		t.Fatalf("expected success, got error: %s", resultText(t, result))
	}

	var output ops.SearchOutput
	if err := json.Unmarshal([]byte(resultText(t, result)), &output); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if output.Count != 1 || output.Items[0].Text != "Pay rent" {
		t.Errorf("output = %+v, want single match %q", output, "Pay rent")
	}
}

func TestNewServer_Registration(t *testing.T) {
	journalFile, cfg := testSetup(t)

	s := NewServer(journalFile, cfg, "test")
	tools := s.ListTools()

	if len(tools) != 4 {
		t.Errorf("registered tool count = %d, want 4", len(tools))
	}
	for _, name := range []string{"task_add", "task_done", "task_list", "task_search"} {
		if _, ok := tools[name]; !ok {
			t.Errorf("missing registered tool: %s", name)
		}
	}
}

func TestNewServer_DisabledTools(t *testing.T) {
	journalFile, cfg := testSetup(t)
	cfg.DisabledTools = []string{"task_done"}

	s := NewServer(journalFile, cfg, "test")
	tools := s.ListTools()

	if len(tools) != 3 {
		t.Errorf("registered tool count = %d, want 3", len(tools))
	}
	if _, ok := tools["task_done"]; ok {
		t.Error("disabled tool task_done should not be registered")
	}
	for _, name := range []string{"task_add", "task_list", "task_search"} {
		if _, ok := tools[name]; !ok {
			t.Errorf("tool %q should be registered", name)
		}
	}
}

func TestAllToolNames(t *testing.T) {
	names := AllToolNames()
	if len(names) != 4 {
		t.Errorf("len = %d, want 4", len(names))
	}
	seen := make(map[string]bool)
	for _, n := range names {
		seen[n] = true
	}
	for _, want := range []string{"task_add", "task_done", "task_list", "task_search"} {
		if !seen[want] {
			t.Errorf("missing tool name %q", want)
		}
	}
}
