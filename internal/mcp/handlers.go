package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/mkantor/tasklog/internal/config"
	"github.com/mkantor/tasklog/internal/errors"
	"github.com/mkantor/tasklog/internal/ops"
)

// Handlers holds dependencies for MCP tool handlers.
type Handlers struct {
	journalFile string
	cfg         *config.Config
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(journalFile string, cfg *config.Config) *Handlers {
	return &Handlers{journalFile: journalFile, cfg: cfg}
}

// decode round-trips the raw argument map through JSON into a typed request
// struct, so handlers never type-assert on map values directly.
func decode[T any](req mcp.CallToolRequest) (T, error) {
	var out T
	raw, err := json.Marshal(req.GetArguments())
	if err != nil {
		return out, fmt.Errorf("encode arguments: %w", err)
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("decode arguments: %w", err)
	}
	return out, nil
}

// Request types for each tool

// AddRequest represents the arguments for task_add.
type AddRequest struct {
	Text    string `json:"text"`
	DueDate string `json:"due_date,omitempty"`
}

// DoneRequest represents the arguments for task_done.
type DoneRequest struct {
	Position int `json:"position"`
}

// ListRequest represents the arguments for task_list.
type ListRequest struct {
	Order string `json:"order,omitempty"`
}

// SearchRequest represents the arguments for task_search.
type SearchRequest struct {
	Keyword string `json:"keyword"`
}

// HandleAdd handles the task_add tool call.
func (h *Handlers) HandleAdd(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[AddRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidInput(err.Error())), nil
	}

	result, err := ops.Add(ops.AddInput{
		JournalFile: h.journalFile,
		Text:        input.Text,
		DueDate:     input.DueDate,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleDone handles the task_done tool call.
func (h *Handlers) HandleDone(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[DoneRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidInput(err.Error())), nil
	}

	result, err := ops.Done(ops.DoneInput{
		JournalFile: h.journalFile,
		Position:    input.Position,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleList handles the task_list tool call.
func (h *Handlers) HandleList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ListRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidInput(err.Error())), nil
	}

	result, err := ops.List(ops.ListInput{
		JournalFile: h.journalFile,
		Order:       ops.Order(input.Order),
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleSearch handles the task_search tool call.
func (h *Handlers) HandleSearch(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[SearchRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidInput(err.Error())), nil
	}

	result, err := ops.Search(ops.SearchInput{
		JournalFile: h.journalFile,
		Keyword:     input.Keyword,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// errorResult builds an error tool result from an operation error.
func errorResult(err error) *mcp.CallToolResult {
	var payload map[string]any

	if jErr, ok := err.(*errors.JournalError); ok {
		errorObj := map[string]any{
			"code":    jErr.Code,
			"message": jErr.Message,
			"status":  jErr.Status,
		}
		if jErr.Details != nil {
			errorObj["details"] = jErr.Details
		}
		payload = map[string]any{"error": errorObj}
	} else {
		payload = map[string]any{
			"error": map[string]any{
				"code":    "IO_FAILURE",
				"message": "an internal error occurred",
				"status":  500,
			},
		}
	}

	content, _ := json.Marshal(payload)
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.TextContent{Type: "text", Text: string(content)}},
		IsError: true,
	}
}

// successResult builds a success tool result with JSON content.
func successResult(data any) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultJSON(data)
}
