package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/mkantor/tasklog/internal/config"
)

// toolEntry pairs a tool definition with a handler factory.
type toolEntry struct {
	def     mcp.Tool
	handler func(*Handlers) server.ToolHandlerFunc
}

// toolRegistry maps tool names to their definitions and handler factories.
var toolRegistry = map[string]toolEntry{
	"task_add": {
		def:     addToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleAdd },
	},
	"task_done": {
		def:     doneToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleDone },
	},
	"task_list": {
		def:     listToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleList },
	},
	"task_search": {
		def:     searchToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleSearch },
	},
}

var addToolDef = mcp.NewTool("task_add",
	mcp.WithDescription("Append a task to the journal"),
	mcp.WithString("text", mcp.Required(), mcp.Description("Task description")),
	mcp.WithString("due_date", mcp.Description("Optional due date, yyyy-mm-dd")),
)

var doneToolDef = mcp.NewTool("task_done",
	mcp.WithDescription("Remove a task by its 1-based position in ascending creation order"),
	mcp.WithNumber("position", mcp.Required(), mcp.Description("Position from task_list (ascending order)")),
)

var listToolDef = mcp.NewTool("task_list",
	mcp.WithDescription("List all tasks ordered by creation time"),
	mcp.WithString("order", mcp.Description("Listing order: asc (default) or desc")),
)

var searchToolDef = mcp.NewTool("task_search",
	mcp.WithDescription("Search tasks by case-insensitive keyword"),
	mcp.WithString("keyword", mcp.Required(), mcp.Description("Substring to match against task text")),
)

// AllToolNames returns a list of all valid tool names.
func AllToolNames() []string {
	names := make([]string, 0, len(toolRegistry))
	for name := range toolRegistry {
		names = append(names, name)
	}
	return names
}

// NewServer creates a new MCP server with tasklog tools registered.
// Tools listed in cfg.DisabledTools are excluded from registration.
func NewServer(journalFile string, cfg *config.Config, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"tasklog",
		version,
		server.WithToolCapabilities(true),
	)

	h := NewHandlers(journalFile, cfg)

	disabled := make(map[string]bool)
	for _, name := range cfg.DisabledTools {
		disabled[name] = true
	}

	for name, entry := range toolRegistry {
		if disabled[name] {
			continue
		}
		s.AddTool(entry.def, entry.handler(h))
	}

	return s
}

// Run starts the MCP server using stdio transport.
func Run(journalFile string, cfg *config.Config, version string) error {
	s := NewServer(journalFile, cfg, version)
	return server.ServeStdio(s)
}
