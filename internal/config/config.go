package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// Config holds application configuration.
type Config struct {
	// JournalFile is the default journal path. The -j/--journal-file flag
	// overrides it per invocation.
	JournalFile string `json:"journal_file,omitempty"`

	// DefaultOrder is the listing order used when `list` is run without
	// --order. One of "asc" or "desc"; defaults to "asc".
	DefaultOrder string `json:"default_order,omitempty"`

	// DisabledTools is a list of MCP tool names to exclude from registration.
	// Unknown tool names are ignored at registration time.
	DisabledTools []string `json:"disabled_tools,omitempty"`

	// WebBind is the address the web viewer binds to. Defaults to 127.0.0.1.
	WebBind string `json:"web_bind,omitempty"`

	// WebPort is the web viewer port. Defaults to 7777.
	WebPort int `json:"web_port,omitempty"`
}

// DefaultConfig returns the default configuration rooted at baseDir.
func DefaultConfig(baseDir string) *Config {
	return &Config{
		JournalFile:  filepath.Join(baseDir, "journal.json"),
		DefaultOrder: "asc",
		WebBind:      "127.0.0.1",
		WebPort:      7777,
	}
}

// Load loads configuration from baseDir/config.json.
// Returns default config if the file doesn't exist.
// The baseDir parameter allows tests to use t.TempDir() instead of ~/.tasklog.
func Load(baseDir string) (*Config, error) {
	overlay, err := loadFileRaw(filepath.Join(baseDir, "config.json"))
	if err != nil {
		return nil, err
	}
	return Merge(DefaultConfig(baseDir), overlay), nil
}

// loadFileRaw loads configuration from a specific file path.
// Returns zero-valued config if the file doesn't exist (not defaults).
func loadFileRaw(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, err
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Merge combines base and overlay configs.
// Overlay values take precedence for scalars; the tool list is merged and
// deduplicated.
func Merge(base, overlay *Config) *Config {
	result := &Config{}

	result.JournalFile = overlay.JournalFile
	if result.JournalFile == "" {
		result.JournalFile = base.JournalFile
	}

	result.DefaultOrder = overlay.DefaultOrder
	if result.DefaultOrder == "" {
		result.DefaultOrder = base.DefaultOrder
	}

	result.WebBind = overlay.WebBind
	if result.WebBind == "" {
		result.WebBind = base.WebBind
	}

	result.WebPort = overlay.WebPort
	if result.WebPort == 0 {
		result.WebPort = base.WebPort
	}

	result.DisabledTools = mergeStringSlice(base.DisabledTools, overlay.DisabledTools)

	return result
}

// mergeStringSlice combines two slices, trims whitespace, and removes duplicates.
func mergeStringSlice(a, b []string) []string {
	seen := make(map[string]bool)
	result := make([]string, 0, len(a)+len(b))

	for _, s := range append(append([]string{}, a...), b...) {
		s = strings.TrimSpace(s)
		if s != "" && !seen[s] {
			seen[s] = true
			result = append(result, s)
		}
	}

	if len(result) == 0 {
		return nil
	}
	return result
}
