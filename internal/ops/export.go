package ops

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/mkantor/tasklog/internal/errors"
	"github.com/mkantor/tasklog/internal/journal"
)

// ExportSchemaVersion identifies the JSONL export format.
const ExportSchemaVersion = "1"

// ExportInput contains parameters for the Export operation.
type ExportInput struct {
	JournalFile string
	Path        string // optional, default: ~/.tasklog/exports/journal-<timestamp>.jsonl
}

// ExportOutput contains the result of the Export operation.
type ExportOutput struct {
	Path       string `json:"path"`
	Count      int    `json:"count"`
	ExportedAt int64  `json:"exported_at"`
}

// exportHeader is the first line of a JSONL export file.
type exportHeader struct {
	TasklogExport bool   `json:"_tasklog_export"`
	SchemaVersion string `json:"schema_version"`
	ExportedAt    int64  `json:"exported_at"`
}

// Export writes the journal as JSONL: a header line followed by one task per
// line, in insertion order. The write is atomic; a failure preserves any
// existing file at the destination. Read-only with respect to the journal.
func Export(input ExportInput) (*ExportOutput, error) {
	now := time.Now()
	exportedAt := now.Unix()

	exportPath := input.Path
	if exportPath == "" {
		var err error
		exportPath, err = defaultExportPath(now)
		if err != nil {
			return nil, err
		}
	}

	tasks, err := journal.Load(input.JournalFile)
	if err != nil {
		return nil, err
	}

	err = journal.AtomicWrite(exportPath, func(w io.Writer) error {
		enc := json.NewEncoder(w)
		if err := enc.Encode(exportHeader{
			TasklogExport: true,
			SchemaVersion: ExportSchemaVersion,
			ExportedAt:    exportedAt,
		}); err != nil {
			return err
		}
		for _, t := range tasks {
			if err := enc.Encode(t); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &ExportOutput{
		Path:       exportPath,
		Count:      len(tasks),
		ExportedAt: exportedAt,
	}, nil
}

// defaultExportPath generates the default export path.
// Format: ~/.tasklog/exports/journal-<timestamp>.jsonl
func defaultExportPath(now time.Time) (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", errors.NewIOFailure("", fmt.Errorf("failed to get home directory: %w", err))
	}

	filename := fmt.Sprintf("journal-%s.jsonl", now.Format("2006-01-02T150405"))
	return filepath.Join(homeDir, ".tasklog", "exports", filename), nil
}
