// Package export renders the assembled report into its persisted artifacts.
package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/de-tools/backup-atlas/pkg/models/api"
	"github.com/de-tools/backup-atlas/pkg/models/domain"
)

// WriteJSONReport writes the machine-readable artifact, creating parent
// directories as needed.
func WriteJSONReport(report domain.Report, path string) error {
	payload, err := MarshalReport(report)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return fmt.Errorf("failed to write JSON report: %w", err)
	}
	return nil
}

// MarshalReport serializes a report into its wire form with two-space
// indentation.
func MarshalReport(report domain.Report) ([]byte, error) {
	payload, err := json.MarshalIndent(api.ReportFromDomain(report), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal report: %w", err)
	}
	return payload, nil
}
