package batch

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// writeReport stores the summary as indented JSON when a report path is
// configured. The file is replaced atomically.
func (d *Driver) writeReport(s *Summary) error {
	if d.cfg.ReportPath == "" {
		return nil
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(d.cfg.ReportPath), 0o755); err != nil {
		return fmt.Errorf("creating report folder: %w", err)
	}
	if err := writeAll(pendingFile{path: d.cfg.ReportPath, data: append(data, '\n')}); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}
