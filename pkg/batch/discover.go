package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Discover lists candidate files in the input folder. Files are grouped by
// extension in configuration order and sorted by name within a group. The
// folder is not searched recursively.
func (d *Driver) Discover() ([]string, error) {
	entries, err := os.ReadDir(d.cfg.InputDir)
	if err != nil {
		return nil, fmt.Errorf("reading input folder: %w", err)
	}

	var paths []string
	for _, ext := range d.cfg.Extensions {
		found := 0
		for _, e := range entries {
			if !strings.EqualFold(filepath.Ext(e.Name()), ext) {
				continue
			}
			path := filepath.Join(d.cfg.InputDir, e.Name())
			if !isFile(e, path) {
				continue
			}
			paths = append(paths, path)
			found++
		}
		d.logf("Found %d images with extension %s\n", found, ext)
	}
	d.logf("\nTotal images found: %d\n\n", len(paths))
	return paths, nil
}

// isFile follows symlinks so linked images are picked up like plain ones.
func isFile(e os.DirEntry, path string) bool {
	if e.Type().IsRegular() {
		return true
	}
	if e.Type()&os.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
