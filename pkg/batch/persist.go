package batch

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

type pendingFile struct {
	path string
	data []byte
}

// writeAll persists every file or none. Each file is staged next to its
// destination and renamed into place once all of them are on disk; any
// failure removes what was written so far.
func writeAll(files ...pendingFile) error {
	staged := make([]string, 0, len(files))
	cleanup := func() {
		for _, tmp := range staged {
			os.Remove(tmp)
		}
	}

	for _, f := range files {
		tmp, err := stage(f)
		if err != nil {
			cleanup()
			return err
		}
		staged = append(staged, tmp)
	}

	for i, f := range files {
		if err := os.Rename(staged[i], f.path); err != nil {
			var errs []error
			errs = append(errs, fmt.Errorf("moving %s into place: %w", filepath.Base(f.path), err))
			for _, done := range files[:i] {
				if rmErr := os.Remove(done.path); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) {
					errs = append(errs, rmErr)
				}
			}
			staged = staged[i:]
			cleanup()
			return errors.Join(errs...)
		}
	}
	return nil
}

func stage(f pendingFile) (string, error) {
	tmp, err := os.CreateTemp(filepath.Dir(f.path), "."+filepath.Base(f.path)+".*.tmp")
	if err != nil {
		return "", fmt.Errorf("staging %s: %w", filepath.Base(f.path), err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("staging %s: %w", filepath.Base(f.path), err)
	}
	if _, err := tmp.Write(f.data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("writing %s: %w", filepath.Base(f.path), err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("closing %s: %w", filepath.Base(f.path), err)
	}
	return tmp.Name(), nil
}
