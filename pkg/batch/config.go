package batch

import (
	"fmt"
	"strings"

	"thermalsynth/pkg/thermal"
)

const (
	coloredDir   = "colored"
	grayscaleDir = "grayscale"
	previewDir   = "preview"
)

// DefaultExtensions lists the candidate extensions in discovery order.
var DefaultExtensions = []string{".jpg", ".jpeg", ".png", ".bmp"}

// Config controls a batch run.
type Config struct {
	InputDir  string
	OutputDir string
	// Width and Height are the canonical working size every input is
	// resized to before synthesis.
	Width  int
	Height int
	// Extensions are matched case-insensitively, in order.
	Extensions []string
	// Workers > 1 processes images concurrently.
	Workers int
	// Preview additionally writes a comparison sheet per image.
	Preview bool
	// ReportPath, when set, receives a JSON summary of the run.
	ReportPath string
}

// DefaultConfig returns the defaults of the command line tool.
func DefaultConfig() Config {
	return Config{
		InputDir:   "images",
		OutputDir:  "thermal_outputs",
		Width:      512,
		Height:     512,
		Extensions: append([]string(nil), DefaultExtensions...),
		Workers:    1,
	}
}

// Validate rejects configurations that can never succeed.
func (c *Config) Validate() error {
	if c.InputDir == "" {
		return fmt.Errorf("%w: input folder is empty", thermal.ErrInvalidParameter)
	}
	if c.OutputDir == "" {
		return fmt.Errorf("%w: output folder is empty", thermal.ErrInvalidParameter)
	}
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: working size must be positive, got %dx%d", thermal.ErrInvalidParameter, c.Width, c.Height)
	}
	if c.Workers < 1 {
		return fmt.Errorf("%w: workers must be at least 1, got %d", thermal.ErrInvalidParameter, c.Workers)
	}
	if len(c.Extensions) == 0 {
		return fmt.Errorf("%w: no file extensions configured", thermal.ErrInvalidParameter)
	}
	seen := make(map[string]bool, len(c.Extensions))
	for _, ext := range c.Extensions {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			return fmt.Errorf("%w: extension %q must start with a dot", thermal.ErrInvalidParameter, ext)
		}
		// Matching ignores case, so ".jpg" and ".JPG" would list every file twice.
		key := strings.ToLower(ext)
		if seen[key] {
			return fmt.Errorf("%w: extension %q is listed more than once", thermal.ErrInvalidParameter, ext)
		}
		seen[key] = true
	}
	return nil
}
