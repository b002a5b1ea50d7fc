package batch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/cenkalti/dominantcolor"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/sync/errgroup"

	"thermalsynth/pkg/thermal"
)

// Status is the fate of one input file.
type Status string

const (
	StatusProcessed Status = "processed"
	// StatusSkipped marks inputs that could not be loaded or synthesized.
	StatusSkipped Status = "skipped"
	// StatusFailed marks inputs whose outputs could not be encoded or written.
	StatusFailed Status = "failed"
)

// Outcome records what happened to one input file.
type Outcome struct {
	Input      string  `json:"input"`
	Status     Status  `json:"status"`
	Reason     string  `json:"reason,omitempty"`
	Colored    string  `json:"colored,omitempty"`
	Grayscale  string  `json:"grayscale,omitempty"`
	Preview    string  `json:"preview,omitempty"`
	FieldMin   float64 `json:"field_min"`
	FieldMax   float64 `json:"field_max"`
	Degenerate bool    `json:"degenerate,omitempty"`
	Dominant   string  `json:"dominant_color,omitempty"`
}

// Summary aggregates a run. Outcomes are in discovery order.
type Summary struct {
	Found     int       `json:"found"`
	Processed int       `json:"processed"`
	Skipped   int       `json:"skipped"`
	Failed    int       `json:"failed"`
	Outcomes  []Outcome `json:"outcomes"`
}

// Driver walks an input folder and writes a colored and a grayscale
// rendition of every image it can read.
type Driver struct {
	cfg   Config
	synth *thermal.Synthesizer

	mu  sync.Mutex
	out io.Writer
}

// New validates cfg. Progress lines go to out; pass io.Discard to silence them.
func New(cfg Config, synth *thermal.Synthesizer, out io.Writer) (*Driver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if synth == nil {
		return nil, fmt.Errorf("%w: no synthesizer", thermal.ErrInvalidParameter)
	}
	if out == nil {
		out = io.Discard
	}
	return &Driver{cfg: cfg, synth: synth, out: out}, nil
}

func (d *Driver) logf(format string, args ...any) {
	d.mu.Lock()
	defer d.mu.Unlock()
	fmt.Fprintf(d.out, format, args...)
}

// Run discovers inputs and processes each of them. Per-file problems are
// recorded in the summary and never abort the run; only setup failures and
// cancellation are returned as errors.
func (d *Driver) Run(ctx context.Context) (*Summary, error) {
	for _, dir := range d.outputDirs() {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating output folder: %w", err)
		}
	}

	paths, err := d.Discover()
	if err != nil {
		return nil, err
	}
	summary := &Summary{Found: len(paths), Outcomes: make([]Outcome, len(paths))}
	if len(paths) == 0 {
		d.logf("No images found. Check folder name or add supported formats.\n")
		return summary, d.writeReport(summary)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(d.cfg.Workers)
	for i, path := range paths {
		i, path := i, path
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			// The slot may free up only after cancellation.
			if gctx.Err() != nil {
				return nil
			}
			d.logf("[%d/%d] Processing: %s\n", i+1, len(paths), filepath.Base(path))
			summary.Outcomes[i] = d.ProcessFile(path)
			return nil
		})
	}
	g.Wait()

	// Files never started have no status and are left out.
	dispatched := summary.Outcomes[:0]
	for _, o := range summary.Outcomes {
		switch o.Status {
		case StatusProcessed:
			summary.Processed++
		case StatusSkipped:
			summary.Skipped++
		case StatusFailed:
			summary.Failed++
		default:
			continue
		}
		dispatched = append(dispatched, o)
	}
	summary.Outcomes = dispatched

	if err := d.writeReport(summary); err != nil {
		return summary, err
	}
	if err := ctx.Err(); err != nil {
		return summary, err
	}
	d.logf("Done! %d of %d thermal images saved.\n", summary.Processed, summary.Found)
	return summary, nil
}

// ProcessFile loads, resizes and synthesizes one file and persists both
// outputs together.
func (d *Driver) ProcessFile(path string) Outcome {
	name := filepath.Base(path)
	outcome := Outcome{Input: path}

	img, err := thermal.Load(path)
	if err == nil {
		img, err = thermal.Resize(img, d.cfg.Width, d.cfg.Height)
	}
	if err != nil {
		d.logf("Failed to load %s, skipping: %v\n", name, err)
		outcome.Status, outcome.Reason = StatusSkipped, err.Error()
		return outcome
	}

	res, err := d.synth.Synthesize(img)
	if err != nil {
		status := StatusFailed
		if errors.Is(err, thermal.ErrInvalidInput) {
			status = StatusSkipped
		}
		d.logf("Failed to process %s: %v\n", name, err)
		outcome.Status, outcome.Reason = status, err.Error()
		return outcome
	}
	outcome.FieldMin, outcome.FieldMax = res.Stats.Min, res.Stats.Max
	outcome.Degenerate = res.Stats.Degenerate

	files, err := d.encodeOutputs(img, res, name)
	if err == nil {
		err = writeAll(files...)
	}
	if err != nil {
		d.logf("Failed to save %s: %v\n", name, err)
		outcome.Status, outcome.Reason = StatusFailed, err.Error()
		return outcome
	}

	outcome.Status = StatusProcessed
	outcome.Colored, outcome.Grayscale = files[0].path, files[1].path
	if d.cfg.Preview {
		outcome.Preview = files[2].path
	}
	if d.cfg.ReportPath != "" {
		outcome.Dominant = dominantHex(res.Colored)
	}
	d.logf("Saved: %s and %s\n\n", outcome.Colored, outcome.Grayscale)
	return outcome
}

// encodeOutputs renders every output file in memory. The colored and
// grayscale files come first, in that order.
func (d *Driver) encodeOutputs(img *thermal.Image, res *thermal.Result, name string) ([]pendingFile, error) {
	ext := filepath.Ext(name)
	colored, err := thermal.Encode(ext, res.Colored)
	if err != nil {
		return nil, fmt.Errorf("colored output: %w", err)
	}
	gray, err := thermal.Encode(ext, res.Gray)
	if err != nil {
		return nil, fmt.Errorf("grayscale output: %w", err)
	}
	files := []pendingFile{
		{path: filepath.Join(d.cfg.OutputDir, coloredDir, name), data: colored},
		{path: filepath.Join(d.cfg.OutputDir, grayscaleDir, name), data: gray},
	}

	if d.cfg.Preview {
		sheet, err := thermal.RenderPreviewBytes(img, res, name)
		if err != nil {
			return nil, fmt.Errorf("preview: %w", err)
		}
		preview := strings.TrimSuffix(name, ext) + ".jpg"
		files = append(files, pendingFile{path: filepath.Join(d.cfg.OutputDir, previewDir, preview), data: sheet})
	}
	return files, nil
}

// dominantHex names the most prominent color of the false-color output.
func dominantHex(img *thermal.Image) string {
	found := dominantcolor.FindWeight(img.ToImage(), 1)
	if len(found) == 0 {
		return ""
	}
	c, _ := colorful.MakeColor(found[0].RGBA)
	return c.Hex()
}

func (d *Driver) outputDirs() []string {
	dirs := []string{
		filepath.Join(d.cfg.OutputDir, coloredDir),
		filepath.Join(d.cfg.OutputDir, grayscaleDir),
	}
	if d.cfg.Preview {
		dirs = append(dirs, filepath.Join(d.cfg.OutputDir, previewDir))
	}
	return dirs
}
