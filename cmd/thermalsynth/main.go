package main

import (
	"context"
	"fmt"
	"image"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"thermalsynth/pkg/batch"
	"thermalsynth/pkg/thermal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	cmd := newRootCommand(stdout)
	cmd.SetArgs(args)
	return cmd.ExecuteContext(ctx)
}

type options struct {
	params *thermal.Params
	cfg    batch.Config
	tiles  string
	quiet  bool
}

func newRootCommand(stdout io.Writer) *cobra.Command {
	opts := &options{params: thermal.NewParams(), cfg: batch.DefaultConfig()}

	cmd := &cobra.Command{
		Use:   "thermalsynth [input-folder]",
		Short: "Render thermal-style false-color images from ordinary photos",
		Long: "thermalsynth gamma-corrects every image in a folder, derives a weighted\n" +
			"pseudo-intensity field, enhances local contrast and maps it through an\n" +
			"inferno palette. A colored and a grayscale rendition are written per image.",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				opts.cfg.InputDir = args[0]
			}
			return opts.execute(cmd.Context(), stdout)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.cfg.InputDir, "input", "i", opts.cfg.InputDir, "folder containing the source images")
	f.StringVarP(&opts.cfg.OutputDir, "output", "o", opts.cfg.OutputDir, "folder receiving colored/ and grayscale/")
	f.Float64Var(&opts.params.Gamma, "gamma", opts.params.Gamma, "gamma applied before channel weighting (> 0)")
	f.Float64Var(&opts.params.BrightnessWeight, "brightness-weight", opts.params.BrightnessWeight, "overall multiplier of the pseudo-intensity")
	f.Float64Var(&opts.params.RedWeight, "red-weight", opts.params.RedWeight, "red channel weight")
	f.Float64Var(&opts.params.GreenWeight, "green-weight", opts.params.GreenWeight, "green channel weight")
	f.Float64Var(&opts.params.BlueWeight, "blue-weight", opts.params.BlueWeight, "blue channel weight")
	f.Float64Var(&opts.params.ClipLimit, "clip-limit", opts.params.ClipLimit, "contrast enhancement clip limit (0 disables clipping)")
	f.StringVar(&opts.tiles, "tiles", fmt.Sprintf("%dx%d", opts.params.TileGrid.X, opts.params.TileGrid.Y), "contrast enhancement tile grid, COLSxROWS")
	f.IntVar(&opts.cfg.Width, "width", opts.cfg.Width, "working width every image is resized to")
	f.IntVar(&opts.cfg.Height, "height", opts.cfg.Height, "working height every image is resized to")
	f.IntVar(&opts.cfg.Workers, "workers", opts.cfg.Workers, "number of images processed concurrently")
	f.BoolVar(&opts.cfg.Preview, "preview", false, "also write a comparison sheet per image to preview/")
	f.StringVar(&opts.cfg.ReportPath, "report", "", "write a JSON summary of the run to this file")
	f.BoolVarP(&opts.quiet, "quiet", "q", false, "suppress progress output")

	return cmd
}

func (o *options) execute(ctx context.Context, stdout io.Writer) error {
	grid, err := parseGrid(o.tiles)
	if err != nil {
		return err
	}
	o.params.TileGrid = grid

	synth, err := thermal.NewSynthesizer(o.params)
	if err != nil {
		return err
	}

	out := stdout
	if o.quiet {
		out = io.Discard
	}
	driver, err := batch.New(o.cfg, synth, out)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Backend: %s, params: %v\n", thermal.Backend, o.params)
	startTime := time.Now()
	summary, err := driver.Run(ctx)
	if err != nil {
		return err
	}
	if summary.Found > 0 {
		fmt.Fprintf(out, "Processed %d, skipped %d, failed %d in %.1fs\n",
			summary.Processed, summary.Skipped, summary.Failed, time.Since(startTime).Seconds())
	}
	return nil
}

func parseGrid(s string) (image.Point, error) {
	var cols, rows int
	if _, err := fmt.Sscanf(strings.ToLower(s), "%dx%d", &cols, &rows); err != nil {
		return image.Point{}, fmt.Errorf("%w: tile grid %q must look like 8x8", thermal.ErrInvalidParameter, s)
	}
	return image.Pt(cols, rows), nil
}
