package main

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"thermalsynth/pkg/thermal"
)

func writeTestPNG(t *testing.T, path string) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 40, 30))
	for y := 0; y < 30; y++ {
		for x := 0; x < 40; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 6), G: uint8(y * 8), B: 50, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
}

func TestRun(t *testing.T) {
	in := t.TempDir()
	out := filepath.Join(t.TempDir(), "out")
	writeTestPNG(t, filepath.Join(in, "photo.png"))

	var stdout bytes.Buffer
	err := run(context.Background(), []string{in, "--output", out, "--width", "64", "--height", "48", "--tiles", "4x3"}, &stdout)
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(out, "colored", "photo.png"))
	assert.FileExists(t, filepath.Join(out, "grayscale", "photo.png"))
	assert.Contains(t, stdout.String(), "Backend: "+thermal.Backend)
	assert.Contains(t, stdout.String(), "Tiles=4x3")
	assert.Contains(t, stdout.String(), "Done! 1 of 1 thermal images saved.")
	assert.Contains(t, stdout.String(), "Processed 1, skipped 0, failed 0")
}

func TestRunQuiet(t *testing.T) {
	in := t.TempDir()
	writeTestPNG(t, filepath.Join(in, "photo.png"))

	var stdout bytes.Buffer
	err := run(context.Background(), []string{"-i", in, "-o", t.TempDir(), "-q"}, &stdout)
	require.NoError(t, err)
	assert.Empty(t, stdout.String())
}

func TestRunRejectsBadParameters(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"zero gamma", []string{"--gamma", "0"}},
		{"negative weight", []string{"--red-weight", "-1"}},
		{"bad tiles", []string{"--tiles", "eight"}},
		{"empty tile grid", []string{"--tiles", "0x8"}},
		{"no workers", []string{"--workers", "0"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"-i", t.TempDir(), "-o", t.TempDir()}, tt.args...)
			err := run(context.Background(), args, &bytes.Buffer{})
			assert.ErrorIs(t, err, thermal.ErrInvalidParameter)
		})
	}
}

func TestParseGrid(t *testing.T) {
	grid, err := parseGrid("16X9")
	require.NoError(t, err)
	assert.Equal(t, image.Pt(16, 9), grid)
}
