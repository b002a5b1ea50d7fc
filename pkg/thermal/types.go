package thermal

import (
	"errors"
	"fmt"
	"image"
	"math"
)

var (
	// ErrInvalidInput marks a per-image failure: undecodable data, wrong
	// channel count or a zero-area raster.
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvalidParameter marks an out-of-domain tunable. It is a
	// configuration error and should abort the whole run.
	ErrInvalidParameter = errors.New("invalid parameter")
)

// Params holds every tunable of the pipeline.
type Params struct {
	Gamma            float64
	BrightnessWeight float64
	RedWeight        float64
	GreenWeight      float64
	BlueWeight       float64
	// ClipLimit bounds each histogram bin, relative to a flat histogram.
	// Zero disables clipping.
	ClipLimit float64
	// TileGrid is the number of CLAHE tiles across (X) and down (Y).
	TileGrid image.Point
}

// NewParams returns the default parameter set.
func NewParams() *Params {
	return &Params{
		Gamma:            1.1,
		BrightnessWeight: 1.2,
		RedWeight:        1.5,
		GreenWeight:      0.7,
		BlueWeight:       0.3,
		ClipLimit:        2.0,
		TileGrid:         image.Pt(8, 8),
	}
}

// Validate reports the first out-of-domain parameter.
func (p *Params) Validate() error {
	if err := checkGamma(p.Gamma); err != nil {
		return err
	}
	weights := []struct {
		name  string
		value float64
	}{
		{"brightness weight", p.BrightnessWeight},
		{"red weight", p.RedWeight},
		{"green weight", p.GreenWeight},
		{"blue weight", p.BlueWeight},
		{"clip limit", p.ClipLimit},
	}
	for _, w := range weights {
		if math.IsNaN(w.value) || math.IsInf(w.value, 0) || w.value < 0 {
			return fmt.Errorf("%w: %s must be a finite non-negative number, got %v", ErrInvalidParameter, w.name, w.value)
		}
	}
	if p.TileGrid.X < 1 || p.TileGrid.Y < 1 {
		return fmt.Errorf("%w: tile grid must be at least 1x1, got %dx%d", ErrInvalidParameter, p.TileGrid.X, p.TileGrid.Y)
	}
	return nil
}

func (p *Params) String() string {
	return fmt.Sprintf("{Gamma=%g, Brightness=%g, R=%g, G=%g, B=%g, ClipLimit=%g, Tiles=%dx%d}",
		p.Gamma, p.BrightnessWeight, p.RedWeight, p.GreenWeight, p.BlueWeight,
		p.ClipLimit, p.TileGrid.X, p.TileGrid.Y)
}

// FieldStats describes the pseudo-intensity field before normalization.
type FieldStats struct {
	Min float64
	Max float64
	// Degenerate is set when the field has no dynamic range; every
	// normalized value is then 0.
	Degenerate bool
}

// Result carries both outputs of one synthesis. They are always produced
// together.
type Result struct {
	// Colored is the false-color image, three channels BGR.
	Colored *Image
	// Gray is the contrast-enhanced intensity field, one channel.
	Gray  *Image
	Stats FieldStats
}
