package thermal

import (
	"fmt"
)

// Synthesizer turns color photographs into thermal-style images. It holds
// only immutable tables and may be shared between goroutines.
type Synthesizer struct {
	params  Params
	gamma   *GammaTable
	palette *Palette
}

// NewSynthesizer validates p and precomputes the gamma table.
func NewSynthesizer(p *Params) (*Synthesizer, error) {
	if p == nil {
		p = NewParams()
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	gamma, err := NewGammaTable(p.Gamma)
	if err != nil {
		return nil, err
	}
	return &Synthesizer{
		params:  *p,
		gamma:   gamma,
		palette: Inferno(),
	}, nil
}

// Params returns a copy of the parameters in use.
func (s *Synthesizer) Params() Params { return s.params }

// Synthesize runs the full pipeline on a three-channel BGR image:
// gamma correction, weighted pseudo-intensity, min-max normalization,
// 8-bit quantization, tiled contrast enhancement and palette mapping.
// Both outputs share the input's width and height.
func (s *Synthesizer) Synthesize(img *Image) (*Result, error) {
	if err := img.validateColor(); err != nil {
		return nil, err
	}

	corrected, err := s.gamma.Apply(img)
	if err != nil {
		return nil, fmt.Errorf("gamma correction: %w", err)
	}

	field := pseudoIntensity(corrected, &s.params)
	stats := normalizeMinMax(field)
	normalized := quantize(field, img.Width, img.Height)

	gray, err := equalize(normalized, s.params.ClipLimit, s.params.TileGrid)
	if err != nil {
		return nil, fmt.Errorf("contrast enhancement: %w", err)
	}
	colored, err := applyPalette(gray, s.palette)
	if err != nil {
		return nil, fmt.Errorf("palette mapping: %w", err)
	}

	return &Result{Colored: colored, Gray: gray, Stats: stats}, nil
}
