package thermal

import (
	"fmt"
	"math"
)

// GammaTable maps every 8-bit intensity to its gamma-corrected value.
// It is immutable once built and safe for concurrent use.
type GammaTable struct {
	gamma float64
	table [256]uint8
}

func checkGamma(gamma float64) error {
	if math.IsNaN(gamma) || math.IsInf(gamma, 0) || gamma <= 0 {
		return fmt.Errorf("%w: gamma must be a finite number > 0, got %v", ErrInvalidParameter, gamma)
	}
	return nil
}

// NewGammaTable precomputes 255*(v/255)^(1/gamma) for every v. Values are
// truncated toward zero, the same convention used when quantizing the
// normalized field.
func NewGammaTable(gamma float64) (*GammaTable, error) {
	if err := checkGamma(gamma); err != nil {
		return nil, err
	}
	t := &GammaTable{gamma: gamma}
	inv := 1.0 / gamma
	for i := range t.table {
		v := math.Pow(float64(i)/255.0, inv) * 255.0
		t.table[i] = truncateUint8(v)
	}
	return t, nil
}

func (t *GammaTable) Gamma() float64 { return t.gamma }

// Lookup returns the corrected value for v.
func (t *GammaTable) Lookup(v uint8) uint8 { return t.table[v] }

// Table returns a copy of the 256 entries.
func (t *GammaTable) Table() [256]uint8 { return t.table }

// Apply remaps every channel of img through the table and returns a new
// image of identical shape.
func (t *GammaTable) Apply(img *Image) (*Image, error) {
	if err := img.validate(); err != nil {
		return nil, err
	}
	return applyTable(img, &t.table)
}

// GammaCorrect is a one-shot helper building a table for gamma and applying it.
func GammaCorrect(img *Image, gamma float64) (*Image, error) {
	t, err := NewGammaTable(gamma)
	if err != nil {
		return nil, err
	}
	return t.Apply(img)
}

// truncateUint8 casts toward zero after clamping to [0, 255].
func truncateUint8(v float64) uint8 {
	switch {
	case v <= 0 || math.IsNaN(v):
		return 0
	case v >= 255:
		return 255
	}
	return uint8(v)
}

// saturateUint8 rounds half to even and clamps to [0, 255].
func saturateUint8(v float32) uint8 {
	r := math.RoundToEven(float64(v))
	switch {
	case r <= 0 || math.IsNaN(r):
		return 0
	case r >= 255:
		return 255
	}
	return uint8(r)
}
