package thermal

import (
	"gonum.org/v1/gonum/floats"
)

// pseudoIntensity computes (R*wr + G*wg + B*wb) * wbright for every pixel of
// a BGR image, with channels rescaled to [0, 1]. Arithmetic is float32 to
// match the rest of the pipeline; the field itself is stored as float64.
func pseudoIntensity(img *Image, p *Params) []float64 {
	wr := float32(p.RedWeight)
	wg := float32(p.GreenWeight)
	wb := float32(p.BlueWeight)
	bright := float32(p.BrightnessWeight)

	n := img.Area()
	field := make([]float64, n)
	for i := 0; i < n; i++ {
		b := float32(img.Pix[i*3]) / 255
		g := float32(img.Pix[i*3+1]) / 255
		r := float32(img.Pix[i*3+2]) / 255
		field[i] = float64((r*wr + g*wg + b*wb) * bright)
	}
	return field
}

// normalizeMinMax rescales field in place so its minimum becomes 0 and its
// maximum 1. A constant field maps to all zeros.
func normalizeMinMax(field []float64) FieldStats {
	lo, hi := floats.Min(field), floats.Max(field)
	stats := FieldStats{Min: lo, Max: hi}
	if hi-lo <= 0 {
		stats.Degenerate = true
		for i := range field {
			field[i] = 0
		}
		return stats
	}
	floats.AddConst(-lo, field)
	floats.Scale(1/(hi-lo), field)
	return stats
}

// quantize maps a [0, 1] field to 8 bits by multiplying by 255 and
// truncating.
func quantize(field []float64, width, height int) *Image {
	out := NewImage(width, height, 1)
	for i, v := range field {
		out.Pix[i] = truncateUint8(float64(float32(v) * 255))
	}
	return out
}
