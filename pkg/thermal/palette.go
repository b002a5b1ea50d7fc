package thermal

import (
	"image/color"
	"sync"

	"github.com/lucasb-eyer/go-colorful"
)

// Palette maps each 8-bit intensity to a display color.
type Palette [256]color.RGBA

// infernoStops are evenly spaced samples of the inferno colormap, black
// through purple and orange to pale yellow.
var infernoStops = [...]string{
	"#000004",
	"#1b0c41",
	"#4a0c6b",
	"#781c6d",
	"#a52c60",
	"#cf4446",
	"#ed6925",
	"#fb9b06",
	"#f7d13d",
	"#fcffa4",
}

var inferno = sync.OnceValue(func() *Palette {
	stops := make([]colorful.Color, len(infernoStops))
	for i, hex := range infernoStops {
		c, err := colorful.Hex(hex)
		if err != nil {
			panic("thermal: bad palette stop " + hex)
		}
		stops[i] = c
	}
	return interpolatePalette(stops)
})

// Inferno returns the shared inferno palette. Callers must not modify it.
func Inferno() *Palette { return inferno() }

// interpolatePalette spreads stops evenly over 256 entries, blending
// neighbours in CIE-Lab so lightness changes smoothly.
func interpolatePalette(stops []colorful.Color) *Palette {
	var p Palette
	segments := len(stops) - 1
	for i := range p {
		t := float64(i) / 255 * float64(segments)
		k := min(int(t), segments-1)
		c := stops[k].BlendLab(stops[k+1], t-float64(k)).Clamped()
		r, g, b := c.RGB255()
		p[i] = color.RGBA{R: r, G: g, B: b, A: 0xff}
	}
	return &p
}

// BGR returns the palette as 256 packed blue-green-red triples.
func (p *Palette) BGR() []byte {
	out := make([]byte, 0, len(p)*3)
	for _, c := range p {
		out = append(out, c.B, c.G, c.R)
	}
	return out
}

// lookupPalette colors a one-channel image.
func lookupPalette(gray *Image, p *Palette) *Image {
	out := NewImage(gray.Width, gray.Height, 3)
	for i, v := range gray.Pix {
		c := p[v]
		out.Pix[i*3] = c.B
		out.Pix[i*3+1] = c.G
		out.Pix[i*3+2] = c.R
	}
	return out
}
