package thermal

import (
	"image"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSynthesizeShapes(t *testing.T) {
	s, err := NewSynthesizer(nil)
	require.NoError(t, err)

	for _, size := range []image.Point{{512, 512}, {37, 23}, {1, 1}} {
		res, err := s.Synthesize(gradientImage(size.X, size.Y))
		require.NoError(t, err, "size %v", size)

		assert.Equal(t, size.X, res.Colored.Width)
		assert.Equal(t, size.Y, res.Colored.Height)
		assert.Equal(t, 3, res.Colored.Channels)
		assert.Equal(t, size.X, res.Gray.Width)
		assert.Equal(t, size.Y, res.Gray.Height)
		assert.Equal(t, 1, res.Gray.Channels)
	}
}

func TestSynthesizeDeterministic(t *testing.T) {
	s, err := NewSynthesizer(nil)
	require.NoError(t, err)
	img := gradientImage(128, 96)

	a, err := s.Synthesize(img)
	require.NoError(t, err)
	b, err := s.Synthesize(img)
	require.NoError(t, err)

	assert.Equal(t, a.Gray.Pix, b.Gray.Pix)
	assert.Equal(t, a.Colored.Pix, b.Colored.Pix)
	assert.Equal(t, a.Stats, b.Stats)
}

func TestSynthesizeColoredFollowsPalette(t *testing.T) {
	s, err := NewSynthesizer(nil)
	require.NoError(t, err)

	res, err := s.Synthesize(gradientImage(64, 48))
	require.NoError(t, err)

	p := Inferno()
	for y := 0; y < res.Gray.Height; y++ {
		for x := 0; x < res.Gray.Width; x++ {
			v := res.Gray.GrayAt(x, y)
			b, g, r := res.Colored.BGR(x, y)
			if b != p[v].B || g != p[v].G || r != p[v].R {
				t.Fatalf("(%d,%d): gray %d colored (%d,%d,%d) not palette entry", x, y, v, b, g, r)
			}
		}
	}
}

func TestSynthesizeAllBlack(t *testing.T) {
	s, err := NewSynthesizer(nil)
	require.NoError(t, err)

	res, err := s.Synthesize(NewImage(512, 512, 3))
	require.NoError(t, err)

	assert.True(t, res.Stats.Degenerate)
	for i, v := range res.Gray.Pix {
		if v != res.Gray.Pix[0] {
			t.Fatalf("gray pixel %d = %d, want uniform %d", i, v, res.Gray.Pix[0])
		}
	}
	assert.Equal(t, uint8(3), res.Gray.Pix[0])

	want := Inferno()[res.Gray.Pix[0]]
	b, g, r := res.Colored.BGR(511, 511)
	assert.Equal(t, []uint8{want.B, want.G, want.R}, []uint8{b, g, r})
}

func TestSynthesizeDoesNotModifyInput(t *testing.T) {
	s, err := NewSynthesizer(nil)
	require.NoError(t, err)
	img := gradientImage(40, 30)
	orig := img.Clone()

	_, err = s.Synthesize(img)
	require.NoError(t, err)
	assert.Equal(t, orig.Pix, img.Pix)
}

func TestSynthesizeRejectsBadInput(t *testing.T) {
	s, err := NewSynthesizer(nil)
	require.NoError(t, err)

	_, err = s.Synthesize(NewImage(8, 8, 1))
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = s.Synthesize(NewImage(0, 0, 3))
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = s.Synthesize(nil)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = s.Synthesize(&Image{Pix: make([]uint8, 5), Width: 2, Height: 2, Channels: 3})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestNewSynthesizerRejectsBadParams(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Params)
	}{
		{"zero gamma", func(p *Params) { p.Gamma = 0 }},
		{"negative gamma", func(p *Params) { p.Gamma = -2 }},
		{"NaN red weight", func(p *Params) { p.RedWeight = math.NaN() }},
		{"negative brightness", func(p *Params) { p.BrightnessWeight = -0.1 }},
		{"infinite clip", func(p *Params) { p.ClipLimit = math.Inf(1) }},
		{"empty grid", func(p *Params) { p.TileGrid = image.Pt(0, 8) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewParams()
			tt.modify(p)
			_, err := NewSynthesizer(p)
			assert.ErrorIs(t, err, ErrInvalidParameter)
		})
	}
}

func TestSynthesizeZeroWeightsIsFlat(t *testing.T) {
	p := NewParams()
	p.RedWeight, p.GreenWeight, p.BlueWeight = 0, 0, 0
	s, err := NewSynthesizer(p)
	require.NoError(t, err)

	res, err := s.Synthesize(gradientImage(32, 32))
	require.NoError(t, err)
	assert.True(t, res.Stats.Degenerate)
	assert.Equal(t, 0.0, res.Stats.Min)
	assert.Equal(t, 0.0, res.Stats.Max)
}

func TestSynthesizerParamsCopy(t *testing.T) {
	p := NewParams()
	p.Gamma = 2.2
	s, err := NewSynthesizer(p)
	require.NoError(t, err)

	p.Gamma = 5
	assert.Equal(t, 2.2, s.Params().Gamma)
}
