package thermal

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/require"
)

// fillBGR builds a three-channel image whose pixels come from fn.
func fillBGR(w, h int, fn func(x, y int) (b, g, r uint8)) *Image {
	img := NewImage(w, h, 3)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			b, g, r := fn(x, y)
			off := (y*w + x) * 3
			img.Pix[off], img.Pix[off+1], img.Pix[off+2] = b, g, r
		}
	}
	return img
}

// gradientImage is a deterministic color test card.
func gradientImage(w, h int) *Image {
	return fillBGR(w, h, func(x, y int) (uint8, uint8, uint8) {
		return uint8(x * 255 / max(w-1, 1)), uint8(y * 255 / max(h-1, 1)), uint8((x*7 + y*13) % 256)
	})
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func solidNRGBA(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}
