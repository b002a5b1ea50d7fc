//go:build purego || js

package thermal

import (
	"bytes"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"
)

// Backend names the image-processing implementation compiled in.
const Backend = "purego"

// jpegQuality matches the OpenCV encoder default.
const jpegQuality = 95

// --- Pure Go operations ---

func applyTable(img *Image, table *[256]uint8) (*Image, error) {
	out := NewImage(img.Width, img.Height, img.Channels)
	for i, v := range img.Pix {
		out.Pix[i] = table[v]
	}
	return out, nil
}

func equalize(gray *Image, clipLimit float64, grid image.Point) (*Image, error) {
	return equalizeTiles(gray, clipLimit, grid), nil
}

func applyPalette(gray *Image, p *Palette) (*Image, error) {
	return lookupPalette(gray, p), nil
}

func resize(img *Image, width, height int) (*Image, error) {
	src := img.ToImage()
	if img.Channels == 1 {
		dst := image.NewGray(image.Rect(0, 0, width, height))
		draw.BiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
		out := NewImage(width, height, 1)
		copy(out.Pix, dst.Pix)
		return out, nil
	}
	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	draw.BiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return FromImage(dst), nil
}

func decode(data []byte) (*Image, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return FromImage(img), nil
}

func encode(ext string, img *Image) ([]byte, error) {
	format, err := imaging.FormatFromExtension(ext)
	if err != nil {
		return nil, fmt.Errorf("encoding %s: %w", ext, err)
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img.ToImage(), format, imaging.JPEGQuality(jpegQuality)); err != nil {
		return nil, fmt.Errorf("encoding %s: %w", ext, err)
	}
	return buf.Bytes(), nil
}
