//go:build !purego && !js

package thermal

import (
	"bytes"
	"fmt"
	"image"

	"gocv.io/x/gocv"
)

// Backend names the image-processing implementation compiled in.
const Backend = "opencv"

func toMat(img *Image) (gocv.Mat, error) {
	mt := gocv.MatTypeCV8UC3
	if img.Channels == 1 {
		mt = gocv.MatTypeCV8UC1
	}
	return gocv.NewMatFromBytes(img.Height, img.Width, mt, img.Pix)
}

func fromMat(m gocv.Mat) (*Image, error) {
	if m.Empty() {
		return nil, fmt.Errorf("%w: empty matrix", ErrInvalidInput)
	}
	return &Image{
		Pix:      m.ToBytes(),
		Width:    m.Cols(),
		Height:   m.Rows(),
		Channels: m.Channels(),
	}, nil
}

// --- CV operations ---

func applyTable(img *Image, table *[256]uint8) (*Image, error) {
	src, err := toMat(img)
	if err != nil {
		return nil, fmt.Errorf("wrapping image: %w", err)
	}
	defer src.Close()
	lut, err := gocv.NewMatFromBytes(1, 256, gocv.MatTypeCV8U, table[:])
	if err != nil {
		return nil, fmt.Errorf("wrapping lookup table: %w", err)
	}
	defer lut.Close()

	dst := gocv.NewMat()
	defer dst.Close()
	gocv.LUT(src, lut, &dst)
	return fromMat(dst)
}

func equalize(gray *Image, clipLimit float64, grid image.Point) (*Image, error) {
	src, err := toMat(gray)
	if err != nil {
		return nil, fmt.Errorf("wrapping image: %w", err)
	}
	defer src.Close()

	clahe := gocv.NewCLAHEWithParams(clipLimit, grid)
	defer clahe.Close()
	dst := gocv.NewMat()
	defer dst.Close()
	clahe.Apply(src, &dst)
	return fromMat(dst)
}

func applyPalette(gray *Image, p *Palette) (*Image, error) {
	src, err := toMat(gray)
	if err != nil {
		return nil, fmt.Errorf("wrapping image: %w", err)
	}
	defer src.Close()
	cmap, err := gocv.NewMatFromBytes(256, 1, gocv.MatTypeCV8UC3, p.BGR())
	if err != nil {
		return nil, fmt.Errorf("wrapping palette: %w", err)
	}
	defer cmap.Close()

	dst := gocv.NewMat()
	defer dst.Close()
	gocv.ApplyCustomColorMap(src, &dst, cmap)
	return fromMat(dst)
}

func resize(img *Image, width, height int) (*Image, error) {
	src, err := toMat(img)
	if err != nil {
		return nil, fmt.Errorf("wrapping image: %w", err)
	}
	defer src.Close()
	dst := gocv.NewMat()
	defer dst.Close()
	gocv.Resize(src, &dst, image.Pt(width, height), 0, 0, gocv.InterpolationLinear)
	return fromMat(dst)
}

func decode(data []byte) (*Image, error) {
	m, err := gocv.IMDecode(data, gocv.IMReadColor)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	defer m.Close()
	if m.Empty() {
		return nil, fmt.Errorf("%w: not a decodable image", ErrInvalidInput)
	}
	return fromMat(m)
}

func encode(ext string, img *Image) ([]byte, error) {
	src, err := toMat(img)
	if err != nil {
		return nil, fmt.Errorf("wrapping image: %w", err)
	}
	defer src.Close()
	buf, err := gocv.IMEncode(gocv.FileExt(ext), src)
	if err != nil {
		return nil, fmt.Errorf("encoding %s: %w", ext, err)
	}
	defer buf.Close()
	return bytes.Clone(buf.GetBytes()), nil
}
