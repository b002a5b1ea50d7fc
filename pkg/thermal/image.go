package thermal

import (
	"fmt"
	"image"
	"image/color"
)

// Image is an 8-bit interleaved raster. Three-channel images are stored in
// blue-green-red order, one-channel images hold a single intensity plane.
type Image struct {
	Pix      []uint8
	Width    int
	Height   int
	Channels int
}

// NewImage allocates a zeroed raster.
func NewImage(width, height, channels int) *Image {
	return &Image{
		Pix:      make([]uint8, width*height*channels),
		Width:    width,
		Height:   height,
		Channels: channels,
	}
}

func (img *Image) Bounds() image.Rectangle { return image.Rect(0, 0, img.Width, img.Height) }
func (img *Image) Area() int               { return img.Width * img.Height }

// Clone returns a deep copy.
func (img *Image) Clone() *Image {
	out := *img
	out.Pix = append([]uint8(nil), img.Pix...)
	return &out
}

// BGR returns the color channels of the pixel at (x, y).
// Only valid for three-channel images.
func (img *Image) BGR(x, y int) (b, g, r uint8) {
	off := (y*img.Width + x) * 3
	return img.Pix[off], img.Pix[off+1], img.Pix[off+2]
}

// GrayAt returns the intensity at (x, y) of a one-channel image.
func (img *Image) GrayAt(x, y int) uint8 {
	return img.Pix[y*img.Width+x]
}

func (img *Image) String() string {
	return fmt.Sprintf("{%dx%d, channels=%d}", img.Width, img.Height, img.Channels)
}

// validate checks the raster is well formed and non-empty.
func (img *Image) validate() error {
	if img == nil {
		return fmt.Errorf("%w: nil image", ErrInvalidInput)
	}
	if img.Width <= 0 || img.Height <= 0 {
		return fmt.Errorf("%w: zero-area image %dx%d", ErrInvalidInput, img.Width, img.Height)
	}
	if img.Channels != 1 && img.Channels != 3 {
		return fmt.Errorf("%w: unsupported channel count %d", ErrInvalidInput, img.Channels)
	}
	if len(img.Pix) != img.Width*img.Height*img.Channels {
		return fmt.Errorf("%w: pixel buffer holds %d bytes, want %d",
			ErrInvalidInput, len(img.Pix), img.Width*img.Height*img.Channels)
	}
	return nil
}

// validateColor additionally requires three channels.
func (img *Image) validateColor() error {
	if err := img.validate(); err != nil {
		return err
	}
	if img.Channels != 3 {
		return fmt.Errorf("%w: expected 3 channels, got %d", ErrInvalidInput, img.Channels)
	}
	return nil
}

// FromImage converts a decoded image into a three-channel BGR raster.
// Alpha is dropped without compositing.
func FromImage(src image.Image) *Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	out := NewImage(w, h, 3)

	if nrgba, ok := src.(*image.NRGBA); ok {
		for y := 0; y < h; y++ {
			row := nrgba.Pix[y*nrgba.Stride:]
			for x := 0; x < w; x++ {
				off := (y*w + x) * 3
				out.Pix[off] = row[x*4+2]
				out.Pix[off+1] = row[x*4+1]
				out.Pix[off+2] = row[x*4]
			}
		}
		return out
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.NRGBAModel.Convert(src.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			off := (y*w + x) * 3
			out.Pix[off] = c.B
			out.Pix[off+1] = c.G
			out.Pix[off+2] = c.R
		}
	}
	return out
}

// ToImage converts the raster to a standard library image: *image.Gray for
// one channel, opaque *image.NRGBA for three.
func (img *Image) ToImage() image.Image {
	if img.Channels == 1 {
		g := image.NewGray(img.Bounds())
		copy(g.Pix, img.Pix)
		return g
	}
	out := image.NewNRGBA(img.Bounds())
	n := img.Area()
	for i := 0; i < n; i++ {
		out.Pix[i*4] = img.Pix[i*3+2]
		out.Pix[i*4+1] = img.Pix[i*3+1]
		out.Pix[i*4+2] = img.Pix[i*3]
		out.Pix[i*4+3] = 0xff
	}
	return out
}
