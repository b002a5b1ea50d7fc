package thermal

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Decode parses an encoded image into a three-channel BGR raster. Any
// failure is reported as ErrInvalidInput.
func Decode(data []byte) (*Image, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty file", ErrInvalidInput)
	}
	img, err := decode(data)
	if err != nil {
		return nil, err
	}
	if err := img.validateColor(); err != nil {
		return nil, err
	}
	return img, nil
}

// Load reads and decodes the image at path.
func Load(path string) (*Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", filepath.Base(path), err)
	}
	img, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", filepath.Base(path), err)
	}
	return img, nil
}

// Encode serializes img in the format implied by ext (".jpg", ".png", ...).
// One-channel images are written as grayscale.
func Encode(ext string, img *Image) ([]byte, error) {
	if err := img.validate(); err != nil {
		return nil, err
	}
	return encode(strings.ToLower(ext), img)
}

// Resize scales img to width x height with bilinear interpolation.
func Resize(img *Image, width, height int) (*Image, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: resize target must be positive, got %dx%d", ErrInvalidParameter, width, height)
	}
	if err := img.validate(); err != nil {
		return nil, err
	}
	if img.Width == width && img.Height == height {
		return img.Clone(), nil
	}
	return resize(img, width, height)
}
