package thermal

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	previewPanelWidth = 256
	previewHeaderH    = 22
	previewBarH       = 12
	previewFooterH    = 44
)

// RenderPreviewBytes renders a side-by-side sheet of the input, the
// grayscale output and the false-color output, and returns it as JPEG bytes.
func RenderPreviewBytes(src *Image, res *Result, title string) ([]byte, error) {
	img, err := RenderPreview(src, res, title)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// RenderPreview creates the preview sheet in memory. Panels are scaled to a
// fixed width; a palette bar and the field range are printed underneath.
func RenderPreview(src *Image, res *Result, title string) (*image.RGBA, error) {
	if res == nil || res.Gray == nil || res.Colored == nil {
		return nil, fmt.Errorf("no synthesis result")
	}
	if err := src.validate(); err != nil {
		return nil, err
	}

	w, h := res.Gray.Width, res.Gray.Height
	scale := float64(previewPanelWidth) / float64(w)
	panelW := previewPanelWidth
	panelH := max(int(float64(h)*scale), 1)

	totalW := panelW * 3
	totalH := previewHeaderH + panelH + previewBarH + previewFooterH
	sheet := image.NewRGBA(image.Rect(0, 0, totalW, totalH))
	draw.Draw(sheet, sheet.Bounds(), image.NewUniform(color.RGBA{0, 0, 0, 255}), image.Point{}, draw.Src)

	panels := []struct {
		label string
		img   image.Image
	}{
		{"input", src.ToImage()},
		{"grayscale", res.Gray.ToImage()},
		{"false color", res.Colored.ToImage()},
	}

	face := basicfont.Face7x13
	textColor := color.RGBA{255, 255, 255, 255}
	for i, p := range panels {
		x0 := i * panelW
		dst := image.Rect(x0, previewHeaderH, x0+panelW, previewHeaderH+panelH)
		draw.ApproxBiLinear.Scale(sheet, dst, p.img, p.img.Bounds(), draw.Src, nil)
		drawCenteredText(sheet, face, p.label, x0+panelW/2, previewHeaderH-6, textColor)
	}

	// Palette bar across the full width
	barY := previewHeaderH + panelH
	palette := Inferno()
	for x := 0; x < totalW; x++ {
		c := palette[x*255/(totalW-1)]
		for y := barY; y < barY+previewBarH; y++ {
			sheet.SetRGBA(x, y, c)
		}
	}

	summaryColor := color.RGBA{220, 220, 220, 255}
	summaryY := barY + previewBarH + 16
	rangeStr := fmt.Sprintf("field min=%.4f max=%.4f", res.Stats.Min, res.Stats.Max)
	if res.Stats.Degenerate {
		rangeStr += "  [FLAT FIELD]"
	}
	drawText(sheet, face, title, 8, summaryY, summaryColor)
	drawText(sheet, face, rangeStr, 8, summaryY+18, summaryColor)

	return sheet, nil
}

// drawText draws a string at (x, y) using the given font face.
func drawText(img *image.RGBA, face font.Face, s string, x, y int, c color.RGBA) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

// drawCenteredText draws a string horizontally centered on cx.
func drawCenteredText(img *image.RGBA, face font.Face, s string, cx, y int, c color.RGBA) {
	advance := font.MeasureString(face, s)
	drawText(img, face, s, cx-advance.Round()/2, y, c)
}
