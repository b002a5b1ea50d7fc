package thermal

import (
	"image"
	"math"
)

const histSize = 256

// equalizeTiles applies contrast limited adaptive histogram equalization to a
// one-channel image. Each tile of the grid gets its own clipped histogram
// equalization table; pixels blend the tables of the four nearest tile
// centres bilinearly.
//
// When the image size is not a multiple of the grid, the histograms are
// taken over a copy extended on the bottom and right with reflect-101
// borders. The output always has the input's size.
func equalizeTiles(src *Image, clipLimit float64, grid image.Point) *Image {
	w, h := src.Width, src.Height
	tilesX, tilesY := grid.X, grid.Y

	lutSrc := src
	if w%tilesX != 0 || h%tilesY != 0 {
		lutSrc = extendReflect101(src, tilesX-w%tilesX, tilesY-h%tilesY)
	}
	tileW := lutSrc.Width / tilesX
	tileH := lutSrc.Height / tilesY
	tileArea := tileW * tileH
	lutScale := float32(histSize-1) / float32(tileArea)

	clip := 0
	if clipLimit > 0 {
		clip = max(int(clipLimit*float64(tileArea)/histSize), 1)
	}

	luts := make([]uint8, tilesX*tilesY*histSize)
	hist := make([]int, histSize)
	for ty := 0; ty < tilesY; ty++ {
		for tx := 0; tx < tilesX; tx++ {
			clear(hist)
			for y := ty * tileH; y < (ty+1)*tileH; y++ {
				off := y*lutSrc.Width + tx*tileW
				for _, v := range lutSrc.Pix[off : off+tileW] {
					hist[v]++
				}
			}
			if clip > 0 {
				clipHistogram(hist, clip)
			}

			lut := luts[(ty*tilesX+tx)*histSize:][:histSize]
			sum := 0
			for i, n := range hist {
				sum += n
				lut[i] = saturateUint8(float32(sum) * lutScale)
			}
		}
	}

	invTileW := 1 / float32(tileW)
	invTileH := 1 / float32(tileH)

	// Horizontal weights and table offsets are the same for every row.
	leftOff := make([]int, w)
	rightOff := make([]int, w)
	xa := make([]float32, w)
	for x := 0; x < w; x++ {
		txf := float32(x)*invTileW - 0.5
		tx1 := int(math.Floor(float64(txf)))
		tx2 := tx1 + 1
		xa[x] = txf - float32(tx1)
		leftOff[x] = max(tx1, 0) * histSize
		rightOff[x] = min(tx2, tilesX-1) * histSize
	}

	dst := NewImage(w, h, 1)
	rowStride := tilesX * histSize
	for y := 0; y < h; y++ {
		tyf := float32(y)*invTileH - 0.5
		ty1 := int(math.Floor(float64(tyf)))
		ty2 := ty1 + 1
		ya := tyf - float32(ty1)
		ya1 := 1 - ya
		top := luts[max(ty1, 0)*rowStride:]
		bottom := luts[min(ty2, tilesY-1)*rowStride:]

		srcRow := src.Pix[y*w : (y+1)*w]
		dstRow := dst.Pix[y*w : (y+1)*w]
		for x, v := range srcRow {
			i1 := leftOff[x] + int(v)
			i2 := rightOff[x] + int(v)
			xa1 := 1 - xa[x]
			res := (float32(top[i1])*xa1+float32(top[i2])*xa[x])*ya1 +
				(float32(bottom[i1])*xa1+float32(bottom[i2])*xa[x])*ya
			dstRow[x] = saturateUint8(res)
		}
	}
	return dst
}

// clipHistogram caps every bin at limit and spreads the excess evenly, with
// the remainder handed out one count at a time from the first bin.
func clipHistogram(hist []int, limit int) {
	clipped := 0
	for i, n := range hist {
		if n > limit {
			clipped += n - limit
			hist[i] = limit
		}
	}

	batch := clipped / len(hist)
	residual := clipped - batch*len(hist)
	for i := range hist {
		hist[i] += batch
	}
	if residual != 0 {
		step := max(len(hist)/residual, 1)
		for i := 0; i < len(hist) && residual > 0; i += step {
			hist[i]++
			residual--
		}
	}
}

// extendReflect101 pads a one-channel image on the right and bottom,
// mirroring around the edge pixel (dcb|abcd|cba).
func extendReflect101(src *Image, padRight, padBottom int) *Image {
	w, h := src.Width+padRight, src.Height+padBottom
	out := NewImage(w, h, 1)
	for y := 0; y < h; y++ {
		sy := reflect101(y, src.Height)
		srcRow := src.Pix[sy*src.Width : (sy+1)*src.Width]
		dstRow := out.Pix[y*w : (y+1)*w]
		copy(dstRow, srcRow)
		for x := src.Width; x < w; x++ {
			dstRow[x] = srcRow[reflect101(x, src.Width)]
		}
	}
	return out
}

func reflect101(i, n int) int {
	if n == 1 {
		return 0
	}
	for i < 0 || i >= n {
		if i < 0 {
			i = -i
		} else {
			i = 2*n - 2 - i
		}
	}
	return i
}
