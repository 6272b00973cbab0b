package resize

import (
	"image"
	"math"

	"github.com/koki-develop/glyphview/internal/glyph"
	"github.com/koki-develop/glyphview/internal/util"
	"github.com/nfnt/resize"
)

type Resizer struct {
	interp resize.InterpolationFunction
}

func NewResizer() *Resizer {
	return &Resizer{
		interp: resize.Lanczos3,
	}
}

// Cells returns the largest character grid, at most w x h, that keeps the
// aspect ratio of img when every cell covers one 4x8 glyph block.
func (r *Resizer) Cells(img image.Image, w, h int) (cols, rows int) {
	sz := img.Bounds()
	if sz.Dx() == 0 || sz.Dy() == 0 {
		return 1, 1
	}

	iw, ih := float64(sz.Dx()), float64(sz.Dy())
	scale := math.Min(float64(w*glyph.BlockWidth)/iw, float64(h*glyph.BlockHeight)/ih)
	cols = int(math.Round(iw * scale / glyph.BlockWidth))
	rows = int(math.Round(ih * scale / glyph.BlockHeight))
	return util.Max(1, util.Min(cols, w)), util.Max(1, util.Min(rows, h))
}

// Fit scales img to a whole number of glyph blocks fitting into w x h cells.
func (r *Resizer) Fit(img image.Image, w, h int) image.Image {
	cols, rows := r.Cells(img, w, h)
	return resize.Resize(uint(cols*glyph.BlockWidth), uint(rows*glyph.BlockHeight), img, r.interp)
}

// FitCells scales img to one pixel per cell.
func (r *Resizer) FitCells(img image.Image, w, h int) image.Image {
	cols, rows := r.Cells(img, w, h)
	return resize.Resize(uint(cols), uint(rows), img, r.interp)
}
