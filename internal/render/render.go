package render

import (
	"context"
	"image"
	"runtime"

	"github.com/koki-develop/glyphview/internal/ansi"
	"github.com/koki-develop/glyphview/internal/glyph"
	"golang.org/x/image/draw"
	"golang.org/x/sync/errgroup"
)

// Accessor returns a pixel accessor over img. Coordinates outside the image
// read the nearest edge pixel. Alpha is ignored.
func Accessor(img image.Image) glyph.PixelFunc {
	rgba, ok := img.(*image.RGBA)
	if !ok || rgba.Bounds().Min != (image.Point{}) {
		b := img.Bounds()
		rgba = image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Copy(rgba, image.Point{}, img, b, draw.Src, nil)
	}
	w, h := rgba.Rect.Dx(), rgba.Rect.Dy()
	if w == 0 || h == 0 {
		return func(int, int) uint32 { return 0 }
	}

	return func(x, y int) uint32 {
		x = clamp(x, 0, w-1)
		y = clamp(y, 0, h-1)
		i := rgba.PixOffset(x, y)
		p := rgba.Pix[i : i+3 : i+3]
		return uint32(p[0])<<16 | uint32(p[1])<<8 | uint32(p[2])
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

type Renderer struct {
	Flags   glyph.Flags
	Workers int
}

func New(flags glyph.Flags, workers int) *Renderer {
	return &Renderer{Flags: flags, Workers: workers}
}

// Grid returns the number of whole blocks that fit in img.
func Grid(img image.Image) (cols, rows int) {
	b := img.Bounds()
	return b.Dx() / glyph.BlockWidth, b.Dy() / glyph.BlockHeight
}

// Blocks runs the glyph matcher over every whole block of img. Rows are
// matched concurrently.
func (r *Renderer) Blocks(ctx context.Context, img image.Image) ([][]glyph.CharData, error) {
	cols, rows := Grid(img)
	get := Accessor(img)
	out := make([][]glyph.CharData, rows)

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(r.workers())
	for by := 0; by < rows; by++ {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			row := make([]glyph.CharData, cols)
			for bx := range row {
				row[bx] = glyph.FindCharData(get, bx*glyph.BlockWidth, by*glyph.BlockHeight, r.Flags)
			}
			out[by] = row
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Render returns img as terminal rows, one string per row of blocks.
func (r *Renderer) Render(ctx context.Context, img image.Image) ([]string, error) {
	blocks, err := r.Blocks(ctx, img)
	if err != nil {
		return nil, err
	}
	lines := make([]string, len(blocks))
	for i, row := range blocks {
		lines[i] = ansi.Row(row, r.Flags)
	}
	return lines, nil
}

func (r *Renderer) workers() int {
	if r.Workers > 0 {
		return r.Workers
	}
	return runtime.NumCPU()
}
