package render

import (
	"context"
	"fmt"
	"image"
	"strings"

	"github.com/koki-develop/glyphview/internal/util"
	"github.com/mattn/go-runewidth"
)

const tileGap = "  "

// Tile is one image of a thumbnail sheet, already sized to at most the
// sheet's tile width.
type Tile struct {
	Name  string
	Image image.Image
}

// Cell is an already drawn tile: its rows and how many terminal cells wide
// they are.
type Cell struct {
	Name string
	Rows []string
	Cols int
}

// Thumbnails lays tiles out in rows of columns tiles, each width cells wide,
// with the tile name under every image.
func (r *Renderer) Thumbnails(ctx context.Context, tiles []Tile, columns, width int) ([]string, error) {
	if columns < 1 {
		return nil, fmt.Errorf("invalid number of columns: %d", columns)
	}

	cells := make([]Cell, 0, len(tiles))
	for _, tile := range tiles {
		rows, err := r.Render(ctx, tile.Image)
		if err != nil {
			return nil, fmt.Errorf("failed to render %s: %w", tile.Name, err)
		}
		cols, _ := Grid(tile.Image)
		cells = append(cells, Cell{Name: tile.Name, Rows: rows, Cols: cols})
	}
	return Sheet(cells, columns, width)
}

// Sheet arranges drawn cells the way Thumbnails does.
func Sheet(cells []Cell, columns, width int) ([]string, error) {
	if columns < 1 {
		return nil, fmt.Errorf("invalid number of columns: %d", columns)
	}

	var lines []string
	for start := 0; start < len(cells); start += columns {
		end := util.Min(start+columns, len(cells))
		group := cells[start:end]

		height := 0
		for _, c := range group {
			height = util.Max(height, len(c.Rows))
		}

		blank := strings.Repeat(" ", width)
		for y := 0; y < height; y++ {
			b := new(strings.Builder)
			for i, c := range group {
				if i > 0 {
					b.WriteString(tileGap)
				}
				if y < len(c.Rows) {
					b.WriteString(c.Rows[y])
					b.WriteString(strings.Repeat(" ", util.Max(0, width-c.Cols)))
				} else {
					b.WriteString(blank)
				}
			}
			lines = append(lines, strings.TrimRight(b.String(), " "))
		}

		b := new(strings.Builder)
		for i, c := range group {
			if i > 0 {
				b.WriteString(tileGap)
			}
			b.WriteString(Caption(c.Name, width))
		}
		lines = append(lines, strings.TrimRight(b.String(), " "))
	}
	return lines, nil
}

// Caption fits name into width terminal cells.
func Caption(name string, width int) string {
	return runewidth.FillRight(runewidth.Truncate(name, width, "…"), width)
}
