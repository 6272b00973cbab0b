package cmd

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/koki-develop/glyphview/internal/ascii"
	"github.com/koki-develop/glyphview/internal/glyph"
	"github.com/koki-develop/glyphview/internal/loader"
	"github.com/koki-develop/glyphview/internal/quantize"
	"github.com/koki-develop/glyphview/internal/render"
	"github.com/koki-develop/glyphview/internal/resize"
	"github.com/koki-develop/glyphview/internal/ui"
	"github.com/koki-develop/glyphview/internal/util"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
)

type Option struct {
	Paths []string

	Mode        string
	NoOpt       bool
	Teletext    bool
	FG          bool
	BG          bool
	Width       int
	Height      int
	Columns     int
	ASCII       bool
	Interactive bool
	Workers     int
	Debug       bool
}

func defaultOption() Option {
	return Option{
		Mode:    "auto",
		FG:      true,
		BG:      true,
		Columns: 3,
	}
}

func setupLogger(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))
}

func (o *Option) validate() error {
	if o.Width < 0 || o.Height < 0 {
		return fmt.Errorf("invalid size: %dx%d", o.Width, o.Height)
	}
	if o.Columns < 1 {
		return fmt.Errorf("invalid number of columns: %d", o.Columns)
	}
	if o.Workers < 0 {
		return fmt.Errorf("invalid number of workers: %d", o.Workers)
	}
	if _, err := parseMode(o.Mode); err != nil {
		return err
	}
	return nil
}

func parseMode(s string) (quantize.Mode, error) {
	switch strings.ToLower(s) {
	case "auto", "":
		return detectMode(termenv.EnvColorProfile()), nil
	case "truecolor", "24bit", "24":
		return quantize.TrueColor, nil
	case "256":
		return quantize.Palette256, nil
	case "16":
		return quantize.Palette16, nil
	}
	return 0, fmt.Errorf("invalid color mode: %s", s)
}

// detectMode maps a terminal color profile to a mode. Terminals that
// report no color support still get the 16 basic colors.
func detectMode(p termenv.Profile) quantize.Mode {
	switch p {
	case termenv.TrueColor:
		return quantize.TrueColor
	case termenv.ANSI256:
		return quantize.Palette256
	}
	return quantize.Palette16
}

func (o *Option) flags() glyph.Flags {
	mode, _ := parseMode(o.Mode)
	flags := mode.Flags()
	if o.FG {
		flags |= glyph.FlagFG
	}
	if o.BG {
		flags |= glyph.FlagBG
	}
	if o.NoOpt {
		flags |= glyph.FlagNoOpt
	}
	if o.Teletext {
		flags |= glyph.FlagTeletext
	}
	return flags
}

// size returns the character area to fill, falling back to the terminal
// size and then to 80x24. One terminal row is kept free for the prompt.
func (o *Option) size() (int, int) {
	w, h := o.Width, o.Height
	if w > 0 && h > 0 {
		return w, h
	}
	tw, th, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || tw <= 0 || th <= 1 {
		slog.Debug("terminal size unavailable", "error", err)
		tw, th = defaultWidth, defaultHeight
	}
	if w == 0 {
		w = tw
	}
	if h == 0 {
		h = th - 1
	}
	return w, h
}

func run(ctx context.Context, o *Option, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := o.validate(); err != nil {
		return err
	}

	paths, err := loader.Expand(o.Paths)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return errors.New("no images found")
	}

	flags := o.flags()
	renderer := render.New(flags, o.Workers)
	slog.Debug("rendering", "images", len(paths), "mode", quantize.ModeFor(flags), "flags", uint(flags))

	if o.Interactive {
		return ui.Start(o.uiOption(paths, renderer))
	}

	w, h := o.size()
	resizer := resize.NewResizer()
	if len(paths) == 1 {
		img, err := loader.Load(paths[0])
		if err != nil {
			return err
		}
		lines, err := o.renderOne(ctx, renderer, resizer, img, w, h)
		if err != nil {
			return err
		}
		return writeLines(out, lines)
	}

	return o.renderSheet(ctx, renderer, resizer, paths, w, out)
}

// uiOption carries the size limits and the ASCII switch into the viewer.
func (o *Option) uiOption(paths []string, renderer *render.Renderer) *ui.Option {
	return &ui.Option{
		Paths:    paths,
		Renderer: renderer,
		ASCII:    o.ASCII,
		Colored:  o.FG,
		Width:    o.Width,
		Height:   o.Height,
	}
}

func (o *Option) renderOne(ctx context.Context, renderer *render.Renderer, resizer *resize.Resizer, img image.Image, w, h int) ([]string, error) {
	start := time.Now()
	if o.ASCII {
		return ascii.NewConverter(o.FG).ImageToASCII(resizer.FitCells(img, w, h)), nil
	}

	scaled := resizer.Fit(img, w, h)
	lines, err := renderer.Render(ctx, scaled)
	if err != nil {
		return nil, err
	}
	cols, rows := render.Grid(scaled)
	slog.Debug("rendered image", "cols", cols, "rows", rows, "elapsed", time.Since(start))
	return lines, nil
}

// renderSheet shows several images as a thumbnail sheet. Files that fail to
// load are skipped.
func (o *Option) renderSheet(ctx context.Context, renderer *render.Renderer, resizer *resize.Resizer, paths []string, w int, out io.Writer) error {
	tileWidth := util.Max(1, (w-len("  ")*(o.Columns-1))/o.Columns)
	tileHeight := util.Max(1, tileWidth/2)

	var tiles []render.Tile
	for _, path := range paths {
		img, err := loader.Load(path)
		if err != nil {
			slog.Warn("skipping image", "path", path, "error", err)
			continue
		}
		tiles = append(tiles, render.Tile{Name: filepath.Base(path), Image: img})
	}
	if len(tiles) == 0 {
		return errors.New("no images could be loaded")
	}

	var (
		lines []string
		err   error
	)
	if o.ASCII {
		converter := ascii.NewConverter(o.FG)
		cells := make([]render.Cell, 0, len(tiles))
		for _, tile := range tiles {
			scaled := resizer.FitCells(tile.Image, tileWidth, tileHeight)
			cells = append(cells, render.Cell{
				Name: tile.Name,
				Rows: converter.ImageToASCII(scaled),
				Cols: scaled.Bounds().Dx(),
			})
		}
		lines, err = render.Sheet(cells, o.Columns, tileWidth)
	} else {
		for i := range tiles {
			tiles[i].Image = resizer.Fit(tiles[i].Image, tileWidth, tileHeight)
		}
		lines, err = renderer.Thumbnails(ctx, tiles, o.Columns, tileWidth)
	}
	if err != nil {
		return err
	}
	return writeLines(out, lines)
}

func writeLines(out io.Writer, lines []string) error {
	for _, line := range lines {
		if _, err := fmt.Fprintln(out, line); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}
