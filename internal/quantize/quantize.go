// Package quantize maps colors to what a terminal color mode can show.
package quantize

import (
	"fmt"
	"math"

	"github.com/koki-develop/glyphview/internal/glyph"
)

type Mode int

const (
	Palette16 Mode = iota
	Palette256
	TrueColor
)

func (m Mode) String() string {
	switch m {
	case Palette16:
		return "16"
	case Palette256:
		return "256"
	case TrueColor:
		return "truecolor"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ModeFor returns the mode selected by flags. Flag24Bit takes precedence over
// FlagMode256; with neither set the 16-color palette is used.
func ModeFor(flags glyph.Flags) Mode {
	switch {
	case flags.Has(glyph.Flag24Bit):
		return TrueColor
	case flags.Has(glyph.FlagMode256):
		return Palette256
	}
	return Palette16
}

// Flags returns the flag bits selecting m.
func (m Mode) Flags() glyph.Flags {
	switch m {
	case TrueColor:
		return glyph.Flag24Bit
	case Palette256:
		return glyph.FlagMode256
	}
	return 0
}

// Value is a color as a terminal displays it in a given mode.
type Value struct {
	Mode Mode
	// Index is the palette index for Palette16 and Palette256.
	Index int
	// Color is the color that ends up on screen.
	Color glyph.Color
}

// Quantize returns the color of mode closest to c.
func Quantize(c glyph.Color, mode Mode) Value {
	c = glyph.Color{glyph.ClampByte(c[0]), glyph.ClampByte(c[1]), glyph.ClampByte(c[2])}
	switch mode {
	case TrueColor:
		return Value{Mode: TrueColor, Color: c}
	case Palette256:
		idx := Index256(c)
		return Value{Mode: Palette256, Index: idx, Color: Palette256RGB(idx)}
	}
	idx := Index16(c)
	return Value{Mode: Palette16, Index: idx, Color: ansi16[idx]}
}

// distance weights channel differences roughly by perceived brightness.
func distance(a, b glyph.Color) float64 {
	return 0.3*glyph.Sqr(float64(a[0]-b[0])) +
		0.59*glyph.Sqr(float64(a[1]-b[1])) +
		0.11*glyph.Sqr(float64(a[2]-b[2]))
}

// Index256 returns the xterm 256-color palette index for c: the nearest
// entry of the 6x6x6 cube, or of the grayscale ramp when that is at least
// as close.
func Index256(c glyph.Color) int {
	ri := glyph.BestIndex(c[0], glyph.ColorSteps)
	gi := glyph.BestIndex(c[1], glyph.ColorSteps)
	bi := glyph.BestIndex(c[2], glyph.ColorSteps)
	cube := glyph.Color{glyph.ColorSteps[ri], glyph.ColorSteps[gi], glyph.ColorSteps[bi]}

	gray := int(math.Round(0.2989*float64(c[0]) + 0.5870*float64(c[1]) + 0.1140*float64(c[2])))
	gri := glyph.BestIndex(gray, glyph.GrayscaleSteps)
	g := glyph.GrayscaleSteps[gri]

	if distance(c, cube) < distance(c, glyph.Color{g, g, g}) {
		return 16 + ri*36 + gi*6 + bi
	}
	return 232 + gri
}

// Palette256RGB returns the color of xterm palette entry index.
func Palette256RGB(index int) glyph.Color {
	switch {
	case index < 16:
		return ansi16[index]
	case index >= 232:
		g := glyph.GrayscaleSteps[index-232]
		return glyph.Color{g, g, g}
	}
	i := index - 16
	return glyph.Color{
		glyph.ColorSteps[i/36],
		glyph.ColorSteps[i/6%6],
		glyph.ColorSteps[i%6],
	}
}

// ansi16 is the VGA rendition of the 16 standard colors.
var ansi16 = [16]glyph.Color{
	{0x00, 0x00, 0x00}, // black
	{0xaa, 0x00, 0x00}, // red
	{0x00, 0xaa, 0x00}, // green
	{0xaa, 0x55, 0x00}, // yellow
	{0x00, 0x00, 0xaa}, // blue
	{0xaa, 0x00, 0xaa}, // magenta
	{0x00, 0xaa, 0xaa}, // cyan
	{0xaa, 0xaa, 0xaa}, // white

	{0x55, 0x55, 0x55}, // bright black
	{0xff, 0x55, 0x55}, // bright red
	{0x55, 0xff, 0x55}, // bright green
	{0xff, 0xff, 0x55}, // bright yellow
	{0x55, 0x55, 0xff}, // bright blue
	{0xff, 0x55, 0xff}, // bright magenta
	{0x55, 0xff, 0xff}, // bright cyan
	{0xff, 0xff, 0xff}, // bright white
}

// Index16 returns the index of the standard color nearest to c.
func Index16(c glyph.Color) int {
	best, bestDist := 0, math.Inf(1)
	for i, p := range ansi16 {
		if d := distance(c, p); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}
