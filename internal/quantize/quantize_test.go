package quantize

import (
	"testing"

	"github.com/koki-develop/glyphview/internal/glyph"
	"github.com/stretchr/testify/assert"
)

func TestModeFor(t *testing.T) {
	tests := []struct {
		flags glyph.Flags
		want  Mode
	}{
		{0, Palette16},
		{glyph.FlagFG | glyph.FlagBG, Palette16},
		{glyph.FlagMode256, Palette256},
		{glyph.Flag24Bit, TrueColor},
		{glyph.Flag24Bit | glyph.FlagMode256, TrueColor},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ModeFor(tt.flags), "flags %d", tt.flags)
	}

	for _, m := range []Mode{Palette16, Palette256, TrueColor} {
		assert.Equal(t, m, ModeFor(m.Flags()|glyph.FlagNoOpt))
	}
}

func TestQuantizeTrueColor(t *testing.T) {
	v := Quantize(glyph.Color{12, 300, -7}, TrueColor)
	assert.Equal(t, TrueColor, v.Mode)
	assert.Equal(t, glyph.Color{12, 255, 0}, v.Color)

	v = Quantize(glyph.Color{1, 2, 3}, TrueColor)
	assert.Equal(t, glyph.Color{1, 2, 3}, v.Color)
}

func TestIndex256PaletteEntries(t *testing.T) {
	for i := 16; i < 256; i++ {
		assert.Equal(t, i, Index256(Palette256RGB(i)), "entry %d %v", i, Palette256RGB(i))
	}
}

func TestIndex256Nearest(t *testing.T) {
	tests := []struct {
		name string
		c    glyph.Color
		want int
	}{
		{"black", glyph.Color{0, 0, 0}, 16},
		{"white", glyph.Color{255, 255, 255}, 231},
		{"pure red", glyph.Color{255, 0, 0}, 196},
		{"near cube red", glyph.Color{250, 10, 5}, 196},
		{"mid gray uses ramp", glyph.Color{0x80, 0x80, 0x80}, 244},
		{"dark gray uses ramp", glyph.Color{0x1b, 0x1d, 0x1c}, 234},
		{"saturated blue stays in cube", glyph.Color{0x10, 0x20, 0xd0}, 16 + 0*36 + 0*6 + 4},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Index256(tt.c), tt.name)
	}
}

func TestQuantize256(t *testing.T) {
	v := Quantize(glyph.Color{0x5f, 0x87, 0xaf}, Palette256)
	assert.Equal(t, Palette256, v.Mode)
	assert.Equal(t, 16+1*36+2*6+3, v.Index)
	assert.Equal(t, glyph.Color{0x5f, 0x87, 0xaf}, v.Color)

	v = Quantize(glyph.Color{-20, -20, -20}, Palette256)
	assert.Equal(t, 16, v.Index)
}

func TestIndex16(t *testing.T) {
	for i, c := range ansi16 {
		assert.Equal(t, i, Index16(c))
	}
	assert.Equal(t, 1, Index16(glyph.Color{0xb0, 0x10, 0x08}))
	assert.Equal(t, 15, Index16(glyph.Color{0xf0, 0xf8, 0xff}))

	v := Quantize(glyph.Color{0x50, 0x58, 0x52}, Palette16)
	assert.Equal(t, Palette16, v.Mode)
	assert.Equal(t, 8, v.Index)
	assert.Equal(t, glyph.Color{0x55, 0x55, 0x55}, v.Color)
}

func TestPalette256RGB(t *testing.T) {
	assert.Equal(t, glyph.Color{0, 0, 0}, Palette256RGB(16))
	assert.Equal(t, glyph.Color{0xff, 0xff, 0xff}, Palette256RGB(231))
	assert.Equal(t, glyph.Color{0x08, 0x08, 0x08}, Palette256RGB(232))
	assert.Equal(t, glyph.Color{0xee, 0xee, 0xee}, Palette256RGB(255))
	assert.Equal(t, glyph.Color{0xaa, 0x00, 0x00}, Palette256RGB(1))
}

func TestModeString(t *testing.T) {
	assert.Equal(t, "256", Palette256.String())
	assert.Equal(t, "truecolor", TrueColor.String())
	assert.Equal(t, "Mode(9)", Mode(9).String())
}
