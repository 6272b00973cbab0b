package glyph

import "math"

// PixelFunc returns the packed 0xRRGGBB color of the image pixel at (x, y).
// Coordinates are relative to the whole image, not to a block.
type PixelFunc func(x, y int) uint32

// Color holds red, green and blue channel values.
type Color [3]int

// RGB packs c into 0xRRGGBB, clamping each channel.
func (c Color) RGB() uint32 {
	return uint32(ClampByte(c[0]))<<16 | uint32(ClampByte(c[1]))<<8 | uint32(ClampByte(c[2]))
}

// ColorFromRGB unpacks a 0xRRGGBB value.
func ColorFromRGB(rgb uint32) Color {
	return Color{GetChannel(rgb, 0), GetChannel(rgb, 1), GetChannel(rgb, 2)}
}

// CharData is the character chosen for one block and the colors to draw it
// with.
type CharData struct {
	FG        Color
	BG        Color
	CodePoint rune
}

// partition accumulates the pixels of one side of a pattern.
type partition struct {
	count int
	sum   [3]int
	sumSq [3]int
}

func (p *partition) add(rgb uint32) {
	p.count++
	for i := 0; i < 3; i++ {
		c := GetChannel(rgb, i)
		p.sum[i] += c
		p.sumSq[i] += c * c
	}
}

func (p *partition) mean() Color {
	var c Color
	for i := 0; i < 3; i++ {
		c[i] = p.sum[i] / p.count
	}
	return c
}

// variance is the sum of squared distances of the pixels to their mean,
// over all three channels.
func (p *partition) variance() float64 {
	if p.count == 0 {
		return 0
	}
	var v float64
	for i := 0; i < 3; i++ {
		v += float64(p.count*p.sumSq[i]-p.sum[i]*p.sum[i]) / float64(p.count)
	}
	return v
}

func split(get PixelFunc, x0, y0 int, pattern Pattern) (fg, bg partition) {
	for y := 0; y < BlockHeight; y++ {
		for x := 0; x < BlockWidth; x++ {
			rgb := get(x0+x, y0+y)
			if pattern.At(x, y) {
				fg.add(rgb)
			} else {
				bg.add(rgb)
			}
		}
	}
	return fg, bg
}

// CreateCharData builds the CharData for drawing the block at (x0, y0) with
// the given glyph. The foreground color is the mean of the pixels on the
// pattern's set cells, the background color the mean of the others. When
// the pattern leaves one side empty, that side takes the other side's color.
func CreateCharData(get PixelFunc, x0, y0 int, codePoint rune, pattern Pattern) CharData {
	fg, bg := split(get, x0, y0, pattern)
	return charData(&fg, &bg, codePoint)
}

func charData(fg, bg *partition, codePoint rune) CharData {
	cd := CharData{CodePoint: codePoint}
	switch {
	case fg.count == 0:
		cd.BG = bg.mean()
		cd.FG = cd.BG
	case bg.count == 0:
		cd.FG = fg.mean()
		cd.BG = cd.FG
	default:
		cd.FG = fg.mean()
		cd.BG = bg.mean()
	}
	return cd
}

// Score returns how badly pattern fits the block at (x0, y0): the summed
// squared channel distance of every pixel to the mean of its side. Lower is
// better; a pattern that follows the block's color edges exactly scores 0.
func Score(get PixelFunc, x0, y0 int, pattern Pattern) float64 {
	fg, bg := split(get, x0, y0, pattern)
	return fg.variance() + bg.variance()
}

// FindCharData picks the glyph that best represents the 4x8 block at
// (x0, y0) and returns it with its colors.
//
// With FlagNoOpt only the lower half block is used, so the foreground is the
// bottom half and the background the top half. Otherwise every candidate
// from Candidates(flags) is scored and the lowest score wins; on equal
// scores the earlier candidate is kept.
func FindCharData(get PixelFunc, x0, y0 int, flags Flags) CharData {
	if flags.Has(FlagNoOpt) {
		return CreateCharData(get, x0, y0, halfBlock.CodePoint, halfBlock.Pattern)
	}

	var pixels [blockPixels]uint32
	for y := 0; y < BlockHeight; y++ {
		for x := 0; x < BlockWidth; x++ {
			pixels[y*BlockWidth+x] = get(x0+x, y0+y)
		}
	}
	cached := func(x, y int) uint32 {
		return pixels[(y-y0)*BlockWidth+(x-x0)]
	}

	var (
		bestCode       rune
		bestScore      = math.Inf(1)
		bestFG, bestBG partition
	)
	for _, g := range Candidates(flags) {
		fg, bg := split(cached, x0, y0, g.Pattern)
		if score := fg.variance() + bg.variance(); score < bestScore {
			bestScore = score
			bestCode = g.CodePoint
			bestFG, bestBG = fg, bg
		}
	}
	return charData(&bestFG, &bestBG, bestCode)
}
