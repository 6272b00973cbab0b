package glyph

const (
	// BlockWidth and BlockHeight are the pixel size of the image area
	// mapped to one character cell.
	BlockWidth  = 4
	BlockHeight = 8

	blockPixels = BlockWidth * BlockHeight
)

// Pattern is a 4x8 bitmap of the cells a glyph paints with its foreground
// color. Bit 31 is the top-left cell and cells run row by row, so every hex
// digit of a literal is one pixel row with the leftmost pixel in its high bit.
type Pattern uint32

// At reports whether the cell at column x, row y is in the foreground.
func (p Pattern) At(x, y int) bool {
	return p&(1<<(blockPixels-1-(y*BlockWidth+x))) != 0
}

// Inverse returns the pattern with foreground and background swapped. Both
// split a block the same way.
func (p Pattern) Inverse() Pattern {
	return ^p
}

// Glyph is a character together with the shape it draws.
type Glyph struct {
	CodePoint rune
	Pattern   Pattern
}

// Flags select color handling and the glyph library for a render.
type Flags uint

const (
	FlagFG       Flags = 1 << iota // honor the foreground color
	FlagBG                         // honor the background color
	FlagMode256                    // quantize to the 256-color palette
	Flag24Bit                      // emit 24-bit colors
	FlagNoOpt                      // only use the half block
	FlagTeletext                   // add teletext sextants to the library
)

// Has reports whether all bits of f2 are set in f.
func (f Flags) Has(f2 Flags) bool {
	return f&f2 == f2
}

// halfBlock is used alone under FlagNoOpt and comes first otherwise, so it
// wins every tie.
var halfBlock = Glyph{0x2584, 0x0000ffff}

// regularGlyphs holds block elements and box drawing shapes that render in
// most terminal fonts. Patterns equal to the inverse of another entry are
// left out; they would never be picked.
var regularGlyphs = []Glyph{
	halfBlock,
	{0x2581, 0x0000000f}, // lower 1/8
	{0x2582, 0x000000ff}, // lower 1/4
	{0x2583, 0x00000fff}, // lower 3/8
	{0x2585, 0x000fffff}, // lower 5/8
	{0x2586, 0x00ffffff}, // lower 3/4
	{0x2587, 0x0fffffff}, // lower 7/8
	{0x258A, 0xeeeeeeee}, // left 3/4
	{0x258C, 0xcccccccc}, // left half
	{0x258E, 0x88888888}, // left 1/4
	{0x2596, 0x0000cccc}, // quadrant lower left
	{0x2597, 0x00003333}, // quadrant lower right
	{0x2598, 0xcccc0000}, // quadrant upper left
	{0x259A, 0xcccc3333}, // quadrant upper left and lower right
	{0x259D, 0x33330000}, // quadrant upper right

	{0x2501, 0x000ff000}, // heavy horizontal
	{0x2503, 0x66666666}, // heavy vertical
	{0x250F, 0x00077666}, // heavy down and right
	{0x2513, 0x000ee666}, // heavy down and left
	{0x2517, 0x66677000}, // heavy up and right
	{0x251B, 0x666ee000}, // heavy up and left
	{0x2523, 0x66677666}, // heavy vertical and right
	{0x252B, 0x666ee666}, // heavy vertical and left
	{0x2533, 0x000ff666}, // heavy down and horizontal
	{0x253B, 0x666ff000}, // heavy up and horizontal
	{0x254B, 0x666ff666}, // heavy vertical and horizontal
	{0x2578, 0x000cc000}, // heavy left
	{0x2579, 0x66660000}, // heavy up
	{0x257A, 0x00033000}, // heavy right
	{0x257B, 0x00006666}, // heavy down
	{0x2500, 0x000f0000}, // light horizontal
	{0x2502, 0x44444444}, // light vertical

	{0x23BA, 0x0f000000}, // horizontal scan line 1
	{0x23BB, 0x00f00000}, // horizontal scan line 3
	{0x23BC, 0x00000f00}, // horizontal scan line 7
	{0x23BD, 0x000000f0}, // horizontal scan line 9
	{0x25AA, 0x00066000}, // black small square
}

// teletextGlyphs are the sextants of the Symbols for Legacy Computing block.
// The three sextant rows cover 3, 2 and 3 pixel rows. Sextants whose split
// already exists in regularGlyphs, and the inverse of each kept sextant,
// are omitted.
var teletextGlyphs = []Glyph{
	{0x1FB00, 0xccc00000}, // sextant-1
	{0x1FB01, 0x33300000}, // sextant-2
	{0x1FB04, 0xccccc000}, // sextant-13
	{0x1FB05, 0x333cc000}, // sextant-23
	{0x1FB06, 0xfffcc000}, // sextant-123
	{0x1FB08, 0xccc33000}, // sextant-14
	{0x1FB09, 0x33333000}, // sextant-24
	{0x1FB0A, 0xfff33000}, // sextant-124
	{0x1FB0C, 0xcccff000}, // sextant-134
	{0x1FB0D, 0x333ff000}, // sextant-234
	{0x1FB0F, 0x00000ccc}, // sextant-5
	{0x1FB10, 0xccc00ccc}, // sextant-15
	{0x1FB11, 0x33300ccc}, // sextant-25
	{0x1FB12, 0xfff00ccc}, // sextant-125
	{0x1FB13, 0x000ccccc}, // sextant-35
	{0x1FB14, 0x333ccccc}, // sextant-235
	{0x1FB15, 0xfffccccc}, // sextant-1235
	{0x1FB16, 0x00033ccc}, // sextant-45
	{0x1FB17, 0xccc33ccc}, // sextant-145
	{0x1FB18, 0x33333ccc}, // sextant-245
	{0x1FB19, 0xfff33ccc}, // sextant-1245
	{0x1FB1A, 0x000ffccc}, // sextant-345
	{0x1FB1B, 0xcccffccc}, // sextant-1345
	{0x1FB1C, 0x333ffccc}, // sextant-2345
	{0x1FB1D, 0xfffffccc}, // sextant-12345
}

// Candidates returns the glyphs FindCharData considers for flags, in the
// order they are scored.
func Candidates(flags Flags) []Glyph {
	if flags.Has(FlagNoOpt) {
		return []Glyph{halfBlock}
	}
	if !flags.Has(FlagTeletext) {
		return regularGlyphs
	}
	all := make([]Glyph, 0, len(regularGlyphs)+len(teletextGlyphs))
	all = append(all, regularGlyphs...)
	return append(all, teletextGlyphs...)
}

// IsTeletext reports whether r is one of the sextant characters.
func IsTeletext(r rune) bool {
	return r >= 0x1FB00 && r <= 0x1FB3B
}
