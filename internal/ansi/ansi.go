package ansi

import (
	"strconv"
	"strings"

	"github.com/koki-develop/glyphview/internal/glyph"
	"github.com/koki-develop/glyphview/internal/quantize"
	"github.com/muesli/termenv"
)

// Reset clears all colors.
const Reset = termenv.CSI + termenv.ResetSeq + "m"

// SGR returns the select-graphic-rendition parameters for v as a foreground
// or background color.
func SGR(v quantize.Value, background bool) string {
	switch v.Mode {
	case quantize.TrueColor:
		// termenv.RGBColor goes through float hex parsing and truncates some
		// channels (33 becomes 32), so the parameters are built from the ints.
		prefix := termenv.Foreground
		if background {
			prefix = termenv.Background
		}
		return prefix + ";2;" + strconv.Itoa(v.Color[0]) + ";" + strconv.Itoa(v.Color[1]) + ";" + strconv.Itoa(v.Color[2])
	case quantize.Palette256:
		return termenv.ANSI256Color(v.Index).Sequence(background)
	}
	return termenv.ANSIColor(v.Index).Sequence(background)
}

// Writer builds one terminal row. Color sequences are only written when a
// cell's color differs from the cell before it.
type Writer struct {
	sb     strings.Builder
	flags  glyph.Flags
	mode   quantize.Mode
	fg, bg *quantize.Value
}

func NewWriter(flags glyph.Flags) *Writer {
	return &Writer{
		flags: flags,
		mode:  quantize.ModeFor(flags),
	}
}

// Cell writes cd, coloring the foreground when FlagFG is set and the
// background when FlagBG is set.
func (w *Writer) Cell(cd glyph.CharData) {
	var params []string
	if w.flags.Has(glyph.FlagFG) {
		v := quantize.Quantize(cd.FG, w.mode)
		if w.fg == nil || *w.fg != v {
			params = append(params, SGR(v, false))
			w.fg = &v
		}
	}
	if w.flags.Has(glyph.FlagBG) {
		v := quantize.Quantize(cd.BG, w.mode)
		if w.bg == nil || *w.bg != v {
			params = append(params, SGR(v, true))
			w.bg = &v
		}
	}
	if len(params) > 0 {
		w.sb.WriteString(termenv.CSI)
		w.sb.WriteString(strings.Join(params, ";"))
		w.sb.WriteByte('m')
	}
	w.sb.WriteRune(cd.CodePoint)
}

// Finish resets the colors and returns the row. The Writer is empty
// afterwards and can build the next row.
func (w *Writer) Finish() string {
	if w.fg != nil || w.bg != nil {
		w.sb.WriteString(Reset)
	}
	s := w.sb.String()
	w.sb.Reset()
	w.fg, w.bg = nil, nil
	return s
}

// Row renders a full row of cells.
func Row(cells []glyph.CharData, flags glyph.Flags) string {
	w := NewWriter(flags)
	for _, cd := range cells {
		w.Cell(cd)
	}
	return w.Finish()
}
