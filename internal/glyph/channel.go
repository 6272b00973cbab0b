package glyph

// ColorSteps are the channel levels of the xterm 6x6x6 color cube.
var ColorSteps = []int{0x00, 0x5f, 0x87, 0xaf, 0xd7, 0xff}

// GrayscaleSteps are the levels of the xterm 24-step grayscale ramp
// (palette indices 232-255).
var GrayscaleSteps = []int{
	0x08, 0x12, 0x1c, 0x26, 0x30, 0x3a, 0x44, 0x4e, 0x58, 0x62, 0x6c, 0x76,
	0x80, 0x8a, 0x94, 0x9e, 0xa8, 0xb2, 0xbc, 0xc6, 0xd0, 0xda, 0xe4, 0xee,
}

// GetChannel returns channel index (0 red, 1 green, 2 blue) of a packed
// 0xRRGGBB value. Other indices are not supported.
func GetChannel(rgb uint32, index int) int {
	return int(rgb>>(8*(2-index))) & 0xff
}

// ClampByte saturates v to [0, 255].
func ClampByte(v int) int {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}

// BestIndex returns the index of the entry of the increasing table steps
// nearest to value. A value exactly halfway between two steps maps to the
// lower one.
func BestIndex(value int, steps []int) int {
	for i := 0; i < len(steps)-1; i++ {
		// 2*value avoids losing the half when the midpoint is odd.
		if steps[i]+steps[i+1] >= 2*value {
			return i
		}
	}
	return len(steps) - 1
}

func Sqr(n float64) float64 {
	return n * n
}
