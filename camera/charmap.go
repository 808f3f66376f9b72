package camera

import "math/bits"

// Glyphs for 3x3 hit patterns. Bit 7 is the top left sample and bit 0 the
// bottom right one; the center sample is never cast. A pattern missing from
// this list is drawn with the glyph of the closest pattern by Hamming
// distance, preferring the numerically smaller pattern on ties.
var basePatterns = map[uint8]rune{
	0b00000000: ' ',
	0b00000010: '.',
	0b00000111: '_',
	0b00010101: 'x',
	0b00010111: 'u',
	0b00011000: '-',
	0b00101110: '/',
	0b01000010: '!',
	0b01011111: 'A',
	0b01110100: '/',
	0b10010011: '\\',
	0b11001001: '\\',
	0b11100000: '"',
	0b11111111: '#',
}

var charmap3x3 = buildCharmap3x3()

func buildCharmap3x3() [256]rune {
	var out [256]rune
	for i := 0; i < 256; i++ {
		bestDist := 9
		for j := 0; j < 256; j++ {
			glyph, ok := basePatterns[uint8(j)]
			if !ok {
				continue
			}
			if dist := bits.OnesCount8(uint8(i ^ j)); dist < bestDist {
				bestDist = dist
				out[i] = glyph
			}
		}
	}
	return out
}

// Get the glyph drawn for a 3x3 hit pattern.
func Glyph3x3(pattern uint8) rune {
	return charmap3x3[pattern]
}
