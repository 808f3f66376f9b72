package types

// ColorRGB is a floating point color. Components are not clamped so light
// contributions can be summed beyond 1.0; clamping happens on conversion to
// RGB8.
type ColorRGB struct {
	R, G, B float32
}

// RGB8 is an 8-bit per channel color.
type RGB8 struct {
	R, G, B uint8
}

// Add a color.
func (c ColorRGB) Add(c2 ColorRGB) ColorRGB {
	return ColorRGB{c.R + c2.R, c.G + c2.G, c.B + c2.B}
}

// Multiply two colors component-wise.
func (c ColorRGB) Mul(c2 ColorRGB) ColorRGB {
	return ColorRGB{c.R * c2.R, c.G * c2.G, c.B * c2.B}
}

// Scale a color.
func (c ColorRGB) Scale(s float32) ColorRGB {
	return ColorRGB{c.R * s, c.G * s, c.B * s}
}

// Convert to an 8-bit color clamping each channel to [0, 255].
func (c ColorRGB) RGB8() RGB8 {
	return RGB8{clampChannel(c.R), clampChannel(c.G), clampChannel(c.B)}
}

func clampChannel(v float32) uint8 {
	v *= 255.0
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}

// Convert a packed 0xRRGGBB value to an 8-bit color.
func RGBHex(value uint32) RGB8 {
	return RGB8{
		R: uint8((value & 0xff0000) >> 16),
		G: uint8((value & 0x00ff00) >> 8),
		B: uint8(value & 0x0000ff),
	}
}

// ANSI256 maps the color to the xterm 256 color palette. Pure grays use the
// 24 step gray ramp (232-255); everything else is mapped onto the 6x6x6
// color cube (16-231).
func (c RGB8) ANSI256() uint8 {
	if c.R == c.G && c.G == c.B {
		return 232 + c.R/11
	}
	const step = 256.0 / 6.0
	r := uint8(float64(c.R) / step)
	g := uint8(float64(c.G) / step)
	b := uint8(float64(c.B) / step)
	return 16 + r*36 + g*6 + b
}
