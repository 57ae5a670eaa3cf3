package purfecore

// Color is a tagged color value carried by cursor drawing state and by
// FormatTag ranges. The zero value is Default, matching the terminal's
// configured default foreground/background.
//
// Named holds indices 0-15: 0-7 are the standard ANSI colors, 8-15 are
// their bright counterparts. The same sixteen indices serve foreground
// and background; which role applies is determined by where the Color
// is stored (CursorState.Foreground vs Background, FormatTag.Foreground
// vs Background), not by the Color value itself.
type Color struct {
	Type    ColorType
	Named   int // valid when Type == ColorNamed, 0..15
	Index8  int // valid when Type == ColorPalette8Bit, 0..255
	R, G, B uint8
}

// ColorType discriminates the variants of Color.
type ColorType int

const (
	ColorDefault ColorType = iota
	ColorNamed
	ColorPalette8Bit
	ColorTrueColor
)

// DefaultColor is the terminal's configured default color.
var DefaultColor = Color{Type: ColorDefault}

// NamedColor constructs a standard or bright ANSI color by index (0..15).
func NamedColor(n int) Color {
	return Color{Type: ColorNamed, Named: n}
}

// Palette8BitColor constructs an 8-bit palette color (0..255).
func Palette8BitColor(n int) Color {
	return Color{Type: ColorPalette8Bit, Index8: n}
}

// TrueColorRGB constructs a 24-bit true color.
func TrueColorRGB(r, g, b uint8) Color {
	return Color{Type: ColorTrueColor, R: r, G: g, B: b}
}

// IsDefault reports whether c is the terminal default color.
func (c Color) IsDefault() bool {
	return c.Type == ColorDefault
}

// ANSIColorsRGB gives the VGA-accurate RGB triples for the 16 standard
// and bright ANSI colors, indexed 0..15.
var ANSIColorsRGB = [16][3]uint8{
	{0x00, 0x00, 0x00}, // black
	{0xAA, 0x00, 0x00}, // red
	{0x00, 0xAA, 0x00}, // green
	{0xAA, 0x55, 0x00}, // yellow
	{0x00, 0x00, 0xAA}, // blue
	{0xAA, 0x00, 0xAA}, // magenta
	{0x00, 0xAA, 0xAA}, // cyan
	{0xAA, 0xAA, 0xAA}, // white
	{0x55, 0x55, 0x55}, // bright black
	{0xFF, 0x55, 0x55}, // bright red
	{0x55, 0xFF, 0x55}, // bright green
	{0xFF, 0xFF, 0x55}, // bright yellow
	{0x55, 0x55, 0xFF}, // bright blue
	{0xFF, 0x55, 0xFF}, // bright magenta
	{0x55, 0xFF, 0xFF}, // bright cyan
	{0xFF, 0xFF, 0xFF}, // bright white
}

// Get256ColorRGB resolves an 8-bit palette index (0..255) to RGB: 0..15
// are the named ANSI colors, 16..231 are the 6x6x6 color cube, 232..255
// are the grayscale ramp.
func Get256ColorRGB(n int) (r, g, b uint8) {
	switch {
	case n < 0:
		return 0, 0, 0
	case n < 16:
		rgb := ANSIColorsRGB[n]
		return rgb[0], rgb[1], rgb[2]
	case n < 232:
		n -= 16
		levels := [6]uint8{0x00, 0x5F, 0x87, 0xAF, 0xD7, 0xFF}
		return levels[(n/36)%6], levels[(n/6)%6], levels[n%6]
	default:
		v := uint8(8 + (n-232)*10)
		return v, v, v
	}
}
