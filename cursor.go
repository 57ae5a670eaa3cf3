package purfecore

// CursorPos is a logical cell position in the visible grid.
type CursorPos struct {
	X, Y int
}

// BlinkMode names the SGR blink rate applied to newly drawn text.
type BlinkMode int

const (
	BlinkNone BlinkMode = iota
	BlinkSlow
	BlinkRapid
)

// CursorState is the cursor position together with the drawing attributes
// that apply to the next character written.
type CursorState struct {
	Pos        CursorPos
	Foreground Color
	Background Color
	Bold       bool
	Italic     bool
	BlinkMode  BlinkMode
	Visible    bool
}

// defaultCursorState returns a cursor at the origin with default
// attributes and the cursor visible, matching NewEmulator.
func defaultCursorState() CursorState {
	return CursorState{
		Pos:        CursorPos{X: 0, Y: 0},
		Foreground: DefaultColor,
		Background: DefaultColor,
		Visible:    true,
	}
}

// resetAttrs clears fg, bg, bold, italic and blink back to defaults,
// leaving the cursor position untouched. Grounds Command::Sgr(Reset).
func (c *CursorState) resetAttrs() {
	c.Foreground = DefaultColor
	c.Background = DefaultColor
	c.Bold = false
	c.Italic = false
	c.BlinkMode = BlinkNone
}
