package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/phroun/purfecore"
)

// render redraws the visible grid in place: home the cursor, clear the
// screen, emit each visible row with its SGR-encoded format tags, then
// position the real cursor where the emulator's cursor sits.
func render(out io.Writer, emu *purfecore.Emulator) {
	data := emu.Data().Visible
	tags := emu.FormatData().Visible

	var b strings.Builder
	b.WriteString("\x1b[H\x1b[2J")
	b.WriteString(renderTagged(data, tags))

	pos := emu.CursorPos()
	fmt.Fprintf(&b, "\x1b[%d;%dH", pos.Y+1, pos.X+1)
	if !emu.CursorState().Visible {
		b.WriteString("\x1b[?25l")
	} else {
		b.WriteString("\x1b[?25h")
	}
	io.WriteString(out, b.String())
}

// renderTagged re-encodes a visible byte slice and its aligned format
// tags back into an SGR-decorated string, so the demo's own terminal
// reproduces the emulator's interpretation rather than the shell's raw
// bytes (which may carry sequences this emulator chose not to track).
func renderTagged(data []byte, tags []purfecore.FormatTag) string {
	var b strings.Builder
	for _, tag := range tags {
		start, end := tag.Start, tag.End
		if start < 0 {
			start = 0
		}
		if end > len(data) {
			end = len(data)
		}
		if start >= end {
			continue
		}
		b.WriteString(sgrFor(tag))
		b.Write(data[start:end])
		b.WriteString("\x1b[0m")
	}
	return b.String()
}

func sgrFor(tag purfecore.FormatTag) string {
	var codes []string
	if tag.Bold {
		codes = append(codes, "1")
	}
	if tag.Italic {
		codes = append(codes, "3")
	}
	switch tag.BlinkMode {
	case purfecore.BlinkSlow:
		codes = append(codes, "5")
	case purfecore.BlinkRapid:
		codes = append(codes, "6")
	}
	codes = append(codes, colorCodes(tag.Foreground, true)...)
	codes = append(codes, colorCodes(tag.Background, false)...)
	if len(codes) == 0 {
		return ""
	}
	return "\x1b[" + strings.Join(codes, ";") + "m"
}

func colorCodes(c purfecore.Color, fg bool) []string {
	base := 30
	if !fg {
		base = 40
	}
	switch c.Type {
	case purfecore.ColorDefault:
		return nil
	case purfecore.ColorNamed:
		n := c.Named
		if n < 8 {
			return []string{fmt.Sprintf("%d", base+n)}
		}
		brightBase := 90
		if !fg {
			brightBase = 100
		}
		return []string{fmt.Sprintf("%d", brightBase+n-8)}
	case purfecore.ColorPalette8Bit:
		prefix := "38"
		if !fg {
			prefix = "48"
		}
		return []string{prefix, "5", fmt.Sprintf("%d", c.Index8)}
	case purfecore.ColorTrueColor:
		prefix := "38"
		if !fg {
			prefix = "48"
		}
		return []string{prefix, "2", fmt.Sprintf("%d", c.R), fmt.Sprintf("%d", c.G), fmt.Sprintf("%d", c.B)}
	default:
		return nil
	}
}
