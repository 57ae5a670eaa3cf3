// Package input turns keyboard events into the exact byte sequences a
// shell attached to the far end of a PTY expects to receive.
package input

import "fmt"

// KeyKind enumerates the closed set of key events InputEncoder accepts.
type KeyKind int

const (
	KeyChar KeyKind = iota
	KeyCtrl
	KeyEnter
	KeyBackspace
	KeyArrowUp
	KeyArrowDown
	KeyArrowRight
	KeyArrowLeft
	KeyHome
	KeyEnd
)

// KeyEvent is one keypress as reported by the terminal frontend. Char is
// meaningful for KeyChar (the printable rune) and KeyCtrl (the letter or
// one of '[', ']', '\\' that was chorded with Control).
type KeyEvent struct {
	Kind KeyKind
	Char rune
}

// Encode is a pure function from a key event and the current cursor-keys
// mode flag to the bytes that should be written to the PTY. It holds no
// state of its own; callers pass the emulator's live DECCKM flag in on
// every call.
func Encode(ev KeyEvent, cursorKeysMode bool) []byte {
	switch ev.Kind {
	case KeyChar:
		return []byte(string(ev.Char))
	case KeyCtrl:
		return []byte{ctrlByte(ev.Char)}
	case KeyEnter:
		return []byte{0x0A}
	case KeyBackspace:
		return []byte{0x7F}
	case KeyArrowUp:
		return arrowSeq('A', cursorKeysMode)
	case KeyArrowDown:
		return arrowSeq('B', cursorKeysMode)
	case KeyArrowRight:
		return arrowSeq('C', cursorKeysMode)
	case KeyArrowLeft:
		return arrowSeq('D', cursorKeysMode)
	case KeyHome:
		return arrowSeq('H', cursorKeysMode)
	case KeyEnd:
		return arrowSeq('F', cursorKeysMode)
	default:
		return nil
	}
}

// ctrlByte maps a chorded Control letter to its control-code byte. Only
// A-Z, '[', ']' and '\\' are valid chords; anything else masks to the
// same low 5 bits a real terminal would produce.
func ctrlByte(c rune) byte {
	return byte(c) & 0x1F
}

// arrowSeq emits the cursor/Home/End escape in its DECCKM-dependent
// form: "ESC [ X" in cursor mode off, "ESC O X" when on.
func arrowSeq(final byte, cursorKeysMode bool) []byte {
	if cursorKeysMode {
		return []byte{0x1B, 'O', final}
	}
	return []byte{0x1B, '[', final}
}

// String renders a KeyEvent for logging; it is never parsed back.
func (ev KeyEvent) String() string {
	switch ev.Kind {
	case KeyChar:
		return fmt.Sprintf("Char(%q)", ev.Char)
	case KeyCtrl:
		return fmt.Sprintf("Ctrl(%q)", ev.Char)
	default:
		return keyKindNames[ev.Kind]
	}
}

var keyKindNames = map[KeyKind]string{
	KeyEnter:     "Enter",
	KeyBackspace: "Backspace",
	KeyArrowUp:    "ArrowUp",
	KeyArrowDown:  "ArrowDown",
	KeyArrowRight: "ArrowRight",
	KeyArrowLeft:  "ArrowLeft",
	KeyHome:       "Home",
	KeyEnd:        "End",
}
