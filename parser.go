package purfecore

import (
	"strconv"
	"strings"
)

// parserState is the Parser's top-level FSA state.
type parserState int

const (
	stateGround parserState = iota
	stateEscape
	stateCSI
)

// Parser is an incremental, byte-at-a-time state machine that turns an
// arbitrary chunk stream into a sequence of Command values. It holds no
// I/O handles and performs no blocking waits; cross-call state is
// limited to its own FSA fields.
type Parser struct {
	state parserState

	dataBuf []byte

	csiRaw       strings.Builder
	csiPrivate   byte
	csiHasMarker bool
	csiInvalid   bool

	pending []Command
}

// NewParser returns a Parser ready to consume bytes from Ground state.
func NewParser() *Parser {
	return &Parser{}
}

// Parse feeds bytes into the FSA and returns every Command produced by
// this call. Sequences may be split arbitrarily across calls; the
// Parser carries the necessary state forward itself.
func (p *Parser) Parse(b []byte) []Command {
	p.pending = p.pending[:0]
	for _, c := range b {
		p.processByte(c)
	}
	// Any trailing printable run must be emitted now: a future Parse call
	// is not guaranteed ever to arrive, and the caller needs to render
	// everything this chunk produced.
	p.flushData()
	out := make([]Command, len(p.pending))
	copy(out, p.pending)
	return out
}

func (p *Parser) emit(cmd Command) {
	p.pending = append(p.pending, cmd)
}

func (p *Parser) flushData() {
	if len(p.dataBuf) == 0 {
		return
	}
	p.emit(dataCmd(p.dataBuf))
	p.dataBuf = nil
}

func (p *Parser) resetCSI() {
	p.csiRaw.Reset()
	p.csiPrivate = 0
	p.csiHasMarker = false
	p.csiInvalid = false
}

func (p *Parser) processByte(c byte) {
	switch p.state {
	case stateGround:
		p.processGround(c)
	case stateEscape:
		p.processEscape(c)
	case stateCSI:
		p.processCSI(c)
	}
}

func (p *Parser) processGround(c byte) {
	switch c {
	case 0x1B:
		p.flushData()
		p.state = stateEscape
	case 0x0D:
		p.flushData()
		p.emit(Command{Kind: CommandCarriageReturn})
	case 0x0A:
		p.flushData()
		p.emit(Command{Kind: CommandNewline})
	case 0x08, 0x7F:
		p.flushData()
		p.emit(Command{Kind: CommandBackspace})
	default:
		p.dataBuf = append(p.dataBuf, c)
	}
}

func (p *Parser) processEscape(c byte) {
	if c == '[' {
		p.resetCSI()
		p.state = stateCSI
		return
	}
	// Unrecognized escape: the byte is discarded and the parser returns to
	// Ground. Nothing is logged and no command is emitted for it.
	p.state = stateGround
}

func (p *Parser) processCSI(c byte) {
	switch {
	case p.csiInvalid:
		if isCSITerminator(c) {
			p.emit(Command{Kind: CommandInvalid})
			p.state = stateGround
		}
	case isCSIParamByte(c):
		if p.csiRaw.Len() == 0 && c == '?' {
			p.csiPrivate = '?'
			p.csiHasMarker = true
			return
		}
		p.csiRaw.WriteByte(c)
	case isCSIIntermediate(c):
		// Intermediates are consumed and dropped, not stored; none of the
		// recognized finals in this spec use them.
	case isCSITerminator(c):
		p.finalizeCSI(c)
		p.state = stateGround
	default:
		p.csiInvalid = true
	}
}

func isCSIParamByte(c byte) bool   { return c >= 0x30 && c <= 0x3F }
func isCSIIntermediate(c byte) bool { return c >= 0x20 && c <= 0x2F }
func isCSITerminator(c byte) bool  { return c >= 0x40 && c <= 0x7E }

// csiParams splits the accumulated raw parameter string on ';' into a
// vector of optional unsigned integers; an empty field decodes as None.
type csiParam struct {
	val int
	has bool
}

func (p *Parser) csiParams() []csiParam {
	raw := p.csiRaw.String()
	if raw == "" {
		return nil
	}
	fields := strings.Split(raw, ";")
	out := make([]csiParam, len(fields))
	for i, f := range fields {
		f = strings.TrimSuffix(f, ":")
		if idx := strings.IndexByte(f, ':'); idx >= 0 {
			f = f[:idx]
		}
		if f == "" {
			continue
		}
		n, err := strconv.Atoi(f)
		if err != nil {
			continue
		}
		out[i] = csiParam{val: n, has: true}
	}
	return out
}

func param(params []csiParam, idx, def int) int {
	if idx < 0 || idx >= len(params) || !params[idx].has {
		return def
	}
	return params[idx].val
}

func (p *Parser) finalizeCSI(final byte) {
	params := p.csiParams()
	private := p.csiHasMarker

	switch final {
	case 'H', 'f':
		p.emit(Command{Kind: CommandSetCursorPos,
			X: param(params, 0, 1), HasX: true,
			Y: param(params, 1, 1), HasY: true})
	case 'A':
		p.emit(Command{Kind: CommandCursorUp, N: param(params, 0, 1)})
	case 'B':
		p.emit(Command{Kind: CommandCursorDown, N: param(params, 0, 1)})
	case 'C':
		p.emit(Command{Kind: CommandCursorForward, N: param(params, 0, 1)})
	case 'D':
		p.emit(Command{Kind: CommandCursorBackward, N: param(params, 0, 1)})
	case 'G':
		p.emit(Command{Kind: CommandSetCursorPos, X: param(params, 0, 1), HasX: true})
	case 'J':
		switch param(params, 0, 0) {
		case 0:
			p.emit(Command{Kind: CommandClearForwards})
		case 2, 3:
			p.emit(Command{Kind: CommandClearAll})
		default:
			p.emit(Command{Kind: CommandInvalid})
		}
	case 'K':
		if param(params, 0, 0) == 0 {
			p.emit(Command{Kind: CommandClearLineForwards})
		} else {
			p.emit(Command{Kind: CommandInvalid})
		}
	case 'P':
		p.emit(Command{Kind: CommandDelete, N: param(params, 0, 1)})
	case '@':
		p.emit(Command{Kind: CommandInsertSpaces, N: param(params, 0, 1)})
	case 'h':
		p.finalizeModeSet(params, private, CommandSetMode)
	case 'l':
		p.finalizeModeSet(params, private, CommandResetMode)
	case 'm':
		p.finalizeSGR(params)
	default:
		p.emit(Command{Kind: CommandInvalid})
	}
}

func (p *Parser) finalizeModeSet(params []csiParam, private bool, kind CommandKind) {
	if !private || len(params) != 1 {
		p.emit(unknownModeCmd(kind, p.csiRaw.String()))
		return
	}
	switch param(params, 0, -1) {
	case 25:
		p.emit(modeCmd(kind, ModeCursorVisible))
	case 1049:
		p.emit(modeCmd(kind, ModeAltScreen))
	case 1:
		p.emit(modeCmd(kind, ModeCursorKeys))
	case 7:
		p.emit(modeCmd(kind, ModeAutoWrap))
	default:
		p.emit(unknownModeCmd(kind, p.csiRaw.String()))
	}
}

// finalizeSGR expands the raw SGR parameter vector into one Sgr command
// per logical attribute, consuming 2 or 4 extra positions for the 8-bit
// palette and true-color extended forms.
func (p *Parser) finalizeSGR(params []csiParam) {
	if len(params) == 0 {
		p.emit(sgrCmd(SgrAttr{Kind: SgrReset}))
		return
	}
	for i := 0; i < len(params); i++ {
		code := param(params, i, 0)
		if (code == 38 || code == 48) && i+1 < len(params) {
			sub := param(params, i+1, 0)
			isFg := code == 38
			switch sub {
			case 5:
				if i+2 < len(params) {
					idx := param(params, i+2, 0)
					p.emit(sgrCmd(paletteAttr(isFg, idx)))
					i += 2
					continue
				}
			case 2:
				if i+4 < len(params) {
					r := param(params, i+2, 0)
					g := param(params, i+3, 0)
					bl := param(params, i+4, 0)
					p.emit(sgrCmd(trueColorAttr(isFg, r, g, bl)))
					i += 4
					continue
				}
			}
		}
		p.emit(sgrCmd(decodeSGRCode(code)))
	}
}

func paletteAttr(isFg bool, idx int) SgrAttr {
	c := Palette8BitColor(idx)
	if isFg {
		return SgrAttr{Kind: SgrForeground, Color: c}
	}
	return SgrAttr{Kind: SgrBackground, Color: c}
}

func trueColorAttr(isFg bool, r, g, b int) SgrAttr {
	c := TrueColorRGB(uint8(r), uint8(g), uint8(b))
	if isFg {
		return SgrAttr{Kind: SgrForeground, Color: c}
	}
	return SgrAttr{Kind: SgrBackground, Color: c}
}

// decodeSGRCode maps a single numeric SGR code to its logical attribute.
func decodeSGRCode(code int) SgrAttr {
	switch {
	case code == 0:
		return SgrAttr{Kind: SgrReset}
	case code == 1:
		return SgrAttr{Kind: SgrBold}
	case code == 2:
		return SgrAttr{Kind: SgrFaint}
	case code == 3:
		return SgrAttr{Kind: SgrItalic}
	case code == 4:
		return SgrAttr{Kind: SgrUnderline}
	case code == 5:
		return SgrAttr{Kind: SgrSlowBlink}
	case code == 6:
		return SgrAttr{Kind: SgrRapidBlink}
	case code == 7:
		return SgrAttr{Kind: SgrReverse}
	case code == 8:
		return SgrAttr{Kind: SgrConceal}
	case code == 22:
		return SgrAttr{Kind: SgrNormalIntensity}
	case code == 23:
		return SgrAttr{Kind: SgrNotItalic}
	case code == 24:
		return SgrAttr{Kind: SgrNotUnderline}
	case code == 28:
		return SgrAttr{Kind: SgrReveal}
	case code >= 30 && code <= 37:
		return SgrAttr{Kind: SgrForeground, Color: NamedColor(code - 30)}
	case code == 39:
		return SgrAttr{Kind: SgrForegroundDefault}
	case code >= 40 && code <= 47:
		return SgrAttr{Kind: SgrBackground, Color: NamedColor(code - 40)}
	case code == 49:
		return SgrAttr{Kind: SgrBackgroundDefault}
	case code >= 90 && code <= 97:
		return SgrAttr{Kind: SgrForeground, Color: NamedColor(code - 90 + 8)}
	case code >= 100 && code <= 107:
		return SgrAttr{Kind: SgrBackground, Color: NamedColor(code - 100 + 8)}
	default:
		return SgrAttr{Kind: SgrUnknown, Unknown: code}
	}
}
