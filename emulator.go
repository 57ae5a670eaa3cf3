package purfecore

import "go.uber.org/zap"

// screenState is one independently addressable screen: a buffer, its
// format tracker, and the cursor that draws into it. The Emulator keeps
// two of these (primary and alt) so that DECSET 1049 can swap between
// them without discarding either one's content.
type screenState struct {
	buffer  *Buffer
	tracker *FormatTracker
	cursor  CursorState
}

func newScreenState(width, height int) *screenState {
	return &screenState{
		buffer:  NewBuffer(width, height),
		tracker: NewFormatTracker(),
		cursor:  defaultCursorState(),
	}
}

// Emulator is the orchestrator: it holds the parser, both screens, and
// the mode flags, and interprets each Command by delegating to the
// active screen's Buffer and FormatTracker, keeping them jointly
// consistent within a single command's application.
type Emulator struct {
	parser *Parser

	primary *screenState
	alt     *screenState
	active  *screenState

	cursorKeysMode bool
	autoWrapMode   bool
	altScreen      bool

	log *zap.SugaredLogger
}

// NewEmulator constructs an empty Emulator: no bytes, a single
// default-attributes tag [0, ∞) per screen, a visible cursor at (0,0),
// cursor-keys and auto-wrap modes off, and the primary screen active.
// A nil logger is replaced with a no-op logger.
func NewEmulator(width, height int, logger *zap.SugaredLogger) *Emulator {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	primary := newScreenState(width, height)
	alt := newScreenState(width, height)
	return &Emulator{
		parser:  NewParser(),
		primary: primary,
		alt:     alt,
		active:  primary,
		log:     logger,
	}
}

// Read drains bytes received from the PTY, applying each Command the
// parser produces in the exact order emitted. It returns cleanly on
// empty input; "no data" is never an error here.
func (e *Emulator) Read(data []byte) {
	for _, cmd := range e.parser.Parse(data) {
		e.apply(cmd)
	}
}

// SetWindowSize rewrites both screens' dimensions and remaps each
// screen's own cursor through its own buffer position. The external
// collaborator remains responsible for telling the OS about the change.
func (e *Emulator) SetWindowSize(width, height int) {
	for _, s := range []*screenState{e.primary, e.alt} {
		res := s.buffer.SetWinSize(width, height, s.cursor.Pos)
		if !res.Changed {
			continue
		}
		if res.InsertionRange.Len() > 0 {
			s.tracker.PushRangeAdjustment(res.InsertionRange.Start, res.InsertionRange.End)
		}
		s.cursor.Pos = res.NewCursorPos
	}
}

// Data returns the active screen's raw byte split.
func (e *Emulator) Data() TerminalData[[]byte] {
	return e.active.buffer.Data()
}

// FormatData returns the active screen's tags split aligned with Data.
func (e *Emulator) FormatData() TerminalData[[]FormatTag] {
	split := e.active.buffer.splitPos()
	scrollback, visible := e.active.tracker.Split(split)
	return TerminalData[[]FormatTag]{Scrollback: scrollback, Visible: visible}
}

// CursorPos returns the active screen's cursor position.
func (e *Emulator) CursorPos() CursorPos { return e.active.cursor.Pos }

// CursorState returns the active screen's full cursor state.
func (e *Emulator) CursorState() CursorState { return e.active.cursor }

// CursorKeysMode reports whether DECCKM is set, for InputEncoder.
func (e *Emulator) CursorKeysMode() bool { return e.cursorKeysMode }

func (e *Emulator) apply(cmd Command) {
	s := e.active
	switch cmd.Kind {
	case CommandData:
		res := s.buffer.InsertData(s.cursor.Pos, cmd.Data)
		if res.InsertionRange.Len() > 0 {
			s.tracker.PushRangeAdjustment(res.InsertionRange.Start, res.InsertionRange.End)
		}
		tag := currentTag(s.cursor)
		s.tracker.PushRange(tag, res.WrittenRange.Start, res.WrittenRange.End)
		s.cursor.Pos = res.NewCursorPos

	case CommandCarriageReturn:
		s.cursor.Pos.X = 0

	case CommandNewline:
		s.cursor.Pos.Y++

	case CommandBackspace:
		if s.cursor.Pos.X > 0 {
			s.cursor.Pos.X--
		}

	case CommandSetCursorPos:
		if cmd.HasX {
			s.cursor.Pos.X = cmd.X - 1
		}
		if cmd.HasY {
			s.cursor.Pos.Y = cmd.Y - 1
		}

	case CommandCursorUp:
		s.cursor.Pos.Y -= cmd.N
		if s.cursor.Pos.Y < 0 {
			s.cursor.Pos.Y = 0
		}

	case CommandCursorDown:
		s.cursor.Pos.Y += cmd.N

	case CommandCursorForward:
		s.cursor.Pos.X += cmd.N

	case CommandCursorBackward:
		s.cursor.Pos.X -= cmd.N
		if s.cursor.Pos.X < 0 {
			s.cursor.Pos.X = 0
		}

	case CommandClearForwards:
		if pos, ok := s.buffer.ClearForwards(s.cursor.Pos); ok {
			tag := currentTag(s.cursor)
			s.tracker.PushRange(tag, pos, InfiniteEnd)
		}

	case CommandClearLineForwards:
		if r, ok := s.buffer.ClearLineForwards(s.cursor.Pos); ok {
			s.tracker.DeleteRange(r.Start, r.End)
		}

	case CommandClearAll:
		tag := currentTag(s.cursor)
		s.tracker.PushRange(tag, 0, InfiniteEnd)
		s.buffer.ClearAll()

	case CommandDelete:
		if r, ok := s.buffer.DeleteForwards(s.cursor.Pos, cmd.N); ok {
			s.tracker.DeleteRange(r.Start, r.End)
		}

	case CommandInsertSpaces:
		res := s.buffer.InsertSpaces(s.cursor.Pos, cmd.N)
		if res.InsertionRange.Len() > 0 {
			s.tracker.PushRangeAdjustment(res.InsertionRange.Start, res.InsertionRange.End)
		}

	case CommandSgr:
		e.applySGR(cmd.Attr)

	case CommandSetMode:
		e.setMode(cmd, true)

	case CommandResetMode:
		e.setMode(cmd, false)

	case CommandInvalid:
		e.log.Warnw("terminal: parser recovered from malformed sequence")
	}
}

func currentTag(s CursorState) FormatTag {
	return FormatTag{
		Foreground: s.Foreground,
		Background: s.Background,
		Bold:       s.Bold,
		Italic:     s.Italic,
		BlinkMode:  s.BlinkMode,
	}
}

func (e *Emulator) applySGR(attr SgrAttr) {
	c := &e.active.cursor
	switch attr.Kind {
	case SgrReset:
		c.resetAttrs()
	case SgrBold:
		c.Bold = true
	case SgrFaint:
		c.Bold = false
	case SgrItalic:
		c.Italic = true
	case SgrNotItalic:
		c.Italic = false
	case SgrSlowBlink:
		c.BlinkMode = BlinkSlow
	case SgrRapidBlink:
		c.BlinkMode = BlinkRapid
	case SgrNormalIntensity:
		c.Bold = false
	case SgrForeground:
		c.Foreground = attr.Color
	case SgrForegroundDefault:
		c.Foreground = DefaultColor
	case SgrBackground:
		c.Background = attr.Color
	case SgrBackgroundDefault:
		c.Background = DefaultColor
	case SgrUnderline, SgrNotUnderline, SgrReverse, SgrConceal, SgrReveal:
		// Carried in the Command stream for completeness; no tracked
		// attribute models these (not part of FormatTag).
	case SgrUnknown:
		e.log.Debugw("terminal: unknown SGR code", "code", attr.Unknown)
	}
}

func (e *Emulator) setMode(cmd Command, set bool) {
	switch cmd.Mode {
	case ModeCursorKeys:
		e.cursorKeysMode = set
	case ModeAutoWrap:
		e.autoWrapMode = set
	case ModeCursorVisible:
		e.active.cursor.Visible = set
	case ModeAltScreen:
		e.switchAltScreen(set)
	case ModeUnknown:
		e.log.Warnw("terminal: unknown mode", "raw", cmd.UnknownMode, "set", set)
	}
}

func (e *Emulator) switchAltScreen(enable bool) {
	if enable == e.altScreen {
		return
	}
	e.altScreen = enable
	if enable {
		e.active = e.alt
	} else {
		e.active = e.primary
	}
}
