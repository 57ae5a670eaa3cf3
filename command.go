package purfecore

// Command is the semantic output of the Parser: one value per recognized
// unit of input. The emulator interprets each in turn.
type Command struct {
	Kind CommandKind

	// Data holds the opaque payload for CommandData.
	Data []byte

	// N holds the repeat count for CursorUp/Down/Forward/Backward, Delete
	// and InsertSpaces.
	N int

	// X, Y hold the 1-based parameters for SetCursorPos; HasX/HasY report
	// whether the command sets that axis. H and f always set both, with a
	// missing parameter defaulting to 1; G sets only X.
	X, Y       int
	HasX, HasY bool

	// Attr holds the parsed attribute for CommandSgr.
	Attr SgrAttr

	// Mode holds the mode flag for SetMode/ResetMode.
	Mode Mode

	// UnknownMode holds the raw mode bytes when Mode == ModeUnknown.
	UnknownMode string
}

// CommandKind enumerates the closed set of Command variants.
type CommandKind int

const (
	CommandData CommandKind = iota
	CommandCarriageReturn
	CommandNewline
	CommandBackspace
	CommandSetCursorPos
	CommandCursorUp
	CommandCursorDown
	CommandCursorForward
	CommandCursorBackward
	CommandClearForwards
	CommandClearAll
	CommandClearLineForwards
	CommandDelete
	CommandInsertSpaces
	CommandSgr
	CommandSetMode
	CommandResetMode
	CommandInvalid
)

// Mode names a settable terminal mode flag.
type Mode int

const (
	ModeCursorKeys Mode = iota
	ModeAutoWrap
	ModeCursorVisible
	ModeAltScreen
	ModeUnknown
)

// SgrAttrKind enumerates the logical attributes a single Sgr command can
// carry, after expansion of the raw SGR parameter vector.
type SgrAttrKind int

const (
	SgrReset SgrAttrKind = iota
	SgrBold
	SgrFaint
	SgrItalic
	SgrUnderline
	SgrSlowBlink
	SgrRapidBlink
	SgrReverse
	SgrConceal
	SgrNormalIntensity
	SgrNotItalic
	SgrNotUnderline
	SgrReveal
	SgrForeground
	SgrForegroundDefault
	SgrBackground
	SgrBackgroundDefault
	SgrUnknown
)

// SgrAttr is the decoded payload of a CommandSgr command.
type SgrAttr struct {
	Kind    SgrAttrKind
	Color   Color // valid for SgrForeground / SgrBackground
	Unknown int   // valid for SgrUnknown: the raw numeric code
}

func dataCmd(b []byte) Command       { return Command{Kind: CommandData, Data: b} }
func sgrCmd(a SgrAttr) Command       { return Command{Kind: CommandSgr, Attr: a} }
func modeCmd(k CommandKind, m Mode) Command {
	return Command{Kind: k, Mode: m}
}
func unknownModeCmd(k CommandKind, raw string) Command {
	return Command{Kind: k, Mode: ModeUnknown, UnknownMode: raw}
}
