package purfecore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Scenario 1: cursor home.
func TestParserCursorHome(t *testing.T) {
	p := NewParser()
	cmds := p.Parse([]byte("\x1b[32;15H"))
	require.Len(t, cmds, 1)
	assert.Equal(t, Command{Kind: CommandSetCursorPos, X: 32, HasX: true, Y: 15, HasY: true}, cmds[0])

	cmds = p.Parse([]byte("\x1b[H"))
	require.Len(t, cmds, 1)
	assert.Equal(t, Command{Kind: CommandSetCursorPos, X: 1, HasX: true, Y: 1, HasY: true}, cmds[0])
}

// Scenario 2: true-color SGR around plain data.
func TestParserTrueColorSGR(t *testing.T) {
	p := NewParser()
	cmds := p.Parse([]byte("\x1b[38;2;255;128;0mA\x1b[0m"))
	require.Len(t, cmds, 3)
	assert.Equal(t, CommandSgr, cmds[0].Kind)
	assert.Equal(t, SgrForeground, cmds[0].Attr.Kind)
	assert.Equal(t, TrueColorRGB(255, 128, 0), cmds[0].Attr.Color)

	assert.Equal(t, CommandData, cmds[1].Kind)
	assert.Equal(t, "A", string(cmds[1].Data))

	assert.Equal(t, CommandSgr, cmds[2].Kind)
	assert.Equal(t, SgrReset, cmds[2].Attr.Kind)
}

func TestParserSplitAcrossCalls(t *testing.T) {
	p := NewParser()
	cmds := p.Parse([]byte("\x1b["))
	assert.Empty(t, cmds)
	cmds = p.Parse([]byte("5"))
	assert.Empty(t, cmds)
	cmds = p.Parse([]byte("A"))
	require.Len(t, cmds, 1)
	assert.Equal(t, Command{Kind: CommandCursorUp, N: 5}, cmds[0])
}

func TestParserDataFlushedBeforeEscape(t *testing.T) {
	p := NewParser()
	cmds := p.Parse([]byte("hi\x1b[2J"))
	require.Len(t, cmds, 2)
	assert.Equal(t, CommandData, cmds[0].Kind)
	assert.Equal(t, "hi", string(cmds[0].Data))
	assert.Equal(t, CommandClearAll, cmds[1].Kind)
}

func TestParserCarriageReturnAndNewline(t *testing.T) {
	p := NewParser()
	cmds := p.Parse([]byte("ab\r\ncd"))
	require.Len(t, cmds, 4)
	assert.Equal(t, CommandData, cmds[0].Kind)
	assert.Equal(t, "ab", string(cmds[0].Data))
	assert.Equal(t, CommandCarriageReturn, cmds[1].Kind)
	assert.Equal(t, CommandNewline, cmds[2].Kind)
	assert.Equal(t, CommandData, cmds[3].Kind)
	assert.Equal(t, "cd", string(cmds[3].Data))
}

func TestParserBackspace(t *testing.T) {
	p := NewParser()
	cmds := p.Parse([]byte{0x08})
	require.Len(t, cmds, 1)
	assert.Equal(t, CommandBackspace, cmds[0].Kind)

	cmds = p.Parse([]byte{0x7F})
	require.Len(t, cmds, 1)
	assert.Equal(t, CommandBackspace, cmds[0].Kind)
}

func TestParserDefaultRepeatCounts(t *testing.T) {
	p := NewParser()
	cmds := p.Parse([]byte("\x1b[A\x1b[B\x1b[C\x1b[D"))
	require.Len(t, cmds, 4)
	assert.Equal(t, Command{Kind: CommandCursorUp, N: 1}, cmds[0])
	assert.Equal(t, Command{Kind: CommandCursorDown, N: 1}, cmds[1])
	assert.Equal(t, Command{Kind: CommandCursorForward, N: 1}, cmds[2])
	assert.Equal(t, Command{Kind: CommandCursorBackward, N: 1}, cmds[3])
}

func TestParserEraseCommands(t *testing.T) {
	p := NewParser()
	cmds := p.Parse([]byte("\x1b[0J\x1b[2J\x1b[0K"))
	require.Len(t, cmds, 3)
	assert.Equal(t, CommandClearForwards, cmds[0].Kind)
	assert.Equal(t, CommandClearAll, cmds[1].Kind)
	assert.Equal(t, CommandClearLineForwards, cmds[2].Kind)
}

func TestParserInvalidEraseParam(t *testing.T) {
	p := NewParser()
	cmds := p.Parse([]byte("\x1b[5J"))
	require.Len(t, cmds, 1)
	assert.Equal(t, CommandInvalid, cmds[0].Kind)

	cmds = p.Parse([]byte("\x1b[5K"))
	require.Len(t, cmds, 1)
	assert.Equal(t, CommandInvalid, cmds[0].Kind)
}

func TestParserDeleteAndInsertSpaces(t *testing.T) {
	p := NewParser()
	cmds := p.Parse([]byte("\x1b[3P\x1b[4@"))
	require.Len(t, cmds, 2)
	assert.Equal(t, Command{Kind: CommandDelete, N: 3}, cmds[0])
	assert.Equal(t, Command{Kind: CommandInsertSpaces, N: 4}, cmds[1])
}

func TestParserModeSetAndReset(t *testing.T) {
	p := NewParser()
	cmds := p.Parse([]byte("\x1b[?25h\x1b[?1049h\x1b[?1h\x1b[?7h"))
	require.Len(t, cmds, 4)
	for i, mode := range []Mode{ModeCursorVisible, ModeAltScreen, ModeCursorKeys, ModeAutoWrap} {
		assert.Equal(t, CommandSetMode, cmds[i].Kind)
		assert.Equal(t, mode, cmds[i].Mode)
	}

	cmds = p.Parse([]byte("\x1b[?25l"))
	require.Len(t, cmds, 1)
	assert.Equal(t, CommandResetMode, cmds[0].Kind)
	assert.Equal(t, ModeCursorVisible, cmds[0].Mode)
}

func TestParserUnknownModeIsReportedNotFatal(t *testing.T) {
	p := NewParser()
	cmds := p.Parse([]byte("\x1b[?9999h"))
	require.Len(t, cmds, 1)
	assert.Equal(t, CommandSetMode, cmds[0].Kind)
	assert.Equal(t, ModeUnknown, cmds[0].Mode)

	// Parser must continue normally afterwards.
	cmds = p.Parse([]byte("A"))
	require.Len(t, cmds, 1)
	assert.Equal(t, CommandData, cmds[0].Kind)
}

func TestParserSGR8BitPalette(t *testing.T) {
	p := NewParser()
	cmds := p.Parse([]byte("\x1b[38;5;200m"))
	require.Len(t, cmds, 1)
	assert.Equal(t, SgrForeground, cmds[0].Attr.Kind)
	assert.Equal(t, Palette8BitColor(200), cmds[0].Attr.Color)
}

func TestParserSGRMultipleSubParams(t *testing.T) {
	p := NewParser()
	cmds := p.Parse([]byte("\x1b[1;31;4m"))
	require.Len(t, cmds, 3)
	assert.Equal(t, SgrBold, cmds[0].Attr.Kind)
	assert.Equal(t, SgrForeground, cmds[1].Attr.Kind)
	assert.Equal(t, NamedColor(1), cmds[1].Attr.Color)
	assert.Equal(t, SgrUnderline, cmds[2].Attr.Kind)
}

func TestParserSGREmptyMeansReset(t *testing.T) {
	p := NewParser()
	cmds := p.Parse([]byte("\x1b[m"))
	require.Len(t, cmds, 1)
	assert.Equal(t, SgrReset, cmds[0].Attr.Kind)
}

func TestParserSGRUnknownCodeContinues(t *testing.T) {
	p := NewParser()
	cmds := p.Parse([]byte("\x1b[123m"))
	require.Len(t, cmds, 1)
	assert.Equal(t, SgrUnknown, cmds[0].Attr.Kind)
	assert.Equal(t, 123, cmds[0].Attr.Unknown)
}

func TestParserInvalidSequenceRecoversToGround(t *testing.T) {
	p := NewParser()
	// 0x01 is neither a CSI param, intermediate, nor terminator byte.
	cmds := p.Parse([]byte{0x1B, '[', 0x01, 'z'})
	require.Len(t, cmds, 1)
	assert.Equal(t, CommandInvalid, cmds[0].Kind)

	cmds = p.Parse([]byte("ok"))
	require.Len(t, cmds, 1)
	assert.Equal(t, CommandData, cmds[0].Kind)
	assert.Equal(t, "ok", string(cmds[0].Data))
}

func TestParserCursorGColumnOnly(t *testing.T) {
	p := NewParser()
	cmds := p.Parse([]byte("\x1b[10G"))
	require.Len(t, cmds, 1)
	assert.Equal(t, Command{Kind: CommandSetCursorPos, X: 10, HasX: true}, cmds[0])
	assert.False(t, cmds[0].HasY)
}
