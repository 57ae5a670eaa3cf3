package purfecore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalcLineRangesReconstructsBuffer(t *testing.T) {
	cases := []struct {
		name  string
		bytes string
		width int
	}{
		{"empty", "", 5},
		{"single short line", "abc", 5},
		{"exact wrap", "0123456789", 5},
		{"newline terminated", "abc\ndef\n", 5},
		{"mixed wrap and newline", "0123456789\nhi", 5},
		{"width one", "abcd", 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			buf := []byte(tc.bytes)
			ranges := calcLineRanges(buf, tc.width)
			if len(buf) == 0 {
				assert.Empty(t, ranges)
			} else {
				require.NotEmpty(t, ranges)
			}

			var rebuilt []byte
			for i, r := range ranges {
				assert.LessOrEqual(t, r.end-r.start, tc.width, "range %d exceeds width", i)
				rebuilt = append(rebuilt, buf[r.start:r.end]...)
				// A newline sits in the one-byte gap before the next range
				// (or after the last one); a range that ended by wrapping
				// abuts the next range directly.
				nextStart := len(buf)
				if i+1 < len(ranges) {
					nextStart = ranges[i+1].start
				}
				if nextStart > r.end && buf[r.end] == '\n' {
					rebuilt = append(rebuilt, '\n')
				}
			}
			assert.Equal(t, tc.bytes, string(rebuilt))
		})
	}
}

func TestInsertDataWrittenRangeAndCursor(t *testing.T) {
	b := NewBuffer(10, 10)
	res := b.InsertData(CursorPos{X: 0, Y: 0}, []byte("hello"))
	assert.Equal(t, "hello", string(b.bytes[res.WrittenRange.Start:res.WrittenRange.End]))
	assert.Equal(t, CursorPos{X: 5, Y: 0}, res.NewCursorPos)
}

// Scenario 3: overwrite reflow keeps an implicit wrap implicit.
func TestInsertDataOverwriteReflow(t *testing.T) {
	b := NewBuffer(5, 5)
	b.InsertData(CursorPos{X: 0, Y: 0}, []byte("012\n3456789"))
	// "34567" and "89" are one unwrapped run split only by the width
	// bound, so no newline byte separates them; the trailing "\n" is the
	// one padded in when the first write materialized this line.
	assert.Equal(t, "012\n3456789\n", string(b.Data().Visible))

	b.InsertData(CursorPos{X: 2, Y: 1}, []byte("test"))
	assert.Equal(t, "012\n34test9\n", string(b.Data().Visible))
}

// Scenario 4: writing past the end of allocated lines pads with blank
// lines and spaces, never corrupting the width bound.
func TestInsertDataPadsUnallocated(t *testing.T) {
	b := NewBuffer(10, 10)
	res := b.InsertData(CursorPos{X: 4, Y: 5}, []byte("hello world"))
	// Rows 0-4 are blank, each newline-terminated; the text starts on row 5
	// at column 4 and, spanning 15 columns of a 10-wide line, wraps into
	// row 6. The run is newline-terminated, since materialize pads in
	// cursor.Y+1 complete lines before writing into the last one.
	assert.Equal(t, "\n\n\n\n\n    hello world\n", string(b.Data().Visible))
	assert.True(t, res.InsertionRange.Len() > 0)
}

// Scenario 5: once more logical lines exist than height, the oldest
// lines become scrollback.
func TestInsertDataScrollsToScrollback(t *testing.T) {
	b := NewBuffer(10, 3)
	cursor := CursorPos{X: 0, Y: 0}
	write := func(s string) {
		res := b.InsertData(cursor, []byte(s))
		cursor = res.NewCursorPos
	}
	crlf := func() {
		cursor.X = 0
		cursor.Y++
	}

	write("asdf")
	crlf()
	write("xyzw")
	crlf()
	write("1234")
	crlf()
	write("5678")
	crlf()

	data := b.Data()
	assert.Equal(t, "asdf\n", string(data.Scrollback))
	assert.Equal(t, "xyzw\n1234\n5678\n", string(data.Visible))
}

func TestClearForwardsPreservesRowCount(t *testing.T) {
	b := NewBuffer(10, 5)
	b.InsertData(CursorPos{X: 0, Y: 0}, []byte("line1\nline2\nline3"))

	pos, ok := b.ClearForwards(CursorPos{X: 2, Y: 1})
	require.True(t, ok)

	ranges := b.lineRanges()
	assert.Len(t, ranges, 3, "the clear must keep all three rows")
	x, y := projectPos(ranges, pos)
	assert.Equal(t, 2, x)
	assert.Equal(t, 1, y)
}

func TestClearForwardsOutOfRangeReturnsFalse(t *testing.T) {
	b := NewBuffer(10, 5)
	b.InsertData(CursorPos{X: 0, Y: 0}, []byte("only one line"))
	_, ok := b.ClearForwards(CursorPos{X: 0, Y: 9})
	assert.False(t, ok)
}

func TestClearLineForwardsRemovesToNewline(t *testing.T) {
	b := NewBuffer(10, 5)
	b.InsertData(CursorPos{X: 0, Y: 0}, []byte("abcdef\nnext"))
	r, ok := b.ClearLineForwards(CursorPos{X: 2, Y: 0})
	require.True(t, ok)
	// The first write materialized this buffer's own trailing newline, and
	// the clear truncates only up to it, leaving it in place.
	assert.Equal(t, "ab\nnext\n", string(b.bytes))
	assert.Equal(t, 4, r.Len())
}

func TestClearAllEmptiesBuffer(t *testing.T) {
	b := NewBuffer(10, 5)
	b.InsertData(CursorPos{X: 0, Y: 0}, []byte("something"))
	b.ClearAll()
	assert.Empty(t, b.bytes)
}

func TestDeleteForwardsClampsToLineEnd(t *testing.T) {
	b := NewBuffer(10, 5)
	b.InsertData(CursorPos{X: 0, Y: 0}, []byte("abcdef\nnext"))
	r, ok := b.DeleteForwards(CursorPos{X: 1, Y: 0}, 100)
	require.True(t, ok)
	assert.Equal(t, "a\nnext\n", string(b.bytes))
	assert.Equal(t, 5, r.Len())
}

func TestInsertSpacesWithinAvailableRoom(t *testing.T) {
	b := NewBuffer(5, 5)
	b.InsertData(CursorPos{X: 0, Y: 0}, []byte("abc"))
	res := b.InsertSpaces(CursorPos{X: 1, Y: 0}, 2)
	// The first write materialized this line's own trailing newline.
	assert.Equal(t, "a  bc\n", string(b.bytes))
	assert.Equal(t, 2, res.InsertionRange.Len())
}

func TestInsertSpacesClampsRequestToWidth(t *testing.T) {
	b := NewBuffer(5, 5)
	b.InsertData(CursorPos{X: 0, Y: 0}, []byte("abc"))
	res := b.InsertSpaces(CursorPos{X: 1, Y: 0}, 10)
	// n clamps to width (5); 2 spaces fit as a real insertion and the
	// remaining 3 requested overwrite the rest of the line in place,
	// clamped to the 2 bytes actually available ('b' and 'c'). The first
	// write materialized this line's own trailing newline.
	assert.Equal(t, "a    \n", string(b.bytes))
	assert.Equal(t, 2, res.InsertionRange.Len())
}

func TestInsertSpacesOverwritesBeyondWidth(t *testing.T) {
	b := NewBuffer(5, 5)
	b.InsertData(CursorPos{X: 0, Y: 0}, []byte("abcde"))
	res := b.InsertSpaces(CursorPos{X: 0, Y: 0}, 3)
	assert.Equal(t, "   de\n", string(b.bytes))
	assert.Equal(t, 0, res.InsertionRange.Len())
}

// Scenario 8: resizing reflows content and cursor without corrupting
// the underlying bytes.
func TestSetWinSizeReflowsCursor(t *testing.T) {
	b := NewBuffer(5, 5)
	res := b.InsertData(CursorPos{X: 0, Y: 0}, []byte("0123456789"))
	cursor := res.NewCursorPos

	wr := b.SetWinSize(10, 5, cursor)
	require.True(t, wr.Changed)
	// The first write materialized this buffer's own trailing newline.
	assert.Equal(t, "0123456789\n", string(b.Data().Visible))
	// Ten characters exactly fill the new ten-wide line, so the cursor
	// lands at the start of the implicit next row.
	assert.Equal(t, CursorPos{X: 0, Y: 1}, wr.NewCursorPos)
}

func TestSetWinSizeNoopWhenUnchanged(t *testing.T) {
	b := NewBuffer(5, 5)
	wr := b.SetWinSize(5, 5, CursorPos{})
	assert.False(t, wr.Changed)
}
