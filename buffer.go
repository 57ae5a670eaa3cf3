package purfecore

// Buffer is a single contiguous byte sequence modeling a width x height
// grid plus scrollback. No cell grid is stored: logical line boundaries
// are recomputed from the bytes on demand (memoized below) the way the
// teacher's Buffer memoizes dirty state rather than recomputing layout
// eagerly on every mutation.
type Buffer struct {
	bytes  []byte
	width  int
	height int

	lineCacheValid bool
	lineCache      []lineRange
}

// lineRange is a half-open [start, end) byte range for one logical line.
type lineRange struct {
	start, end int
}

// NewBuffer returns an empty buffer of the given dimensions.
func NewBuffer(width, height int) *Buffer {
	return &Buffer{width: width, height: height}
}

// Dimensions returns the buffer's width and height in cells.
func (b *Buffer) Dimensions() (width, height int) {
	return b.width, b.height
}

func (b *Buffer) invalidateLineCache() {
	b.lineCacheValid = false
	b.lineCache = nil
}

// calcLineRanges is the single source of truth for any cursor-to-buffer
// mapping. It walks bytes, starting a new range after each newline
// (the newline itself belongs to neither range) and forcing a new range
// whenever a run of non-newline bytes reaches width.
func calcLineRanges(buf []byte, width int) []lineRange {
	var ranges []lineRange
	start := 0
	count := 0
	for i := 0; i < len(buf); i++ {
		if buf[i] == '\n' {
			ranges = append(ranges, lineRange{start, i})
			start = i + 1
			count = 0
			continue
		}
		count++
		if width > 0 && count == width {
			ranges = append(ranges, lineRange{start, i + 1})
			start = i + 1
			count = 0
		}
	}
	if len(buf) > start {
		ranges = append(ranges, lineRange{start, len(buf)})
	}
	return ranges
}

// lineRanges returns the memoized calc_line_ranges result, recomputing
// it if the last mutation invalidated the cache.
func (b *Buffer) lineRanges() []lineRange {
	if !b.lineCacheValid {
		b.lineCache = calcLineRanges(b.bytes, b.width)
		b.lineCacheValid = true
	}
	return b.lineCache
}

// visibleWindow returns the index into lineRanges() at which the visible
// grid starts, i.e. the number of logical lines currently in scrollback.
func visibleWindow(ranges []lineRange, height int) int {
	if len(ranges) > height {
		return len(ranges) - height
	}
	return 0
}

// projectPos maps an absolute buffer position to an (x, absolute-y)
// coordinate via the supplied ranges. A position that lands exactly at
// a wrap boundary (no newline consumed) is attributed to the following
// range, per the cursor normalization rule in the data model invariants.
func projectPos(ranges []lineRange, pos int) (x, absY int) {
	for i, r := range ranges {
		if pos < r.end {
			return pos - r.start, i
		}
		if pos == r.end {
			if i+1 < len(ranges) && ranges[i+1].start == r.end {
				continue
			}
			return pos - r.start, i
		}
	}
	last := ranges[len(ranges)-1]
	return pos - last.start, len(ranges) - 1
}

// nextNewlineOrEnd scans forward from `from` for the next '\n' byte,
// returning the buffer length if none is found. This is the "unwrapped
// line end" from the glossary.
func (b *Buffer) nextNewlineOrEnd(from int) int {
	for i := from; i < len(b.bytes); i++ {
		if b.bytes[i] == '\n' {
			return i
		}
	}
	return len(b.bytes)
}

// Range is a half-open [Start, End) byte range reported back to the
// emulator so it can drive the format tracker.
type Range struct {
	Start, End int
}

// Len returns the number of bytes r spans.
func (r Range) Len() int { return r.End - r.Start }

// InsertResult is the response from InsertData.
type InsertResult struct {
	WrittenRange   Range
	InsertionRange Range
	NewCursorPos   CursorPos
}

// materialize runs the padding algorithm shared by InsertData and
// SetWinSize: it ensures at least cursor.Y+1 logical lines exist, pads
// a short line out to accommodate dataLen bytes at the cursor, and
// returns the absolute write position plus the combined inserted span.
func (b *Buffer) materialize(cursor CursorPos, dataLen int) (writeStart int, insertion Range) {
	ranges := b.lineRanges()
	offset := visibleWindow(ranges, b.height)
	visibleLen := len(ranges) - offset

	insertionStart := -1
	numInserted := 0
	if cursor.Y+1 > visibleLen {
		need := cursor.Y + 1 - visibleLen
		insertionStart = len(b.bytes)
		numInserted += need
		b.bytes = append(b.bytes, make([]byte, need)...)
		for i := len(b.bytes) - need; i < len(b.bytes); i++ {
			b.bytes[i] = '\n'
		}
		b.invalidateLineCache()
		ranges = b.lineRanges()
	}

	var target lineRange
	if insertionStart >= 0 {
		target = ranges[len(ranges)-1]
	} else {
		target = ranges[offset+cursor.Y]
	}

	desiredStart := target.start + cursor.X
	unwrappedEnd := b.nextNewlineOrEnd(target.start)
	desiredEnd := desiredStart + dataLen

	if desiredEnd > unwrappedEnd {
		padLen := desiredEnd - unwrappedEnd
		padded := make([]byte, padLen)
		for i := range padded {
			padded[i] = ' '
		}
		b.bytes = append(b.bytes[:unwrappedEnd:unwrappedEnd], append(padded, b.bytes[unwrappedEnd:]...)...)
		b.invalidateLineCache()
		if insertionStart < 0 {
			insertionStart = unwrappedEnd
		}
		numInserted += padLen
	}

	if insertionStart >= 0 {
		insertion = Range{insertionStart, insertionStart + numInserted}
	}
	return desiredStart, insertion
}

// InsertData writes data at cursor, padding the buffer as needed, and
// reports the written range, any inserted padding range, and the
// reprojected cursor position after the write.
func (b *Buffer) InsertData(cursor CursorPos, data []byte) InsertResult {
	writeStart, insertion := b.materialize(cursor, len(data))
	copy(b.bytes[writeStart:writeStart+len(data)], data)
	b.invalidateLineCache()

	ranges := b.lineRanges()
	offset := visibleWindow(ranges, b.height)
	x, absY := projectPos(ranges, writeStart+len(data))

	return InsertResult{
		WrittenRange:   Range{writeStart, writeStart + len(data)},
		InsertionRange: insertion,
		NewCursorPos:   CursorPos{X: x, Y: absY - offset},
	}
}

// ClearForwards truncates the buffer at cursor's position, then appends
// one newline per visible row from the cursor's row down, so the number
// of logical lines (and with it the on-screen row count and the cursor's
// projection) is preserved. Returns the truncation position, or ok=false
// if cursor's row does not exist in the visible window.
func (b *Buffer) ClearForwards(cursor CursorPos) (pos int, ok bool) {
	ranges := b.lineRanges()
	offset := visibleWindow(ranges, b.height)
	visibleLen := len(ranges) - offset
	if cursor.Y < 0 || cursor.Y >= visibleLen {
		return 0, false
	}
	target := ranges[offset+cursor.Y]
	pos = target.start + cursor.X

	// The bytes before pos hold offset+cursor.Y complete lines plus the
	// cursor's (possibly empty) partial row; the first newline closes that
	// row and each further one adds an empty row.
	rows := visibleLen - cursor.Y

	newBuf := append([]byte{}, b.bytes[:pos]...)
	for i := 0; i < rows; i++ {
		newBuf = append(newBuf, '\n')
	}
	b.bytes = newBuf
	b.invalidateLineCache()
	return pos, true
}

// ClearLineForwards deletes bytes from cursor's position to the end of
// that logical line (excluding any trailing newline) and returns the
// removed range.
func (b *Buffer) ClearLineForwards(cursor CursorPos) (r Range, ok bool) {
	ranges := b.lineRanges()
	offset := visibleWindow(ranges, b.height)
	visibleLen := len(ranges) - offset
	if cursor.Y < 0 || cursor.Y >= visibleLen {
		return Range{}, false
	}
	target := ranges[offset+cursor.Y]
	pos := target.start + cursor.X
	if pos >= target.end {
		return Range{}, false
	}
	b.bytes = append(b.bytes[:pos:pos], b.bytes[target.end:]...)
	b.invalidateLineCache()
	return Range{pos, target.end}, true
}

// ClearAll empties the buffer.
func (b *Buffer) ClearAll() {
	b.bytes = nil
	b.invalidateLineCache()
}

// DeleteForwards removes up to n bytes (clamped to the end of cursor's
// logical line) starting at cursor. If the line had no terminating
// newline, one is spliced in at the line's new end so a later wrapped
// run cannot bleed back into this line.
func (b *Buffer) DeleteForwards(cursor CursorPos, n int) (r Range, ok bool) {
	ranges := b.lineRanges()
	offset := visibleWindow(ranges, b.height)
	visibleLen := len(ranges) - offset
	if cursor.Y < 0 || cursor.Y >= visibleLen {
		return Range{}, false
	}
	target := ranges[offset+cursor.Y]
	pos := target.start + cursor.X
	if pos >= target.end {
		return Range{}, false
	}
	removeEnd := pos + n
	if removeEnd > target.end {
		removeEnd = target.end
	}
	removed := removeEnd - pos

	hasNewline := target.end < len(b.bytes) && b.bytes[target.end] == '\n'
	newBuf := append(b.bytes[:pos:pos], b.bytes[removeEnd:]...)
	if !hasNewline {
		lineEnd := target.end - removed
		newBuf = append(newBuf[:lineEnd:lineEnd], append([]byte{'\n'}, newBuf[lineEnd:]...)...)
	}
	b.bytes = newBuf
	b.invalidateLineCache()
	return Range{pos, removeEnd}, true
}

// InsertSpacesResult is the response from InsertSpaces.
type InsertSpacesResult struct {
	InsertionRange Range
}

// InsertSpaces inserts up to n spaces before cursor, clamped so the
// logical line never exceeds width. Spaces beyond that clamp instead
// overwrite existing bytes in place so global positions stay stable.
// The cursor does not move.
func (b *Buffer) InsertSpaces(cursor CursorPos, n int) InsertSpacesResult {
	if n > b.width {
		n = b.width
	}
	if n <= 0 {
		return InsertSpacesResult{}
	}
	ranges := b.lineRanges()
	offset := visibleWindow(ranges, b.height)
	visibleLen := len(ranges) - offset
	if cursor.Y < 0 || cursor.Y >= visibleLen {
		return InsertSpacesResult{}
	}
	target := ranges[offset+cursor.Y]
	pos := target.start + cursor.X
	if pos > target.end {
		pos = target.end
	}
	lineLen := target.end - target.start

	insert := b.width - lineLen
	if insert > n {
		insert = n
	}
	if insert < 0 {
		insert = 0
	}
	overwrite := n - insert

	rem := target.end - pos
	if overwrite > rem {
		overwrite = rem
	}
	for i := 0; i < overwrite; i++ {
		b.bytes[pos+i] = ' '
	}

	if insert == 0 {
		return InsertSpacesResult{}
	}
	padded := make([]byte, insert)
	for i := range padded {
		padded[i] = ' '
	}
	b.bytes = append(b.bytes[:pos:pos], append(padded, b.bytes[pos:]...)...)
	b.invalidateLineCache()
	return InsertSpacesResult{InsertionRange: Range{pos, pos + insert}}
}

// WinSizeResult is the response from SetWinSize.
type WinSizeResult struct {
	Changed        bool
	InsertionRange Range
	NewCursorPos   CursorPos
}

// SetWinSize rewrites the buffer's dimensions and re-projects cursor
// through the new geometry. If dimensions are unchanged, it is a no-op.
func (b *Buffer) SetWinSize(width, height int, cursor CursorPos) WinSizeResult {
	if width == b.width && height == b.height {
		return WinSizeResult{}
	}
	pos, insertion := b.materialize(cursor, 0)

	b.width, b.height = width, height
	b.invalidateLineCache()

	ranges := b.lineRanges()
	offset := visibleWindow(ranges, b.height)
	x, absY := projectPos(ranges, pos)

	return WinSizeResult{
		Changed:        true,
		InsertionRange: insertion,
		NewCursorPos:   CursorPos{X: x, Y: absY - offset},
	}
}

// Data splits the buffer at the first visible line's start, returning
// the scrollback and visible byte slices. Callers must not retain these
// slices across the next mutation.
func (b *Buffer) Data() TerminalData[[]byte] {
	ranges := b.lineRanges()
	offset := visibleWindow(ranges, b.height)
	split := 0
	if offset < len(ranges) {
		split = ranges[offset].start
	} else if len(b.bytes) > 0 {
		split = len(b.bytes)
	}
	return TerminalData[[]byte]{Scrollback: b.bytes[:split], Visible: b.bytes[split:]}
}

// splitPos returns the scrollback/visible byte boundary used to align
// FormatTracker.Split with Data's own split.
func (b *Buffer) splitPos() int {
	ranges := b.lineRanges()
	offset := visibleWindow(ranges, b.height)
	if offset < len(ranges) {
		return ranges[offset].start
	}
	return len(b.bytes)
}

// TerminalData is a view split between scrollback and the visible grid.
type TerminalData[T any] struct {
	Scrollback T
	Visible    T
}
