package purfecore

import "sort"

// FormatTracker owns a sorted, non-overlapping vector of FormatTag
// ranges covering [0, InfiniteEnd) with exactly one sentinel-ended tag.
// It never blocks and holds no resources beyond its own slice.
type FormatTracker struct {
	tags []FormatTag
}

// NewFormatTracker returns a tracker holding a single default-attributes
// tag spanning [0, ∞).
func NewFormatTracker() *FormatTracker {
	ft := &FormatTracker{}
	ft.Reset()
	return ft
}

// Reset replaces the whole vector with a single default tag [0, ∞).
func (ft *FormatTracker) Reset() {
	tag := defaultTagAttrs()
	tag.Start, tag.End = 0, InfiniteEnd
	ft.tags = []FormatTag{tag}
}

// Tags returns a cloned snapshot suitable for downstream rendering; the
// copy is independent of the tracker and stays valid after later mutations.
func (ft *FormatTracker) Tags() []FormatTag {
	out := make([]FormatTag, len(ft.tags))
	copy(out, ft.tags)
	return out
}

// --- Overwrite ---

// PushRange applies attrs to [s, e), splitting or removing any existing
// tags that overlap the range, then inserts the new tag.
func (ft *FormatTracker) PushRange(attrs FormatTag, s, e int) {
	result := make([]FormatTag, 0, len(ft.tags)+2)
	for _, tag := range ft.tags {
		switch {
		case tag.End <= s:
			result = append(result, tag)
		case tag.Start >= e:
			result = append(result, tag)
		case s <= tag.Start && e >= tag.End:
			// New range fully contains the existing tag: drop it.
		case tag.Start < s && tag.End > e:
			// Existing tag fully contains the new range: split it.
			result = append(result, tag.withRange(tag.Start, s))
			result = append(result, tag.withRange(e, tag.End))
		case tag.Start < s:
			// Overlap at the tail of the existing tag.
			if s > tag.Start {
				result = append(result, tag.withRange(tag.Start, s))
			}
		default:
			// Overlap at the head of the existing tag.
			if e < tag.End {
				result = append(result, tag.withRange(e, tag.End))
			}
		}
	}
	newTag := attrs
	newTag.Start, newTag.End = s, e
	result = append(result, newTag)
	sort.Slice(result, func(i, j int) bool { return result[i].Start < result[j].Start })
	ft.tags = result
}

// --- Shift on insert ---

// PushRangeAdjustment shifts tags right to reflect an insertion of
// length e-s at position s. The ∞ end is preserved literally.
func (ft *FormatTracker) PushRangeAdjustment(s, e int) {
	l := e - s
	if l == 0 {
		return
	}
	for i := range ft.tags {
		t := &ft.tags[i]
		if t.End <= s {
			continue
		}
		if t.Start > s {
			t.Start += l
		}
		if t.End != InfiniteEnd {
			t.End += l
		}
	}
}

// --- Collapse on delete ---

// DeleteRange collapses tags to reflect a deletion of [s, e) from the
// buffer. The ∞ end is preserved literally.
func (ft *FormatTracker) DeleteRange(s, e int) {
	l := e - s
	if l <= 0 {
		return
	}
	result := make([]FormatTag, 0, len(ft.tags))
	for _, tag := range ft.tags {
		switch {
		case tag.End <= s:
			result = append(result, tag)
		case tag.Start >= e:
			shifted := tag
			shifted.Start -= l
			if shifted.End != InfiniteEnd {
				shifted.End -= l
			}
			result = append(result, shifted)
		case s <= tag.Start && e >= tag.End:
			// Deleted range fully contains (or exactly equals) the tag:
			// remove it.
		case tag.Start <= s && tag.End >= e:
			// Tag contains the deleted range (sharing at most one endpoint
			// with it): shrink its end.
			shrunk := tag
			if shrunk.End != InfiniteEnd {
				shrunk.End -= l
			}
			result = append(result, shrunk)
		case tag.Start < s:
			// Deleted range starts inside the tag and ends at or after it:
			// shrink its end to s.
			result = append(result, tag.withRange(tag.Start, s))
		default:
			// Deleted range starts before the tag (or at its start) and
			// ends inside it: the start becomes s, the end shrinks by l.
			newEnd := tag.End
			if newEnd != InfiniteEnd {
				newEnd -= l
			}
			if newEnd > s {
				result = append(result, tag.withRange(s, newEnd))
			}
		}
	}
	ft.tags = result
}

// --- Scrollback split ---

// Split partitions the tags at byte position `split` (the length of the
// scrollback portion of the buffer) into scrollback and visible halves,
// aligned with how Buffer splits its bytes.
func (ft *FormatTracker) Split(split int) (scrollback, visible []FormatTag) {
	for _, tag := range ft.tags {
		if tag.Start < split {
			end := tag.End
			if end > split {
				end = split
			}
			scrollback = append(scrollback, tag.withRange(tag.Start, end))
		}
		if tag.End > split {
			start := tag.Start - split
			if start < 0 {
				start = 0
			}
			end := tag.End
			if end != InfiniteEnd {
				end -= split
			}
			visible = append(visible, tag.withRange(start, end))
		}
	}
	return scrollback, visible
}
