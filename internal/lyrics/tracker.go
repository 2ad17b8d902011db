package lyrics

import "time"

// Tracker resolves the active line across playback ticks, memoizing the last
// (position, offset) pair so that redundant ticks cost nothing and callers
// only trigger scroll animations when the index actually moves.
//
// Tracker is not safe for concurrent use; it belongs to the UI loop.
type Tracker struct {
	lyrics *Lyrics
	offset Offset

	lastPos time.Duration
	lastIdx int
	valid   bool
}

// NewTracker creates a tracker for the given document. A nil document is
// treated as empty.
func NewTracker(l *Lyrics) *Tracker {
	return &Tracker{lyrics: l, lastIdx: -1}
}

// SetLyrics replaces the document (e.g. after a refetch) and invalidates the
// memoized resolution. The next Update re-resolves against the new lines.
func (t *Tracker) SetLyrics(l *Lyrics) {
	t.lyrics = l
	t.lastIdx = -1
	t.valid = false
}

// SetOffset replaces the sync offset and invalidates the memoized resolution.
func (t *Tracker) SetOffset(o Offset) {
	if o == t.offset {
		return
	}
	t.offset = o
	t.valid = false
}

// Offset returns the current sync offset.
func (t *Tracker) Offset() Offset {
	return t.offset
}

// Index returns the most recently resolved index, or -1 before the first
// Update.
func (t *Tracker) Index() int {
	return t.lastIdx
}

// Update resolves the active line for a raw playback position and reports
// whether the index changed since the previous call.
func (t *Tracker) Update(raw time.Duration) (idx int, changed bool) {
	if t.valid && raw == t.lastPos {
		return t.lastIdx, false
	}

	idx = -1
	if t.lyrics != nil {
		idx = t.lyrics.LineAtOffset(raw, t.offset)
	}

	changed = !t.valid || idx != t.lastIdx
	t.lastPos = raw
	t.lastIdx = idx
	t.valid = true
	return idx, changed
}
