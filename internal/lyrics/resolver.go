package lyrics

import (
	"sort"
	"time"
)

// LineAt returns the index of the lyric line active at the given playback
// position: the last line whose timestamp does not exceed pos. Returns -1
// when pos is before the first line or the document is empty.
//
// Lines sharing a timestamp resolve to the last of them, so simultaneous
// lines settle deterministically on the final entry at that instant.
//
// The receiver is not mutated; concurrent readers are safe as long as the
// line slice itself is not being replaced.
func (l *Lyrics) LineAt(pos time.Duration) int {
	// First line strictly after pos; everything before it is active or past.
	n := sort.Search(len(l.Lines), func(i int) bool {
		return l.Lines[i].Time > pos
	})
	return n - 1
}

// LineAtOffset resolves the active line for a raw playback position with a
// sync offset applied.
func (l *Lyrics) LineAtOffset(raw time.Duration, offset Offset) int {
	return l.LineAt(offset.Apply(raw))
}
