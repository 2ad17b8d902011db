package lyrics

import (
	"fmt"
	"time"
)

// Offset is a per-track sync correction added to the raw playback position
// before resolving the active line. It is unbounded; clamping for display is
// a UI concern.
type Offset time.Duration

// DefaultNudgeStep is the increment applied by a single nudge action when no
// step is configured.
const DefaultNudgeStep = 100 * time.Millisecond

// Apply returns the effective position for a raw playback position.
func (o Offset) Apply(raw time.Duration) time.Duration {
	return raw + time.Duration(o)
}

// Nudge returns the offset shifted by delta.
func (o Offset) Nudge(delta time.Duration) Offset {
	return o + Offset(delta)
}

// Milliseconds returns the offset in whole milliseconds.
func (o Offset) Milliseconds() int64 {
	return time.Duration(o).Milliseconds()
}

// IsZero reports whether the offset is unset.
func (o Offset) IsZero() bool {
	return o == 0
}

// String formats the offset for display, always with an explicit sign.
func (o Offset) String() string {
	return fmt.Sprintf("%+dms", o.Milliseconds())
}

// OffsetFromMilliseconds converts a stored millisecond value to an Offset.
func OffsetFromMilliseconds(ms int64) Offset {
	return Offset(time.Duration(ms) * time.Millisecond)
}
