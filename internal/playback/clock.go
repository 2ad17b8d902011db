// Package playback provides a playback position clock and event
// subscriptions for consumers that follow it.
package playback

import (
	"context"
	"sync"
	"time"
)

// State represents the playback state.
type State int

const (
	StateStopped State = iota
	StatePlaying
	StatePaused
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateStopped:
		return "Stopped"
	case StatePlaying:
		return "Playing"
	case StatePaused:
		return "Paused"
	default:
		return "Unknown"
	}
}

// IsActive returns true if playback is active (playing or paused).
func (s State) IsActive() bool {
	return s == StatePlaying || s == StatePaused
}

// Clock tracks a playback position against the wall clock. It stands in for
// a real player's position stream: the position advances while playing and
// holds while paused, and subscribers receive position ticks at a fixed
// interval.
type Clock struct {
	mu        sync.Mutex
	state     State
	base      time.Duration // position at the last resume or seek
	resumedAt time.Time     // wall time of the last resume
	duration  time.Duration // track length, 0 when unknown
	subs      []*Subscription
}

// NewClock creates a stopped clock. Duration bounds the position when
// non-zero.
func NewClock(duration time.Duration) *Clock {
	return &Clock{duration: duration}
}

// Play starts or resumes the clock.
func (c *Clock) Play() {
	c.mu.Lock()
	if c.state == StatePlaying {
		c.mu.Unlock()
		return
	}
	c.resumedAt = time.Now()
	c.state = StatePlaying
	c.mu.Unlock()

	c.broadcastState(StatePlaying)
}

// Pause freezes the position.
func (c *Clock) Pause() {
	c.mu.Lock()
	if c.state != StatePlaying {
		c.mu.Unlock()
		return
	}
	c.base = c.positionLocked()
	c.state = StatePaused
	c.mu.Unlock()

	c.broadcastState(StatePaused)
}

// Toggle switches between playing and paused. A stopped clock starts
// playing.
func (c *Clock) Toggle() {
	c.mu.Lock()
	playing := c.state == StatePlaying
	c.mu.Unlock()

	if playing {
		c.Pause()
	} else {
		c.Play()
	}
}

// Seek moves the position by delta, clamped to [0, duration]. The playback
// state is preserved.
func (c *Clock) Seek(delta time.Duration) {
	c.mu.Lock()
	pos := c.positionLocked() + delta
	if pos < 0 {
		pos = 0
	}
	if c.duration > 0 && pos > c.duration {
		pos = c.duration
	}
	c.base = pos
	c.resumedAt = time.Now()
	c.mu.Unlock()

	c.broadcastPosition(pos)
}

// Position returns the current playback position.
func (c *Clock) Position() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.positionLocked()
}

// State returns the current playback state.
func (c *Clock) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Duration returns the track length, or 0 when unknown.
func (c *Clock) Duration() time.Duration {
	return c.duration
}

// positionLocked computes the position. Caller holds c.mu.
func (c *Clock) positionLocked() time.Duration {
	pos := c.base
	if c.state == StatePlaying {
		pos += time.Since(c.resumedAt)
	}
	if c.duration > 0 && pos > c.duration {
		pos = c.duration
	}
	return pos
}

// Subscribe registers a new event subscriber.
func (c *Clock) Subscribe() *Subscription {
	sub := newSubscription()
	c.mu.Lock()
	c.subs = append(c.subs, sub)
	c.mu.Unlock()
	return sub
}

// Unsubscribe removes a subscriber and closes its done channel. Repeated
// calls for the same subscription are no-ops.
func (c *Clock) Unsubscribe(sub *Subscription) {
	c.mu.Lock()
	removed := false
	for i, s := range c.subs {
		if s == sub {
			c.subs = append(c.subs[:i], c.subs[i+1:]...)
			removed = true
			break
		}
	}
	c.mu.Unlock()

	if removed {
		sub.close()
	}
}

// Run emits position ticks to subscribers at the given interval while the
// clock is playing. It blocks until ctx is canceled.
func (c *Clock) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.mu.Lock()
			playing := c.state == StatePlaying
			pos := c.positionLocked()
			c.mu.Unlock()
			if playing {
				c.broadcastPosition(pos)
			}
		}
	}
}

func (c *Clock) broadcastPosition(pos time.Duration) {
	c.mu.Lock()
	subs := make([]*Subscription, len(c.subs))
	copy(subs, c.subs)
	c.mu.Unlock()

	for _, sub := range subs {
		sub.sendPosition(pos)
	}
}

func (c *Clock) broadcastState(state State) {
	c.mu.Lock()
	subs := make([]*Subscription, len(c.subs))
	copy(subs, c.subs)
	c.mu.Unlock()

	for _, sub := range subs {
		sub.sendState(StateChange{State: state})
	}
}
