package playback

import "time"

const eventBufferSize = 16

// PositionChange is emitted on every position tick while playing and after
// seeks.
type PositionChange struct {
	Position time.Duration
}

// StateChange is emitted when the playback state changes.
type StateChange struct {
	State State
}

// Subscription provides event channels for a subscriber.
type Subscription struct {
	PositionChanged <-chan PositionChange
	StateChanged    <-chan StateChange
	Done            <-chan struct{}

	// Internal write channels
	positionCh chan PositionChange
	stateCh    chan StateChange
	doneCh     chan struct{}
}

// newSubscription creates a new subscription with buffered channels.
func newSubscription() *Subscription {
	s := &Subscription{
		positionCh: make(chan PositionChange, eventBufferSize),
		stateCh:    make(chan StateChange, eventBufferSize),
		doneCh:     make(chan struct{}),
	}
	s.PositionChanged = s.positionCh
	s.StateChanged = s.stateCh
	s.Done = s.doneCh
	return s
}

// close signals subscribers to stop by closing doneCh.
func (s *Subscription) close() {
	close(s.doneCh)
}

// sendPosition sends a position event (non-blocking).
func (s *Subscription) sendPosition(pos time.Duration) {
	select {
	case s.positionCh <- PositionChange{Position: pos}:
	default:
		// Drop if buffer full
	}
}

// sendState sends a state change event (non-blocking).
func (s *Subscription) sendState(e StateChange) {
	select {
	case s.stateCh <- e:
	default:
	}
}
