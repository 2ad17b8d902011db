package app

import (
	"lyrview/internal/lyrics"
	"lyrview/internal/playback"
)

// fetchedMsg is sent when a lyrics fetch completes.
type fetchedMsg struct {
	TrackPath string
	Result    lyrics.FetchResult
}

// positionMsg carries a playback position tick.
type positionMsg playback.PositionChange

// stateMsg carries a playback state change.
type stateMsg playback.StateChange

// subClosedMsg is sent when the playback subscription is torn down.
type subClosedMsg struct{}
