package app

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"lyrview/internal/config"
	"lyrview/internal/lyrics"
	"lyrview/internal/playback"
	"lyrview/internal/state"
	"lyrview/internal/tags"
)

const testTrackPath = "/music/track.mp3"

func newTestModel(t *testing.T) *Model {
	t.Helper()

	stateMgr, err := state.OpenPath(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { stateMgr.Close() })

	m := New(
		&config.Config{},
		lyrics.NewSource(nil, ""),
		stateMgr,
		playback.NewClock(3*time.Minute),
		&tags.Tag{Path: testTrackPath, Title: "Test Title", Artist: "Test Artist"},
	)
	m.width = 80
	m.height = 40
	return m
}

func syncedFetched() fetchedMsg {
	return fetchedMsg{
		TrackPath: testTrackPath,
		Result: lyrics.FetchResult{
			Lyrics: &lyrics.Lyrics{Lines: []lyrics.Line{
				{Time: 0, Text: "Line one"},
				{Time: 5 * time.Second, Text: "Line two"},
				{Time: 10 * time.Second, Text: "Line three"},
			}},
			Source: "sidecar",
		},
	}
}

func sendKey(m *Model, key string) {
	msg := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	if key == " " {
		msg = tea.KeyMsg{Type: tea.KeySpace}
	}
	m.Update(msg)
}

func TestModel_FetchedLoadsLyrics(t *testing.T) {
	m := newTestModel(t)

	m.Update(syncedFetched())

	require.Equal(t, stateLoaded, m.status)
	require.Contains(t, m.View(), "Line one")
}

func TestModel_FetchedIgnoresStaleResults(t *testing.T) {
	m := newTestModel(t)

	stale := syncedFetched()
	stale.TrackPath = "/music/other.mp3"
	m.Update(stale)

	require.Equal(t, stateLoading, m.status)
	require.NotContains(t, m.View(), "Line one")
}

func TestModel_FetchedNotFound(t *testing.T) {
	m := newTestModel(t)

	m.Update(fetchedMsg{
		TrackPath: testTrackPath,
		Result:    lyrics.FetchResult{Source: "not_found"},
	})

	require.Equal(t, stateNotFound, m.status)
	require.Contains(t, m.View(), "No lyrics found")
}

func TestModel_FetchedError(t *testing.T) {
	m := newTestModel(t)

	m.Update(fetchedMsg{
		TrackPath: testTrackPath,
		Result:    lyrics.FetchResult{Source: "not_found", Err: errTest("connection timeout")},
	})

	require.Equal(t, stateError, m.status)
	view := m.View()
	require.Contains(t, view, "Error loading lyrics")
	require.Contains(t, view, "connection timeout")
}

func TestModel_PositionUpdatesCurrentLine(t *testing.T) {
	m := newTestModel(t)
	m.Update(syncedFetched())

	m.Update(positionMsg{Position: 7 * time.Second})

	require.Equal(t, 1, m.currentLine)
}

func TestModel_PositionBeforeFirstLine(t *testing.T) {
	m := newTestModel(t)

	msg := syncedFetched()
	msg.Result.Lyrics.Lines[0].Time = 2 * time.Second
	m.Update(msg)

	m.Update(positionMsg{Position: time.Second})

	require.Equal(t, -1, m.currentLine)
}

func TestModel_NudgeOffsetShiftsHighlight(t *testing.T) {
	m := newTestModel(t)
	m.Update(syncedFetched())
	m.Update(positionMsg{Position: 4900 * time.Millisecond}) // just before line two

	require.Equal(t, 0, m.currentLine)

	// One +100ms nudge pushes the effective position to 5000ms
	sendKey(m, "+")

	require.Equal(t, lyrics.OffsetFromMilliseconds(100), m.tracker.Offset())
	require.Equal(t, 1, m.currentLine)
}

func TestModel_NudgeOffsetPersists(t *testing.T) {
	m := newTestModel(t)
	m.Update(syncedFetched())

	sendKey(m, "-")
	sendKey(m, "-")

	offset, err := m.stateMgr.GetOffset(testTrackPath)
	require.NoError(t, err)
	require.Equal(t, int64(-200), offset.Milliseconds())
}

func TestModel_ResetOffset(t *testing.T) {
	m := newTestModel(t)
	m.Update(syncedFetched())

	sendKey(m, "+")
	sendKey(m, "+")
	sendKey(m, "0")

	require.True(t, m.tracker.Offset().IsZero())

	offset, err := m.stateMgr.GetOffset(testTrackPath)
	require.NoError(t, err)
	require.True(t, offset.IsZero())
}

func TestModel_OffsetShownInFooter(t *testing.T) {
	m := newTestModel(t)
	m.Update(syncedFetched())

	sendKey(m, "+")

	require.Contains(t, m.View(), "offset +100ms")
}

func TestModel_ManualScrollDisablesAutoScroll(t *testing.T) {
	m := newTestModel(t)
	m.Update(syncedFetched())

	require.True(t, m.autoScroll)
	sendKey(m, "j")
	require.False(t, m.autoScroll)

	sendKey(m, "c")
	require.True(t, m.autoScroll)
}

func TestModel_UnsyncedLyrics(t *testing.T) {
	m := newTestModel(t)

	m.Update(fetchedMsg{
		TrackPath: testTrackPath,
		Result: lyrics.FetchResult{
			Lyrics: lyrics.ParsePlain("Plain one\nPlain two"),
			Source: "embedded",
		},
	})

	require.Equal(t, stateLoaded, m.status)
	require.False(t, m.autoScroll)
	require.Equal(t, -1, m.currentLine)

	// Position ticks leave the highlight alone
	m.Update(positionMsg{Position: time.Minute})
	require.Equal(t, -1, m.currentLine)

	require.Contains(t, m.View(), "unsynced")
}

func TestModel_DocumentOffsetSeedsTracker(t *testing.T) {
	m := newTestModel(t)

	msg := syncedFetched()
	msg.Result.Lyrics.Offset = lyrics.OffsetFromMilliseconds(300)
	m.Update(msg)

	require.Equal(t, lyrics.OffsetFromMilliseconds(300), m.tracker.Offset())
}

func TestModel_SavedOffsetWinsOverDocumentOffset(t *testing.T) {
	m := newTestModel(t)
	m.tracker.SetOffset(lyrics.OffsetFromMilliseconds(-100))

	msg := syncedFetched()
	msg.Result.Lyrics.Offset = lyrics.OffsetFromMilliseconds(300)
	m.Update(msg)

	require.Equal(t, lyrics.OffsetFromMilliseconds(-100), m.tracker.Offset())
}

func TestModel_RepeatedQuitKeys(t *testing.T) {
	m := newTestModel(t)

	// A second quit key can arrive before the program processes QuitMsg
	require.NotPanics(t, func() {
		sendKey(m, "q")
		sendKey(m, "q")
	})
}

func TestModel_ViewEmptyWithoutSize(t *testing.T) {
	m := newTestModel(t)
	m.width = 0
	m.height = 0

	require.Empty(t, m.View())
}

func TestModel_ViewShowsHeader(t *testing.T) {
	m := newTestModel(t)

	require.Contains(t, m.View(), "Test Artist - Test Title")
}

func TestModel_HighlightMarksActiveLine(t *testing.T) {
	m := newTestModel(t)
	m.Update(syncedFetched())
	m.Update(positionMsg{Position: 12 * time.Second})

	view := m.View()
	// Only the active line carries the marker
	require.Equal(t, 1, strings.Count(view, "▶ Line"), "view: %s", view)
	require.Contains(t, view, "▶ Line three")
}

type errTest string

func (e errTest) Error() string { return string(e) }
