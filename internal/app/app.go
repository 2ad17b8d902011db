// Package app implements the lyrview terminal UI.
package app

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"lyrview/internal/config"
	"lyrview/internal/lyrics"
	"lyrview/internal/playback"
	"lyrview/internal/state"
	"lyrview/internal/tags"
)

const (
	fetchTimeout = 10 * time.Second
	seekStep     = 5 * time.Second
)

// viewState represents what the main area is showing.
type viewState int

const (
	stateLoading viewState = iota
	stateLoaded
	stateNotFound
	stateError
)

// Model is the root bubbletea model.
type Model struct {
	cfg      *config.Config
	source   *lyrics.Source
	stateMgr *state.Manager
	clock    *playback.Clock
	sub      *playback.Subscription

	track   *tags.Tag
	lyr     *lyrics.Lyrics
	tracker *lyrics.Tracker

	status   viewState
	errorMsg string
	spin     spinner.Model

	position     time.Duration
	currentLine  int
	scrollOffset int
	autoScroll   bool

	width  int
	height int
}

// New creates the root model for a track. The persisted offset is restored
// before the first resolution so highlighting starts correct.
func New(cfg *config.Config, source *lyrics.Source, stateMgr *state.Manager, clock *playback.Clock, track *tags.Tag) *Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	tracker := lyrics.NewTracker(nil)
	if offset, err := stateMgr.GetOffset(track.Path); err == nil {
		tracker.SetOffset(offset)
	}

	return &Model{
		cfg:         cfg,
		source:      source,
		stateMgr:    stateMgr,
		clock:       clock,
		sub:         clock.Subscribe(),
		track:       track,
		tracker:     tracker,
		status:      stateLoading,
		spin:        sp,
		currentLine: -1,
		autoScroll:  true,
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	_ = m.stateMgr.SaveLastTrack(m.track.Path)
	m.clock.Play()
	return tea.Batch(
		m.spin.Tick,
		m.fetchLyricsCmd(),
		m.waitPositionCmd(),
		m.waitStateCmd(),
	)
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.autoScroll {
			m.centerCurrentLine()
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case fetchedMsg:
		return m.handleFetched(msg)

	case positionMsg:
		m.setPosition(msg.Position)
		return m, m.waitPositionCmd()

	case stateMsg:
		return m, m.waitStateCmd()

	case subClosedMsg:
		return m, nil

	case spinner.TickMsg:
		if m.status != stateLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc", "ctrl+c":
		m.clock.Unsubscribe(m.sub)
		return m, tea.Quit

	case " ":
		m.clock.Toggle()
		return m, nil

	case "left", "shift+left":
		m.clock.Seek(-seekStep)
		m.setPosition(m.clock.Position())
		return m, nil

	case "right", "shift+right":
		m.clock.Seek(seekStep)
		m.setPosition(m.clock.Position())
		return m, nil

	case "+", "=":
		m.nudgeOffset(m.cfg.NudgeStep())
		return m, nil

	case "-", "_":
		m.nudgeOffset(-m.cfg.NudgeStep())
		return m, nil

	case "0":
		m.resetOffset()
		return m, nil

	case "j", "down":
		m.autoScroll = false
		if m.scrollOffset < m.maxScroll() {
			m.scrollOffset++
		}
		return m, nil

	case "k", "up":
		m.autoScroll = false
		if m.scrollOffset > 0 {
			m.scrollOffset--
		}
		return m, nil

	case "g":
		m.autoScroll = false
		m.scrollOffset = 0
		return m, nil

	case "G":
		m.autoScroll = false
		m.scrollOffset = m.maxScroll()
		return m, nil

	case "c":
		// Re-enable auto-scroll and center on current line
		m.autoScroll = true
		m.centerCurrentLine()
		return m, nil
	}

	return m, nil
}

func (m *Model) handleFetched(msg fetchedMsg) (tea.Model, tea.Cmd) {
	// Ignore stale results from a previous track
	if msg.TrackPath != m.track.Path {
		return m, nil
	}
	if msg.Result.Err != nil {
		m.status = stateError
		m.errorMsg = msg.Result.Err.Error()
		return m, nil
	}
	if msg.Result.Lyrics == nil || len(msg.Result.Lyrics.Lines) == 0 {
		m.status = stateNotFound
		return m, nil
	}

	m.lyr = msg.Result.Lyrics
	m.status = stateLoaded
	if !m.lyr.IsSynced() {
		// Plain text: no line to follow, reader scrolls manually
		m.autoScroll = false
		m.currentLine = -1
		return m, nil
	}
	m.tracker.SetLyrics(m.lyr)
	// The document's [offset:] tag seeds the sync offset; a saved or
	// user-set offset wins over it
	if m.tracker.Offset().IsZero() && !m.lyr.Offset.IsZero() {
		m.tracker.SetOffset(m.lyr.Offset)
	}
	m.currentLine, _ = m.tracker.Update(m.position)
	m.centerCurrentLine()
	return m, nil
}

// setPosition advances the position and re-resolves the active line,
// scrolling only when the index moved.
func (m *Model) setPosition(pos time.Duration) {
	m.position = pos
	if m.lyr == nil || !m.lyr.IsSynced() {
		return
	}
	idx, changed := m.tracker.Update(pos)
	if changed {
		m.currentLine = idx
		if m.autoScroll {
			m.centerCurrentLine()
		}
	}
}

// nudgeOffset shifts the sync offset, persists it, and re-resolves
// immediately so the highlight reacts without waiting for the next tick.
func (m *Model) nudgeOffset(delta time.Duration) {
	m.applyOffset(m.tracker.Offset().Nudge(delta))
}

func (m *Model) resetOffset() {
	m.applyOffset(0)
}

func (m *Model) applyOffset(offset lyrics.Offset) {
	m.tracker.SetOffset(offset)
	m.stateMgr.SaveOffset(m.track.Path, offset)

	idx, changed := m.tracker.Update(m.position)
	if changed {
		m.currentLine = idx
		if m.autoScroll {
			m.centerCurrentLine()
		}
	}
}

// centerCurrentLine adjusts scroll to center the current line.
func (m *Model) centerCurrentLine() {
	if m.currentLine < 0 || m.lyr == nil {
		return
	}
	m.scrollOffset = m.currentLine - m.visibleHeight()/2
	m.scrollOffset = max(0, min(m.scrollOffset, m.maxScroll()))
}

func (m *Model) visibleHeight() int {
	// Leave room for header, footer and margins
	return max(m.height-6, 1)
}

func (m *Model) maxScroll() int {
	if m.lyr == nil {
		return 0
	}
	total := len(m.lyr.Lines)
	visible := m.visibleHeight()
	if total <= visible {
		return 0
	}
	return total - visible
}

func (m *Model) fetchLyricsCmd() tea.Cmd {
	// Capture track fields to identify stale results
	track := *m.track
	source := m.source
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		result := source.Fetch(ctx, lyrics.TrackInfo{
			FilePath: track.Path,
			Artist:   track.Artist,
			Title:    track.Title,
			Album:    track.Album,
			Embedded: track.Lyrics,
		})
		return fetchedMsg{TrackPath: track.Path, Result: result}
	}
}

func (m *Model) waitPositionCmd() tea.Cmd {
	sub := m.sub
	return func() tea.Msg {
		select {
		case e := <-sub.PositionChanged:
			return positionMsg(e)
		case <-sub.Done:
			return subClosedMsg{}
		}
	}
}

func (m *Model) waitStateCmd() tea.Cmd {
	sub := m.sub
	return func() tea.Msg {
		select {
		case e := <-sub.StateChanged:
			return stateMsg(e)
		case <-sub.Done:
			return subClosedMsg{}
		}
	}
}
