package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"lyrview/internal/playback"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	subtleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	currentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	offsetStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	var content string
	switch m.status {
	case stateLoading:
		content = m.renderLoading()
	case stateNotFound:
		content = m.renderNotFound()
	case stateError:
		content = m.renderError()
	case stateLoaded:
		content = m.renderLyrics()
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")
	b.WriteString(content)
	b.WriteString("\n\n")
	b.WriteString(subtleStyle.Render(m.buildFooter()))
	return b.String()
}

func (m *Model) renderHeader() string {
	header := m.track.Title
	if m.track.Artist != "" {
		header = m.track.Artist + " - " + header
	}
	return titleStyle.Render(header)
}

func (m *Model) renderLoading() string {
	trackInfo := m.track.Title
	if m.track.Artist != "" {
		trackInfo += " - " + m.track.Artist
	}

	var b strings.Builder
	b.WriteString(m.spin.View())
	b.WriteString(subtleStyle.Render(" Loading lyrics..."))
	b.WriteString("\n\n")
	b.WriteString(subtleStyle.Render(trackInfo))
	return b.String()
}

func (m *Model) renderNotFound() string {
	return subtleStyle.Render("No lyrics found")
}

func (m *Model) renderError() string {
	var b strings.Builder
	b.WriteString(errorStyle.Render("Error loading lyrics"))
	b.WriteString("\n\n")
	b.WriteString(subtleStyle.Render(m.errorMsg))
	return b.String()
}

func (m *Model) renderLyrics() string {
	if m.lyr == nil || len(m.lyr.Lines) == 0 {
		return m.renderNotFound()
	}

	highlight := m.lyr.IsSynced()

	lines := make([]string, len(m.lyr.Lines))
	for i, line := range m.lyr.Lines {
		if highlight && i == m.currentLine {
			lines[i] = currentStyle.Render("▶ " + line.Text)
		} else {
			lines[i] = subtleStyle.Render("  " + line.Text)
		}
	}

	visibleHeight := m.visibleHeight()
	if visibleHeight <= 0 {
		visibleHeight = len(lines)
	}

	start := min(m.scrollOffset, len(lines))
	end := min(start+visibleHeight, len(lines))

	return strings.Join(lines[start:end], "\n")
}

func (m *Model) buildFooter() string {
	var parts []string

	// Playback state and position
	icon := "▶"
	if m.clock.State() == playback.StatePaused {
		icon = "⏸"
	}
	if dur := m.clock.Duration(); dur > 0 {
		parts = append(parts, fmt.Sprintf("%s %s / %s", icon, formatDuration(m.position), formatDuration(dur)))
	} else {
		parts = append(parts, fmt.Sprintf("%s %s", icon, formatDuration(m.position)))
	}

	// Sync offset, only when set
	if off := m.tracker.Offset(); !off.IsZero() {
		parts = append(parts, offsetStyle.Render("offset "+off.String()))
	}

	if m.status == stateLoaded && m.lyr != nil {
		if !m.lyr.IsSynced() {
			parts = append(parts, errorStyle.Render("unsynced"))
		} else if !m.autoScroll {
			parts = append(parts, "c sync")
		}
	}

	parts = append(parts, "+/- offset", "0 reset", "q quit")

	return strings.Join(parts, " · ")
}

// formatDuration formats a duration as mm:ss.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	mins := d / time.Minute
	secs := (d % time.Minute) / time.Second
	return fmt.Sprintf("%d:%02d", mins, secs)
}
