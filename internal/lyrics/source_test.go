package lyrics

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

const sampleLRC = `[00:01.00]Hello
[00:02.00]World`

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestSource_FetchSidecar(t *testing.T) {
	dir := t.TempDir()
	audioPath := filepath.Join(dir, "track.mp3")
	writeFile(t, filepath.Join(dir, "track.lrc"), sampleLRC)

	s := NewSource(nil, "")
	result := s.Fetch(context.Background(), TrackInfo{FilePath: audioPath})

	if result.Source != "sidecar" {
		t.Fatalf("Source = %q, want %q", result.Source, "sidecar")
	}
	if len(result.Lyrics.Lines) != 2 {
		t.Errorf("len(Lines) = %d, want 2", len(result.Lyrics.Lines))
	}
}

func TestSource_FetchEmbeddedLRC(t *testing.T) {
	s := NewSource(nil, "")
	result := s.Fetch(context.Background(), TrackInfo{
		FilePath: "/nonexistent/track.mp3",
		Embedded: sampleLRC,
	})

	if result.Source != "embedded" {
		t.Fatalf("Source = %q, want %q", result.Source, "embedded")
	}
	if !result.Lyrics.IsSynced() {
		t.Error("embedded LRC should parse as synced")
	}
}

func TestSource_FetchEmbeddedPlain(t *testing.T) {
	s := NewSource(nil, "")
	result := s.Fetch(context.Background(), TrackInfo{
		Embedded: "Plain lyrics\nWithout timestamps",
	})

	if result.Source != "embedded" {
		t.Fatalf("Source = %q, want %q", result.Source, "embedded")
	}
	if result.Lyrics.IsSynced() {
		t.Error("plain embedded lyrics should not be synced")
	}
	if len(result.Lyrics.Lines) != 2 {
		t.Errorf("len(Lines) = %d, want 2", len(result.Lyrics.Lines))
	}
}

func TestSource_FetchCache(t *testing.T) {
	cacheDir := t.TempDir()
	s := NewSource(nil, cacheDir)

	// Prime the cache the way fetchFromAPI would
	if err := s.saveToCache("Artist", "Title", sampleLRC); err != nil {
		t.Fatalf("saveToCache: %v", err)
	}

	result := s.Fetch(context.Background(), TrackInfo{Artist: "Artist", Title: "Title"})
	if result.Source != "cache" {
		t.Fatalf("Source = %q, want %q", result.Source, "cache")
	}
}

func TestSource_SidecarBeatsCache(t *testing.T) {
	dir := t.TempDir()
	audioPath := filepath.Join(dir, "track.flac")
	writeFile(t, filepath.Join(dir, "track.lrc"), "[00:05.00]Sidecar line")

	cacheDir := t.TempDir()
	s := NewSource(nil, cacheDir)
	if err := s.saveToCache("Artist", "Title", sampleLRC); err != nil {
		t.Fatalf("saveToCache: %v", err)
	}

	result := s.Fetch(context.Background(), TrackInfo{
		FilePath: audioPath,
		Artist:   "Artist",
		Title:    "Title",
	})
	if result.Source != "sidecar" {
		t.Fatalf("Source = %q, want %q", result.Source, "sidecar")
	}
	if result.Lyrics.Lines[0].Text != "Sidecar line" {
		t.Errorf("Lines[0].Text = %q, want %q", result.Lyrics.Lines[0].Text, "Sidecar line")
	}
}

func TestSource_FetchNotFound(t *testing.T) {
	// No sidecar, no embedded, no cache, nil client: nothing to find
	s := NewSource(nil, "")
	result := s.Fetch(context.Background(), TrackInfo{Artist: "Nobody", Title: "Nothing"})

	if result.Source != "not_found" {
		t.Fatalf("Source = %q, want %q", result.Source, "not_found")
	}
	if result.Err != nil {
		t.Errorf("Err = %v, want nil", result.Err)
	}
}

func TestSource_FetchMissingIdentity(t *testing.T) {
	s := NewSource(nil, t.TempDir())
	result := s.Fetch(context.Background(), TrackInfo{FilePath: "/nonexistent/track.mp3"})

	if result.Source != "not_found" {
		t.Fatalf("Source = %q, want %q", result.Source, "not_found")
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"AC/DC", "AC_DC"},
		{"What?", "What_"},
		{"  trimmed  ", "trimmed"},
		{"", "_"},
	}

	for _, tt := range tests {
		if got := sanitizeFilename(tt.input); got != tt.want {
			t.Errorf("sanitizeFilename(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
