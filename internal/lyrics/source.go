package lyrics

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"lyrview/internal/lrclib"
)

// Source provides lyrics from sidecar files, embedded tags, the local cache,
// or the lrclib API.
type Source struct {
	client   *lrclib.Client
	cacheDir string
}

// NewSource creates a lyrics source. A nil client disables the API lookup;
// an empty cacheDir disables caching.
func NewSource(client *lrclib.Client, cacheDir string) *Source {
	return &Source{
		client:   client,
		cacheDir: cacheDir,
	}
}

// TrackInfo contains the information needed to fetch lyrics.
type TrackInfo struct {
	FilePath string // Path to audio file (for sidecar .lrc lookup)
	Artist   string
	Title    string
	Album    string
	Duration time.Duration // 0 when unknown
	Embedded string        // Lyrics text embedded in the file's tags, if any
}

// FetchResult contains the result of a lyrics fetch.
type FetchResult struct {
	Lyrics *Lyrics
	Source string // "sidecar", "embedded", "cache", "api", or "not_found"
	Err    error
}

// Fetch retrieves lyrics for a track using the priority order:
// 1. Sidecar .lrc file (same directory as audio file)
// 2. Lyrics embedded in the file's own tags
// 3. Cached .lrc file
// 4. lrclib API (and cache the result)
func (s *Source) Fetch(ctx context.Context, track TrackInfo) FetchResult {
	// 1. Sidecar file
	if track.FilePath != "" {
		sidecar := lrcPathForAudio(track.FilePath)
		if lyr, err := s.loadFromFile(sidecar); err == nil && lyr != nil && len(lyr.Lines) > 0 {
			return FetchResult{Lyrics: lyr, Source: "sidecar"}
		}
	}

	// 2. Embedded tag lyrics. Embedded text may itself be LRC.
	if track.Embedded != "" {
		if lyr := parseEmbedded(track.Embedded); lyr != nil {
			return FetchResult{Lyrics: lyr, Source: "embedded"}
		}
	}

	// Need artist and title for cache/API lookup
	if track.Artist == "" || track.Title == "" {
		return FetchResult{Source: "not_found"}
	}

	// 3. Cache
	cachePath := s.cachePath(track.Artist, track.Title)
	if lyr, err := s.loadFromFile(cachePath); err == nil && lyr != nil && len(lyr.Lines) > 0 {
		return FetchResult{Lyrics: lyr, Source: "cache"}
	}

	// 4. API
	if s.client == nil {
		return FetchResult{Source: "not_found"}
	}
	return s.fetchFromAPI(ctx, track)
}

// parseEmbedded interprets embedded tag lyrics, preferring LRC timestamps
// over plain text.
func parseEmbedded(text string) *Lyrics {
	if timestampRe.MatchString(text) {
		if lyr, err := ParseLRC(strings.NewReader(text)); err == nil && len(lyr.Lines) > 0 {
			return lyr
		}
	}
	if lyr := ParsePlain(text); len(lyr.Lines) > 0 {
		return lyr
	}
	return nil
}

// fetchFromAPI fetches lyrics from the lrclib API, falling back to a search
// when the exact lookup misses.
func (s *Source) fetchFromAPI(ctx context.Context, track TrackInfo) FetchResult {
	result, err := s.client.Lookup(ctx, track.Artist, track.Title, track.Duration)
	if err != nil {
		// ErrNotFound is not a real error, just means no lyrics available
		if errors.Is(err, lrclib.ErrNotFound) {
			return FetchResult{Source: "not_found"}
		}
		return FetchResult{Source: "not_found", Err: err}
	}

	lyr := s.parseLyricsResult(result)
	if lyr == nil || len(lyr.Lines) == 0 {
		return FetchResult{Source: "not_found"}
	}

	// Cache the raw LRC so the next run skips the network
	if result.HasSyncedLyrics() {
		_ = s.saveToCache(track.Artist, track.Title, result.SyncedLyrics)
	}

	return FetchResult{Lyrics: lyr, Source: "api"}
}

// parseLyricsResult parses the API result into a Lyrics struct.
func (s *Source) parseLyricsResult(result *lrclib.LyricsResult) *Lyrics {
	var lyr *Lyrics
	if result.HasSyncedLyrics() {
		var err error
		lyr, err = ParseLRC(strings.NewReader(result.SyncedLyrics))
		if err != nil {
			return nil
		}
	} else if result.HasPlainLyrics() {
		lyr = ParsePlain(result.PlainLyrics)
	}

	if lyr == nil {
		return nil
	}

	// Fill in metadata if missing
	if lyr.Artist == "" {
		lyr.Artist = result.ArtistName
	}
	if lyr.Title == "" {
		lyr.Title = result.TrackName
	}
	if lyr.Album == "" {
		lyr.Album = result.AlbumName
	}

	return lyr
}

// lrcPathForAudio returns the expected .lrc file path for an audio file.
func lrcPathForAudio(audioPath string) string {
	ext := filepath.Ext(audioPath)
	return audioPath[:len(audioPath)-len(ext)] + ".lrc"
}

// loadFromFile loads lyrics from an LRC file.
func (s *Source) loadFromFile(path string) (*Lyrics, error) {
	if path == "" {
		return nil, os.ErrNotExist
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseLRC(f)
}

// cachePath returns the cache file path for a track.
func (s *Source) cachePath(artist, title string) string {
	if s.cacheDir == "" {
		return ""
	}
	return filepath.Join(s.cacheDir, sanitizeFilename(artist), sanitizeFilename(title)+".lrc")
}

// saveToCache saves LRC content to the cache directory.
func (s *Source) saveToCache(artist, title, content string) error {
	path := s.cachePath(artist, title)
	if path == "" {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	return os.WriteFile(path, []byte(content), 0o600)
}

// sanitizeFilename removes or replaces characters that are problematic in filenames.
var invalidFilenameChars = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)

func sanitizeFilename(name string) string {
	name = invalidFilenameChars.ReplaceAllString(name, "_")
	name = strings.Trim(name, " .")
	if len(name) > 100 {
		name = name[:100]
	}
	if name == "" {
		name = "_"
	}
	return name
}
