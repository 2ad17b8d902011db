package tags

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/dhowden/tag"
)

// Read reads tag metadata from a music file.
func Read(path string) (*Tag, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		// dhowden/tag has issues with some UTF-16 encoded ID3 tags
		if strings.ToLower(filepath.Ext(path)) == ExtMP3 {
			return readMP3WithID3v2Fallback(path)
		}
		return nil, err
	}

	title := m.Title()
	if title == "" {
		title = filepath.Base(path)
	}

	t := &Tag{
		Path:   path,
		Title:  title,
		Artist: m.Artist(),
		Album:  m.Album(),
	}

	// dhowden/tag exposes lyrics for formats it fully parses
	t.Lyrics = m.Lyrics()

	// Format-specific fallbacks for embedded lyrics
	if t.Lyrics == "" {
		switch strings.ToLower(filepath.Ext(path)) {
		case ExtMP3:
			t.Lyrics = readMP3Lyrics(path)
		case ExtFLAC:
			t.Lyrics = readFLACLyrics(path)
		}
	}

	return t, nil
}
