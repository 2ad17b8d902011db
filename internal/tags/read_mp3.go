package tags

import (
	"path/filepath"

	"github.com/bogem/id3v2/v2"
)

// readMP3Lyrics reads the USLT (unsynchronised lyrics) frame from an MP3.
// Despite the frame name, many taggers store LRC text in it.
func readMP3Lyrics(path string) string {
	id3tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return ""
	}
	defer id3tag.Close()

	return getID3Lyrics(id3tag)
}

// readMP3WithID3v2Fallback reads MP3 metadata using only the id3v2 library.
// Used when dhowden/tag fails (e.g., on some UTF-16 encoded tags).
func readMP3WithID3v2Fallback(path string) (*Tag, error) {
	id3tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return nil, err
	}
	defer id3tag.Close()

	title := id3tag.Title()
	if title == "" {
		title = filepath.Base(path)
	}

	return &Tag{
		Path:   path,
		Title:  title,
		Artist: id3tag.Artist(),
		Album:  id3tag.Album(),
		Lyrics: getID3Lyrics(id3tag),
	}, nil
}

// getID3Lyrics extracts the first USLT frame's lyrics text.
func getID3Lyrics(id3tag *id3v2.Tag) string {
	frames := id3tag.GetFrames(id3tag.CommonID("Unsynchronised lyrics/text transcription"))
	for _, frame := range frames {
		if uslt, ok := frame.(id3v2.UnsynchronisedLyricsFrame); ok {
			if uslt.Lyrics != "" {
				return uslt.Lyrics
			}
		}
	}
	return ""
}
