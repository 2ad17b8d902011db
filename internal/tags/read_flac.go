package tags

import (
	"github.com/go-flac/flacvorbis"
	goflac "github.com/go-flac/go-flac"
)

// Vorbis comment fields that carry lyrics, in preference order.
var flacLyricsFields = []string{"LYRICS", "UNSYNCEDLYRICS"}

// readFLACLyrics reads the lyrics Vorbis comment from a FLAC file.
func readFLACLyrics(path string) string {
	f, err := goflac.ParseFile(path)
	if err != nil {
		return ""
	}

	for _, meta := range f.Meta {
		if meta.Type != goflac.VorbisComment {
			continue
		}
		cmt, err := flacvorbis.ParseFromMetaDataBlock(*meta)
		if err != nil {
			continue
		}
		for _, field := range flacLyricsFields {
			if values, err := cmt.Get(field); err == nil && len(values) > 0 && values[0] != "" {
				return values[0]
			}
		}
	}

	return ""
}
