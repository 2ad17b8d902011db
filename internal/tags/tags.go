// Package tags reads track identity and embedded lyrics from audio files.
package tags

// File extensions handled with format-specific readers.
const (
	ExtMP3  = ".mp3"
	ExtFLAC = ".flac"
	ExtOGG  = ".ogg"
	ExtOPUS = ".opus"
	ExtM4A  = ".m4a"
	ExtMP4  = ".mp4"
)

// Tag holds the metadata lyrview needs from a track: enough identity to key
// lyrics lookups, plus any lyrics text embedded in the file itself.
type Tag struct {
	Path   string
	Title  string
	Artist string
	Album  string

	// Lyrics is raw embedded lyrics text (USLT frame or LYRICS vorbis
	// comment). It may be LRC or plain text; empty when absent.
	Lyrics string
}
