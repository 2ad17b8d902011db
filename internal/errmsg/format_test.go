package errmsg

import (
	"errors"
	"testing"
)

func TestFormat(t *testing.T) {
	err := errors.New("connection refused")

	got := Format(OpLyricsFetch, err)
	want := "Failed to fetch lyrics: connection refused"
	if got != want {
		t.Errorf("Format = %q, want %q", got, want)
	}
}

func TestFormat_NilError(t *testing.T) {
	if got := Format(OpTagsRead, nil); got != "" {
		t.Errorf("Format(nil) = %q, want empty", got)
	}
}

func TestFormatWith(t *testing.T) {
	err := errors.New("permission denied")

	got := FormatWith(OpOffsetSave, "/music/track.mp3", err)
	want := "Failed to save sync offset '/music/track.mp3': permission denied"
	if got != want {
		t.Errorf("FormatWith = %q, want %q", got, want)
	}
}

func TestFormatWith_EmptyContext(t *testing.T) {
	err := errors.New("disk full")

	got := FormatWith(OpStateOpen, "", err)
	want := "Failed to open state database: disk full"
	if got != want {
		t.Errorf("FormatWith = %q, want %q", got, want)
	}
}
