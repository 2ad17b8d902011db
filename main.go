package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"lyrview/internal/app"
	"lyrview/internal/config"
	"lyrview/internal/errmsg"
	"lyrview/internal/lrclib"
	"lyrview/internal/lyrics"
	"lyrview/internal/playback"
	"lyrview/internal/state"
	"lyrview/internal/tags"
)

func main() {
	offsetMs := flag.Int64("offset", 0, "initial sync offset in milliseconds (overrides the saved offset)")
	durationSec := flag.Int("duration", 0, "track duration in seconds (bounds the position clock)")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] [audio-file]\n\nWithout an audio file, the previous session's track is resumed.\n\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() > 1 {
		flag.Usage()
		os.Exit(2)
	}

	if err := run(flag.Arg(0), *offsetMs, *durationSec); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(arg string, offsetMs int64, durationSec int) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("%s", errmsg.Format(errmsg.OpInitialize, err))
	}

	stateMgr, err := state.Open()
	if err != nil {
		return fmt.Errorf("%s", errmsg.Format(errmsg.OpStateOpen, err))
	}
	defer stateMgr.Close()

	path, err := resolveTrackPath(stateMgr, arg)
	if err != nil {
		return err
	}

	track, err := tags.Read(path)
	if err != nil {
		return fmt.Errorf("%s", errmsg.FormatWith(errmsg.OpTagsRead, path, err))
	}

	if offsetMs != 0 {
		stateMgr.SaveOffset(track.Path, lyrics.OffsetFromMilliseconds(offsetMs))
	}

	var client *lrclib.Client
	if !cfg.Lrclib.Disabled {
		client = lrclib.New(cfg.Lrclib.UserAgent)
	}
	source := lyrics.NewSource(client, cfg.LyricsCacheDir())

	clock := playback.NewClock(time.Duration(durationSec) * time.Second)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go clock.Run(ctx, cfg.TickInterval())

	m := app.New(cfg, source, stateMgr, clock, track)
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run program: %w", err)
	}
	return nil
}

// resolveTrackPath picks the track to open: the explicit argument when
// given, otherwise the previous session's track.
func resolveTrackPath(stateMgr *state.Manager, arg string) (string, error) {
	if arg != "" {
		return arg, nil
	}

	last, err := stateMgr.GetLastTrack()
	if err != nil {
		return "", fmt.Errorf("%s", errmsg.Format(errmsg.OpStateOpen, err))
	}
	if last == "" {
		return "", errors.New("no audio file given and no previous session to resume")
	}
	return last, nil
}
