package cmd

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// newLogger builds the console logger every command shares. Unknown level
// names fall back to warn rather than failing the run. Dry runs raise the
// floor to info so the per-file "would process" lines are always visible.
func newLogger(level string, dryRun bool) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.WarnLevel
	}
	if dryRun && lvl > zerolog.InfoLevel {
		lvl = zerolog.InfoLevel
	}
	out := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "02/01/2006 15:04:05"}
	return zerolog.New(out).Level(lvl).With().Timestamp().Logger()
}
