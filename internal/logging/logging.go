package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// New builds a JSON logger writing one object per line to w.
// Every entry carries a "ts" field formatted as RFC3339Nano in loc.
// Unknown or empty levels fall back to info.
func New(w io.Writer, level string, loc *time.Location) zerolog.Logger {
	if loc == nil {
		loc = time.UTC
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(w).
		Level(lvl).
		Hook(zerolog.HookFunc(func(e *zerolog.Event, _ zerolog.Level, _ string) {
			e.Str("ts", time.Now().In(loc).Format(time.RFC3339Nano))
		}))
}

// Setup installs a stdout logger as the process-wide zerolog logger.
func Setup(level string, loc *time.Location) zerolog.Logger {
	logger := New(os.Stdout, level, loc)
	log.Logger = logger
	return logger
}
