package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/stackb/php-namespace-resolver/pkg/procutil"
)

// Options control construction of the process logger.
type Options struct {
	// Level is a zerolog level name ("debug", "info", ...).  Empty means
	// "warn".
	Level string
	// Pretty selects the human-readable console writer.
	Pretty bool
}

// New builds a zerolog.Logger writing to w.  The NSRESOLVER_LOG_LEVEL and
// NSRESOLVER_DEBUG environment variables take precedence over opts.Level.
func New(w io.Writer, opts Options) zerolog.Logger {
	if w == nil {
		w = os.Stderr
	}
	if opts.Pretty {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}
	return zerolog.New(w).
		Level(levelFromEnv(opts.Level)).
		With().
		Timestamp().
		Logger()
}

func levelFromEnv(name string) zerolog.Level {
	if procutil.LookupBoolEnv(procutil.NSRESOLVER_DEBUG, false) {
		return zerolog.DebugLevel
	}
	if val, ok := procutil.LookupEnv(procutil.NSRESOLVER_LOG_LEVEL); ok {
		name = val
	}
	return ParseLevel(name)
}

// ParseLevel parses a level name, defaulting to warn for empty or unknown
// values.
func ParseLevel(name string) zerolog.Level {
	name = strings.TrimSpace(strings.ToLower(name))
	if name == "" {
		return zerolog.WarnLevel
	}
	level, err := zerolog.ParseLevel(name)
	if err != nil {
		return zerolog.WarnLevel
	}
	return level
}
