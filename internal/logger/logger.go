// internal/logger/logger.go
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Init configures the global logger. Production emits JSON, everything else a colorized console.
func Init(level string, production bool) {
	var out io.Writer = os.Stderr
	if !production {
		// Use ConsoleWriter for human-readable, colorized output in development
		out = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	}
	log.Logger = zerolog.New(out).With().Timestamp().Logger()

	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)

	// Add a hook to include the caller's file and line number
	log.Logger = log.With().Caller().Logger()

	if err != nil {
		log.Warn().Str("level", level).Msg("Unknown log level, falling back to info")
	}
}
