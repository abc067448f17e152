package logger

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// Config holds logger options
type Config struct {
	Level  string    // trace, debug, info, warn, error
	Format string    // console for human readable output, json otherwise
	Out    io.Writer // defaults to stderr
}

// New builds a structured logger
func New(cfg Config) zerolog.Logger {
	var w io.Writer = os.Stderr
	if cfg.Out != nil {
		w = cfg.Out
	}
	if cfg.Format == "console" {
		w = zerolog.ConsoleWriter{Out: w, NoColor: true}
	}

	return zerolog.New(w).Level(parseLevel(cfg.Level)).With().Timestamp().Logger()
}

func parseLevel(s string) zerolog.Level {
	switch s {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
