// Package logging configures the process-wide zerolog logger.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup sets the global level and output. DEV gets a human readable console
// writer; every other environment logs JSON to stderr.
func Setup(env, level string) zerolog.Logger {
	return SetupWriter(os.Stderr, env, level)
}

func SetupWriter(w io.Writer, env, level string) zerolog.Logger {
	zerolog.SetGlobalLevel(ParseLevel(level))
	zerolog.TimeFieldFormat = time.RFC3339

	out := w
	if strings.EqualFold(env, "DEV") {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}

	log.Logger = zerolog.New(out).With().Timestamp().Logger()
	return log.Logger
}

// ParseLevel maps a level name to a zerolog level, defaulting to info.
func ParseLevel(level string) zerolog.Level {
	l, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || l == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return l
}
