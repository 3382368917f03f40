package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New returns a JSON logger in production and a console logger elsewhere.
func New(env string) zerolog.Logger {
	if env == "production" {
		return NewWithWriter(env, os.Stdout)
	}
	return NewWithWriter(env, zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
}

func NewWithWriter(env string, w io.Writer) zerolog.Logger {
	level := zerolog.DebugLevel
	if env == "production" {
		level = zerolog.InfoLevel
	}
	return zerolog.New(w).Level(level).With().Timestamp().Str("service", "albino-contracts").Str("env", env).Logger()
}
