package log

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New builds the shared logger. The level comes from config when set
// ("debug", "info", "warn", ...); otherwise local environments get
// debug and production gets info. The level is scoped to the returned
// logger, not set globally, so tests with Discard stay unaffected.
func New(environment, level string) zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    environment == "production",
	}

	return zerolog.New(output).
		Level(resolveLevel(environment, level)).
		With().
		Timestamp().
		Str("env", environment).
		Logger()
}

func resolveLevel(environment, level string) zerolog.Level {
	if lvl, err := zerolog.ParseLevel(level); err == nil && level != "" {
		return lvl
	}
	if environment == "production" {
		return zerolog.InfoLevel
	}
	return zerolog.DebugLevel
}

// Discard returns a logger that drops everything. Used by tests.
func Discard() zerolog.Logger {
	return zerolog.New(io.Discard)
}
