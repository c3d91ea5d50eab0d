package infra

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

func init() {
	// Access logs and usage warnings report latency in milliseconds.
	zerolog.DurationFieldUnit = time.Millisecond
	zerolog.DurationFieldInteger = true
}

// NewLogger builds the logger for appEnv. "development" writes colored
// console output at debug level, "cli" is for the operator commands and only
// reports warnings, and every other environment writes JSON at info.
func NewLogger(appEnv string) zerolog.Logger {
	var out io.Writer = os.Stdout
	level := zerolog.InfoLevel
	switch appEnv {
	case "development":
		level = zerolog.DebugLevel
		out = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	case "cli":
		level = zerolog.WarnLevel
		out = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
	}

	return zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		Str("service", "geniemetrics").
		Str("env", appEnv).
		Logger()
}
