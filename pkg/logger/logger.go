package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New constructs a zerolog.Logger for a service. Development builds log at
// debug level through the console writer.
func New(service, appEnv string) zerolog.Logger {
	return newWithOutput(os.Stdout, service, appEnv)
}

func newWithOutput(out io.Writer, service, appEnv string) zerolog.Logger {
	level := zerolog.InfoLevel
	if appEnv == "development" {
		level = zerolog.DebugLevel
	}

	l := zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		Str("service", service).
		Logger()

	if appEnv == "development" {
		l = l.Output(zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339})
	}
	return l
}

// Nop is used by tests and by components constructed without a logger.
func Nop() zerolog.Logger {
	return zerolog.Nop()
}
