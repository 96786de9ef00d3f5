// Package logger configures the process-wide zerolog logger.
package logger

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logger is the shared application logger. Setup replaces it.
var Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()

// Setup builds the application logger for the given environment and level.
// Production writes JSON lines; every other environment gets a colored
// console writer. An unknown level falls back to info.
func Setup(env, level string) zerolog.Logger {
	var out io.Writer = os.Stderr
	if env != "production" {
		out = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}
	}
	return SetupWithWriter(out, level)
}

// SetupWithWriter is Setup with an explicit destination.
func SetupWithWriter(out io.Writer, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}

	Logger = zerolog.New(out).
		Level(lvl).
		With().
		Timestamp().
		Str("service", "mediadrop").
		Logger()

	log.Logger = Logger
	return Logger
}

// Info starts an info level event.
func Info() *zerolog.Event {
	return Logger.Info()
}

// Error starts an error level event.
func Error() *zerolog.Event {
	return Logger.Error()
}

// Warn starts a warning level event.
func Warn() *zerolog.Event {
	return Logger.Warn()
}

// Debug starts a debug level event.
func Debug() *zerolog.Event {
	return Logger.Debug()
}

// Fatal starts a fatal event; Msg exits the process.
func Fatal() *zerolog.Event {
	return Logger.Fatal()
}
