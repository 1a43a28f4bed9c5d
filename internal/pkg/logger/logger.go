package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// LogLevel selects the minimum level that gets emitted.
type LogLevel string

const (
	DebugLevel LogLevel = "debug"
	InfoLevel  LogLevel = "info"
	WarnLevel  LogLevel = "warn"
	ErrorLevel LogLevel = "error"
	FatalLevel LogLevel = "fatal"
)

var levels = map[LogLevel]zerolog.Level{
	DebugLevel: zerolog.DebugLevel,
	InfoLevel:  zerolog.InfoLevel,
	WarnLevel:  zerolog.WarnLevel,
	ErrorLevel: zerolog.ErrorLevel,
	FatalLevel: zerolog.FatalLevel,
}

// Config controls how the shared logger writes.
type Config struct {
	Level  LogLevel
	Pretty bool
	Output io.Writer // defaults to os.Stdout
}

var defaultLogger zerolog.Logger

// Configure rebuilds the shared logger. It also replaces the zerolog
// global logger so dependencies logging through log.Logger match.
func Configure(config Config) {
	if config.Output == nil {
		config.Output = os.Stdout
	}

	zerolog.TimeFieldFormat = time.RFC3339

	level, ok := levels[config.Level]
	if !ok {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	var writer io.Writer = config.Output
	if config.Pretty {
		writer = zerolog.ConsoleWriter{Out: config.Output, TimeFormat: time.RFC3339}
	}

	defaultLogger = zerolog.New(writer).With().Timestamp().Logger()
	log.Logger = defaultLogger
}

// Debug starts a debug-level event on the shared logger.
func Debug() *zerolog.Event { return defaultLogger.Debug() }

// Info starts an info-level event on the shared logger.
func Info() *zerolog.Event { return defaultLogger.Info() }

// Warn starts a warn-level event on the shared logger.
func Warn() *zerolog.Event { return defaultLogger.Warn() }

// Error starts an error-level event on the shared logger.
func Error() *zerolog.Event { return defaultLogger.Error() }

// Fatal starts a fatal-level event; the event exits the process when sent.
func Fatal() *zerolog.Event { return defaultLogger.Fatal() }

func init() {
	Configure(Config{Level: InfoLevel, Pretty: true})
}
