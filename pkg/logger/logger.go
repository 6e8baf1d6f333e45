package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"postmate/internal/domain"

	"github.com/rs/zerolog"
)

// Options controls how log lines are rendered.
type Options struct {
	Level  string // debug, info, warn, error
	Format string // console, json
	Output io.Writer
}

// AppLogger implements the domain.Logger interface on top of zerolog
type AppLogger struct {
	zl zerolog.Logger
}

// New creates a logger from explicit options
func New(opts Options) *AppLogger {
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}
	if !strings.EqualFold(opts.Format, "json") {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	zl := zerolog.New(out).
		Level(parseLogLevel(opts.Level)).
		With().
		Timestamp().
		Logger()

	return &AppLogger{zl: zl}
}

// With returns a child logger that adds the given key/value pairs to every line
func (l *AppLogger) With(fields ...interface{}) domain.Logger {
	return &AppLogger{zl: l.zl.With().Fields(normalizeFields(fields)).Logger()}
}

// Info logs an info message
func (l *AppLogger) Info(msg string, fields ...interface{}) {
	l.zl.Info().Fields(normalizeFields(fields)).Msg(msg)
}

// Error logs an error message
func (l *AppLogger) Error(msg string, err error, fields ...interface{}) {
	l.zl.Error().Err(err).Fields(normalizeFields(fields)).Msg(msg)
}

// Debug logs a debug message
func (l *AppLogger) Debug(msg string, fields ...interface{}) {
	l.zl.Debug().Fields(normalizeFields(fields)).Msg(msg)
}

// Warn logs a warning message
func (l *AppLogger) Warn(msg string, fields ...interface{}) {
	l.zl.Warn().Fields(normalizeFields(fields)).Msg(msg)
}

// normalizeFields turns variadic key/value pairs into a map.
// Non-string keys are formatted; a trailing key without value is kept with "(missing)".
func normalizeFields(fields []interface{}) map[string]interface{} {
	if len(fields) == 0 {
		return nil
	}
	out := make(map[string]interface{}, (len(fields)+1)/2)
	for i := 0; i < len(fields); i += 2 {
		key, ok := fields[i].(string)
		if !ok {
			key = fmt.Sprint(fields[i])
		}
		if i+1 >= len(fields) {
			out[key] = "(missing)"
			break
		}
		if err, isErr := fields[i+1].(error); isErr && err != nil {
			out[key] = err.Error()
			continue
		}
		out[key] = fields[i+1]
	}
	return out
}

// parseLogLevel converts string log level to a zerolog level
func parseLogLevel(levelStr string) zerolog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
