package logger

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

type ctxKey struct{}

var consoleOut io.Writer = os.Stdout

var log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).
	With().Timestamp().Logger()

// InitLogging configures the global logger. Console output always goes to
// stdout; when filePath is set, JSON lines are appended to that file too.
func InitLogging(filePath string, level ...string) {
	var w io.Writer = zerolog.ConsoleWriter{Out: consoleOut, TimeFormat: time.RFC3339}
	var fileErr error
	if filePath != "" {
		f, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fileErr = err
		} else {
			w = zerolog.MultiLevelWriter(w, f)
		}
	}

	lvl := zerolog.InfoLevel
	if len(level) > 0 && level[0] != "" {
		if parsed, err := zerolog.ParseLevel(level[0]); err == nil {
			lvl = parsed
		}
	}
	log = zerolog.New(w).Level(lvl).With().Timestamp().Logger()
	if fileErr != nil {
		log.Warn().Err(fileErr).Str("path", filePath).Msg("log file unavailable, logging to console only")
	}
}

// Get returns the configured logger for packages that take a zerolog.Logger.
func Get() zerolog.Logger {
	return log
}

// WithRequestID attaches a request id that every log line written with ctx carries.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

func DebugLog(ctx context.Context, format string, args ...interface{}) {
	event(ctx, log.Debug()).Msgf(format, args...)
}

func InfoLog(ctx context.Context, format string, args ...interface{}) {
	event(ctx, log.Info()).Msgf(format, args...)
}

func WarnLog(ctx context.Context, format string, args ...interface{}) {
	event(ctx, log.Warn()).Msgf(format, args...)
}

func ErrorLog(ctx context.Context, format string, args ...interface{}) {
	event(ctx, log.Error()).Msgf(format, args...)
}

func event(ctx context.Context, e *zerolog.Event) *zerolog.Event {
	if ctx == nil {
		return e
	}
	if id, ok := ctx.Value(ctxKey{}).(string); ok && id != "" {
		e = e.Str("request_id", id)
	}
	return e
}
