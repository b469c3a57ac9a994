// Package logger wires a context-carried zerolog.Logger, following the
// teacher's utils/logger package.
package logger

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type ctxKey struct{}

var loggerKey = ctxKey{}

// Initialize sets up the global logger at Info level with a console writer.
func Initialize() {
	InitializeWithLevel(zerolog.InfoLevel)
}

// InitializeWithLevel sets up the global logger at the given level.
func InitializeWithLevel(level zerolog.Level) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(level)
	consoleWriter := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: "15:04:05",
	}
	log.Logger = zerolog.New(consoleWriter).
		With().
		Timestamp().
		Caller().
		Logger()
}

// FromContext extracts the logger carried on ctx, or the global logger.
func FromContext(ctx context.Context) zerolog.Logger {
	if ctx == nil {
		return log.Logger
	}
	if logger, ok := ctx.Value(loggerKey).(zerolog.Logger); ok {
		return logger
	}
	return log.Logger
}

// WithContext attaches logger to ctx.
func WithContext(ctx context.Context, logger zerolog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// WithUserID returns a context and logger both tagged with userID, the way
// the teacher tags job and request IDs.
func WithUserID(ctx context.Context, userID string) (context.Context, zerolog.Logger) {
	l := FromContext(ctx).With().Str("user_id", userID).Logger()
	return WithContext(ctx, l), l
}
