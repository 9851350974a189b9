// Package logger builds the process-wide structured logger. Services and
// middleware receive it through constructor injection; nothing reads the
// slog default.
package logger

import (
	"io"
	"log/slog"
	"os"
)

// Option adjusts the logger construction.
type Option func(*settings)

type settings struct {
	level slog.Level
	out   io.Writer
}

// WithLevel sets the minimum level. The default is info.
func WithLevel(level slog.Level) Option {
	return func(s *settings) { s.level = level }
}

// WithOutput redirects log output, mainly for tests.
func WithOutput(w io.Writer) Option {
	return func(s *settings) { s.out = w }
}

// New returns a JSON logger tagged with the service name so consentry lines
// are filterable in shared log pipelines.
func New(opts ...Option) *slog.Logger {
	s := settings{level: slog.LevelInfo, out: os.Stdout}
	for _, opt := range opts {
		opt(&s)
	}
	handler := slog.NewJSONHandler(s.out, &slog.HandlerOptions{Level: s.level})
	return slog.New(handler).With(slog.String("service", "consentry"))
}
