package main

import (
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/nathangurfinkel/cv-app-ng-pdf-generator/cmd/server/config"
)

// ZeroLogger adapts zerolog to the render.Logger interface.
type ZeroLogger struct {
	logger zerolog.Logger
}

// NewLogger creates a zerolog-backed logger from config.
func NewLogger(cfg config.LogConfig) *ZeroLogger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}

	var out io.Writer = os.Stderr
	if cfg.Format == "console" {
		out = zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) {
			w.Out = os.Stderr
		})
	}

	logger := zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		Str("service", "pdf").
		Logger()

	return &ZeroLogger{logger: logger}
}

func (l *ZeroLogger) Debugf(format string, args ...any) {
	l.logger.Debug().Msgf(format, args...)
}

func (l *ZeroLogger) Infof(format string, args ...any) {
	l.logger.Info().Msgf(format, args...)
}

func (l *ZeroLogger) Errorf(format string, args ...any) {
	l.logger.Error().Msgf(format, args...)
}
