package common

import (
	"io"
	"log/slog"
	"os"
)

// LoggingOpts controls the logger created by SetupLogger.
type LoggingOpts struct {
	Debug   bool
	JSON    bool
	Service string
	Version string

	// Writer receives log records. Defaults to os.Stdout.
	Writer io.Writer
}

// SetupLogger returns a logger writing to opts.Writer, in JSON when opts.JSON is set.
func SetupLogger(opts *LoggingOpts) (log *slog.Logger) {
	logLevel := slog.LevelInfo
	if opts.Debug {
		logLevel = slog.LevelDebug
	}

	w := opts.Writer
	if w == nil {
		w = os.Stdout
	}

	handlerOpts := &slog.HandlerOptions{Level: logLevel}
	if opts.JSON {
		log = slog.New(slog.NewJSONHandler(w, handlerOpts))
	} else {
		log = slog.New(slog.NewTextHandler(w, handlerOpts))
	}

	if opts.Service != "" {
		log = log.With("service", opts.Service)
	}
	if opts.Version != "" {
		log = log.With("version", opts.Version)
	}
	return log
}
