// Package logging sets up the process logger.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

// Setup builds the logger used by every command and installs it as the
// package default.
//
// Level values: "debug", "info", "warn", "error" (default: "info").
// Format values: "text", "json", "logfmt" (default: "text").
func Setup(level, format string) *log.Logger {
	logger := New(os.Stderr, level, format)
	log.SetDefault(logger)
	return logger
}

// New returns a logger writing to w without touching the default.
func New(w io.Writer, level, format string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "wheelgen",
		Level:           parseLevel(level),
	})

	switch strings.ToLower(format) {
	case "json":
		logger.SetFormatter(log.JSONFormatter)
	case "logfmt":
		logger.SetFormatter(log.LogfmtFormatter)
	}

	return logger
}

func parseLevel(level string) log.Level {
	switch strings.ToLower(level) {
	case "debug":
		return log.DebugLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}
