// Package logging wraps log/slog with the conventions used across orbitsim:
// level from the ORBITSIM_LOG_LEVEL environment variable, text or JSON
// output, and a per-session run identifier.
package logging

import (
	"crypto/rand"
	"encoding/hex"
	"io"
	"log/slog"
	"os"
	"strings"
)

const LevelEnv = "ORBITSIM_LOG_LEVEL"

type Logger struct {
	*slog.Logger
}

// New returns a logger writing to w. format is "json" or "text".
func New(w io.Writer, format string) *Logger {
	opts := &slog.HandlerOptions{Level: LevelFromEnv()}
	var h slog.Handler
	if strings.EqualFold(format, "json") {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}
	return &Logger{slog.New(h)}
}

// Discard returns a logger that drops everything. The live view uses it
// when no log file is given so output never corrupts the terminal.
func Discard() *Logger {
	return &Logger{slog.New(slog.NewTextHandler(io.Discard, nil))}
}

// OpenFile appends to the file at path and returns the logger with a close
// function for the file.
func OpenFile(path, format string) (*Logger, func() error, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, err
	}
	return New(f, format), f.Close, nil
}

// WithRun tags every record with a run identifier.
func (l *Logger) WithRun(id string) *Logger {
	return &Logger{l.Logger.With("run", id)}
}

// NewRunID returns a short random hex identifier.
func NewRunID() string {
	b := make([]byte, 6)
	rand.Read(b)
	return hex.EncodeToString(b)
}

func LevelFromEnv() slog.Level {
	switch strings.ToUpper(os.Getenv(LevelEnv)) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
