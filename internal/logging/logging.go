// Package logging configures the logrus logger used across the CLI.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// New builds a logger writing to out with the given level and format
// ("json" or "text").
func New(out io.Writer, level, format string) (*logrus.Logger, error) {
	lvl, err := logrus.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}

	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetLevel(lvl)

	switch strings.ToLower(format) {
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	case "", "text":
		logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}

	return logger, nil
}

// Setup builds a logger on stderr, additionally appending to filePath when set.
// A log file that cannot be opened is reported and otherwise ignored.
func Setup(level, format, filePath string) (*logrus.Logger, error) {
	logger, err := New(os.Stderr, level, format)
	if err != nil {
		return nil, err
	}

	if filePath == "" {
		return logger, nil
	}

	// #nosec G304 - log path comes from the operator's own config
	file, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		logger.WithError(err).Error("could not open log file")
		return logger, nil
	}

	logger.SetOutput(io.MultiWriter(os.Stderr, file))

	return logger, nil
}

// Discard returns a logger that drops everything.
func Discard() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	return logger
}
