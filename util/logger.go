package util

import (
	"io"

	"github.com/sirupsen/logrus"
)

// CreateLogEntry creates a logger with the given prefix field and level. A prefix is useful
// to attribute log output to a particular part of the generation flow.
func CreateLogEntry(prefix string, level logrus.Level, writer io.Writer) *logrus.Entry {
	logger := logrus.New()
	logger.SetLevel(level)

	if writer != nil {
		logger.SetOutput(writer)
	}

	if prefix != "" {
		return logger.WithField("prefix", prefix)
	}

	return logrus.NewEntry(logger)
}

// ParseLogLevel parses the given level name, falling back to Info on unknown names rather
// than failing the whole command over a diagnostics setting.
func ParseLogLevel(levelStr string) logrus.Level {
	level, err := logrus.ParseLevel(levelStr)
	if err != nil {
		return logrus.InfoLevel
	}

	return level
}
