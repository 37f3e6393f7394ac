package logging

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// New builds the process logger. Production output is JSON, anything else is text.
func New(level, environment string) *logrus.Logger {
	return NewWithOutput(os.Stdout, level, environment)
}

func NewWithOutput(out io.Writer, level, environment string) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(out)
	if environment == "production" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	logger.SetLevel(parsed)
	return logger
}
