package logging

import (
	"github.com/sirupsen/logrus"

	"github.com/tmarchal/minisearch/internal/config"
)

// New creates a configured logger instance with a service field attached to
// every entry.
func New(serviceName string) *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetLevel(config.GetLogLevel())
	logger = logger.WithField("service", serviceName).Logger
	return logger
}
