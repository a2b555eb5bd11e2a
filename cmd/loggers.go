package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
)

// newLogger builds the CLI logger. --verbose forces debug output; otherwise
// the configured level applies.
func newLogger(level string) (logger *logrus.Logger) {
	logger = logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: !getVerbose(),
	})

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	if getVerbose() {
		parsed = logrus.DebugLevel
	}
	logger.SetLevel(parsed)

	return logger
}
