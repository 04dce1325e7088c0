package log

import (
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"
)

const defaultLevel = logrus.InfoLevel

// NewLogger builds the application logger. Output is JSON with nanosecond
// timestamps so wiki edits can be correlated with git commit times. An empty
// level falls back to info.
func NewLogger(level string) (*logrus.Logger, error) {
	parsed := defaultLevel
	if level != "" {
		var err error
		parsed, err = logrus.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
		if err != nil {
			return nil, eris.Wrapf(err, "invalid log level: %s", level)
		}
	}

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339Nano})
	logger.SetLevel(parsed)

	return logger, nil
}
