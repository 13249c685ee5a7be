package eventlog

import (
	"sync"

	"go.uber.org/zap"
)

var (
	logger     *zap.Logger
	loggerOnce sync.Once
)

// Logger returns the eventlog package's diagnostic logger.
// It uses a no-op logger by default.
func Logger() *zap.Logger {
	loggerOnce.Do(func() {
		if logger == nil {
			logger = zap.NewNop()
		}
	})
	return logger
}

// SetLogger configures the eventlog package's diagnostic logger.
// This must be called before any sinks are opened.
func SetLogger(l *zap.Logger) {
	logger = l
}
