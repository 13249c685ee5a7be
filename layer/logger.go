package layer

import (
	"sync"

	"go.uber.org/zap"
)

var (
	logger     *zap.Logger
	loggerOnce sync.Once
)

// Logger returns the layer package's diagnostic logger.
// It uses a no-op logger by default.
func Logger() *zap.Logger {
	loggerOnce.Do(func() {
		if logger == nil {
			logger = zap.NewNop()
		}
	})
	return logger
}

// SetLogger configures the layer package's diagnostic logger.
// This must be called before any LayerData is created.
func SetLogger(l *zap.Logger) {
	logger = l
}
