package scene

import "go.uber.org/zap"

var logger = zap.NewNop()

// SetLogger installs the logger used for scene diagnostics. Passing nil
// restores the no-op logger.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	logger = l
}

// L returns the package logger.
func L() *zap.Logger {
	return logger
}
