package wire

import "go.uber.org/zap"

// logger defaults to a no-op so importing wire never forces a logging
// backend on a caller. Used only for Debug-level diagnostics (e.g.
// TypeStore tag churn); BadWire itself is always a returned error,
// never a log line.
var logger = zap.NewNop()

// SetLogger replaces the package logger. Pass nil to restore the
// no-op default.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	logger = l
}

func zapField(key string, v int) zap.Field { return zap.Int(key, v) }
