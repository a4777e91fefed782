package pvdata

import "go.uber.org/zap"

// logger is package-wide and defaults to a no-op so importing pvdata
// never forces a logging backend on a caller; a caller that wants
// pvdata's diagnostics calls SetLogger to attach a real one.
var logger = zap.NewNop()

// SetLogger replaces the package logger. Pass nil to restore the
// no-op default.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	logger = l
}
