package logger

import "context"

// NoopLogger discards all log entries. Useful as a default in libraries and
// in tests that do not assert on log output.
type NoopLogger struct{}

// NewNoopLogger creates a logger that discards everything.
func NewNoopLogger() *NoopLogger {
	return &NoopLogger{}
}

func (l *NoopLogger) Debug(string, ...any) {}
func (l *NoopLogger) Info(string, ...any)  {}
func (l *NoopLogger) Warn(string, ...any)  {}
func (l *NoopLogger) Error(string, ...any) {}

// With returns the logger unchanged.
func (l *NoopLogger) With(...any) Logger { return l }

// WithContext returns the logger unchanged.
func (l *NoopLogger) WithContext(context.Context) Logger { return l }
