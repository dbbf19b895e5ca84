package log

// noopLogger discards all output; it is the default logger.
type noopLogger struct{}

// Noop returns a logger that discards all output.
func Noop() Logger { return &noopLogger{} }

func (l *noopLogger) Debug(msg string, fields ...Field) {}
func (l *noopLogger) Info(msg string, fields ...Field)  {}
func (l *noopLogger) Warn(msg string, fields ...Field)  {}
func (l *noopLogger) Error(msg string, fields ...Field) {}
