// Package log provides a structured logging abstraction used across the
// editor and region codec.
//
// By default the module uses a no-op logger that discards all output.
// Callers configure logging by calling SetLogger with a preferred
// implementation; a zerolog-backed adapter is provided out of the box.
//
// Example:
//
//	zlog := zerolog.New(os.Stderr).With().Timestamp().Logger()
//	log.SetLogger(log.NewZerologAdapter(zlog))
package log

import "sync"

// Field is a structured key-value pair attached to a log line.
type Field struct {
	Key   string
	Value any
}

// F constructs a Field.
func F(key string, value any) Field {
	return Field{Key: key, Value: value}
}

// Logger is the logging interface the editor and region codec depend on.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
}

var (
	mu           sync.RWMutex
	globalLogger Logger = &noopLogger{}
)

// SetLogger installs l as the global logger. A nil argument reinstalls the
// no-op logger.
func SetLogger(l Logger) {
	mu.Lock()
	defer mu.Unlock()
	if l == nil {
		globalLogger = &noopLogger{}
		return
	}
	globalLogger = l
}

// GetLogger returns the currently installed global logger.
func GetLogger() Logger {
	mu.RLock()
	defer mu.RUnlock()
	return globalLogger
}

// Debug logs at debug level via the global logger.
func Debug(msg string, fields ...Field) { GetLogger().Debug(msg, fields...) }

// Info logs at info level via the global logger.
func Info(msg string, fields ...Field) { GetLogger().Info(msg, fields...) }

// Warn logs at warn level via the global logger.
func Warn(msg string, fields ...Field) { GetLogger().Warn(msg, fields...) }

// Error logs at error level via the global logger.
func Error(msg string, fields ...Field) { GetLogger().Error(msg, fields...) }
