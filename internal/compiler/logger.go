package compiler

import (
	"go.uber.org/zap"
)

// Logger provides verbose output for pipeline decisions during compilation.
type Logger struct {
	enabled bool
	out     *zap.SugaredLogger
}

// NewLogger creates a new logger instance. A disabled logger discards
// everything.
func NewLogger(enabled bool) *Logger {
	l := &Logger{enabled: enabled, out: zap.NewNop().Sugar()}
	if enabled {
		if z, err := zap.NewDevelopment(); err == nil {
			l.out = z.Sugar()
		}
	}
	return l
}

// SetOutput sets the zap logger messages are written to.
func (l *Logger) SetOutput(z *zap.SugaredLogger) {
	l.out = z
}

// Log prints a formatted message if verbose mode is enabled.
func (l *Logger) Log(format string, args ...interface{}) {
	if l.enabled {
		l.out.Infof(format, args...)
	}
}

// Warn prints a warning whether or not verbose mode is enabled.
func (l *Logger) Warn(format string, args ...interface{}) {
	l.out.Warnf(format, args...)
}

// Section prints a section header if verbose mode is enabled.
func (l *Logger) Section(name string) {
	if l.enabled {
		l.out.Infof("=== %s ===", name)
	}
}

// Enabled returns whether the logger is enabled.
func (l *Logger) Enabled() bool {
	return l.enabled
}
