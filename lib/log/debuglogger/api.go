package debuglogger

import (
	"github.com/Cloud-Foundations/target-installer/lib/log"
)

type Logger struct {
	level int16
	log.Logger
}

// New will create a Logger from an existing log.Logger, with the debug level
// set to -1 (debug messages are suppressed).
func New(logger log.Logger) *Logger {
	return &Logger{level: -1, Logger: logger}
}

// Upgrade will return logger if it is already a log.DebugLogger, else it will
// wrap it with New.
func Upgrade(logger log.Logger) log.DebugLogger {
	if l, ok := logger.(log.DebugLogger); ok {
		return l
	}
	return New(logger)
}

func (l *Logger) Debug(level uint8, v ...interface{}) {
	if l.level >= int16(level) {
		l.Print(v...)
	}
}

func (l *Logger) Debugf(level uint8, format string, v ...interface{}) {
	if l.level >= int16(level) {
		l.Printf(format, v...)
	}
}

func (l *Logger) Debugln(level uint8, v ...interface{}) {
	if l.level >= int16(level) {
		l.Println(v...)
	}
}

// GetLevel returns the current debug level.
func (l *Logger) GetLevel() int16 {
	return l.level
}

// SetLevel sets the debug level. A negative level suppresses all debug
// messages.
func (l *Logger) SetLevel(maxLevel int16) {
	if maxLevel < -1 {
		maxLevel = -1
	}
	l.level = maxLevel
}
