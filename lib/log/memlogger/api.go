// Package memlogger implements the install event log: an append-only, in
// memory log which may be dumped (overwriting) to a file at any time.
package memlogger

import (
	"io"
	"sync"
	"time"

	"github.com/Cloud-Foundations/target-installer/lib/log/debuglogger"
)

type Logger struct {
	*debuglogger.Logger
	buffer *lineBuffer
}

type Options struct {
	AlsoLogToStderr bool
	DebugLevel      int16     // Supported range: -1 to 32767.
	StartTime       time.Time // Timestamps are relative to this.
}

type lineBuffer struct {
	alsoLogToStderr bool
	startTime       time.Time
	mutex           sync.Mutex // Protect everything below.
	lines           []string
}

// New will create a *Logger with the specified options.
func New(options Options) *Logger {
	return newLogger(options)
}

// Dump will write all lines logged so far to filename, replacing any previous
// content. The containing directory is created if needed.
func (l *Logger) Dump(filename string) error {
	return l.buffer.dump(filename)
}

// Lines returns a copy of all lines logged so far.
func (l *Logger) Lines() []string {
	return l.buffer.getLines()
}

// WriteHtml will write the log lines as HTML.
func (l *Logger) WriteHtml(writer io.Writer) {
	l.buffer.writeHtml(writer)
}
