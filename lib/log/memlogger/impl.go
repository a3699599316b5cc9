package memlogger

import (
	"bufio"
	"bytes"
	"fmt"
	"html"
	"io"
	stdlog "log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Cloud-Foundations/target-installer/lib/fsutil"
	"github.com/Cloud-Foundations/target-installer/lib/log/debuglogger"
)

func newLogger(options Options) *Logger {
	if options.StartTime.IsZero() {
		options.StartTime = time.Now()
	}
	buffer := &lineBuffer{
		alsoLogToStderr: options.AlsoLogToStderr,
		startTime:       options.StartTime,
	}
	logger := debuglogger.New(stdlog.New(buffer, "", 0))
	logger.SetLevel(options.DebugLevel)
	return &Logger{Logger: logger, buffer: buffer}
}

func (b *lineBuffer) dump(filename string) error {
	data := &bytes.Buffer{}
	for _, line := range b.getLines() {
		data.WriteString(line)
		data.WriteByte('\n')
	}
	if err := os.MkdirAll(filepath.Dir(filename), fsutil.DirPerms); err != nil {
		return err
	}
	return fsutil.CopyToFile(filename, fsutil.PublicFilePerms, data, 0)
}

func (b *lineBuffer) getLines() []string {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	return append([]string(nil), b.lines...)
}

func (b *lineBuffer) Write(p []byte) (int, error) {
	prefix := fmt.Sprintf("[%7.3f] ", time.Since(b.startTime).Seconds())
	text := strings.TrimSuffix(string(p), "\n")
	b.mutex.Lock()
	for _, line := range strings.Split(text, "\n") {
		b.lines = append(b.lines, prefix+line)
	}
	b.mutex.Unlock()
	if b.alsoLogToStderr {
		os.Stderr.Write([]byte(prefix + text + "\n"))
	}
	return len(p), nil
}

func (b *lineBuffer) writeHtml(writer io.Writer) {
	w := bufio.NewWriter(writer)
	defer w.Flush()
	fmt.Fprintln(w, "<pre>")
	for _, line := range b.getLines() {
		fmt.Fprintln(w, html.EscapeString(line))
	}
	fmt.Fprintln(w, "</pre>")
}
