package memlogger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLinesAreAppendedInOrder(t *testing.T) {
	logger := New(Options{DebugLevel: -1})
	logger.Println("Starting installer")
	logger.Printf("Detected device: %s\n", "rbp")
	logger.Debugln(0, "suppressed")
	lines := logger.Lines()
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got: %d: %v", len(lines), lines)
	}
	if !strings.HasSuffix(lines[0], "Starting installer") {
		t.Errorf("line 0: %s", lines[0])
	}
	if !strings.HasSuffix(lines[1], "Detected device: rbp") {
		t.Errorf("line 1: %s", lines[1])
	}
}

func TestMultiLineMessageSplit(t *testing.T) {
	logger := New(Options{})
	logger.Print("Writing /etc/fstab:\nline1\nline2\n")
	if lines := logger.Lines(); len(lines) != 3 {
		t.Errorf("expected 3 lines, got: %d: %v", len(lines), lines)
	}
}

func TestDumpOverwrites(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "boot", "install.log")
	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		t.Fatal(err)
	}
	err := os.WriteFile(filename, []byte(strings.Repeat("stale\n", 100)),
		0644)
	if err != nil {
		t.Fatal(err)
	}
	logger := New(Options{})
	logger.Println("one")
	logger.Println("two")
	if err := logger.Dump(filename); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(filename)
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Contains(data, []byte("stale")) {
		t.Error("dump appended instead of overwriting")
	}
	if n := bytes.Count(data, []byte("\n")); n != 2 {
		t.Errorf("expected 2 lines in dump, got: %d", n)
	}
}

func TestDumpCreatesDirectory(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "missing", "install.log")
	logger := New(Options{})
	logger.Println("line")
	if err := logger.Dump(filename); err != nil {
		t.Fatal(err)
	}
}

func TestWriteHtmlEscapes(t *testing.T) {
	logger := New(Options{})
	logger.Println("<script>")
	buffer := &bytes.Buffer{}
	logger.WriteHtml(buffer)
	if strings.Contains(buffer.String(), "<script>") {
		t.Error("HTML not escaped")
	}
}
