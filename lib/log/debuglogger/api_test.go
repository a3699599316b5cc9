package debuglogger

import (
	"bytes"
	stdlog "log"
	"strings"
	"testing"
)

type levelTestcase struct {
	level    int16
	expected []string
}

func TestLevels(t *testing.T) {
	testcases := []levelTestcase{
		{-1, []string{"plain"}},
		{0, []string{"plain", "debug0"}},
		{1, []string{"plain", "debug0", "debug1"}},
	}
	for _, testcase := range testcases {
		buffer := &bytes.Buffer{}
		logger := New(stdlog.New(buffer, "", 0))
		logger.SetLevel(testcase.level)
		logger.Println("plain")
		logger.Debugln(0, "debug0")
		logger.Debugf(1, "debug%d\n", 1)
		lines := strings.Fields(buffer.String())
		if strings.Join(lines, ",") != strings.Join(testcase.expected, ",") {
			t.Errorf("level: %d, expected: %v, got: %v",
				testcase.level, testcase.expected, lines)
		}
	}
}

func TestSetLevelClamps(t *testing.T) {
	logger := New(stdlog.New(&bytes.Buffer{}, "", 0))
	logger.SetLevel(-20)
	if level := logger.GetLevel(); level != -1 {
		t.Errorf("expected level -1, got: %d", level)
	}
}
