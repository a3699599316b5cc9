package fsutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Cloud-Foundations/target-installer/lib/log/testlogger"
)

func TestWaitForDeviceNode(t *testing.T) {
	if _, err := os.Stat("/dev/null"); err != nil {
		t.Skip(err)
	}
	numOpens, err := WaitForBlockAvailable("/dev/null", time.Second,
		testlogger.New(t))
	if err != nil {
		t.Fatal(err)
	}
	if numOpens != 1 {
		t.Errorf("expected 1 open, got: %d", numOpens)
	}
}

func TestWaitForRegularFileTimesOut(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "sda1")
	if err := os.WriteFile(filename, nil, PublicFilePerms); err != nil {
		t.Fatal(err)
	}
	_, err := WaitForBlockAvailable(filename, 300*time.Millisecond,
		testlogger.New(t))
	if err == nil {
		t.Fatal("regular file accepted as a device")
	}
	if !strings.Contains(err.Error(), "timed out") {
		t.Errorf("unexpected error: %s", err)
	}
}
