package fsutil

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Cloud-Foundations/target-installer/lib/log"
	"github.com/fsnotify/fsnotify"
)

func isDevice(pathname string) (bool, error) {
	// Need to open rather than just test for inode existance, because an
	// Open(2) is what may be needed to trigger dynamic device node creation.
	file, err := os.Open(pathname)
	if err != nil {
		return false, nil
	}
	fi, err := file.Stat()
	file.Close()
	if err != nil {
		return false, err
	}
	return fi.Mode()&os.ModeDevice != 0, nil
}

func waitForBlockAvailable(pathname string, timeout time.Duration,
	logger log.DebugLogger) (uint, error) {
	if timeout < 0 || timeout > time.Hour {
		timeout = time.Hour
	}
	var numOpens uint
	numOpens++
	if ok, err := isDevice(pathname); err != nil || ok {
		return numOpens, err
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return numOpens, err
	}
	defer watcher.Close()
	if err := watcher.Add(filepath.Dir(pathname)); err != nil {
		return numOpens, err
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	// Events can be missed between the first check and adding the watch, so
	// also poll occasionally.
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return numOpens, fmt.Errorf("watcher closed waiting for: %s",
					pathname)
			}
			if filepath.Clean(event.Name) != filepath.Clean(pathname) {
				continue
			}
			logger.Debugf(2, "fsnotify: %s\n", event)
		case err, ok := <-watcher.Errors:
			if ok {
				logger.Printf("error with watcher: %s\n", err)
			}
			continue
		case <-ticker.C:
		case <-timer.C:
			return numOpens,
				fmt.Errorf("timed out waiting for partition, %d opens: %s",
					numOpens, pathname)
		}
		numOpens++
		if ok, err := isDevice(pathname); err != nil || ok {
			return numOpens, err
		}
	}
}
