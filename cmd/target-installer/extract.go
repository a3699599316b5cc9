//go:build linux
// +build linux

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Cloud-Foundations/target-installer/extract"
	"github.com/Cloud-Foundations/target-installer/lib/format"
	"github.com/Cloud-Foundations/target-installer/lib/log"
)

func extractSubcommand(args []string, logger log.DebugLogger) error {
	if err := extractImage(args[0], args[1], logger); err != nil {
		return fmt.Errorf("error extracting: %s", err)
	}
	return nil
}

func extractImage(archive, rootDir string, logger log.DebugLogger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt,
		syscall.SIGTERM)
	defer stop()
	startTime := time.Now()
	extractor := extract.New(extract.Params{
		ExternalXz: *externalXz,
		Logger:     logger,
	})
	var lastErr error
	for event := range extractor.Start(ctx, archive, rootDir) {
		switch event.Kind {
		case extract.EventProgress:
			logger.Debugf(0, "%d%%\n", event.Percent)
		case extract.EventError:
			lastErr = event.Err
		case extract.EventFinished:
			logger.Printf("extracted: %s in %s\n",
				archive, format.Duration(time.Since(startTime)))
		}
	}
	return lastErr
}
