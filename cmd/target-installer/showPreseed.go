//go:build linux
// +build linux

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Cloud-Foundations/target-installer/lib/constants"
	"github.com/Cloud-Foundations/target-installer/lib/log"
	"github.com/Cloud-Foundations/target-installer/preseed"
)

func showPreseedSubcommand(args []string, logger log.DebugLogger) error {
	filename := filepath.Join(*bootMountPoint, constants.PreseedFile)
	if len(args) > 0 {
		filename = args[0]
	}
	config := preseed.NewFileLoader(filename, logger).LoadPreseed()
	if !config.IsLoaded() {
		return fmt.Errorf("no preseed loaded from: %s", filename)
	}
	for _, key := range config.Keys() {
		fmt.Fprintf(os.Stdout, "%s=%s\n", key, config.GetStringValue(key))
	}
	return nil
}
