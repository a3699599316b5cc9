//go:build linux
// +build linux

package main

import (
	"fmt"
	"os"

	"github.com/Cloud-Foundations/target-installer/lib/log"
	"github.com/Cloud-Foundations/target-installer/target"
)

func detectDeviceSubcommand(args []string, logger log.DebugLogger) error {
	if err := detectDevice(logger); err != nil {
		return fmt.Errorf("error detecting device: %s", err)
	}
	return nil
}

func detectDevice(logger log.DebugLogger) error {
	catalog, err := newCatalog()
	if err != nil {
		return err
	}
	deviceId, err := target.NewDetector(*procDirectory,
		logger).DetectDevice()
	if err != nil {
		return err
	}
	device := catalog.Lookup(deviceId)
	if device == nil {
		return fmt.Errorf("unsupported device: %s", deviceId)
	}
	fmt.Fprintf(os.Stdout, "%s (%s): boot: %s (%s), root: %s (%s)\n",
		device.Id, device.Name, device.Boot.Device,
		device.Boot.FileSystemType, device.Root(), device.RootFileSystem)
	return nil
}
