//go:build linux
// +build linux

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/Cloud-Foundations/target-installer/lib/log"
)

func listTargetsSubcommand(args []string, logger log.DebugLogger) error {
	if err := listTargets(); err != nil {
		return fmt.Errorf("error listing targets: %s", err)
	}
	return nil
}

func listTargets() error {
	catalog, err := newCatalog()
	if err != nil {
		return err
	}
	for _, device := range catalog.List() {
		fmt.Fprintf(os.Stdout, "%-6s %-24s boot: %-16s root: %-16s %s\n",
			device.Id, device.Name, device.Boot.Device, device.DefaultRoot,
			strings.Join(device.KernelOptions, " "))
	}
	return nil
}
