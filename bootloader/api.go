// Package bootloader makes an extracted root file-system bootable: it moves
// the kernel and firmware into the boot partition, writes the kernel
// command-line and writes /etc/fstab.
package bootloader

import (
	"github.com/Cloud-Foundations/target-installer/lib/log"
	"github.com/Cloud-Foundations/target-installer/network"
	"github.com/Cloud-Foundations/target-installer/target"
)

type Params struct {
	BootMountPoint string
	DryRun         bool
	Logger         log.DebugLogger
	RootMountPoint string
}

type Configurer struct {
	device  target.Device
	network *network.Config // nil for a local root.
	params  Params
}

// New creates a Configurer for device. If networkConfig is not nil the root
// is a network root; a copy is kept so later changes are not seen.
func New(device target.Device, networkConfig *network.Config,
	params Params) *Configurer {
	c := &Configurer{device: device, params: params}
	if networkConfig != nil {
		config := *networkConfig
		c.network = &config
	}
	return c
}

// CopyBootFiles copies the contents of /boot in the root file-system into the
// boot partition and then empties /boot.
func (c *Configurer) CopyBootFiles() error {
	return c.copyBootFiles()
}

// ConfigureCmdline writes the kernel command-line file in the boot partition.
func (c *Configurer) ConfigureCmdline() error {
	return c.configureCmdline()
}

// ConfigureFstab writes /etc/fstab in the root file-system.
func (c *Configurer) ConfigureFstab() error {
	return c.configureFstab()
}

// KernelCmdline returns the kernel command-line that ConfigureCmdline writes.
func (c *Configurer) KernelCmdline() string {
	return c.kernelCmdline()
}
