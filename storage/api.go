// Package storage wraps the operating system primitives used to prepare the
// target: partitioning, file-system creation and mounting.
package storage

import (
	"time"

	"github.com/Cloud-Foundations/target-installer/lib/log"
	"github.com/Cloud-Foundations/target-installer/proto/installer"
	"github.com/Cloud-Foundations/target-installer/target"
)

type Params struct {
	BlockWaitTimeout time.Duration // Default: 1 minute.
	BootMountPoint   string
	DryRun           bool
	Logger           log.DebugLogger
	RootMountPoint   string
}

type Manager struct {
	params       Params
	mount        mountFunc
	run          runFunc
	waitForBlock waitFunc
}

type mountFunc func(source, target, fstype string, flags uintptr,
	data string) error

type runFunc func(name string, args ...string) ([]byte, error)

type waitFunc func(pathname string, timeout time.Duration,
	logger log.DebugLogger) (uint, error)

func New(params Params) *Manager {
	return newManager(params)
}

// Format creates a file-system of type fsType on partition, first waiting
// for the partition device node to appear.
func (m *Manager) Format(partition string,
	fsType installer.FileSystemType) error {
	return m.format(partition, fsType)
}

// MakeLabel writes a new, empty MS-DOS partition table on disk. All data on
// the disk are lost.
func (m *Manager) MakeLabel(disk string) error {
	return m.makeLabel(disk)
}

// MakePartition creates a primary partition on disk from start to end, which
// are in parted(8) units (for example "4096s", "258M" or "100%").
func (m *Manager) MakePartition(disk string, fsType installer.FileSystemType,
	start, end string) error {
	return m.makePartition(disk, fsType, start, end)
}

// MountBoot mounts the boot partition of device on the boot mount point.
func (m *Manager) MountBoot(device *target.Device) error {
	return m.mountBoot(device)
}

// MountRoot mounts the root of device on the root mount point. If networkRoot
// is true the root is an NFS server:path specification.
func (m *Manager) MountRoot(device *target.Device, networkRoot bool) error {
	return m.mountRoot(device, networkRoot)
}
