package storage

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/Cloud-Foundations/target-installer/lib/fsutil"
	"github.com/Cloud-Foundations/target-installer/proto/installer"
	"github.com/Cloud-Foundations/target-installer/target"
	"golang.org/x/sys/unix"
)

var partedFileSystemTypes = map[installer.FileSystemType]string{
	installer.FileSystemTypeExt4:    "ext4",
	installer.FileSystemTypeHfsPlus: "hfs+",
	installer.FileSystemTypeVfat:    "fat32",
}

func newManager(params Params) *Manager {
	if params.BlockWaitTimeout <= 0 {
		params.BlockWaitTimeout = time.Minute
	}
	return &Manager{
		params:       params,
		mount:        unix.Mount,
		run:          runCommand,
		waitForBlock: fsutil.WaitForBlockAvailable,
	}
}

func runCommand(name string, args ...string) ([]byte, error) {
	path, err := exec.LookPath(name)
	if err != nil {
		return nil, err
	}
	cmd := exec.Command(path, args...)
	cmd.WaitDelay = time.Second
	return cmd.CombinedOutput()
}

func (m *Manager) doMount(source, mountPoint string,
	fsType installer.FileSystemType) error {
	if m.params.DryRun {
		m.params.Logger.Debugf(0, "dry run: skipping mount: %s on: %s\n",
			source, mountPoint)
		return nil
	}
	if err := os.MkdirAll(mountPoint, fsutil.DirPerms); err != nil {
		return err
	}
	if fsType.IsNetwork() {
		return m.runCommand("mount", "-t", fsType.String(), "-o", "nolock",
			source, mountPoint)
	}
	m.params.Logger.Debugf(0, "mounting: %s on: %s\n", source, mountPoint)
	err := m.mount(source, mountPoint, fsType.String(), 0, "")
	if err != nil {
		return fmt.Errorf("error mounting: %s on: %s: %s",
			source, mountPoint, err)
	}
	return nil
}

func (m *Manager) format(partition string,
	fsType installer.FileSystemType) error {
	if !m.params.DryRun {
		numOpens, err := m.waitForBlock(partition, m.params.BlockWaitTimeout,
			m.params.Logger)
		if err != nil {
			return err
		}
		m.params.Logger.Debugf(1, "%s available after %d opens\n",
			partition, numOpens)
	}
	switch fsType {
	case installer.FileSystemTypeExt4:
		return m.runCommand("mkfs.ext4", "-F", "-q", partition)
	case installer.FileSystemTypeVfat:
		return m.runCommand("mkfs.vfat", partition)
	case installer.FileSystemTypeHfsPlus:
		return m.runCommand("mkfs.hfsplus", partition)
	}
	return fmt.Errorf("cannot format %s as: %s", partition, fsType)
}

func (m *Manager) makeLabel(disk string) error {
	return m.runCommand("parted", "-s", disk, "mklabel", "msdos")
}

func (m *Manager) makePartition(disk string, fsType installer.FileSystemType,
	start, end string) error {
	partedType, ok := partedFileSystemTypes[fsType]
	if !ok {
		return fmt.Errorf("cannot partition for: %s", fsType)
	}
	return m.runCommand("parted", "-s", "-a", "optimal", disk,
		"mkpart", "primary", partedType, start, end)
}

func (m *Manager) mountBoot(device *target.Device) error {
	return m.doMount(device.Boot.Device, m.params.BootMountPoint,
		device.Boot.FileSystemType)
}

func (m *Manager) mountRoot(device *target.Device, networkRoot bool) error {
	if networkRoot {
		return m.doMount(device.Root(), m.params.RootMountPoint,
			installer.FileSystemTypeNfs)
	}
	return m.doMount(device.Root(), m.params.RootMountPoint,
		device.RootFileSystem)
}

func (m *Manager) runCommand(name string, args ...string) error {
	logger := m.params.Logger
	if m.params.DryRun {
		logger.Debugf(0, "dry run: skipping: %s %s\n",
			name, strings.Join(args, " "))
		return nil
	}
	logger.Debugf(0, "running: %s %s\n", name, strings.Join(args, " "))
	if output, err := m.run(name, args...); err != nil {
		return fmt.Errorf("error running: %s: %s, output: %s",
			name, err, output)
	}
	return nil
}
