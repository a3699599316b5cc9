package bootloader

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Cloud-Foundations/target-installer/lib/constants"
	"github.com/Cloud-Foundations/target-installer/lib/fsutil"
	"github.com/Cloud-Foundations/target-installer/proto/installer"
)

const (
	defaultCmdlineFile = "cmdline.txt"
	mountOptions       = "defaults,noatime"
)

func writeFstabEntry(writer io.Writer,
	source, mountPoint, fileSystemType, flags string,
	dumpFrequency, checkOrder uint) error {
	if flags == "" {
		flags = "defaults"
	}
	_, err := fmt.Fprintf(writer, "%-22s %-10s %-7s %-16s %d %d\n",
		source, mountPoint, fileSystemType, flags, dumpFrequency, checkOrder)
	return err
}

func (c *Configurer) configureCmdline() error {
	cmdlineFile := c.device.CmdlineFile
	if cmdlineFile == "" {
		cmdlineFile = defaultCmdlineFile
	}
	cmdline := c.kernelCmdline()
	filename := filepath.Join(c.params.BootMountPoint, cmdlineFile)
	return c.writeFile(filename, []byte(cmdline+"\n"))
}

func (c *Configurer) configureFstab() error {
	fsTab := &bytes.Buffer{}
	fmt.Fprintln(fsTab, "# Written by target-installer.")
	if c.network != nil {
		err := writeFstabEntry(fsTab, c.device.Root(), "/",
			installer.FileSystemTypeNfs.String(),
			mountOptions, 0, 0)
		if err != nil {
			return err
		}
	} else {
		err := writeFstabEntry(fsTab, c.device.Root(), "/",
			c.device.RootFileSystem.String(), mountOptions, 0, 1)
		if err != nil {
			return err
		}
	}
	err := writeFstabEntry(fsTab, c.device.Boot.Device, "/boot",
		c.device.Boot.FileSystemType.String(), mountOptions, 0, 2)
	if err != nil {
		return err
	}
	filename := filepath.Join(c.params.RootMountPoint, "etc", "fstab")
	return c.writeFile(filename, fsTab.Bytes())
}

func (c *Configurer) copyBootFiles() error {
	sourceDir := filepath.Join(c.params.RootMountPoint, "boot")
	if _, err := os.Stat(sourceDir); err != nil {
		if os.IsNotExist(err) {
			c.params.Logger.Printf("no %s, nothing to copy\n", sourceDir)
			return nil
		}
		return err
	}
	if c.params.DryRun {
		c.params.Logger.Printf("dry run: skipping copy: %s to: %s\n",
			sourceDir, c.params.BootMountPoint)
		return nil
	}
	copyTree := fsutil.CopyTree
	// FAT and HFS+ boot partitions have no symbolic links or devices.
	if c.device.Boot.FileSystemType != installer.FileSystemTypeExt4 {
		copyTree = fsutil.CopyFilesTree
	}
	if err := copyTree(c.params.BootMountPoint, sourceDir); err != nil {
		return err
	}
	return fsutil.EmptyDirectory(sourceDir)
}

func (c *Configurer) kernelCmdline() string {
	var params []string
	if c.network != nil {
		params = append(params,
			"root=/dev/nfs",
			"nfsroot="+c.device.Root()+",v3,tcp",
			"ip="+c.network.KernelIpParameter())
	} else {
		params = append(params,
			"root="+c.device.Root(),
			"rootfstype="+c.device.RootFileSystem.String())
	}
	params = append(params, "rootwait", "quiet",
		constants.DeviceCmdlineVariable+"="+c.device.Id)
	params = append(params, c.device.KernelOptions...)
	return strings.Join(params, " ")
}

func (c *Configurer) writeFile(filename string, data []byte) error {
	c.params.Logger.Printf("writing %s:\n%s", filename, string(data))
	if c.params.DryRun {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(filename), fsutil.DirPerms); err != nil {
		return err
	}
	return fsutil.CopyToFile(filename, fsutil.PublicFilePerms,
		bytes.NewReader(data), uint64(len(data)))
}
