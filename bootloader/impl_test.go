package bootloader

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Cloud-Foundations/target-installer/lib/log/testlogger"
	"github.com/Cloud-Foundations/target-installer/network"
	"github.com/Cloud-Foundations/target-installer/target"
)

func makeConfigurer(t *testing.T, device *target.Device,
	networkConfig *network.Config) (*Configurer, string, string) {
	bootDir := t.TempDir()
	rootDir := t.TempDir()
	c := New(*device, networkConfig, Params{
		BootMountPoint: bootDir,
		Logger:         testlogger.New(t),
		RootMountPoint: rootDir,
	})
	return c, bootDir, rootDir
}

// configure runs the steps in the order the installer runs them.
func configure(t *testing.T, c *Configurer) {
	if err := c.CopyBootFiles(); err != nil {
		t.Fatalf("error copying boot files: %s", err)
	}
	if err := c.ConfigureCmdline(); err != nil {
		t.Fatalf("error writing kernel command-line: %s", err)
	}
	if err := c.ConfigureFstab(); err != nil {
		t.Fatalf("error writing fstab: %s", err)
	}
}

func readFile(t *testing.T, filename string) string {
	data, err := os.ReadFile(filename)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func TestLocalRoot(t *testing.T) {
	device := target.NewCatalog().Lookup("rbp")
	c, bootDir, rootDir := makeConfigurer(t, device, nil)
	kernelDir := filepath.Join(rootDir, "boot", "overlays")
	if err := os.MkdirAll(kernelDir, 0755); err != nil {
		t.Fatal(err)
	}
	err := os.WriteFile(filepath.Join(rootDir, "boot", "kernel.img"),
		[]byte("kernel"), 0644)
	if err != nil {
		t.Fatal(err)
	}
	configure(t, c)
	if data := readFile(t, filepath.Join(bootDir, "kernel.img")); data != "kernel" {
		t.Errorf("kernel not copied: %q", data)
	}
	if _, err := os.Stat(filepath.Join(bootDir, "overlays")); err != nil {
		t.Errorf("directory not copied: %s", err)
	}
	if _, err := os.Stat(filepath.Join(rootDir, "boot", "kernel.img")); err == nil {
		t.Error("/boot not emptied")
	}
	expected := "root=/dev/mmcblk0p2 rootfstype=ext4 rootwait quiet targetdev=rbp osmcdev=rbp\n"
	if cmdline := readFile(t, filepath.Join(bootDir, "cmdline.txt")); cmdline != expected {
		t.Errorf("expected: %q, got: %q", expected, cmdline)
	}
	fstab := readFile(t, filepath.Join(rootDir, "etc", "fstab"))
	lines := strings.Split(strings.TrimSpace(fstab), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got:\n%s", fstab)
	}
	if fields := strings.Fields(lines[1]); len(fields) != 6 ||
		fields[0] != "/dev/mmcblk0p2" || fields[1] != "/" ||
		fields[2] != "ext4" || fields[5] != "1" {
		t.Errorf("bad root entry: %s", lines[1])
	}
	if fields := strings.Fields(lines[2]); len(fields) != 6 ||
		fields[0] != "/dev/mmcblk0p1" || fields[1] != "/boot" ||
		fields[2] != "vfat" {
		t.Errorf("bad boot entry: %s", lines[2])
	}
}

func TestNetworkRootStatic(t *testing.T) {
	device := target.NewCatalog().Lookup("vero")
	device.SetRoot("10.0.0.5:/export/vero")
	networkConfig := &network.Config{
		IP:        "10.0.0.20",
		Mask:      "255.255.255.0",
		Gateway:   "10.0.0.1",
		DNS1:      "10.0.0.1",
		DNS2:      "10.0.0.2",
		Interface: "eth0",
	}
	c, bootDir, rootDir := makeConfigurer(t, device, networkConfig)
	networkConfig.SetAuto() // Must not be seen: a snapshot is kept.
	configure(t, c)
	expected := "root=/dev/nfs nfsroot=10.0.0.5:/export/vero,v3,tcp ip=10.0.0.20::10.0.0.1:255.255.255.0::eth0:off rootwait quiet targetdev=vero osmcdev=vero\n"
	if cmdline := readFile(t, filepath.Join(bootDir, "cmdline.txt")); cmdline != expected {
		t.Errorf("expected: %q, got: %q", expected, cmdline)
	}
	fstab := readFile(t, filepath.Join(rootDir, "etc", "fstab"))
	if !strings.Contains(fstab, "10.0.0.5:/export/vero") ||
		!strings.Contains(fstab, " nfs ") {
		t.Errorf("no NFS entry in:\n%s", fstab)
	}
}

func TestNetworkRootDhcp(t *testing.T) {
	device := target.NewCatalog().Lookup("rbp2")
	device.SetRoot("server:/rbp2")
	networkConfig := &network.Config{}
	networkConfig.SetAuto()
	c, _, _ := makeConfigurer(t, device, networkConfig)
	if cmdline := c.KernelCmdline(); !strings.Contains(cmdline, " ip=dhcp ") {
		t.Errorf("no ip=dhcp in: %s", cmdline)
	}
}

func TestDryRunWritesNothing(t *testing.T) {
	device := target.NewCatalog().Lookup("rbp")
	c, bootDir, rootDir := makeConfigurer(t, device, nil)
	c.params.DryRun = true
	configure(t, c)
	if _, err := os.Stat(filepath.Join(bootDir, "cmdline.txt")); err == nil {
		t.Error("cmdline written in dry run")
	}
	if _, err := os.Stat(filepath.Join(rootDir, "etc", "fstab")); err == nil {
		t.Error("fstab written in dry run")
	}
}
