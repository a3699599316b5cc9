package fsutil

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Cloud-Foundations/target-installer/lib/log/testlogger"
)

func writeTestTree(t *testing.T, topdir string) {
	if err := os.MkdirAll(filepath.Join(topdir, "overlays"), DirPerms); err != nil {
		t.Fatal(err)
	}
	files := map[string]string{
		"kernel.img":        "kernel",
		"config.txt":        "gpu_mem=128",
		"overlays/dtb.dtbo": "overlay",
	}
	for name, data := range files {
		err := os.WriteFile(filepath.Join(topdir, name), []byte(data),
			PublicFilePerms)
		if err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Symlink("kernel.img", filepath.Join(topdir, "vmlinuz")); err != nil {
		t.Fatal(err)
	}
}

func TestCopyTree(t *testing.T) {
	sourceDir := t.TempDir()
	destDir := filepath.Join(t.TempDir(), "dest")
	writeTestTree(t, sourceDir)
	if err := CopyTree(destDir, sourceDir); err != nil {
		t.Fatal(err)
	}
	if data, err := os.ReadFile(filepath.Join(destDir, "overlays", "dtb.dtbo")); err != nil {
		t.Fatal(err)
	} else if string(data) != "overlay" {
		t.Errorf("overlay: expected: \"overlay\", got: \"%s\"", data)
	}
	if target, err := os.Readlink(filepath.Join(destDir, "vmlinuz")); err != nil {
		t.Fatal(err)
	} else if target != "kernel.img" {
		t.Errorf("symlink: expected: kernel.img, got: %s", target)
	}
}

func TestCopyFilesTreeSkipsSymlinks(t *testing.T) {
	sourceDir := t.TempDir()
	destDir := t.TempDir()
	writeTestTree(t, sourceDir)
	if err := CopyFilesTree(destDir, sourceDir); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Lstat(filepath.Join(destDir, "vmlinuz")); !os.IsNotExist(err) {
		t.Errorf("symlink copied into files-only tree: %v", err)
	}
	if _, err := os.Stat(filepath.Join(destDir, "kernel.img")); err != nil {
		t.Error(err)
	}
}

func TestCopyFileInheritsMode(t *testing.T) {
	sourceFilename := filepath.Join(t.TempDir(), "start.elf")
	if err := os.WriteFile(sourceFilename, []byte("elf"), 0750); err != nil {
		t.Fatal(err)
	}
	if err := os.Chmod(sourceFilename, 0750); err != nil {
		t.Fatal(err)
	}
	destFilename := filepath.Join(t.TempDir(), "start.elf")
	if err := copyFile(destFilename, sourceFilename, 0); err != nil {
		t.Fatal(err)
	}
	if fi, err := os.Stat(destFilename); err != nil {
		t.Fatal(err)
	} else if perm := fi.Mode().Perm(); perm != 0750 {
		t.Errorf("expected mode: 0750, got: %o", perm)
	}
}

func TestCopyToFileOverwrites(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "install.log")
	for _, data := range []string{"first run, much longer content", "second"} {
		err := CopyToFile(filename, PublicFilePerms,
			bytes.NewBufferString(data), 0)
		if err != nil {
			t.Fatal(err)
		}
	}
	if data, err := os.ReadFile(filename); err != nil {
		t.Fatal(err)
	} else if string(data) != "second" {
		t.Errorf("expected: \"second\", got: \"%s\"", data)
	}
}

func TestEmptyDirectory(t *testing.T) {
	topdir := t.TempDir()
	writeTestTree(t, topdir)
	if err := EmptyDirectory(topdir); err != nil {
		t.Fatal(err)
	}
	if entries, err := os.ReadDir(topdir); err != nil {
		t.Fatal(err)
	} else if len(entries) != 0 {
		t.Errorf("%d entries remain", len(entries))
	}
	if err := EmptyDirectory(filepath.Join(topdir, "missing")); err != nil {
		t.Errorf("missing directory: %s", err)
	}
}

func TestWaitForBlockAvailableTimesOut(t *testing.T) {
	pathname := filepath.Join(t.TempDir(), "mmcblk0p2")
	if err := os.WriteFile(pathname, nil, PublicFilePerms); err != nil {
		t.Fatal(err)
	}
	// A regular file is never a block device.
	_, err := WaitForBlockAvailable(pathname, 200*time.Millisecond,
		testlogger.New(t))
	if err == nil {
		t.Error("no timeout waiting for regular file")
	}
}
