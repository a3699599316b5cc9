package fsutil

import (
	"io"
	"os"
	"time"

	"github.com/Cloud-Foundations/target-installer/lib/log"
)

const (
	DirPerms         = 0755
	PrivateFilePerms = 0600
	PublicFilePerms  = 0644
)

// CopyToFile will create a new file, write length bytes from reader to a
// tmpfile and then atomically renames the tmpfile to destFilename, ensuring
// that the file never has incomplete data.
// If length is zero all remaining bytes from reader are written. If there are
// any errors, then destFilename is unchanged.
func CopyToFile(destFilename string, perm os.FileMode, reader io.Reader,
	length uint64) error {
	return copyToFile(destFilename, perm, reader, length)
}

// CopyTree will copy a directory tree.
func CopyTree(destDir, sourceDir string) error {
	return copyTree(destDir, sourceDir, true)
}

// CopyFilesTree will copy a directory tree of regular files. Other inode types
// are ignored. This is suitable for destinations such as VFAT.
func CopyFilesTree(destDir, sourceDir string) error {
	return copyTree(destDir, sourceDir, false)
}

// EmptyDirectory removes everything inside dirname, leaving the directory
// itself in place. A missing directory is not an error.
func EmptyDirectory(dirname string) error {
	return emptyDirectory(dirname)
}

// WaitForBlockAvailable will wait for the specified block device node to
// become available, or return an error on timeout. The timeout is limited to
// one hour. Creation events in the parent directory are watched with fsnotify
// so that the node is picked up as soon as udev/devtmpfs creates it. The
// number of Open(2) attempts is returned.
func WaitForBlockAvailable(pathname string, timeout time.Duration,
	logger log.DebugLogger) (uint, error) {
	return waitForBlockAvailable(pathname, timeout, logger)
}
