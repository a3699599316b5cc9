package extract

import (
	"archive/tar"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Cloud-Foundations/target-installer/lib/fsutil"
	"golang.org/x/sys/unix"
)

type dirTimes struct {
	pathname string
	modTime  time.Time
}

type unpackStats struct {
	bytes   uint64
	entries uint64
}

type unpacker struct {
	destDir     string
	directories []dirTimes
	safeDirs    map[string]struct{}
	setOwners   bool
	stats       unpackStats
}

func (e *Extractor) extract(ctx context.Context, archive, destDir string,
	onProgress func(uint)) (unpackStats, error) {
	file, err := os.Open(archive)
	if err != nil {
		return unpackStats{}, err
	}
	defer file.Close()
	fi, err := file.Stat()
	if err != nil {
		return unpackStats{}, err
	}
	destDir, err = filepath.Abs(destDir)
	if err != nil {
		return unpackStats{}, err
	}
	counter := &countingReader{
		reader:     file,
		size:       uint64(fi.Size()),
		onProgress: onProgress,
	}
	reader, done, err := newDecompressor(counter, e.params.ExternalXz,
		e.params.Logger)
	if err != nil {
		return unpackStats{}, fmt.Errorf("error decompressing: %s", err)
	}
	u := &unpacker{
		destDir:   destDir,
		safeDirs:  map[string]struct{}{destDir: {}},
		setOwners: e.setOwners,
	}
	if err := u.unpack(ctx, tar.NewReader(reader)); err != nil {
		done(true)
		return u.stats, err
	}
	if err := done(false); err != nil {
		return u.stats, err
	}
	return u.stats, nil
}

// checkParents returns an error if any directory between destDir and
// pathname is a symbolic link.
func (u *unpacker) checkParents(pathname string) error {
	if pathname == u.destDir {
		return nil
	}
	dirname := filepath.Dir(pathname)
	var unchecked []string
	for ; ; dirname = filepath.Dir(dirname) {
		if _, ok := u.safeDirs[dirname]; ok {
			break
		}
		unchecked = append(unchecked, dirname)
	}
	for index := len(unchecked) - 1; index >= 0; index-- {
		dirname := unchecked[index]
		fi, err := os.Lstat(dirname)
		if err != nil {
			if os.IsNotExist(err) {
				return nil // MkdirAll will create it as a real directory.
			}
			return err
		}
		if !fi.IsDir() {
			return fmt.Errorf("%s: parent is not a directory", dirname)
		}
		u.safeDirs[dirname] = struct{}{}
	}
	return nil
}

func (u *unpacker) resolve(name string) (string, error) {
	pathname := filepath.Join(u.destDir, filepath.Clean("/"+name))
	if pathname == u.destDir {
		return pathname, nil
	}
	if !strings.HasPrefix(pathname, u.destDir+string(filepath.Separator)) {
		return "", fmt.Errorf("%s: outside of destination", name)
	}
	return pathname, nil
}

// Reject names which escape destDir before they are joined.
func checkName(name string) error {
	for _, component := range strings.Split(filepath.ToSlash(name), "/") {
		if component == ".." {
			return fmt.Errorf("%s: path traversal", name)
		}
	}
	return nil
}

func (u *unpacker) setMetadata(pathname string, header *tar.Header) error {
	if u.setOwners {
		if err := unix.Lchown(pathname, header.Uid, header.Gid); err != nil {
			return err
		}
	}
	if header.Typeflag == tar.TypeSymlink {
		times := []unix.Timespec{
			unix.NsecToTimespec(header.ModTime.UnixNano()),
			unix.NsecToTimespec(header.ModTime.UnixNano()),
		}
		return unix.UtimesNanoAt(unix.AT_FDCWD, pathname, times,
			unix.AT_SYMLINK_NOFOLLOW)
	}
	if err := os.Chmod(pathname, header.FileInfo().Mode()); err != nil {
		return err
	}
	if header.Typeflag == tar.TypeDir {
		u.directories = append(u.directories,
			dirTimes{pathname, header.ModTime})
		return nil
	}
	return os.Chtimes(pathname, header.ModTime, header.ModTime)
}

func (u *unpacker) unpack(ctx context.Context, reader *tar.Reader) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		header, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		if err := u.unpackEntry(reader, header); err != nil {
			return err
		}
		u.stats.entries++
	}
	// Directory times are set last, since creating entries changes them.
	for index := len(u.directories) - 1; index >= 0; index-- {
		dir := u.directories[index]
		if err := os.Chtimes(dir.pathname, dir.modTime,
			dir.modTime); err != nil {
			return err
		}
	}
	return nil
}

func (u *unpacker) unpackEntry(reader io.Reader, header *tar.Header) error {
	if err := checkName(header.Name); err != nil {
		return err
	}
	pathname, err := u.resolve(header.Name)
	if err != nil {
		return err
	}
	if err := u.checkParents(pathname); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(pathname), fsutil.DirPerms); err != nil {
		return err
	}
	perm := uint32(header.Mode & 07777)
	switch header.Typeflag {
	case tar.TypeDir:
		if err := os.Mkdir(pathname, fsutil.DirPerms); err != nil &&
			!os.IsExist(err) {
			return err
		}
	case tar.TypeReg:
		if err := u.writeFile(pathname, reader, header); err != nil {
			return err
		}
	case tar.TypeSymlink:
		os.Remove(pathname)
		if err := os.Symlink(header.Linkname, pathname); err != nil {
			return err
		}
	case tar.TypeLink:
		if err := checkName(header.Linkname); err != nil {
			return err
		}
		target, err := u.resolve(header.Linkname)
		if err != nil {
			return err
		}
		os.Remove(pathname)
		return os.Link(target, pathname)
	case tar.TypeChar, tar.TypeBlock:
		mode := perm | unix.S_IFCHR
		if header.Typeflag == tar.TypeBlock {
			mode = perm | unix.S_IFBLK
		}
		os.Remove(pathname)
		dev := unix.Mkdev(uint32(header.Devmajor), uint32(header.Devminor))
		if err := unix.Mknod(pathname, mode, int(dev)); err != nil {
			return err
		}
	case tar.TypeFifo:
		os.Remove(pathname)
		if err := unix.Mkfifo(pathname, perm); err != nil {
			return err
		}
	default:
		return fmt.Errorf("%s: unsupported entry type: %c",
			header.Name, header.Typeflag)
	}
	return u.setMetadata(pathname, header)
}

func (u *unpacker) writeFile(pathname string, reader io.Reader,
	header *tar.Header) error {
	os.Remove(pathname)
	file, err := os.OpenFile(pathname, os.O_CREATE|os.O_EXCL|os.O_WRONLY,
		fsutil.PrivateFilePerms)
	if err != nil {
		return err
	}
	nCopied, err := io.Copy(file, reader)
	u.stats.bytes += uint64(nCopied)
	if err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
