package fsutil

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

func copyToFile(destFilename string, perm os.FileMode, reader io.Reader,
	length uint64) error {
	tmpFilename := destFilename + "~"
	destFile, err := os.OpenFile(tmpFilename,
		os.O_CREATE|os.O_TRUNC|os.O_WRONLY, perm)
	if err != nil {
		return err
	}
	defer os.Remove(tmpFilename)
	defer destFile.Close()
	if err := copyToWriter(destFile, tmpFilename, reader, length); err != nil {
		return err
	}
	if err := destFile.Close(); err != nil {
		return err
	}
	return os.Rename(tmpFilename, destFilename)
}

func copyToWriter(writer io.Writer, filename string, reader io.Reader,
	length uint64) error {
	if length < 1 {
		if _, err := io.Copy(writer, reader); err != nil {
			return fmt.Errorf("error copying: %s", err)
		}
		return nil
	}
	nCopied, err := io.CopyN(writer, reader, int64(length))
	if err != nil {
		return fmt.Errorf("error copying: %s", err)
	}
	if nCopied != int64(length) {
		return fmt.Errorf("expected length: %d, got: %d for: %s",
			length, nCopied, filename)
	}
	return nil
}

func copyFile(destFilename, sourceFilename string, mode os.FileMode) error {
	sourceFile, err := os.Open(sourceFilename)
	if err != nil {
		return err
	}
	defer sourceFile.Close()
	if mode == 0 {
		fi, err := sourceFile.Stat()
		if err != nil {
			return err
		}
		mode = fi.Mode().Perm()
	}
	return copyToFile(destFilename, mode, sourceFile, 0)
}

func copyTree(destDir, sourceDir string, allTypes bool) error {
	file, err := os.Open(sourceDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	names, err := file.Readdirnames(-1)
	file.Close()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(destDir, DirPerms); err != nil {
		return err
	}
	for _, name := range names {
		sourceFilename := filepath.Join(sourceDir, name)
		destFilename := filepath.Join(destDir, name)
		fi, err := os.Lstat(sourceFilename)
		if err != nil {
			return errors.New(sourceFilename + ": " + err.Error())
		}
		switch mode := fi.Mode(); {
		case mode.IsDir():
			if err := os.Mkdir(destFilename, DirPerms); err != nil {
				if !os.IsExist(err) {
					return err
				}
			}
			if err := copyTree(destFilename, sourceFilename, allTypes); err != nil {
				return err
			}
		case mode.IsRegular():
			if err := copyFile(destFilename, sourceFilename, mode.Perm()); err != nil {
				return err
			}
		case mode&os.ModeSymlink != 0:
			if !allTypes {
				continue
			}
			sourceTarget, err := os.Readlink(sourceFilename)
			if err != nil {
				return errors.New(sourceFilename + ": " + err.Error())
			}
			if destTarget, err := os.Readlink(destFilename); err == nil {
				if sourceTarget == destTarget {
					continue
				}
			}
			os.Remove(destFilename)
			if err := os.Symlink(sourceTarget, destFilename); err != nil {
				return err
			}
		default:
			if allTypes {
				return errors.New(sourceFilename + ": unsupported file type")
			}
		}
	}
	return nil
}

func emptyDirectory(dirname string) error {
	file, err := os.Open(dirname)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	names, err := file.Readdirnames(-1)
	file.Close()
	if err != nil {
		return err
	}
	for _, name := range names {
		if err := os.RemoveAll(filepath.Join(dirname, name)); err != nil {
			return err
		}
	}
	return nil
}
