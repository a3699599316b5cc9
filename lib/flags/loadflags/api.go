package loadflags

import (
	"path/filepath"
)

// LoadForDaemon will load flags from /etc/<progName>/flags.default and
// /etc/<progName>/flags.extra, if present.
func LoadForDaemon(progName string) error {
	return loadFlags(filepath.Join("/etc", progName), "flags.default",
		"flags.extra")
}

// LoadFromFile will load flags from filename. A missing file is not an error.
// This is used to pick up flags supplied on removable media (such as a boot
// partition) after it has been mounted.
func LoadFromFile(filename string) error {
	return loadFlagsFromFile(filename)
}
