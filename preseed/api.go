// Package preseed reads the optional answers file supplied on the boot
// partition. Each line has the form:
//
//	d-i <key> <type> <value...>
//
// Only resolved key to value lookups are offered; types are not checked.
package preseed

import (
	"io"

	"github.com/Cloud-Foundations/target-installer/lib/log"
)

// Config is immutable once loaded. The zero value is an unloaded Config.
type Config struct {
	loaded bool
	values map[string]string
}

type FileLoader struct {
	filename string
	logger   log.DebugLogger
}

// New returns a loaded Config holding values.
func New(values map[string]string) *Config {
	return newConfig(values)
}

// Parse reads a Config from reader. Malformed lines are skipped.
func Parse(reader io.Reader, logger log.DebugLogger) (*Config, error) {
	return parse(reader, logger)
}

// NewFileLoader creates a FileLoader which reads filename.
func NewFileLoader(filename string, logger log.DebugLogger) *FileLoader {
	return &FileLoader{filename: filename, logger: logger}
}

// LoadPreseed reads the file. A missing or unreadable file yields an unloaded
// Config, never an error.
func (fl *FileLoader) LoadPreseed() *Config {
	return fl.load()
}

// GetStringValue returns the value for key, or an empty string if there is no
// value.
func (c *Config) GetStringValue(key string) string {
	return c.values[key]
}

func (c *Config) IsLoaded() bool {
	return c.loaded
}

// Keys returns the sorted list of keys with a value.
func (c *Config) Keys() []string {
	return c.keys()
}
