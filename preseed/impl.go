package preseed

import (
	"bufio"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/Cloud-Foundations/target-installer/lib/log"
	"github.com/Cloud-Foundations/target-installer/lib/uncommenter"
)

const linePrefix = "d-i"

func newConfig(values map[string]string) *Config {
	c := &Config{loaded: true, values: make(map[string]string, len(values))}
	for key, value := range values {
		c.values[key] = value
	}
	return c
}

func parse(reader io.Reader, logger log.DebugLogger) (*Config, error) {
	c := &Config{loaded: true, values: make(map[string]string)}
	scanner := bufio.NewScanner(uncommenter.New(reader,
		uncommenter.CommentTypeHash))
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		fields := strings.Fields(scanner.Text())
		if len(fields) < 1 {
			continue
		}
		if fields[0] != linePrefix || len(fields) < 3 {
			logger.Debugf(1, "preseed: skipping malformed line %d\n",
				lineNumber)
			continue
		}
		if len(fields) < 4 {
			c.values[fields[1]] = ""
		} else {
			c.values[fields[1]] = strings.Join(fields[3:], " ")
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) keys() []string {
	keys := make([]string, 0, len(c.values))
	for key, value := range c.values {
		if value != "" {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys
}

func (fl *FileLoader) load() *Config {
	file, err := os.Open(fl.filename)
	if err != nil {
		if !os.IsNotExist(err) {
			fl.logger.Printf("error opening preseed file: %s\n", err)
		}
		return &Config{}
	}
	defer file.Close()
	config, err := parse(file, fl.logger)
	if err != nil {
		fl.logger.Printf("error reading preseed file: %s\n", err)
		return &Config{}
	}
	return config
}
