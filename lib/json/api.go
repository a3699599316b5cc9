package json

import (
	"io"
)

// Read will read JSON data from reader and write the decoded data to value.
// If the JSON data are newline separated, lines beginning with comments will
// be ignored.
// Comment lines may begin with "#", "//" or "!" and continue until the next
// newline.
func Read(reader io.Reader, value interface{}) error {
	return read(reader, value)
}

// ReadFromFile will read JSON data from the specified file and write the
// decoded data to value. Comment lines are ignored, as for Read.
func ReadFromFile(filename string, value interface{}) error {
	return readFromFile(filename, value)
}
