package uncommenter

import (
	"io"
)

const (
	CommentTypeHash       = 1 << iota // "#"
	CommentTypeSlashSlash             // "//"
	CommentTypeBang                   // "!"

	CommentTypeAll = 0xffffffffffffffff
)

// New will return a wrapped reader, filtering out comment lines.
// Comment lines may begin with arbitrary whitespace followed by any of the
// specified commentTypes, until the next newline. Comments which do not start
// a line are passed through.
func New(reader io.Reader, commentTypes uint64) io.Reader {
	return newUncommenter(reader, commentTypes)
}
