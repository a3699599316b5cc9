package uncommenter

import (
	"bufio"
	"bytes"
	"io"
)

type uncommenter struct {
	commentTypes uint64
	err          error
	pending      []byte
	reader       *bufio.Reader
}

func newUncommenter(reader io.Reader, commentTypes uint64) io.Reader {
	if commentTypes == 0 {
		return reader
	}
	return &uncommenter{
		commentTypes: commentTypes,
		reader:       bufio.NewReader(reader),
	}
}

func (u *uncommenter) isComment(line []byte) bool {
	trimmed := bytes.TrimLeft(line, " \t")
	switch {
	case u.commentTypes&CommentTypeHash != 0 &&
		bytes.HasPrefix(trimmed, []byte("#")):
		return true
	case u.commentTypes&CommentTypeSlashSlash != 0 &&
		bytes.HasPrefix(trimmed, []byte("//")):
		return true
	case u.commentTypes&CommentTypeBang != 0 &&
		bytes.HasPrefix(trimmed, []byte("!")):
		return true
	}
	return false
}

func (u *uncommenter) Read(p []byte) (int, error) {
	for len(u.pending) < 1 {
		if u.err != nil {
			return 0, u.err
		}
		line, err := u.reader.ReadBytes('\n')
		u.err = err
		if len(line) > 0 && !u.isComment(line) {
			u.pending = line
		}
	}
	nCopied := copy(p, u.pending)
	u.pending = u.pending[nCopied:]
	return nCopied, nil
}
