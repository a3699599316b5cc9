package extract

import (
	"fmt"
	"io"
	"os/exec"

	"github.com/Cloud-Foundations/target-installer/lib/log"
	"github.com/ulikunitz/xz"
)

type countingReader struct {
	reader     io.Reader
	size       uint64
	nRead      uint64
	onProgress func(uint)
}

type externalReader struct {
	cmd    *exec.Cmd
	stdout io.ReadCloser
}

func haveXz() bool {
	_, err := exec.LookPath("xz")
	return err == nil
}

// newDecompressor returns a reader for the decompressed data and a function
// which must be called when done to release resources and collect any
// decompression error. If abort is true the data were not all consumed.
func newDecompressor(reader io.Reader, external bool,
	logger log.DebugLogger) (io.Reader, func(abort bool) error, error) {
	if external && haveXz() {
		logger.Debugln(0, "decompressing with external xz")
		return externalUnxz(reader)
	}
	logger.Debugln(0, "decompressing with native xz")
	xzReader, err := xz.NewReader(reader)
	if err != nil {
		return nil, nil, err
	}
	return xzReader, func(bool) error { return nil }, nil
}

func externalUnxz(reader io.Reader) (io.Reader, func(bool) error, error) {
	cmd := exec.Command("xz", "-dc")
	cmd.Stdin = reader
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, nil, err
	}
	if err := cmd.Start(); err != nil {
		return nil, nil, err
	}
	er := &externalReader{cmd: cmd, stdout: stdout}
	return stdout, er.wait, nil
}

func (r *countingReader) Read(p []byte) (int, error) {
	nRead, err := r.reader.Read(p)
	r.nRead += uint64(nRead)
	if r.size > 0 && r.onProgress != nil {
		percent := r.nRead * 100 / r.size
		if percent > 100 {
			percent = 100
		}
		r.onProgress(uint(percent))
	}
	return nRead, err
}

func (r *externalReader) wait(abort bool) error {
	if abort {
		r.cmd.Process.Kill()
		r.cmd.Wait()
		return nil
	}
	// Trailing padding after the tar end-of-archive marker.
	io.Copy(io.Discard, r.stdout)
	if err := r.cmd.Wait(); err != nil {
		return fmt.Errorf("error running xz: %s", err)
	}
	return nil
}
