//go:build linux
// +build linux

package main

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/Cloud-Foundations/target-installer/lib/log/memlogger"
	"github.com/pin/tftp"
)

// uploadingLog also sends every dump of the install log to the TFTP server
// named by -logTftpServer. Upload failures are only logged.
type uploadingLog struct {
	*memlogger.Logger
	detector deviceDetector
}

type deviceDetector interface {
	DetectDevice() (string, error)
}

func newUploadingLog(logger *memlogger.Logger,
	detector deviceDetector) *uploadingLog {
	return &uploadingLog{Logger: logger, detector: detector}
}

func uploadLines(server, filename string, lines []string) error {
	if !strings.Contains(server, ":") {
		server += ":69"
	}
	client, err := tftp.NewClient(server)
	if err != nil {
		return err
	}
	buffer := &bytes.Buffer{}
	for _, line := range lines {
		buffer.WriteString(line)
		if !strings.HasSuffix(line, "\n") {
			buffer.WriteByte('\n')
		}
	}
	readerFrom, err := client.Send(filename, "octet")
	if err != nil {
		return fmt.Errorf("error sending: %s: %s", filename, err)
	}
	if ot, ok := readerFrom.(tftp.OutgoingTransfer); ok {
		ot.SetSize(int64(buffer.Len()))
	}
	if _, err := readerFrom.ReadFrom(buffer); err != nil {
		return fmt.Errorf("error uploading: %s: %s", filename, err)
	}
	return nil
}

func (l *uploadingLog) Dump(filename string) error {
	err := l.Logger.Dump(filename)
	if *logTftpServer == "" {
		return err
	}
	deviceId, e := l.detector.DetectDevice()
	if e != nil || deviceId == "" {
		deviceId = "unknown"
	}
	remoteName := "install-" + deviceId + ".log"
	if e := uploadLines(*logTftpServer, remoteName, l.Lines()); e != nil {
		l.Printf("error uploading log to: %s: %s\n", *logTftpServer, e)
	} else {
		l.Debugf(0, "uploaded log to: %s:%s\n", *logTftpServer, remoteName)
	}
	return err
}
