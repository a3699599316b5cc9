package installer

import (
	"errors"
	"fmt"
)

const (
	FailureUnknown FailureKind = iota
	FailureDetection
	FailureBootMount
	FailureMissingArtifact
	FailureNetwork
	FailurePartition
	FailureFormat
	FailureRootMount
	FailureExtraction
	FailureBootloader
)

type FailureKind uint

// Failure is the reason a run was halted. Reason is shown to the user; Err,
// if set, holds the underlying error for the log.
type Failure struct {
	Kind   FailureKind
	Reason string
	Err    error
}

var failureKindToText = map[FailureKind]string{
	FailureUnknown:         "unknown",
	FailureDetection:       "detection",
	FailureBootMount:       "boot-mount",
	FailureMissingArtifact: "missing-artifact",
	FailureNetwork:         "network",
	FailurePartition:       "partition",
	FailureFormat:          "format",
	FailureRootMount:       "root-mount",
	FailureExtraction:      "extraction",
	FailureBootloader:      "bootloader",
}

func asFailure(err error) *Failure {
	var failure *Failure
	if errors.As(err, &failure) {
		return failure
	}
	return &Failure{Kind: FailureUnknown, Reason: err.Error()}
}

func newFailure(kind FailureKind, reason string, err error) *Failure {
	return &Failure{Kind: kind, Reason: reason, Err: err}
}

func (f *Failure) Error() string {
	if f.Err == nil {
		return f.Reason
	}
	return fmt.Sprintf("%s: %s", f.Reason, f.Err)
}

func (f *Failure) Unwrap() error {
	return f.Err
}

func (k FailureKind) String() string {
	if text, ok := failureKindToText[k]; ok {
		return text
	}
	return fmt.Sprintf("FailureKind(%d)", uint(k))
}
