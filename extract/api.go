// Package extract unpacks a .tar.xz file-system image onto a mounted root in
// the background, reporting progress and the outcome as a stream of Events.
package extract

import (
	"context"
	"os"

	"github.com/Cloud-Foundations/target-installer/lib/log"
)

const (
	EventProgress EventKind = iota
	EventFinished
	EventError
)

type EventKind uint

// Event is one notification from a running extraction. Progress events carry
// a non-decreasing Percent. The last event is always EventFinished or
// EventError, after which the channel is closed.
type Event struct {
	Kind    EventKind
	Percent uint
	Err     error
}

type Params struct {
	ExternalXz bool // Use the xz programme if it is available.
	Logger     log.DebugLogger
}

type Extractor struct {
	params    Params
	setOwners bool
}

func New(params Params) *Extractor {
	return &Extractor{params: params, setOwners: os.Geteuid() == 0}
}

// Start begins extracting archive into destDir and returns immediately. The
// caller must drain the returned channel until it is closed. Cancelling ctx
// stops the extraction between archive entries.
func (e *Extractor) Start(ctx context.Context, archive,
	destDir string) <-chan Event {
	return e.start(ctx, archive, destDir)
}

func (k EventKind) String() string {
	switch k {
	case EventProgress:
		return "progress"
	case EventFinished:
		return "finished"
	case EventError:
		return "error"
	}
	return "unknown"
}
