// Package power flushes file-systems and restarts the machine.
package power

import (
	"time"

	"github.com/Cloud-Foundations/target-installer/lib/log"
)

type Rebooter struct {
	Delay  time.Duration
	DryRun bool
	Logger log.DebugLogger
	reboot func(cmd int) error
	sleep  func(time.Duration)
	sync   func()
}

// New creates a Rebooter which waits for delay after syncing and before
// restarting the machine.
func New(delay time.Duration, dryRun bool, logger log.DebugLogger) *Rebooter {
	return newRebooter(delay, dryRun, logger)
}

// Reboot will sync all file-systems, wait and then restart the machine. On
// success it does not return. In dry run mode the restart is only logged.
func (r *Rebooter) Reboot() error {
	return r.rebootMachine()
}

func (r *Rebooter) String() string {
	return "default"
}
