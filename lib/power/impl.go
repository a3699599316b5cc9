package power

import (
	"fmt"
	"time"

	"github.com/Cloud-Foundations/target-installer/lib/format"
	"github.com/Cloud-Foundations/target-installer/lib/log"
	"golang.org/x/sys/unix"
)

func newRebooter(delay time.Duration, dryRun bool,
	logger log.DebugLogger) *Rebooter {
	return &Rebooter{
		Delay:  delay,
		DryRun: dryRun,
		Logger: logger,
		reboot: unix.Reboot,
		sleep:  time.Sleep,
		sync:   unix.Sync,
	}
}

func (r *Rebooter) rebootMachine() error {
	r.sync()
	if r.Delay > 0 {
		r.Logger.Printf("rebooting in %s\n", format.Duration(r.Delay))
		r.sleep(r.Delay)
	}
	if r.DryRun {
		r.Logger.Println("dry run: not rebooting")
		return nil
	}
	if err := r.reboot(unix.LINUX_REBOOT_CMD_RESTART); err != nil {
		return fmt.Errorf("error rebooting: %s", err)
	}
	return nil
}
