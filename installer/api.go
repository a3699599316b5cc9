// Package installer sequences the installation: device detection, boot
// partition mount, preseed resolution, network bring up, partitioning, root
// mount, image extraction and bootloader configuration. Any failure halts
// the run permanently; success ends with a reboot request.
package installer

import (
	"context"
	"sync"

	"github.com/Cloud-Foundations/target-installer/extract"
	"github.com/Cloud-Foundations/target-installer/lib/log"
	"github.com/Cloud-Foundations/target-installer/network"
	"github.com/Cloud-Foundations/target-installer/preseed"
	proto "github.com/Cloud-Foundations/target-installer/proto/installer"
	"github.com/Cloud-Foundations/target-installer/target"
)

const (
	StatePending State = iota
	StateRunning
	StateHalted
	StateSucceeded
)

type Bootloader interface {
	CopyBootFiles() error
	ConfigureCmdline() error
	ConfigureFstab() error
}

// BootloaderFactory creates a Bootloader for a snapshot of the device. The
// network configuration is nil for a local root.
type BootloaderFactory func(device target.Device,
	networkConfig *network.Config) Bootloader

type DeviceCatalog interface {
	Lookup(id string) *target.Device
}

type DeviceDetector interface {
	DetectDevice() (string, error)
}

// EventLog is the install log. It is dumped to the boot partition when the
// run ends, either way.
type EventLog interface {
	log.DebugLogger
	Dump(filename string) error
}

type Extractor interface {
	Start(ctx context.Context, archive, destDir string) <-chan extract.Event
}

type NetworkBringer interface {
	BringUp(config *network.Config) error
}

type Presenter interface {
	SetLocale(locale string) error
	SetProgress(percent uint)
	SetStatus(text string)
	Translate(text string) string
}

type PreseedLoader interface {
	LoadPreseed() *preseed.Config
}

type Rebooter interface {
	Reboot() error
	String() string
}

type Storage interface {
	Format(partition string, fsType proto.FileSystemType) error
	MakeLabel(disk string) error
	MakePartition(disk string, fsType proto.FileSystemType,
		start, end string) error
	MountBoot(device *target.Device) error
	MountRoot(device *target.Device, networkRoot bool) error
}

type Params struct {
	BootMountPoint string
	Bootloader     BootloaderFactory
	Catalog        DeviceCatalog
	Detector       DeviceDetector
	Extractor      Extractor
	Logger         EventLog
	Network        NetworkBringer
	Presenter      Presenter
	Preseed        PreseedLoader
	Rebooter       Rebooter
	RootMountPoint string
	Storage        Storage
}

type State uint

type Orchestrator struct {
	params         Params
	bootloader     Bootloader
	events         <-chan extract.Event
	lastProgress   uint
	networkConfig  *network.Config
	useNetworkRoot bool
	mutex          sync.Mutex // Protect everything below.
	cancel         context.CancelFunc
	failure        *Failure
	state          State
}

func New(params Params) *Orchestrator {
	return &Orchestrator{params: params}
}

// Halt ends the run with reason, unless the run has already ended. The
// extraction is cancelled, the progress is reset, a failure message is shown
// and the log is dumped. No later step (notably the reboot) will run. Halting
// before Install prevents the install from starting.
func (o *Orchestrator) Halt(reason error) {
	o.halt(reason)
}

// Install runs all steps up to and including launching the extraction, and
// returns once the extraction has started. If a step fails the run is halted
// and the *Failure is returned.
func (o *Orchestrator) Install(ctx context.Context) error {
	return o.install(ctx)
}

// OnExtractionError halts the run with the extraction error.
func (o *Orchestrator) OnExtractionError(err error) {
	o.onExtractionError(err)
}

// OnExtractionFinished configures the bootloader, dumps the log and requests
// a reboot.
func (o *Orchestrator) OnExtractionFinished() error {
	return o.onExtractionFinished()
}

// OnExtractionProgress forwards the extraction progress to the presenter.
func (o *Orchestrator) OnExtractionProgress(percent uint) {
	o.onExtractionProgress(percent)
}

// Run performs Install and then processes extraction events until the run
// ends. It returns nil if the run succeeded, else the *Failure.
func (o *Orchestrator) Run(ctx context.Context) error {
	return o.run(ctx)
}

// State returns the current state of the run.
func (o *Orchestrator) State() State {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	return o.state
}

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateRunning:
		return "running"
	case StateHalted:
		return "halted"
	case StateSucceeded:
		return "succeeded"
	}
	return "unknown"
}
