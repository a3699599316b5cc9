package installer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Cloud-Foundations/target-installer/extract"
	"github.com/Cloud-Foundations/target-installer/lib/constants"
	"github.com/Cloud-Foundations/target-installer/network"
	"github.com/Cloud-Foundations/target-installer/preseed"
	proto "github.com/Cloud-Foundations/target-installer/proto/installer"
	"github.com/Cloud-Foundations/target-installer/target"
)

const (
	rootFileSystemType = proto.FileSystemTypeExt4

	newTableStart      = "4096s"
	partitionEnd       = "100%"
	sharedDiskStart    = "258M"
	statusBootloader   = "Configuring bootloader"
	statusFailed       = "Install failed: "
	statusInstalling   = "Installing files"
	statusNetwork      = "Configuring Network"
	statusPartitioning = "Partitioning device"
)

var errNoTerminalEvent = errors.New("extraction ended without a result")

func (o *Orchestrator) dumpLog() {
	filename := filepath.Join(o.params.BootMountPoint, constants.InstallLog)
	if err := o.params.Logger.Dump(filename); err != nil {
		o.params.Logger.Printf("error writing log: %s\n", err)
	}
}

// endRun moves a running install to state and stops the extraction. It
// returns false if the run is not running, in which case nothing changes.
func (o *Orchestrator) endRun(state State) bool {
	o.mutex.Lock()
	if o.state != StateRunning {
		o.mutex.Unlock()
		return false
	}
	o.state = state
	cancel := o.cancel
	o.mutex.Unlock()
	if cancel != nil {
		cancel()
	}
	return true
}

func (o *Orchestrator) fail(kind FailureKind, reason string,
	err error) *Failure {
	failure := newFailure(kind, reason, err)
	o.halt(failure)
	return failure
}

// halt ends a pending or running install. A pending install can then never
// be started.
func (o *Orchestrator) halt(reason error) {
	failure := asFailure(reason)
	o.mutex.Lock()
	state := o.state
	cancel := o.cancel
	if state == StatePending || state == StateRunning {
		o.state = StateHalted
		o.failure = failure
	}
	o.mutex.Unlock()
	if state != StatePending && state != StateRunning {
		o.params.Logger.Printf("ignoring halt in state: %s: %s\n",
			state, failure)
		return
	}
	if cancel != nil {
		cancel()
	}
	o.params.Logger.Printf("Halting install (%s). Error message was: %s\n",
		failure.Kind, failure)
	o.params.Presenter.SetProgress(0)
	o.params.Presenter.SetStatus(
		o.params.Presenter.Translate(statusFailed) + failure.Reason)
	o.dumpLog()
}

// haltedFailure returns the failure if the run was halted from elsewhere.
func (o *Orchestrator) haltedFailure() *Failure {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	if o.state == StateHalted {
		return o.failure
	}
	return nil
}

func (o *Orchestrator) install(ctx context.Context) error {
	o.mutex.Lock()
	if o.state != StatePending {
		state := o.state
		o.mutex.Unlock()
		return fmt.Errorf("cannot install in state: %s", state)
	}
	o.state = StateRunning
	ctx, o.cancel = context.WithCancel(ctx)
	o.mutex.Unlock()
	logger := o.params.Logger
	logger.Println("Starting installer")
	logger.Println("Detecting device we are running on")
	deviceId, err := o.params.Detector.DetectDevice()
	if err != nil {
		logger.Printf("error detecting device: %s\n", err)
	}
	device := o.params.Catalog.Lookup(deviceId)
	if device == nil {
		return o.fail(FailureDetection, "unsupported device", err)
	}
	logger.Printf("Detected device: %s (%s)\n", device.Name, device.Id)
	logger.Println("Mounting boot filesystem")
	if err := o.params.Storage.MountBoot(device); err != nil {
		return o.fail(FailureBootMount, "could not mount bootfs", err)
	}
	archive := filepath.Join(o.params.BootMountPoint,
		constants.FileSystemImage)
	if _, err := os.Stat(archive); err != nil {
		return o.fail(FailureMissingArtifact, "no filesystem found", err)
	}
	logger.Printf("Found filesystem image: %s\n", archive)
	config := o.params.Preseed.LoadPreseed()
	if config == nil {
		config = &preseed.Config{}
	}
	if config.IsLoaded() {
		logger.Println("Preseed file found, will attempt to parse")
		o.applyPreseed(device, config)
	} else {
		logger.Println("No preseed file was found")
	}
	if o.useNetworkRoot {
		o.params.Presenter.SetStatus(o.params.Presenter.Translate(
			statusNetwork))
		if err := o.params.Network.BringUp(o.networkConfig); err != nil {
			return o.fail(FailureNetwork,
				o.params.Presenter.Translate("could not bring up network"),
				err)
		}
		logger.Printf("Network configured: interface: %s, address: %s\n",
			o.networkConfig.Interface, o.networkConfig.IP)
	} else if failure := o.partition(device); failure != nil {
		return failure
	}
	if err := o.params.Storage.MountRoot(device,
		o.useNetworkRoot); err != nil {
		return o.fail(FailureRootMount,
			o.params.Presenter.Translate("can't mount root"), err)
	}
	o.bootloader = o.params.Bootloader(*device, o.networkConfig)
	if failure := o.haltedFailure(); failure != nil {
		return failure
	}
	o.params.Presenter.SetStatus(o.params.Presenter.Translate(
		statusInstalling))
	o.params.Presenter.SetProgress(0)
	logger.Println("Extracting files to root filesystem")
	o.events = o.params.Extractor.Start(ctx, archive,
		o.params.RootMountPoint)
	return nil
}

// applyPreseed applies the locale and storage selections. The resulting
// device and network configuration are fixed from here on.
func (o *Orchestrator) applyPreseed(device *target.Device,
	config *preseed.Config) {
	logger := o.params.Logger
	if locale := config.GetStringValue(keyLocale); locale != "" {
		logger.Printf("Found a definition for globalisation: %s\n", locale)
		if err := o.params.Presenter.SetLocale(locale); err != nil {
			logger.Printf("Could not load translation: %s\n", err)
		} else {
			logger.Println("Translation loaded successfully")
		}
	}
	if storage := config.GetStringValue(keyStorage); storage != "" {
		logger.Printf("Found a definition for storage: %s\n", storage)
	}
	root, policy := resolveStorage(device, config)
	logger.Printf("Storage policy: %s, root: %s\n", policy, root)
	device.SetRoot(root)
	if policy != policyNetworkRoot {
		return
	}
	o.useNetworkRoot = true
	o.networkConfig = networkConfigFromPreseed(config)
	if o.networkConfig.Mode != network.ModeStatic {
		logger.Println(
			"Network definition incomplete or absent, will use DHCP")
	}
}

func (o *Orchestrator) onExtractionError(err error) {
	o.halt(newFailure(FailureExtraction, err.Error(), nil))
}

func (o *Orchestrator) onExtractionFinished() error {
	if state := o.State(); state != StateRunning {
		o.params.Logger.Printf(
			"ignoring extraction completion in state: %s\n", state)
		return fmt.Errorf("cannot finish in state: %s", state)
	}
	logger := o.params.Logger
	logger.Println("Extraction of root filesystem completed")
	logger.Println("Configuring bootloader")
	o.params.Presenter.SetStatus(o.params.Presenter.Translate(
		statusBootloader))
	if err := o.bootloader.CopyBootFiles(); err != nil {
		return o.fail(FailureBootloader,
			o.params.Presenter.Translate("could not copy boot files"), err)
	}
	if err := o.bootloader.ConfigureCmdline(); err != nil {
		return o.fail(FailureBootloader,
			o.params.Presenter.Translate("could not write kernel cmdline"),
			err)
	}
	if err := o.bootloader.ConfigureFstab(); err != nil {
		return o.fail(FailureBootloader,
			o.params.Presenter.Translate("could not write fstab"), err)
	}
	if !o.endRun(StateSucceeded) {
		return fmt.Errorf("install ended in state: %s", o.State())
	}
	logger.Println("Successful installation. Dumping log and rebooting system")
	o.dumpLog()
	logger.Printf("Rebooting with: %s\n", o.params.Rebooter)
	if err := o.params.Rebooter.Reboot(); err != nil {
		logger.Printf("error rebooting: %s\n", err)
		return err
	}
	return nil
}

func (o *Orchestrator) onExtractionProgress(percent uint) {
	if o.State() != StateRunning {
		return
	}
	if percent > 100 {
		percent = 100
	}
	if percent < o.lastProgress {
		o.params.Logger.Debugf(1, "dropping stale progress: %d < %d\n",
			percent, o.lastProgress)
		return
	}
	o.lastProgress = percent
	o.params.Presenter.SetProgress(percent)
}

// partition creates and formats the local root partition. The device is
// never repartitioned when the root lives on the boot disk. The root file
// system type is recorded on the device before any disk is touched.
func (o *Orchestrator) partition(device *target.Device) *Failure {
	storage := o.params.Storage
	root := device.Root()
	disk := target.DiskOf(root)
	start := sharedDiskStart
	o.params.Presenter.SetStatus(o.params.Presenter.Translate(
		statusPartitioning))
	device.RootFileSystem = rootFileSystemType
	if device.RootChanged() {
		o.params.Logger.Printf(
			"Root is not on the boot disk, writing new label on: %s\n",
			disk)
		if err := storage.MakeLabel(disk); err != nil {
			return o.fail(FailurePartition,
				o.params.Presenter.Translate("could not partition device"),
				err)
		}
		start = newTableStart
	}
	if err := storage.MakePartition(disk, rootFileSystemType, start,
		partitionEnd); err != nil {
		return o.fail(FailurePartition,
			o.params.Presenter.Translate("could not partition device"), err)
	}
	if err := storage.Format(root, rootFileSystemType); err != nil {
		return o.fail(FailureFormat,
			o.params.Presenter.Translate("could not format device"), err)
	}
	return nil
}

func (o *Orchestrator) run(ctx context.Context) error {
	if err := o.install(ctx); err != nil {
		return err
	}
	for event := range o.events {
		switch event.Kind {
		case extract.EventProgress:
			o.onExtractionProgress(event.Percent)
		case extract.EventFinished:
			if err := o.onExtractionFinished(); err != nil {
				return err
			}
		case extract.EventError:
			o.onExtractionError(event.Err)
		}
	}
	if o.State() == StateRunning {
		o.onExtractionError(errNoTerminalEvent)
	}
	o.mutex.Lock()
	defer o.mutex.Unlock()
	if o.failure != nil {
		return o.failure
	}
	return nil
}
