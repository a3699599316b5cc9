package installer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/Cloud-Foundations/target-installer/extract"
	"github.com/Cloud-Foundations/target-installer/lib/constants"
	"github.com/Cloud-Foundations/target-installer/lib/log/testlogger"
	"github.com/Cloud-Foundations/target-installer/network"
	"github.com/Cloud-Foundations/target-installer/preseed"
	proto "github.com/Cloud-Foundations/target-installer/proto/installer"
	"github.com/Cloud-Foundations/target-installer/target"
)

var errInjected = errors.New("injected failure")

// recorder collects the calls made to every fake, in order.
type recorder struct {
	mutex sync.Mutex
	calls []string
	fail  map[string]bool
}

type testEnv struct {
	*recorder
	bootDir         string
	catalog         DeviceCatalog
	device          *target.Device // As passed to MountBoot.
	devices         []target.Device
	events          []extract.Event
	extractCtx      context.Context
	log             *fakeEventLog
	networks        []network.Config
	presenter       *fakePresenter
	preseed         *preseed.Config
	rootFileSystems []proto.FileSystemType // Device value at each disk op.
	deviceId        string
	installer       *Orchestrator
	noImage         bool
	reboots         int
	extracting      bool
}

type fakeCatalog map[string]target.Device

type fakeBootloader struct {
	env *testEnv
}

type fakeEventLog struct {
	*testlogger.Logger
	env   *testEnv
	dumps []string
}

type fakePresenter struct {
	env      *testEnv
	locale   string
	progress []uint
	statuses []string
}

type fakeRebooter struct {
	env *testEnv
}

func (c fakeCatalog) Lookup(id string) *target.Device {
	device, ok := c[id]
	if !ok {
		return nil
	}
	return &device
}

func (r *recorder) called(format string, v ...interface{}) error {
	call := fmt.Sprintf(format, v...)
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.calls = append(r.calls, call)
	name := strings.Fields(call)[0]
	if r.fail[name] {
		return fmt.Errorf("%s: %w", name, errInjected)
	}
	return nil
}

// callsWithPrefix returns the recorded calls to the named operations.
func (r *recorder) callsWithPrefix(prefixes ...string) []string {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	var calls []string
	for _, call := range r.calls {
		name := strings.Fields(call)[0]
		for _, prefix := range prefixes {
			if name == prefix {
				calls = append(calls, call)
				break
			}
		}
	}
	return calls
}

func newTestEnv(t *testing.T, deviceId string) *testEnv {
	env := &testEnv{
		recorder: &recorder{fail: make(map[string]bool)},
		bootDir:  t.TempDir(),
		deviceId: deviceId,
		events: []extract.Event{
			{Kind: extract.EventProgress, Percent: 10},
			{Kind: extract.EventProgress, Percent: 60},
			{Kind: extract.EventFinished},
		},
		preseed: &preseed.Config{},
	}
	env.log = &fakeEventLog{Logger: testlogger.New(t), env: env}
	env.presenter = &fakePresenter{env: env}
	return env
}

// start writes the image (unless disabled) and creates the Orchestrator.
func (env *testEnv) start(t *testing.T) *Orchestrator {
	if !env.noImage {
		filename := filepath.Join(env.bootDir, constants.FileSystemImage)
		if err := os.WriteFile(filename, []byte("image"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	if env.catalog == nil {
		env.catalog = target.NewCatalog()
	}
	env.installer = New(Params{
		BootMountPoint: env.bootDir,
		Bootloader:     env.newBootloader,
		Catalog:        env.catalog,
		Detector:       env,
		Extractor:      env,
		Logger:         env.log,
		Network:        env,
		Presenter:      env.presenter,
		Preseed:        env,
		Rebooter:       &fakeRebooter{env: env},
		RootMountPoint: "/mnt/root",
		Storage:        env,
	})
	return env.installer
}

func (env *testEnv) DetectDevice() (string, error) {
	return env.deviceId, env.called("detect")
}

func (env *testEnv) BringUp(config *network.Config) error {
	env.networks = append(env.networks, *config)
	if err := env.called("bringUp %s", config.Mode); err != nil {
		return err
	}
	config.Interface = "eth0"
	return nil
}

func (env *testEnv) Format(partition string,
	fsType proto.FileSystemType) error {
	env.recordRootFileSystem()
	return env.called("format %s %s", partition, fsType)
}

func (env *testEnv) LoadPreseed() *preseed.Config {
	return env.preseed
}

func (env *testEnv) MakeLabel(disk string) error {
	env.recordRootFileSystem()
	return env.called("mklabel %s", disk)
}

func (env *testEnv) MakePartition(disk string, fsType proto.FileSystemType,
	start, end string) error {
	env.recordRootFileSystem()
	return env.called("mkpart %s %s %s %s", disk, fsType, start, end)
}

func (env *testEnv) MountBoot(device *target.Device) error {
	env.device = device
	return env.called("mountBoot %s", device.Boot.Device)
}

func (env *testEnv) MountRoot(device *target.Device, networkRoot bool) error {
	return env.called("mountRoot %s %t", device.Root(), networkRoot)
}

func (env *testEnv) Start(ctx context.Context, archive,
	destDir string) <-chan extract.Event {
	env.called("extract %s %s", filepath.Base(archive), destDir)
	env.extractCtx = ctx
	env.extracting = true
	events := make(chan extract.Event, len(env.events))
	for _, event := range env.events {
		events <- event
	}
	close(events)
	return events
}

func (env *testEnv) recordRootFileSystem() {
	env.rootFileSystems = append(env.rootFileSystems,
		env.device.RootFileSystem)
}

func (env *testEnv) newBootloader(device target.Device,
	networkConfig *network.Config) Bootloader {
	env.devices = append(env.devices, device)
	if networkConfig == nil {
		env.called("newBootloader local")
	} else {
		env.called("newBootloader network %s", networkConfig.Mode)
	}
	return &fakeBootloader{env: env}
}

func (b *fakeBootloader) CopyBootFiles() error {
	return b.env.called("copyBootFiles")
}

func (b *fakeBootloader) ConfigureCmdline() error {
	return b.env.called("cmdline")
}

func (b *fakeBootloader) ConfigureFstab() error {
	return b.env.called("fstab")
}

func (l *fakeEventLog) Dump(filename string) error {
	l.dumps = append(l.dumps, filename)
	return l.env.called("dump")
}

func (p *fakePresenter) SetLocale(locale string) error {
	if locale == "xx" {
		return errors.New("no translation")
	}
	p.locale = locale
	return nil
}

func (p *fakePresenter) SetProgress(percent uint) {
	p.progress = append(p.progress, percent)
}

func (p *fakePresenter) SetStatus(text string) {
	p.statuses = append(p.statuses, text)
}

func (p *fakePresenter) Translate(text string) string {
	if p.locale == "" {
		return text
	}
	return p.locale + ":" + text
}

func (p *fakePresenter) lastStatus() string {
	if len(p.statuses) < 1 {
		return ""
	}
	return p.statuses[len(p.statuses)-1]
}

func (r *fakeRebooter) Reboot() error {
	r.env.reboots++
	return r.env.called("reboot")
}

func (r *fakeRebooter) String() string {
	return "fake"
}
