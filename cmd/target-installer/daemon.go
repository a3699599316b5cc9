//go:build linux
// +build linux

package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/Cloud-Foundations/target-installer/bootloader"
	"github.com/Cloud-Foundations/target-installer/extract"
	"github.com/Cloud-Foundations/target-installer/installer"
	"github.com/Cloud-Foundations/target-installer/lib/constants"
	"github.com/Cloud-Foundations/target-installer/lib/flags/loadflags"
	"github.com/Cloud-Foundations/target-installer/lib/log/memlogger"
	"github.com/Cloud-Foundations/target-installer/lib/power"
	"github.com/Cloud-Foundations/target-installer/network"
	"github.com/Cloud-Foundations/target-installer/preseed"
	"github.com/Cloud-Foundations/target-installer/status"
	"github.com/Cloud-Foundations/target-installer/storage"
	"github.com/Cloud-Foundations/target-installer/target"
	"github.com/Cloud-Foundations/tricorder/go/tricorder"
)

// bootFlagsStorage loads the flags file on the boot partition once it is
// mounted. Only flags consulted after that point take effect.
type bootFlagsStorage struct {
	*storage.Manager
	logger   *memlogger.Logger
	rebooter *power.Rebooter
}

func createLogger() *memlogger.Logger {
	return memlogger.New(memlogger.Options{
		AlsoLogToStderr: true,
		DebugLevel:      int16(*logDebugLevel),
		StartTime:       processStartTime,
	})
}

func newBootloaderFactory(
	logger *memlogger.Logger) installer.BootloaderFactory {
	params := bootloader.Params{
		BootMountPoint: *bootMountPoint,
		DryRun:         *dryRun,
		Logger:         logger,
		RootMountPoint: *rootMountPoint,
	}
	return func(device target.Device,
		networkConfig *network.Config) installer.Bootloader {
		return bootloader.New(device, networkConfig, params)
	}
}

func newCatalog() (*target.Catalog, error) {
	catalog := target.NewCatalog()
	if *targetsFile != "" {
		if err := catalog.LoadFile(*targetsFile); err != nil {
			return nil, err
		}
	}
	return catalog, nil
}

func runDaemon() error {
	tricorder.RegisterFlags()
	logger := createLogger()
	presenter := status.New(*translationsDirectory, logger)
	if err := presenter.RegisterMetrics("/installer"); err != nil {
		logger.Printf("error registering metrics: %s\n", err)
	}
	if err := startServer(*portNum, logger, presenter, logger); err != nil {
		logger.Printf("cannot start server: %s\n", err)
	}
	catalog, err := newCatalog()
	if err != nil {
		return err
	}
	detector := target.NewDetector(*procDirectory, logger)
	rebooter := power.New(*rebootDelay, *dryRun, logger)
	storageManager := &bootFlagsStorage{
		Manager: storage.New(storage.Params{
			BootMountPoint: *bootMountPoint,
			DryRun:         *dryRun,
			Logger:         logger,
			RootMountPoint: *rootMountPoint,
		}),
		logger:   logger,
		rebooter: rebooter,
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt,
		syscall.SIGTERM)
	orchestrator := installer.New(installer.Params{
		BootMountPoint: *bootMountPoint,
		Bootloader:     newBootloaderFactory(logger),
		Catalog:        catalog,
		Detector:       detector,
		Extractor: extract.New(extract.Params{
			ExternalXz: *externalXz,
			Logger:     logger,
		}),
		Logger: newUploadingLog(logger, detector),
		Network: network.NewBringer(network.BringerParams{
			DryRun:        *dryRun,
			InterfaceName: *interfaceName,
			Logger:        logger,
		}),
		Presenter: presenter,
		Preseed: preseed.NewFileLoader(
			filepath.Join(*bootMountPoint, constants.PreseedFile), logger),
		Rebooter:       rebooter,
		RootMountPoint: *rootMountPoint,
		Storage:        storageManager,
	})
	err = orchestrator.Run(ctx)
	stop()
	if err != nil {
		logger.Printf("error installing: %s\n", err)
		logger.Println("not rebooting, status page remains available")
		select {}
	}
	if *dryRun {
		logger.Println("dry run: sleeping indefinitely instead of rebooting")
		select {}
	}
	return nil
}

func (s *bootFlagsStorage) MountBoot(device *target.Device) error {
	if err := s.Manager.MountBoot(device); err != nil {
		return err
	}
	filename := filepath.Join(*bootMountPoint, constants.InstallerFlags)
	if err := loadflags.LoadFromFile(filename); err != nil {
		s.logger.Printf("error loading flags from: %s: %s\n", filename, err)
		return nil
	}
	s.logger.SetLevel(int16(*logDebugLevel))
	s.rebooter.Delay = *rebootDelay
	return nil
}
