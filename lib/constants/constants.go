package constants

const (
	InstallerPortNumber = 6978

	BootMountPoint = "/mnt/boot"
	RootMountPoint = "/mnt/root"

	// Relative to the boot partition mount point.
	FileSystemImage   = "filesystem.tar.xz"
	InstallLog        = "install.log"
	InstallerFlags    = "flags.installer"
	PreseedFile       = "preseed.cfg"
	TranslationSuffix = ".json"

	DefaultInterface       = "eth0"
	DefaultTranslationsDir = "/usr/share/target-installer/translations"

	// Kernel command-line variable naming the hardware.
	DeviceCmdlineVariable = "targetdev"
)
