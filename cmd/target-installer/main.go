//go:build linux
// +build linux

package main

import (
	"flag"
	"fmt"
	stdlog "log"
	"os"
	"time"

	"github.com/Cloud-Foundations/target-installer/lib/constants"
	"github.com/Cloud-Foundations/target-installer/lib/flags/commands"
	"github.com/Cloud-Foundations/target-installer/lib/flags/loadflags"
	"github.com/Cloud-Foundations/target-installer/lib/log/debuglogger"
)

var (
	bootMountPoint = flag.String("bootMountPoint", constants.BootMountPoint,
		"Mount point for the boot partition holding the installer payload")
	dryRun = flag.Bool("dryRun", ifUnprivileged(),
		"If true, do not make changes")
	externalXz = flag.Bool("externalXz", true,
		"If true, decompress with the xz programme when it is available")
	interfaceName = flag.String("interface", constants.DefaultInterface,
		"Network interface to configure for a network root")
	logDebugLevel = flag.Int("logDebugLevel", -1, "Debug log level")
	logTftpServer = flag.String("logTftpServer", "",
		"Hostname of TFTP server to upload the install log to")
	portNum = flag.Uint("portNum", constants.InstallerPortNumber,
		"Port number to allocate and listen on for HTTP")
	procDirectory = flag.String("procDirectory", "/proc",
		"Directory where procfs is mounted")
	rebootDelay = flag.Duration("rebootDelay", 5*time.Second,
		"Time to wait after a successful install before rebooting")
	rootMountPoint = flag.String("rootMountPoint", constants.RootMountPoint,
		"Mount point for the new root file-system")
	targetsFile = flag.String("targetsFile", "",
		"Optional JSON file with extra target device descriptions")
	translationsDirectory = flag.String("translationsDirectory",
		constants.DefaultTranslationsDir,
		"Directory containing <locale>.json translation files")

	processStartTime = time.Now()
)

func printUsage() {
	w := flag.CommandLine.Output()
	fmt.Fprintln(w,
		"Usage: target-installer [flags...] [command [args...]]")
	fmt.Fprintln(w, "Common flags:")
	flag.PrintDefaults()
	fmt.Fprintln(w, "Commands:")
	commands.PrintCommands(w, subcommands)
	fmt.Fprintln(w, "With no command the installation is performed.")
}

var subcommands = []commands.Command{
	{Command: "detect-device", Args: "", MinArgs: 0, MaxArgs: 0, CmdFunc: detectDeviceSubcommand},
	{Command: "dhcp-request", Args: "", MinArgs: 0, MaxArgs: 0, CmdFunc: dhcpRequestSubcommand},
	{Command: "extract", Args: "archive root-dir", MinArgs: 2, MaxArgs: 2, CmdFunc: extractSubcommand},
	{Command: "list-targets", Args: "", MinArgs: 0, MaxArgs: 0, CmdFunc: listTargetsSubcommand},
	{Command: "show-preseed", Args: "[filename]", MinArgs: 0, MaxArgs: 1, CmdFunc: showPreseedSubcommand},
}

func ifUnprivileged() bool {
	if os.Geteuid() != 0 {
		return true
	}
	return false
}

func processCommand(args []string) {
	if len(args) < 1 {
		if err := runDaemon(); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
	logger := debuglogger.New(stdlog.New(os.Stderr, "", 0))
	logger.SetLevel(int16(*logDebugLevel))
	os.Exit(commands.RunCommands(subcommands, args, printUsage, logger))
}

func main() {
	if err := loadflags.LoadForDaemon("target-installer"); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	flag.Usage = printUsage
	flag.Parse()
	processCommand(flag.Args())
}
