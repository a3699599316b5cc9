package commands

import (
	"io"

	"github.com/Cloud-Foundations/target-installer/lib/log"
)

type CommandFunc func([]string, log.DebugLogger) error

type Command struct {
	Command string
	Args    string
	MinArgs int
	MaxArgs int
	CmdFunc CommandFunc
}

// PrintCommands will write the list of commands and their arguments.
func PrintCommands(writer io.Writer, commands []Command) {
	printCommands(writer, commands)
}

// RunCommands will run the command named by the first positional argument
// (after flag parsing) in args. The exit code for the process is returned:
// 0 on success, 1 if the command failed and 2 for usage errors.
func RunCommands(commands []Command, args []string, printUsage func(),
	logger log.DebugLogger) int {
	return runCommands(commands, args, printUsage, logger)
}
