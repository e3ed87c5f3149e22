// Package cliutil provides shared CLI utilities for the esrename command.
package cliutil

import (
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

// Globals holds the flags accepted before or after any subcommand.
type Globals struct {
	Verbose    int
	ConfigPath string
	HelpFlag   bool
	NoColor    bool
}

// ParseGlobalArgs parses global flags and extracts the subcommand from args.
// Flags handled: -v/--verbose, -vv, -c/--config, --no-color, -h/--help.
// Unrecognized flags are passed through to the subcommand.
func ParseGlobalArgs(args []string) (g Globals, cmd string, cmdArgs []string) {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "-h" || arg == "--help":
			g.HelpFlag = true
		case arg == "-v" || arg == "--verbose":
			if g.Verbose < 1 {
				g.Verbose = 1
			}
		case arg == "-vv":
			g.Verbose = 2
		case arg == "--no-color":
			g.NoColor = true
		case arg == "-c" || arg == "--config":
			if i+1 < len(args) {
				i++
				g.ConfigPath = args[i]
			}
		case strings.HasPrefix(arg, "--config="):
			g.ConfigPath = arg[len("--config="):]
		case len(arg) > 0 && arg[0] == '-':
			cmdArgs = append(cmdArgs, arg)
		default:
			if cmd == "" {
				cmd = arg
			} else {
				cmdArgs = append(cmdArgs, arg)
			}
		}
	}
	return
}

// GetOutput opens the output file or returns stdout.
func GetOutput(outputFile string) (*os.File, func(), error) {
	if outputFile == "" || outputFile == "-" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(outputFile)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { _ = f.Close() }, nil
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// PrintError writes a formatted error message to stderr.
func PrintError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
}
