// Command esrename rewrites the import specifiers of ES modules.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime/debug"

	"github.com/esrename/esrename"
	"github.com/esrename/esrename/cmd/internal/cliutil"
)

// Exit codes.
const (
	exitOK    = 0 // success
	exitError = 1 // user error or processing failure
	exitUsage = 2 // bad command line
)

const usage = `esrename - ES module import path rewriter

Usage:
  esrename <command> [options] [arguments]

Commands:
  rename   Rewrite import specifiers of modules (and their dependencies)
  scan     List the import and re-export statements of modules
  graph    Show dependency order and import cycles
  version  Show version

Common options:
  -c, --config FILE  Read settings from a YAML config file
  -v, --verbose      Enable debug logging
  -vv                Enable trace logging (implies -v)
  --no-color         Disable styled output
  -h, --help         Show help

Examples:
  esrename rename -root node_modules src/main.js
  esrename rename -c esrename.yaml -deps -o build src/main.js
  esrename scan src/*.js
  esrename graph -c esrename.yaml src/main.js
`

type cli struct {
	cliutil.Globals
	config *esrename.Config
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	globals, cmd, cmdArgs := cliutil.ParseGlobalArgs(args)
	c := &cli{Globals: globals}

	if c.HelpFlag && cmd == "" {
		_, _ = fmt.Fprint(os.Stdout, usage)
		return exitOK
	}
	if cmd == "" {
		_, _ = fmt.Fprint(os.Stderr, usage)
		return exitUsage
	}

	switch cmd {
	case "rename":
		return c.cmdRename(cmdArgs)
	case "scan":
		return c.cmdScan(cmdArgs)
	case "graph":
		return c.cmdGraph(cmdArgs)
	case "version":
		printVersion()
		return exitOK
	case "help":
		_, _ = fmt.Fprint(os.Stdout, usage)
		return exitOK
	default:
		_, _ = fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", cmd)
		_, _ = fmt.Fprint(os.Stderr, usage)
		return exitUsage
	}
}

func (c *cli) setupLogger() *slog.Logger {
	if c.Verbose == 0 {
		return nil
	}
	level := slog.LevelDebug
	if c.Verbose >= 2 {
		level = esrename.LevelTrace
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// loadConfig reads the -c file, or returns an empty configuration rooted
// at the working directory.
func (c *cli) loadConfig() (*esrename.Config, error) {
	if c.config != nil {
		return c.config, nil
	}
	if c.ConfigPath == "" {
		c.config = &esrename.Config{}
		return c.config, nil
	}
	cfg, err := esrename.LoadConfig(c.ConfigPath)
	if err != nil {
		return nil, err
	}
	c.config = cfg
	return cfg, nil
}

// parseUnits reads and parses each file as given on the command line.
func parseUnits(files []string) ([]*esrename.Unit, error) {
	units := make([]*esrename.Unit, 0, len(files))
	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, err
		}
		u, err := esrename.ParseUnit(file, data)
		if err != nil {
			return nil, fmt.Errorf("%s:%w", file, err)
		}
		units = append(units, u)
	}
	return units, nil
}

func interruptContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func printVersion() {
	version := "(devel)"
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		version = info.Main.Version
	}
	fmt.Printf("esrename %s\n", version)
}

func printError(format string, args ...any) {
	cliutil.PrintError(format, args...)
}
