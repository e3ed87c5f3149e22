package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/esrename/esrename"
)

const renameUsage = `esrename rename - Rewrite import specifiers

Usage:
  esrename rename [options] FILE...

Relative specifiers resolve against the importing file. Bare specifiers
resolve through the config file's paths map, then under each -root (or the
config file's roots) in order.

Options:
  -base PATH      Write specifiers relative to PATH
  -deps           Follow renamed specifiers and rewrite dependencies too
  -root DIR       Resolve bare specifiers under DIR (repeatable)
  -ext LIST       Comma-separated module extensions (default .js)
  -strict         Reject resolved paths with an unknown extension
  -j N            Resolve at most N specifiers at once (0 = no limit)
  -w              Write results back to the source files
  -o DIR          Write results under DIR, mirroring the base path
  -archive FILE   Write results as a txtar archive ("-" for stdout)
  -h, --help      Show help

Without -w, -o or -archive a single file is printed to stdout and several
files are printed as a txtar archive.

Examples:
  esrename rename -root node_modules src/main.js
  esrename rename -deps -base src -o build src/main.js
  esrename rename -c esrename.yaml -deps -archive out.txtar src/main.js
`

type stringList []string

func (s *stringList) String() string { return strings.Join(*s, ",") }

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

func (c *cli) cmdRename(args []string) int {
	fs := flag.NewFlagSet("rename", flag.ContinueOnError)
	fs.Usage = func() { fmt.Fprint(os.Stderr, renameUsage) }

	base := fs.String("base", "", "write specifiers relative to PATH")
	deps := fs.Bool("deps", false, "rewrite dependencies too")
	var roots stringList
	fs.Var(&roots, "root", "resolve bare specifiers under DIR")
	exts := fs.String("ext", "", "comma-separated module extensions")
	strict := fs.Bool("strict", false, "reject unknown extensions")
	jobs := fs.Int("j", 0, "concurrent resolutions")
	write := fs.Bool("w", false, "write results to source files")
	outDir := fs.String("o", "", "write results under DIR")
	archive := fs.String("archive", "", "write results as txtar archive")
	help := fs.Bool("h", false, "show help")
	fs.BoolVar(help, "help", false, "show help")

	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if *help || c.HelpFlag {
		_, _ = fmt.Fprint(os.Stdout, renameUsage)
		return exitOK
	}

	files := fs.Args()
	if len(files) == 0 {
		printError("no files specified")
		fmt.Fprint(os.Stderr, renameUsage)
		return exitUsage
	}
	if *write && (*outDir != "" || *archive != "") {
		printError("-w cannot be combined with -o or -archive")
		return exitUsage
	}

	var extList []string
	if *exts != "" {
		extList = strings.Split(*exts, ",")
		if err := esrename.ValidateExtensions(extList); err != nil {
			printError("-ext: %v", err)
			return exitUsage
		}
	}

	cfg, err := c.loadConfig()
	if err != nil {
		printError("%v", err)
		return exitError
	}

	resolver := cfg.Resolver()
	resolver.Roots = slices.Concat(resolver.Roots, roots)
	opts := cfg.Options()
	if *base != "" {
		opts = append(opts, esrename.WithBasePath(*base))
	}
	if *deps {
		opts = append(opts, esrename.WithRenameDependencies(true))
	}
	if len(extList) > 0 {
		opts = append(opts, esrename.WithExtensions(extList...))
		resolver.Extensions = extList
	}
	if *strict {
		opts = append(opts, esrename.WithStrictExtensions(true))
	}
	if *jobs > 0 {
		opts = append(opts, esrename.WithConcurrency(*jobs))
	}
	if logger := c.setupLogger(); logger != nil {
		opts = append(opts, esrename.WithLogger(logger))
	}

	units, err := parseUnits(files)
	if err != nil {
		printError("%v", err)
		return exitError
	}

	ctx, stop := interruptContext()
	defer stop()
	units, err = esrename.Rename(ctx, units, resolver, opts...)
	if err != nil {
		printError("rename failed: %v", err)
		return exitError
	}

	root := outputRoot(*base, cfg)
	switch {
	case *write:
		err = writeInPlace(units)
	case *outDir != "":
		err = writeTree(units, root, *outDir)
	case *archive != "":
		err = writeArchive(units, root, *archive)
	case len(units) == 1:
		_, err = os.Stdout.Write(units[0].Bytes())
	default:
		err = writeArchive(units, root, "-")
	}
	if err != nil {
		printError("%v", err)
		return exitError
	}

	c.printSummary(summarize(units, len(files)))
	return exitOK
}

// outputRoot is the directory output paths are made relative to: the
// base path when one is set, else the working directory.
func outputRoot(base string, cfg *esrename.Config) string {
	if base == "" && cfg.BasePath != "" {
		base = cfg.BasePath
		if cfg.BaseDir != "" && !filepath.IsAbs(base) {
			base = filepath.Join(cfg.BaseDir, base)
		}
	}
	if base == "" {
		base = "."
	}
	abs, err := filepath.Abs(base)
	if err != nil {
		return base
	}
	return abs
}
