package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/esrename/esrename"
)

const graphUsage = `esrename graph - Show dependency order and import cycles

Usage:
  esrename graph [options] FILE...

Resolves FILE and everything it imports (as rename -deps would, without
writing anything) and prints the modules with dependencies first. Modules
on an import cycle are listed separately.

Options:
  -root DIR   Resolve bare specifiers under DIR (repeatable)
  -edges      Also print each module's imports
  -h, --help  Show help

Examples:
  esrename graph -root node_modules src/main.js
  esrename graph -c esrename.yaml -edges src/main.js
`

func (c *cli) cmdGraph(args []string) int {
	fs := flag.NewFlagSet("graph", flag.ContinueOnError)
	fs.Usage = func() { fmt.Fprint(os.Stderr, graphUsage) }

	var roots stringList
	fs.Var(&roots, "root", "resolve bare specifiers under DIR")
	edges := fs.Bool("edges", false, "print each module's imports")
	help := fs.Bool("h", false, "show help")
	fs.BoolVar(help, "help", false, "show help")

	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if *help || c.HelpFlag {
		_, _ = fmt.Fprint(os.Stdout, graphUsage)
		return exitOK
	}

	files := fs.Args()
	if len(files) == 0 {
		printError("no files specified")
		fmt.Fprint(os.Stderr, graphUsage)
		return exitUsage
	}

	cfg, err := c.loadConfig()
	if err != nil {
		printError("%v", err)
		return exitError
	}
	resolver := cfg.Resolver()
	resolver.Roots = append(append([]string(nil), resolver.Roots...), roots...)

	// Specifiers are rewritten to absolute paths so the graph can map
	// them back without a base path.
	var opts []esrename.Option
	if len(cfg.Extensions) > 0 {
		opts = append(opts, esrename.WithExtensions(cfg.Extensions...))
	}
	runOpts := append([]esrename.Option{esrename.WithRenameDependencies(true)}, opts...)
	if logger := c.setupLogger(); logger != nil {
		runOpts = append(runOpts, esrename.WithLogger(logger))
	}

	units, err := parseUnits(files)
	if err != nil {
		printError("%v", err)
		return exitError
	}
	ctx, stop := interruptContext()
	defer stop()
	units, err = esrename.Rename(ctx, units, resolver, runOpts...)
	if err != nil {
		printError("rename failed: %v", err)
		return exitError
	}

	g, err := esrename.Graph(units, opts...)
	if err != nil {
		printError("%v", err)
		return exitError
	}

	root := outputRoot("", cfg)
	order, _ := g.Order()
	for _, node := range order {
		fmt.Println(displayName(node, root))
		if *edges {
			printImports(g, node, root)
		}
	}
	for i, cycle := range g.Cycles() {
		names := make([]string, len(cycle))
		for j, node := range cycle {
			names[j] = displayName(node, root)
		}
		fmt.Printf("cycle %d: %s\n", i+1, strings.Join(names, " -> "))
		if *edges {
			for _, node := range cycle {
				fmt.Println(displayName(node, root))
				printImports(g, node, root)
			}
		}
	}
	if g.HasCycles() {
		return exitError
	}
	return exitOK
}

func printImports(g *esrename.DependencyGraph, node, root string) {
	for _, dep := range g.Imports(node) {
		fmt.Printf("  -> %s\n", displayName(dep, root))
	}
}
