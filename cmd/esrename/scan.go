package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/esrename/esrename"
	"github.com/esrename/esrename/internal/types"
)

const scanUsage = `esrename scan - List import and re-export statements

Usage:
  esrename scan [options] FILE...

Prints one line per statement that names another module:
FILE:LINE:COL KIND SPECIFIER. Dynamic import() calls are not listed.

Options:
  --json      Output as JSON
  -h, --help  Show help

Examples:
  esrename scan src/main.js
  esrename scan --json src/*.js
`

type scanEntry struct {
	File      string `json:"file"`
	Line      int    `json:"line"`
	Column    int    `json:"column"`
	Kind      string `json:"kind"`
	Specifier string `json:"specifier"`
	TypeOnly  bool   `json:"typeOnly,omitempty"`
}

func (c *cli) cmdScan(args []string) int {
	fs := flag.NewFlagSet("scan", flag.ContinueOnError)
	fs.Usage = func() { fmt.Fprint(os.Stderr, scanUsage) }

	jsonOut := fs.Bool("json", false, "output as JSON")
	help := fs.Bool("h", false, "show help")
	fs.BoolVar(help, "help", false, "show help")

	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if *help || c.HelpFlag {
		_, _ = fmt.Fprint(os.Stdout, scanUsage)
		return exitOK
	}

	files := fs.Args()
	if len(files) == 0 {
		printError("no files specified")
		fmt.Fprint(os.Stderr, scanUsage)
		return exitUsage
	}

	units, err := parseUnits(files)
	if err != nil {
		printError("%v", err)
		return exitError
	}

	entries := []scanEntry{}
	for _, u := range units {
		entries = append(entries, scanUnit(u)...)
	}

	if *jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(entries); err != nil {
			printError("%v", err)
			return exitError
		}
		return exitOK
	}
	for _, e := range entries {
		fmt.Printf("%s:%d:%d %s %s\n", e.File, e.Line, e.Column, e.Kind, e.Specifier)
	}
	return exitOK
}

func scanUnit(u *esrename.Unit) []scanEntry {
	var entries []scanEntry
	for _, stmt := range esrename.Scan(u.AST) {
		pos := types.PositionOf(u.AST.Source, stmt.Source.Span.Start)
		entries = append(entries, scanEntry{
			File:      u.Path,
			Line:      pos.Line,
			Column:    pos.Column,
			Kind:      stmt.Kind.String(),
			Specifier: stmt.Source.Value,
			TypeOnly:  stmt.TypeOnly,
		})
	}
	return entries
}
