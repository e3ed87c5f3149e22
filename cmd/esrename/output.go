package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/tools/txtar"

	"github.com/esrename/esrename"
	"github.com/esrename/esrename/cmd/internal/cliutil"
)

// displayName returns path relative to root, slash-separated, or the
// path itself when it lies outside root.
func displayName(path, root string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	rel, err := filepath.Rel(root, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return filepath.ToSlash(abs)
	}
	return filepath.ToSlash(rel)
}

// writeInPlace overwrites every unit whose specifiers changed.
func writeInPlace(units []*esrename.Unit) error {
	for _, u := range units {
		if !u.AST.Modified() {
			continue
		}
		info, err := os.Stat(u.Path)
		if err != nil {
			return err
		}
		if err := os.WriteFile(u.Path, u.Bytes(), info.Mode().Perm()); err != nil {
			return err
		}
	}
	return nil
}

// writeTree writes every unit under dir at its path relative to root.
func writeTree(units []*esrename.Unit, root, dir string) error {
	for _, u := range units {
		name := displayName(u.Path, root)
		if filepath.IsAbs(filepath.FromSlash(name)) {
			return fmt.Errorf("%s is outside %s", u.Path, root)
		}
		dst := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(dst, u.Bytes(), 0o644); err != nil {
			return err
		}
	}
	return nil
}

// writeArchive writes all units as one txtar archive.
func writeArchive(units []*esrename.Unit, root, file string) error {
	ar := &txtar.Archive{}
	for _, u := range units {
		ar.Files = append(ar.Files, txtar.File{
			Name: displayName(u.Path, root),
			Data: u.Bytes(),
		})
	}
	out, closeOut, err := cliutil.GetOutput(file)
	if err != nil {
		return err
	}
	defer closeOut()
	_, err = out.Write(txtar.Format(ar))
	return err
}

type summary struct {
	units      int
	discovered int
	modified   int
	rewritten  int
}

func summarize(units []*esrename.Unit, given int) summary {
	s := summary{units: len(units), discovered: len(units) - given}
	for _, u := range units {
		if u.AST.Modified() {
			s.modified++
		}
		for _, stmt := range esrename.Scan(u.AST) {
			if stmt.Source.Modified() {
				s.rewritten++
			}
		}
	}
	return s
}

var (
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	valueStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF"))
	boxStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444444")).
			Padding(0, 1)
)

// printSummary reports the run on stderr, styled when stderr is a
// terminal and plain otherwise.
func (c *cli) printSummary(s summary) {
	if c.NoColor || !cliutil.IsTerminal(os.Stderr) {
		fmt.Fprintf(os.Stderr, "%d units (%d discovered), %d modified, %d specifiers rewritten\n",
			s.units, s.discovered, s.modified, s.rewritten)
		return
	}
	row := func(label string, n int) string {
		return lipgloss.JoinHorizontal(lipgloss.Top,
			labelStyle.Width(12).Render(label),
			valueStyle.Render(fmt.Sprint(n)))
	}
	body := lipgloss.JoinVertical(lipgloss.Left,
		row("units", s.units),
		row("discovered", s.discovered),
		row("modified", s.modified),
		row("rewritten", s.rewritten),
	)
	fmt.Fprintln(os.Stderr, boxStyle.Render(body))
}
