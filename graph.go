package esrename

import (
	"path/filepath"

	"github.com/esrename/esrename/internal/graph"
)

// DependencyGraph records which module imports which after a run. Nodes
// are canonical paths.
type DependencyGraph struct {
	g *graph.Graph
}

// Graph builds the dependency graph of units from their current specifier
// values. Pass the same WithBasePath and WithExtensions options used for
// the run so values can be mapped back to canonical paths.
func Graph(units []*Unit, opts ...Option) (*DependencyGraph, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	norm := normalizer{basePath: cfg.basePath, extensions: cfg.extensions}

	g := graph.New(len(units))
	for _, u := range units {
		if u == nil || u.AST == nil {
			return nil, ErrNilUnit
		}
		from, err := norm.canonical(u.Path)
		if err != nil {
			return nil, err
		}
		g.AddNode(from)
		for _, stmt := range Scan(u.AST) {
			target := filepath.FromSlash(stmt.Source.Value)
			if cfg.basePath != "" && !filepath.IsAbs(target) {
				target = filepath.Join(cfg.basePath, target)
			}
			to, err := norm.canonical(target)
			if err != nil {
				return nil, err
			}
			g.AddEdge(from, to)
		}
	}
	return &DependencyGraph{g: g}, nil
}

// Nodes returns every module in the graph in discovery order.
func (d *DependencyGraph) Nodes() []string {
	return d.g.Nodes()
}

// Imports returns the modules imported by path.
func (d *DependencyGraph) Imports(path string) []string {
	return d.g.Dependencies(path)
}

// ImportedBy returns the modules importing path.
func (d *DependencyGraph) ImportedBy(path string) []string {
	return d.g.Dependents(path)
}

// Order returns modules with dependencies before the modules importing
// them. Modules on an import cycle are left out of order and returned as
// cycles instead.
func (d *DependencyGraph) Order() (order []string, cycles [][]string) {
	return d.g.ResolutionOrder()
}

// Cycles returns every import cycle.
func (d *DependencyGraph) Cycles() [][]string {
	return d.g.FindCycles()
}

// HasCycles reports whether any module imports itself, directly or
// through other modules.
func (d *DependencyGraph) HasCycles() bool {
	return d.g.HasCycles()
}
