// Package graph provides the module dependency graph built from a rename run.
package graph

import (
	"slices"
)

// Graph is a dependency graph of module paths with forward edges.
// Nodes keep their insertion order, which makes every traversal
// deterministic.
type Graph struct {
	nodes []string
	index map[string]int
	edges map[string][]string
}

// New returns a graph with no nodes or edges, sized for n nodes.
func New(n int) *Graph {
	return &Graph{
		nodes: make([]string, 0, n),
		index: make(map[string]int, n),
		edges: make(map[string][]string, n),
	}
}

// AddNode registers a module. Duplicate calls are no-ops.
func (g *Graph) AddNode(node string) {
	if _, ok := g.index[node]; ok {
		return
	}
	g.index[node] = len(g.nodes)
	g.nodes = append(g.nodes, node)
}

// AddEdge records that "from" imports "to". Missing nodes are created
// implicitly. Duplicate edges are ignored.
func (g *Graph) AddEdge(from, to string) {
	g.AddNode(from)
	g.AddNode(to)

	if slices.Contains(g.edges[from], to) {
		return
	}
	g.edges[from] = append(g.edges[from], to)
}

// Nodes returns all modules in insertion order.
func (g *Graph) Nodes() []string {
	return slices.Clone(g.nodes)
}

// Len returns the number of nodes.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// Dependencies returns the modules that node imports, in the order the
// edges were added.
func (g *Graph) Dependencies(node string) []string {
	return g.edges[node]
}

// Dependents returns the modules that import node, in node order.
func (g *Graph) Dependents(node string) []string {
	var out []string
	for _, n := range g.nodes {
		if slices.Contains(g.edges[n], node) {
			out = append(out, n)
		}
	}
	return out
}

// HasNode reports whether the module exists in the graph.
func (g *Graph) HasNode(node string) bool {
	_, ok := g.index[node]
	return ok
}

// ResolutionOrder returns modules ordered so that dependencies come before
// dependents, using Tarjan's algorithm. Strongly connected components with
// more than one node (or a single node with a self-loop) are reported as
// cycles and excluded from the order.
func (g *Graph) ResolutionOrder() (order []string, cycles [][]string) {
	for _, scc := range g.components() {
		if g.isCycle(scc) {
			cycles = append(cycles, scc)
		} else {
			order = append(order, scc[0])
		}
	}
	return order, cycles
}

// FindCycles returns every import cycle in the graph.
func (g *Graph) FindCycles() [][]string {
	_, cycles := g.ResolutionOrder()
	return cycles
}

// HasCycles reports whether the graph contains any cycles.
func (g *Graph) HasCycles() bool {
	for _, scc := range g.components() {
		if g.isCycle(scc) {
			return true
		}
	}
	return false
}

func (g *Graph) isCycle(scc []string) bool {
	return len(scc) > 1 || slices.Contains(g.edges[scc[0]], scc[0])
}

// components returns the strongly connected components in reverse
// topological order (dependencies first). Within a component, nodes are
// listed in the order they were popped from the Tarjan stack.
func (g *Graph) components() [][]string {
	var (
		index    int
		stack    []string
		onStack  = make(map[string]bool)
		indices  = make(map[string]int)
		lowlinks = make(map[string]int)
		sccs     [][]string
	)

	var strongConnect func(node string)
	strongConnect = func(node string) {
		indices[node] = index
		lowlinks[node] = index
		index++
		stack = append(stack, node)
		onStack[node] = true

		for _, dep := range g.edges[node] {
			if _, visited := indices[dep]; !visited {
				strongConnect(dep)
				lowlinks[node] = min(lowlinks[node], lowlinks[dep])
			} else if onStack[dep] {
				lowlinks[node] = min(lowlinks[node], indices[dep])
			}
		}

		if lowlinks[node] == indices[node] {
			var scc []string
			for {
				w := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				onStack[w] = false
				scc = append(scc, w)
				if w == node {
					break
				}
			}
			sccs = append(sccs, scc)
		}
	}

	for _, node := range g.nodes {
		if _, visited := indices[node]; !visited {
			strongConnect(node)
		}
	}
	return sccs
}
