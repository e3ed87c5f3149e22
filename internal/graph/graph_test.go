package graph

import (
	"slices"
	"testing"
)

func TestGraphBasic(t *testing.T) {
	g := New(0)

	g.AddNode("/src/a.js")
	g.AddNode("/src/b.js")
	g.AddEdge("/src/a.js", "/src/b.js")

	if !g.HasNode("/src/a.js") {
		t.Error("graph should have node a")
	}
	if !g.HasNode("/src/b.js") {
		t.Error("graph should have node b")
	}
	if deps := g.Dependencies("/src/a.js"); !slices.Equal(deps, []string{"/src/b.js"}) {
		t.Errorf("a dependencies = %v, want [/src/b.js]", deps)
	}
	if deps := g.Dependents("/src/b.js"); !slices.Equal(deps, []string{"/src/a.js"}) {
		t.Errorf("b dependents = %v, want [/src/a.js]", deps)
	}
	if g.Len() != 2 {
		t.Errorf("len = %d, want 2", g.Len())
	}
}

func TestAddEdgeCreatesNodes(t *testing.T) {
	g := New(0)

	// No AddNode calls, only AddEdge.
	g.AddEdge("a", "b")

	if !g.HasNode("a") {
		t.Error("AddEdge should create 'from' node")
	}
	if !g.HasNode("b") {
		t.Error("AddEdge should create 'to' node")
	}
	if want := []string{"a", "b"}; !slices.Equal(g.Nodes(), want) {
		t.Errorf("nodes = %v, want %v", g.Nodes(), want)
	}
}

func TestDuplicateEdges(t *testing.T) {
	g := New(0)

	g.AddEdge("a", "b")
	g.AddEdge("a", "b")
	g.AddNode("a")

	if len(g.Dependencies("a")) != 1 {
		t.Errorf("dependencies = %d, want 1 (duplicate edges deduplicated)", len(g.Dependencies("a")))
	}
	if g.Len() != 2 {
		t.Errorf("len = %d, want 2", g.Len())
	}
}

func TestResolutionOrderEmpty(t *testing.T) {
	g := New(0)
	order, cycles := g.ResolutionOrder()
	if len(order) != 0 || len(cycles) != 0 {
		t.Errorf("order = %v, cycles = %v, want both empty", order, cycles)
	}
	if g.HasCycles() {
		t.Error("empty graph should have no cycles")
	}
}

func TestResolutionOrderChain(t *testing.T) {
	g := New(3)
	g.AddEdge("a", "b")
	g.AddEdge("b", "c")

	order, cycles := g.ResolutionOrder()
	if len(cycles) != 0 {
		t.Errorf("cycles = %d, want 0", len(cycles))
	}
	if want := []string{"c", "b", "a"}; !slices.Equal(order, want) {
		t.Errorf("order = %v, want %v", order, want)
	}
}

func TestResolutionOrderDiamond(t *testing.T) {
	g := New(4)

	// a imports b and c, both import d.
	g.AddEdge("a", "b")
	g.AddEdge("a", "c")
	g.AddEdge("b", "d")
	g.AddEdge("c", "d")

	order, cycles := g.ResolutionOrder()
	if len(cycles) != 0 {
		t.Errorf("cycles = %d, want 0", len(cycles))
	}
	if want := []string{"d", "b", "c", "a"}; !slices.Equal(order, want) {
		t.Errorf("order = %v, want %v", order, want)
	}
}

func TestResolutionOrderCycleDependents(t *testing.T) {
	g := New(0)

	g.AddEdge("a", "b")
	g.AddEdge("b", "a")
	g.AddEdge("c", "a")

	order, cycles := g.ResolutionOrder()
	if len(cycles) != 1 {
		t.Fatalf("cycles = %d, want 1", len(cycles))
	}
	if len(cycles[0]) != 2 {
		t.Errorf("cycle length = %d, want 2", len(cycles[0]))
	}

	// c should still appear in the order despite importing a cycle member.
	if want := []string{"c"}; !slices.Equal(order, want) {
		t.Errorf("order = %v, want %v", order, want)
	}
	if !g.HasCycles() {
		t.Error("HasCycles = false, want true")
	}
}

func TestSelfLoop(t *testing.T) {
	g := New(0)

	g.AddEdge("a", "a")
	g.AddEdge("b", "a")

	order, cycles := g.ResolutionOrder()
	if len(cycles) != 1 {
		t.Fatalf("cycles = %d, want 1", len(cycles))
	}
	if !slices.Equal(cycles[0], []string{"a"}) {
		t.Errorf("self-loop cycle = %v, want [a]", cycles[0])
	}
	if want := []string{"b"}; !slices.Equal(order, want) {
		t.Errorf("order = %v, want %v", order, want)
	}
}

func TestFindCyclesMultipleSCCs(t *testing.T) {
	// Adapted from the Wikipedia Tarjan's example.
	// Three cycles ({a,b,c}, {d,e}, {f,g}), one self-loop (h).
	g := New(8)

	g.AddEdge("a", "b")
	g.AddEdge("b", "c")
	g.AddEdge("c", "a")
	g.AddEdge("d", "b")
	g.AddEdge("d", "c")
	g.AddEdge("d", "e")
	g.AddEdge("e", "d")
	g.AddEdge("f", "c")
	g.AddEdge("f", "g")
	g.AddEdge("g", "f")
	g.AddEdge("h", "e")
	g.AddEdge("h", "g")
	g.AddEdge("h", "h")

	cycles := g.FindCycles()
	if len(cycles) != 4 {
		t.Errorf("cycles = %d, want 4", len(cycles))
		for i, cyc := range cycles {
			t.Logf("  cycle %d: %v", i, cyc)
		}
	}

	order, _ := g.ResolutionOrder()
	if len(order) != 0 {
		t.Errorf("order = %v, want empty (all nodes are in cycles)", order)
	}
}

func TestResolutionOrderDisconnected(t *testing.T) {
	g := New(0)

	g.AddNode("c")
	g.AddNode("a")
	g.AddNode("b")

	order, cycles := g.ResolutionOrder()
	if len(cycles) != 0 {
		t.Errorf("cycles = %d, want 0", len(cycles))
	}

	// Disconnected nodes keep insertion order.
	if want := []string{"c", "a", "b"}; !slices.Equal(order, want) {
		t.Errorf("order = %v, want %v", order, want)
	}
}
