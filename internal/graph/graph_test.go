package graph

import (
	"reflect"
	"testing"

	"github.com/bibweb/citationweb/internal/bib"
	"github.com/bibweb/citationweb/internal/identity"
)

func entryID(t *testing.T, key, doi string) identity.Identity {
	t.Helper()
	e := bib.NewEntry(key, "article")
	if doi != "" {
		e.Set("doi", doi)
	}
	id, err := identity.FromEntry(e)
	if err != nil {
		t.Fatal(err)
	}
	return id
}

func doiID(t *testing.T, doi string) identity.Identity {
	t.Helper()
	id, err := identity.FromDOI(doi)
	if err != nil {
		t.Fatal(err)
	}
	return id
}

func TestAddNodeDedupes(t *testing.T) {
	g := New()

	a := entryID(t, "A", "10.1/a")
	if !g.AddNode(a) {
		t.Error("first AddNode = false")
	}
	if g.AddNode(a) {
		t.Error("repeated AddNode = true")
	}
	// Same DOI, different construction path: same node.
	if g.AddNode(doiID(t, "10.1/a")) {
		t.Error("bare-DOI duplicate added a node")
	}
	if g.NodeCount() != 1 {
		t.Errorf("NodeCount = %d, want 1", g.NodeCount())
	}
}

func TestAddNodeUpgradesBareDOI(t *testing.T) {
	g := New()

	bare := doiID(t, "10.1/a")
	g.AddNode(bare)

	full := entryID(t, "A", "10.1/a")
	if g.AddNode(full) {
		t.Error("upgrade reported as a new node")
	}

	stored, ok := g.Node(full.Key())
	if !ok {
		t.Fatal("node not found")
	}
	if stored.Entry() == nil {
		t.Error("bare-DOI node was not upgraded to the entry identity")
	}
}

func TestAddEdgeIdempotent(t *testing.T) {
	g := New()
	a := entryID(t, "A", "")
	b := entryID(t, "B", "")

	if !g.AddEdge(a, b) {
		t.Error("first AddEdge = false")
	}
	if g.AddEdge(a, b) {
		t.Error("repeated AddEdge = true")
	}
	if g.EdgeCount() != 1 {
		t.Errorf("EdgeCount = %d, want 1", g.EdgeCount())
	}
	// Missing endpoints were added.
	if g.NodeCount() != 2 {
		t.Errorf("NodeCount = %d, want 2", g.NodeCount())
	}
	// The reverse direction is a distinct edge.
	if !g.AddEdge(b, a) {
		t.Error("reverse edge not added")
	}
}

func TestNodesAndEdgesDeterministic(t *testing.T) {
	build := func(order []string) *Graph {
		g := New()
		ids := map[string]identity.Identity{
			"A": entryID(t, "A", ""),
			"B": entryID(t, "B", ""),
			"C": entryID(t, "C", ""),
		}
		for _, pair := range order {
			g.AddEdge(ids[pair[:1]], ids[pair[1:]])
		}
		return g
	}

	g1 := build([]string{"AB", "BC", "AC"})
	g2 := build([]string{"AC", "AB", "BC"})

	if !reflect.DeepEqual(g1.Edges(), g2.Edges()) {
		t.Errorf("edge order depends on insertion order:\n%v\n%v", g1.Edges(), g2.Edges())
	}

	keys := func(g *Graph) []string {
		var out []string
		for _, id := range g.Nodes() {
			out = append(out, id.Key())
		}
		return out
	}
	if !reflect.DeepEqual(keys(g1), keys(g2)) {
		t.Errorf("node order depends on insertion order:\n%v\n%v", keys(g1), keys(g2))
	}
}

func TestDegree(t *testing.T) {
	g := New()
	a := entryID(t, "A", "")
	b := entryID(t, "B", "")
	c := entryID(t, "C", "")

	g.AddEdge(a, b)
	g.AddEdge(c, b)
	g.AddEdge(b, a)

	if got := g.Degree(b.Key()); got != 3 {
		t.Errorf("Degree(B) = %d, want 3", got)
	}
	if got := g.Degree(a.Key()); got != 2 {
		t.Errorf("Degree(A) = %d, want 2", got)
	}
	if got := g.Degree("citekey:Nope"); got != 0 {
		t.Errorf("Degree(absent) = %d, want 0", got)
	}
}

func TestPruneLonely(t *testing.T) {
	g := New()
	a := entryID(t, "A", "")
	b := entryID(t, "B", "")
	lonely := entryID(t, "Lonely", "")

	g.AddNode(a)
	g.AddNode(b)
	g.AddNode(lonely)
	g.AddEdge(a, b)

	if got := g.PruneLonely(); got != 1 {
		t.Errorf("pruned = %d, want 1", got)
	}
	if g.HasNode(lonely) {
		t.Error("lonely node survived pruning")
	}
	if !g.HasNode(a) || !g.HasNode(b) {
		t.Error("connected nodes were pruned")
	}
}
