package graph

import (
	"testing"

	"github.com/bibweb/citationweb/internal/bib"
)

func buildBib(t *testing.T, entries ...*bib.Entry) *bib.Bibliography {
	t.Helper()
	b := bib.NewBibliography()
	for _, e := range entries {
		if err := b.Add(e); err != nil {
			t.Fatal(err)
		}
	}
	return b
}

func citingEntry(key, doi, cites, extracted string) *bib.Entry {
	e := bib.NewEntry(key, "article")
	if doi != "" {
		e.Set("doi", doi)
	}
	if cites != "" {
		e.Set(bib.FieldCites, cites)
	}
	if extracted != "" {
		e.Set(bib.FieldExtractedDOIs, extracted)
	}
	return e
}

func TestBuildLocal(t *testing.T) {
	lib := buildBib(t,
		citingEntry("A", "10.1/a", "B, Ghost", ""),
		citingEntry("B", "10.1/b", "", ""),
		citingEntry("Lonely", "", "", ""),
	)

	g, stats, err := Build(lib, Options{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if g.NodeCount() != 3 {
		t.Errorf("NodeCount = %d, want 3 (lonely node kept)", g.NodeCount())
	}
	if g.EdgeCount() != 1 {
		t.Errorf("EdgeCount = %d, want 1", g.EdgeCount())
	}
	if stats.Dangling != 1 {
		t.Errorf("Dangling = %d, want 1", stats.Dangling)
	}

	edges := g.Edges()
	if edges[0].Source != "10.1/a" || edges[0].Target != "10.1/b" {
		t.Errorf("edge = %+v", edges[0])
	}
}

func TestBuildPruneLonely(t *testing.T) {
	lib := buildBib(t,
		citingEntry("A", "", "B", ""),
		citingEntry("B", "", "", ""),
		citingEntry("Lonely", "", "", ""),
	)

	g, stats, err := Build(lib, Options{PruneLonely: true})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if stats.Pruned != 1 {
		t.Errorf("Pruned = %d, want 1", stats.Pruned)
	}
	if g.NodeCount() != 2 {
		t.Errorf("NodeCount = %d, want 2", g.NodeCount())
	}
}

func TestBuildExternal(t *testing.T) {
	lib := buildBib(t,
		citingEntry("A", "10.1/a", "", "10.1/b; 10.9/external"),
		citingEntry("B", "10.1/b", "", ""),
	)

	g, _, err := Build(lib, Options{IncludeExternalRefs: true})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	// A, B, plus one bare-DOI node for the external reference.
	if g.NodeCount() != 3 {
		t.Errorf("NodeCount = %d, want 3", g.NodeCount())
	}
	if g.EdgeCount() != 2 {
		t.Errorf("EdgeCount = %d, want 2", g.EdgeCount())
	}

	// The locally matched edge lands on B's node, not a parallel bare one.
	node, ok := g.Node("10.1/b")
	if !ok {
		t.Fatal("node 10.1/b missing")
	}
	if node.Entry() == nil {
		t.Error("edge to a known DOI created a bare node instead of using the entry")
	}

	external, ok := g.Node("10.9/external")
	if !ok {
		t.Fatal("external node missing")
	}
	if external.Entry() != nil {
		t.Error("external node unexpectedly has a local entry")
	}
}

func TestBuildExternalSkipsSentinel(t *testing.T) {
	lib := buildBib(t, citingEntry("A", "10.1/a", "", ""))
	// An empty Extracted-DOIs field marks an unreadable attachment.
	lib.Get("A").Set(bib.FieldExtractedDOIs, "")

	g, _, err := Build(lib, Options{IncludeExternalRefs: true})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if g.EdgeCount() != 0 {
		t.Errorf("EdgeCount = %d, want 0", g.EdgeCount())
	}
	if g.NodeCount() != 1 {
		t.Errorf("NodeCount = %d, want only the entry node", g.NodeCount())
	}
}

func TestBuildOrderIndependent(t *testing.T) {
	make2 := func(reversed bool) *Graph {
		a := citingEntry("A", "10.1/a", "B", "")
		b := citingEntry("B", "10.1/b", "A", "")
		var lib *bib.Bibliography
		if reversed {
			lib = buildBib(t, b, a)
		} else {
			lib = buildBib(t, a, b)
		}
		g, _, err := Build(lib, Options{})
		if err != nil {
			t.Fatal(err)
		}
		return g
	}

	g1, g2 := make2(false), make2(true)
	if g1.NodeCount() != g2.NodeCount() || g1.EdgeCount() != g2.EdgeCount() {
		t.Error("graph shape depends on entry order")
	}

	e1, e2 := g1.Edges(), g2.Edges()
	for i := range e1 {
		if e1[i] != e2[i] {
			t.Errorf("edge %d differs: %+v vs %+v", i, e1[i], e2[i])
		}
	}
}
