package graph

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/bibweb/citationweb/internal/bib"
)

func exportGraph(t *testing.T) *Graph {
	t.Helper()
	a := bib.NewEntry("Smith2024", "article")
	a.Set("doi", "10.1/a")
	a.Set("Year", "2024")
	lib := buildBib(t, a)

	g, _, err := Build(lib, Options{})
	if err != nil {
		t.Fatal(err)
	}
	g.AddEdge(entryID(t, "Smith2024", "10.1/a"), doiID(t, "10.9/external"))
	return g
}

func TestToCytoscapeJSON(t *testing.T) {
	out, err := exportGraph(t).ToCytoscapeJSON()
	if err != nil {
		t.Fatalf("ToCytoscapeJSON: %v", err)
	}

	var elements CytoscapeElements
	if err := json.Unmarshal([]byte(out), &elements); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}

	if len(elements.Nodes) != 2 {
		t.Fatalf("nodes = %d, want 2", len(elements.Nodes))
	}
	if len(elements.Edges) != 1 {
		t.Fatalf("edges = %d, want 1", len(elements.Edges))
	}

	byID := make(map[string]CytoscapeNodeData)
	for _, n := range elements.Nodes {
		byID[n.Data.ID] = n.Data
	}

	local, ok := byID["10.1/a"]
	if !ok {
		t.Fatal("local node missing")
	}
	if local.Citekey != "Smith2024" || local.Year != "2024" || local.External {
		t.Errorf("local node data = %+v", local)
	}

	ext, ok := byID["10.9/external"]
	if !ok {
		t.Fatal("external node missing")
	}
	if !ext.External || ext.Citekey != "" {
		t.Errorf("external node data = %+v", ext)
	}

	edge := elements.Edges[0].Data
	if edge.Source != "10.1/a" || edge.Target != "10.9/external" {
		t.Errorf("edge = %+v", edge)
	}
}

func TestToDOT(t *testing.T) {
	out := exportGraph(t).ToDOT()

	if !strings.HasPrefix(out, "digraph citationweb {") {
		t.Errorf("missing digraph header:\n%s", out)
	}
	if !strings.Contains(out, `"10.1/a" [label="Smith2024"];`) {
		t.Errorf("local node not rendered:\n%s", out)
	}
	if !strings.Contains(out, `"10.9/external" [label="doi:10.9/external", style=dashed];`) {
		t.Errorf("external node not dashed:\n%s", out)
	}
	if !strings.Contains(out, `"10.1/a" -> "10.9/external";`) {
		t.Errorf("edge not rendered:\n%s", out)
	}
}

func TestQuoteDOT(t *testing.T) {
	if got := quoteDOT(`a"b\c`); got != `"a\"b\\c"` {
		t.Errorf("quoteDOT = %s", got)
	}
}
