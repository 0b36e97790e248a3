package graph

import (
	"encoding/json"
	"fmt"
)

// CytoscapeElements is the Cytoscape.js elements format, the contract with
// external graph viewers.
type CytoscapeElements struct {
	Nodes []CytoscapeNode `json:"nodes"`
	Edges []CytoscapeEdge `json:"edges"`
}

// CytoscapeNode wraps node data in Cytoscape.js format.
type CytoscapeNode struct {
	Data CytoscapeNodeData `json:"data"`
}

// CytoscapeNodeData contains the node data fields.
type CytoscapeNodeData struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Citekey  string `json:"citekey,omitempty"`
	DOI      string `json:"doi,omitempty"`
	Year     string `json:"year,omitempty"`
	External bool   `json:"external"` // bare-DOI node with no local entry
}

// CytoscapeEdge wraps edge data in Cytoscape.js format.
type CytoscapeEdge struct {
	Data CytoscapeEdgeData `json:"data"`
}

// CytoscapeEdgeData contains the edge data fields.
type CytoscapeEdgeData struct {
	ID     string `json:"id"`
	Source string `json:"source"`
	Target string `json:"target"`
}

// ToCytoscapeJSON serializes the graph to Cytoscape.js JSON with nodes and
// edges in deterministic order.
func (g *Graph) ToCytoscapeJSON() (string, error) {
	elements := CytoscapeElements{
		Nodes: make([]CytoscapeNode, 0, g.NodeCount()),
		Edges: make([]CytoscapeEdge, 0, g.EdgeCount()),
	}

	for _, id := range g.Nodes() {
		data := CytoscapeNodeData{
			ID:       id.Key(),
			Label:    id.String(),
			Citekey:  id.Citekey(),
			DOI:      id.DOI(),
			External: id.Entry() == nil,
		}
		if e := id.Entry(); e != nil {
			data.Year = e.Get("Year")
		}
		elements.Nodes = append(elements.Nodes, CytoscapeNode{Data: data})
	}

	for i, e := range g.Edges() {
		elements.Edges = append(elements.Edges, CytoscapeEdge{
			Data: CytoscapeEdgeData{
				ID:     fmt.Sprintf("e%d", i),
				Source: e.Source,
				Target: e.Target,
			},
		})
	}

	jsonBytes, err := json.MarshalIndent(elements, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling Cytoscape elements: %w", err)
	}
	return string(jsonBytes), nil
}
