// Package graph builds the directed citation graph of a bibliography:
// nodes are entry identities, edges mean "source cites target".
package graph

import (
	"sort"

	"github.com/bibweb/citationweb/internal/identity"
)

// Edge is a directed citation from Source to Target, by node key.
type Edge struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// Graph is a directed graph over entry identities. Nodes are deduplicated
// by identity key (DOI first, citekey fallback), so the same paper appearing
// as a local entry and as a bare referenced DOI is a single node. At most
// one edge exists per ordered (source, target) pair.
type Graph struct {
	nodes map[string]identity.Identity
	edges map[Edge]struct{}
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		nodes: make(map[string]identity.Identity),
		edges: make(map[Edge]struct{}),
	}
}

// AddNode inserts a node unless an equal identity is already present.
// Reports whether the node was added. When a full-entry identity arrives for
// a key first seen as a bare DOI, the richer identity replaces it.
func (g *Graph) AddNode(id identity.Identity) bool {
	key := id.Key()
	existing, ok := g.nodes[key]
	if !ok {
		g.nodes[key] = id
		return true
	}
	if existing.Entry() == nil && id.Entry() != nil {
		g.nodes[key] = id
	}
	return false
}

// HasNode reports whether an equal identity is present.
func (g *Graph) HasNode(id identity.Identity) bool {
	_, ok := g.nodes[id.Key()]
	return ok
}

// Node returns the identity stored under the given key.
func (g *Graph) Node(key string) (identity.Identity, bool) {
	id, ok := g.nodes[key]
	return id, ok
}

// AddEdge inserts the directed edge source -> target, adding missing nodes.
// Inserting an already-present edge is a no-op; reports whether the edge set
// changed.
func (g *Graph) AddEdge(source, target identity.Identity) bool {
	g.AddNode(source)
	g.AddNode(target)

	e := Edge{Source: source.Key(), Target: target.Key()}
	if _, ok := g.edges[e]; ok {
		return false
	}
	g.edges[e] = struct{}{}
	return true
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int {
	return len(g.nodes)
}

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int {
	return len(g.edges)
}

// Nodes returns the node identities sorted by key, independent of insertion
// order.
func (g *Graph) Nodes() []identity.Identity {
	keys := make([]string, 0, len(g.nodes))
	for key := range g.nodes {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	nodes := make([]identity.Identity, 0, len(keys))
	for _, key := range keys {
		nodes = append(nodes, g.nodes[key])
	}
	return nodes
}

// Edges returns the edges sorted by (source, target), independent of
// insertion order.
func (g *Graph) Edges() []Edge {
	edges := make([]Edge, 0, len(g.edges))
	for e := range g.edges {
		edges = append(edges, e)
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].Source != edges[j].Source {
			return edges[i].Source < edges[j].Source
		}
		return edges[i].Target < edges[j].Target
	})
	return edges
}

// Degree returns the total (in + out) degree of the node with the given key.
// Self-edges count twice.
func (g *Graph) Degree(key string) int {
	degree := 0
	for e := range g.edges {
		if e.Source == key {
			degree++
		}
		if e.Target == key {
			degree++
		}
	}
	return degree
}

// PruneLonely removes every node with no incident edges and returns the
// number removed. Call only after the full edge set is built; pruning during
// construction could drop a node that later gains an edge.
func (g *Graph) PruneLonely() int {
	withEdges := make(map[string]bool, len(g.nodes))
	for e := range g.edges {
		withEdges[e.Source] = true
		withEdges[e.Target] = true
	}

	pruned := 0
	for key := range g.nodes {
		if !withEdges[key] {
			delete(g.nodes, key)
			pruned++
		}
	}
	return pruned
}
