package graph

import (
	"github.com/bibweb/citationweb/internal/bib"
	"github.com/bibweb/citationweb/internal/extract"
	"github.com/bibweb/citationweb/internal/identity"
)

// Options configures graph construction.
type Options struct {
	// IncludeExternalRefs reads each entry's full Extracted-DOIs field
	// instead of Cites, creating bare-DOI nodes on demand for targets
	// with no local entry. Off, only locally matched citations (the
	// Cites field) appear.
	IncludeExternalRefs bool

	// PruneLonely removes nodes with no incident edges after the full
	// edge set is built.
	PruneLonely bool
}

// BuildStats reports construction counters.
type BuildStats struct {
	Pruned   int `json:"pruned"`
	Dangling int `json:"dangling"` // Cites targets with no local entry, skipped
}

// Build constructs the citation graph of a finalized bibliography. The node
// and edge sets are independent of entry iteration order: node insertion
// dedupes by identity key and edge insertion is idempotent.
func Build(b *bib.Bibliography, opts Options) (*Graph, BuildStats, error) {
	g := New()
	var stats BuildStats

	// One node per entry first, so lonely entries exist before pruning
	// decides their fate.
	for _, e := range b.Entries() {
		id, err := identity.FromEntry(e)
		if err != nil {
			return nil, stats, err
		}
		g.AddNode(id)
	}

	for _, e := range b.Entries() {
		source, err := identity.FromEntry(e)
		if err != nil {
			return nil, stats, err
		}

		if opts.IncludeExternalRefs {
			addExternalEdges(g, b, source, e, &stats)
		} else {
			addLocalEdges(g, b, source, e, &stats)
		}
	}

	if opts.PruneLonely {
		stats.Pruned = g.PruneLonely()
	}

	return g, stats, nil
}

// addLocalEdges adds edges for the citekeys in the entry's Cites field.
func addLocalEdges(g *Graph, b *bib.Bibliography, source identity.Identity, e *bib.Entry, stats *BuildStats) {
	for _, citekey := range bib.ParseListField(e.Get(bib.FieldCites)) {
		target := b.Get(citekey)
		if target == nil {
			stats.Dangling++
			continue
		}
		targetID, err := identity.FromEntry(target)
		if err != nil {
			continue
		}
		g.AddEdge(source, targetID)
	}
}

// addExternalEdges adds edges for the DOIs in the entry's Extracted-DOIs
// field, creating bare-DOI nodes for targets with no local entry. The
// unreadable sentinel is skipped; it marks a failed extraction, not a
// citation.
func addExternalEdges(g *Graph, b *bib.Bibliography, source identity.Identity, e *bib.Entry, stats *BuildStats) {
	value := e.Get(bib.FieldExtractedDOIs)
	if value == "" {
		return
	}

	for _, doi := range bib.ParseListField(value, ";") {
		if doi == extract.UnreadableSentinel {
			continue
		}
		targetID, err := identity.FromDOI(doi)
		if err != nil {
			continue
		}
		// An entry identity sharing this DOI has the same key, so the
		// edge lands on the local node when one exists; otherwise a
		// bare-DOI node is created on demand.
		g.AddEdge(source, targetID)
	}
}
