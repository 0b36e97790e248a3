// Package repair makes the Cites and Cited-By fields of a bibliography
// mutually consistent and removes self-references.
package repair

import (
	"github.com/bibweb/citationweb/internal/bib"
)

// Report aggregates the outcome of the repair passes.
type Report struct {
	CitesAdded       int `json:"cites_added"`
	CitedByAdded     int `json:"cited_by_added"`
	Dangling         int `json:"dangling"` // references to nonexistent citekeys, skipped
	SelfCitesRemoved int `json:"self_cites_removed"`
}

// AddMissingLinks runs the full consistency closure: for every entry E and
// every T in E's Cites, T's Cited-By gains E, and symmetrically. Dangling
// targets (citekeys with no entry) are skipped and counted; hand-edited data
// routinely contains them and they must not abort the pass.
func AddMissingLinks(b *bib.Bibliography) Report {
	var r Report

	for _, e := range b.Entries() {
		for _, target := range bib.ParseListField(e.Get(bib.FieldCites)) {
			t := b.Get(target)
			if t == nil {
				r.Dangling++
				continue
			}
			if bib.AppendToListField(t, bib.FieldCitedBy, e.Key) {
				r.CitedByAdded++
			}
		}

		for _, target := range bib.ParseListField(e.Get(bib.FieldCitedBy)) {
			t := b.Get(target)
			if t == nil {
				r.Dangling++
				continue
			}
			if bib.AppendToListField(t, bib.FieldCites, e.Key) {
				r.CitesAdded++
			}
		}
	}

	return r
}

// RemoveSelfCitations strips each entry's own citekey from its Cites and
// Cited-By fields. Returns the number of occurrences removed.
func RemoveSelfCitations(b *bib.Bibliography) int {
	removed := 0

	for _, e := range b.Entries() {
		removed += bib.RemoveFromListField(e, bib.FieldCites, e.Key)
		removed += bib.RemoveFromListField(e, bib.FieldCitedBy, e.Key)
	}

	return removed
}

// Repair runs both passes: self-citation removal, then the link closure.
func Repair(b *bib.Bibliography) Report {
	removed := RemoveSelfCitations(b)
	r := AddMissingLinks(b)
	r.SelfCitesRemoved = removed
	return r
}

// SortFields sorts the named list fields of every entry alphabetically and
// re-serializes them with the canonical separator, so output is reproducible
// and diffs stay clean. Sorting does not deduplicate.
func SortFields(b *bib.Bibliography, fields ...string) {
	if len(fields) == 0 {
		fields = []string{bib.FieldCites, bib.FieldCitedBy}
	}

	for _, e := range b.Entries() {
		for _, field := range fields {
			bib.SortListField(e, field)
		}
	}
}
