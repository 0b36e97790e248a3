// Package crosslink matches each entry's candidate DOIs against the
// bibliography's own entries and records the resulting citation links.
package crosslink

import (
	"context"

	"github.com/bibweb/citationweb/internal/bib"
	"github.com/bibweb/citationweb/internal/extract"
	"github.com/bibweb/citationweb/internal/identity"
)

// Options configures a crosslink run.
type Options struct {
	// Mode selects the candidate-DOI source (see extract).
	Mode extract.Mode

	// PersistDOIs writes the raw candidate list to each entry's
	// Extracted-DOIs field regardless of match outcome, for audit and
	// cheap reruns.
	PersistDOIs bool
}

// DefaultOptions returns the default crosslink options.
func DefaultOptions() Options {
	return Options{Mode: extract.ModeAuto, PersistDOIs: true}
}

// Report aggregates the outcome of a crosslink run. Counters, not per-item
// logs; unresolved candidates are kept so no information is silently lost.
type Report struct {
	Entries    int `json:"entries"`
	LinksAdded int `json:"links_added"`

	// Unresolved maps a citekey to its candidate DOIs that matched no
	// local entry. These may be worth adding to the bibliography.
	Unresolved map[string][]string `json:"unresolved,omitempty"`

	// DuplicateDOIs counts DOIs shared by multiple entries; matching is
	// ambiguous for them (first entry in input order wins).
	DuplicateDOIs int `json:"duplicate_dois,omitempty"`

	Extraction extract.Stats `json:"extraction"`
}

// Run extracts candidate DOIs for every entry and appends the citekey of
// each locally matched target to the entry's Cites field. Entries are
// processed in input order; appends are idempotent, so at most one link is
// recorded per (source, target) pair even when a DOI appears twice among an
// entry's candidates.
//
// A fatal error (missing extraction tool, cancellation) aborts the run; the
// report reflects completed entries, whose fields are left intact.
func Run(ctx context.Context, b *bib.Bibliography, x *extract.Extractor, opts Options) (*Report, error) {
	report := &Report{Unresolved: make(map[string][]string)}

	index := buildDOIIndex(b, report)

	for _, e := range b.Entries() {
		dois, found, stats, err := x.Extract(ctx, e, opts.Mode)
		report.Extraction.Add(stats)
		if err != nil {
			return report, err
		}
		report.Entries++

		for _, candidate := range dois {
			if candidate == extract.UnreadableSentinel {
				// Marked unreadable: not a negative result, and
				// nothing after the marker to process.
				break
			}

			target, ok := index[identity.NormalizeDOI(candidate)]
			if !ok {
				report.Unresolved[e.Key] = append(report.Unresolved[e.Key], candidate)
				continue
			}
			if target == e.Key {
				continue
			}
			if bib.AppendToListField(e, bib.FieldCites, target) {
				report.LinksAdded++
			}
		}

		if opts.PersistDOIs && found {
			// A from-field miss means the entry was never tried; stamping
			// an empty field here would turn it into the unreadable
			// sentinel and block future file extraction.
			extract.Persist(e, dois)
		}
	}

	if len(report.Unresolved) == 0 {
		report.Unresolved = nil
	}
	return report, nil
}

// buildDOIIndex maps each entry's normalized DOI to its citekey. Built once
// per run; the per-candidate lookup is O(1) instead of a scan over all
// entries. On duplicate DOIs the first entry in input order wins and the
// duplicate is counted as an integrity warning.
func buildDOIIndex(b *bib.Bibliography, report *Report) map[string]string {
	index := make(map[string]string, b.Len())

	for _, e := range b.Entries() {
		doi := identity.NormalizeDOI(e.DOI())
		if doi == "" {
			continue
		}
		if _, ok := index[doi]; ok {
			report.DuplicateDOIs++
			continue
		}
		index[doi] = e.Key
	}

	return index
}
