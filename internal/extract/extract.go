// Package extract turns a bibliography entry into the list of DOIs it is
// believed to cite, combining previously stored results, attached PDF files
// and the external reference-extraction tool.
package extract

import (
	"context"
	"fmt"
	"strings"

	"github.com/bibweb/citationweb/internal/bib"
	"github.com/bibweb/citationweb/internal/files"
	"github.com/bibweb/citationweb/internal/pdfextract"
)

// FieldSep joins DOIs in the Extracted-DOIs field. Semicolon, not comma:
// DOI suffixes may themselves contain commas.
const FieldSep = "; "

// UnreadableSentinel marks an attachment that was tried and could not be
// read. It is distinct from "zero citations found": downstream consumers
// must not record a negative result for it, and must not retry cheaply.
const UnreadableSentinel = ""

// Mode selects where candidate DOIs are read from.
type Mode string

const (
	// ModeAuto reads the stored field first and falls back to the
	// attached files, persisting the result.
	ModeAuto Mode = "auto"

	// ModeFromField only reads the stored Extracted-DOIs field.
	ModeFromField Mode = "from-field"

	// ModeFromFiles always re-extracts from the attached files.
	ModeFromFiles Mode = "from-files"
)

// ParseMode validates a mode string.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeAuto, ModeFromField, ModeFromFiles:
		return Mode(s), nil
	case "":
		return ModeAuto, nil
	default:
		return "", fmt.Errorf("invalid extraction mode %q (valid: %s, %s, %s)",
			s, ModeAuto, ModeFromField, ModeFromFiles)
	}
}

// RefExtractor extracts referenced DOIs from one PDF file. Implemented by
// pdfextract.Extractor; tests substitute stubs.
type RefExtractor interface {
	ExtractRefs(ctx context.Context, path string) ([]string, error)
}

// Stats counts per-file outcomes of one extraction.
type Stats struct {
	FilesRead       int `json:"files_read"`
	FilesSkipped    int `json:"files_skipped"`    // over the page ceiling or unreadable on disk
	FilesUnreadable int `json:"files_unreadable"` // tool failed; sentinel recorded
	CacheHits       int `json:"cache_hits"`
}

// Add accumulates other into s.
func (s *Stats) Add(other Stats) {
	s.FilesRead += other.FilesRead
	s.FilesSkipped += other.FilesSkipped
	s.FilesUnreadable += other.FilesUnreadable
	s.CacheHits += other.CacheHits
}

// Extractor runs the reference-extraction pipeline for single entries.
type Extractor struct {
	Files files.Resolver
	Refs  RefExtractor
	Cache *Cache // optional; nil disables caching
}

// FromField reads candidate DOIs from the entry's Extracted-DOIs field.
// found is false when the field is absent, which is distinct from a present
// field parsing to an empty or sentinel-only list: absence means "never
// tried", and callers may fall through to file extraction.
func (x *Extractor) FromField(e *bib.Entry) (dois []string, found bool) {
	if !e.Has(bib.FieldExtractedDOIs) {
		return nil, false
	}
	return strings.Split(e.Get(bib.FieldExtractedDOIs), FieldSep), true
}

// FromFiles extracts candidate DOIs from the entry's attached files. Results
// are the union across files in attachment order. A file the tool cannot
// read contributes one UnreadableSentinel; a file over the page ceiling or
// unreadable on disk is skipped and counted. A missing tool or a cancelled
// context is fatal and returns an error.
func (x *Extractor) FromFiles(ctx context.Context, e *bib.Entry) ([]string, Stats, error) {
	var stats Stats

	paths, err := x.Files.Paths(e)
	if err != nil {
		return nil, stats, fmt.Errorf("resolving files of %s: %w", e.Key, err)
	}

	var dois []string
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, stats, err
		}

		if cached, ok, err := x.Cache.Get(path); err == nil && ok {
			dois = append(dois, cached...)
			stats.CacheHits++
			continue
		}

		fileDOIs, err := x.Refs.ExtractRefs(ctx, path)
		switch {
		case err == nil:
			dois = append(dois, fileDOIs...)
			stats.FilesRead++
			x.Cache.Put(path, fileDOIs)
		case pdfextract.IsTooManyPages(err), pdfextract.IsCannotOpen(err):
			stats.FilesSkipped++
		case pdfextract.IsNotReadable(err):
			dois = append(dois, UnreadableSentinel)
			stats.FilesUnreadable++
		default:
			// Environment error or cancellation; abort the entry
			// without recording a partial result.
			return nil, stats, err
		}
	}

	return dois, stats, nil
}

// Extract returns the entry's candidate DOIs per the given mode. In auto
// mode a file-extraction result is persisted into the Extracted-DOIs field
// so repeated runs are idempotent and cheap.
//
// For ModeFromField the bool result reports whether the field was present.
// Other modes always report true.
func (x *Extractor) Extract(ctx context.Context, e *bib.Entry, mode Mode) ([]string, bool, Stats, error) {
	switch mode {
	case ModeFromField:
		dois, found := x.FromField(e)
		return dois, found, Stats{}, nil

	case ModeFromFiles:
		dois, stats, err := x.FromFiles(ctx, e)
		return dois, true, stats, err

	case ModeAuto, "":
		if dois, found := x.FromField(e); found {
			return dois, true, Stats{}, nil
		}
		dois, stats, err := x.FromFiles(ctx, e)
		if err != nil {
			return nil, false, stats, err
		}
		Persist(e, dois)
		return dois, true, stats, nil

	default:
		return nil, false, Stats{}, fmt.Errorf("invalid extraction mode %q", mode)
	}
}

// Persist stores candidate DOIs into the entry's Extracted-DOIs field.
func Persist(e *bib.Entry, dois []string) {
	e.Set(bib.FieldExtractedDOIs, strings.Join(dois, FieldSep))
}
