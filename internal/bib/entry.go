// Package bib defines the bibliography data model and the BibTeX
// parse/serialize collaborator used by the citation pipeline.
package bib

import (
	"errors"
	"fmt"
	"strings"
)

// Field names written by the pipeline. Lookups are case-insensitive, so
// hand-edited variants like "cites" or "CITED-BY" resolve to the same field.
const (
	FieldDOI           = "doi"
	FieldCites         = "Cites"
	FieldCitedBy       = "Cited-By"
	FieldExtractedDOIs = "Extracted-DOIs"
)

// MaxNumberedFields bounds the Bdsk-File-N / Bdsk-Url-N scan per entry.
const MaxNumberedFields = 5

// Entry is a single bibliography record: a citekey plus an open mapping of
// field names to string values. The citekey is immutable once parsed.
type Entry struct {
	Key  string // citekey, unique within a bibliography
	Type string // BibTeX entry type (article, book, ...)

	fields map[string]string // canonical (lowercase) name -> value
	names  map[string]string // canonical name -> name as written
	order  []string          // canonical names in first-seen order
}

// NewEntry creates an entry with the given citekey and type.
func NewEntry(key, entryType string) *Entry {
	return &Entry{
		Key:    key,
		Type:   entryType,
		fields: make(map[string]string),
		names:  make(map[string]string),
	}
}

// Get returns the value of a field, looked up case-insensitively.
// Returns "" if the field is absent; use Has to distinguish.
func (e *Entry) Get(name string) string {
	return e.fields[strings.ToLower(name)]
}

// Has reports whether the field is present, even with an empty value.
func (e *Entry) Has(name string) bool {
	_, ok := e.fields[strings.ToLower(name)]
	return ok
}

// Set stores a field value. The spelling of the first write wins for
// serialization; later writes under any casing update the same field.
func (e *Entry) Set(name, value string) {
	canon := strings.ToLower(name)
	if _, ok := e.fields[canon]; !ok {
		e.names[canon] = name
		e.order = append(e.order, canon)
	}
	e.fields[canon] = value
}

// DOI returns the entry's explicit DOI field, or "" if none is set.
func (e *Entry) DOI() string {
	return e.Get(FieldDOI)
}

// FieldNames returns the field names as written, in first-seen order.
func (e *Entry) FieldNames() []string {
	names := make([]string, 0, len(e.order))
	for _, canon := range e.order {
		names = append(names, e.names[canon])
	}
	return names
}

// NumberedField returns the value of a numbered field like Bdsk-File-1.
func (e *Entry) NumberedField(prefix string, n int) string {
	return e.Get(fmt.Sprintf("%s%d", prefix, n))
}

// ErrDuplicateKey is returned when a bibliography already contains an entry
// with the same citekey.
var ErrDuplicateKey = errors.New("duplicate citekey")

// Bibliography is an ordered collection of entries plus the trailing
// appendix (e.g. BibDesk @comment sections) preserved verbatim.
type Bibliography struct {
	entries []*Entry
	byKey   map[string]*Entry

	// Appendix holds non-bibliographic trailing file content that must
	// round-trip unchanged. It carries no citation semantics.
	Appendix string
}

// NewBibliography creates an empty bibliography.
func NewBibliography() *Bibliography {
	return &Bibliography{byKey: make(map[string]*Entry)}
}

// Add appends an entry. Citekeys must be unique.
func (b *Bibliography) Add(e *Entry) error {
	if _, ok := b.byKey[e.Key]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateKey, e.Key)
	}
	b.entries = append(b.entries, e)
	b.byKey[e.Key] = e
	return nil
}

// Get returns the entry with the given citekey, or nil.
func (b *Bibliography) Get(key string) *Entry {
	return b.byKey[key]
}

// Entries returns the entries in input order. The slice is shared; callers
// mutate entries in place but must not reorder it.
func (b *Bibliography) Entries() []*Entry {
	return b.entries
}

// Len returns the number of entries.
func (b *Bibliography) Len() int {
	return len(b.entries)
}

// DuplicateDOIs returns DOIs that appear on more than one entry, mapped to
// the citekeys sharing them. Duplicates make identity resolution ambiguous
// and are surfaced as a data-integrity warning rather than merged silently.
func (b *Bibliography) DuplicateDOIs() map[string][]string {
	seen := make(map[string][]string)
	for _, e := range b.entries {
		if doi := e.DOI(); doi != "" {
			seen[doi] = append(seen[doi], e.Key)
		}
	}
	dups := make(map[string][]string)
	for doi, keys := range seen {
		if len(keys) > 1 {
			dups[doi] = keys
		}
	}
	return dups
}
