package bib

import (
	"sort"
	"strings"
)

// DefaultSeparators are the separators recognized when parsing list fields
// like Cites and Cited-By. The first one is the canonical separator used
// when re-serializing (followed by a space). The CLI overrides this from the
// global config's separators setting.
var DefaultSeparators = []string{",", ";"}

// ListSep returns the canonical separator for serialized list fields.
func ListSep() string {
	return DefaultSeparators[0] + " "
}

// ParseListField parses a list field value ("A, B; C") into its elements.
// All separators are normalized to the first one and spaces are stripped
// before splitting. An empty or absent value parses to an empty list.
func ParseListField(s string, separators ...string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	if len(separators) == 0 {
		separators = DefaultSeparators
	}

	for _, sep := range separators[1:] {
		s = strings.ReplaceAll(s, sep, separators[0])
	}
	s = strings.ReplaceAll(s, " ", "")

	return strings.Split(s, separators[0])
}

// AppendToListField appends a citekey to a list field on the entry, unless
// it is already present. The field is re-serialized with the canonical
// separator either way, so separators and spacing are normalized. Reports
// whether the field actually gained the key, so callers can keep accurate
// change counters.
func AppendToListField(e *Entry, field, key string) bool {
	if e == nil {
		// Target entry does not exist (dangling reference); nothing to do.
		return false
	}

	keys := ParseListField(e.Get(field))
	for _, k := range keys {
		if k == key {
			e.Set(field, strings.Join(keys, ListSep()))
			return false
		}
	}

	keys = append(keys, key)
	e.Set(field, strings.Join(keys, ListSep()))
	return true
}

// RemoveFromListField removes every occurrence of a citekey from a list
// field and returns the number removed. The field is rewritten only when
// something was removed.
func RemoveFromListField(e *Entry, field, key string) int {
	keys := ParseListField(e.Get(field))

	kept := keys[:0]
	removed := 0
	for _, k := range keys {
		if k == key {
			removed++
			continue
		}
		kept = append(kept, k)
	}

	if removed > 0 {
		e.Set(field, strings.Join(kept, ListSep()))
	}
	return removed
}

// SortListField sorts a list field alphabetically and re-serializes it with
// the canonical separator, for reproducible output and clean diffs. Sorting
// does not deduplicate; only AppendToListField guarantees uniqueness.
func SortListField(e *Entry, field string) {
	keys := ParseListField(e.Get(field))
	if len(keys) == 0 {
		return
	}
	sort.Strings(keys)
	e.Set(field, strings.Join(keys, ListSep()))
}
