// Package identity provides the canonical, comparable identity of a
// bibliography entry or of a bare referenced DOI.
package identity

import (
	"errors"

	"github.com/bibweb/citationweb/internal/bib"
)

// ErrInvalidIdentity is returned when an identity is constructed from
// neither an entry nor a DOI.
var ErrInvalidIdentity = errors.New("identity needs either an entry or a DOI")

// Identity wraps exactly one of a bibliography entry or a bare DOI. It is
// the node identity of the citation graph: a local entry (citekey, DOI
// possibly unresolved) and an external reference target (DOI only) that name
// the same paper must compare equal and collide under Key.
type Identity struct {
	entry *bib.Entry
	doi   string
}

// FromEntry creates an identity backed by a bibliography entry.
func FromEntry(e *bib.Entry) (Identity, error) {
	if e == nil {
		return Identity{}, ErrInvalidIdentity
	}
	return Identity{entry: e}, nil
}

// FromDOI creates a bare-DOI identity for a reference target that has no
// local entry.
func FromDOI(doi string) (Identity, error) {
	if doi == "" {
		return Identity{}, ErrInvalidIdentity
	}
	return Identity{doi: doi}, nil
}

// Entry returns the wrapped entry, or nil for bare-DOI identities.
func (id Identity) Entry() *bib.Entry {
	return id.entry
}

// DOI returns the normalized DOI: the entry's doi field, or the bare DOI.
// Returns "" when the entry has no DOI yet.
func (id Identity) DOI() string {
	if id.entry != nil {
		return NormalizeDOI(id.entry.DOI())
	}
	return NormalizeDOI(id.doi)
}

// Citekey returns the entry's citekey, or "" for bare-DOI identities.
func (id Identity) Citekey() string {
	if id.entry != nil {
		return id.entry.Key
	}
	return ""
}

// Equal reports whether two identities name the same paper. Matching
// citekeys or matching DOIs suffices; one agreeing signal is enough, since
// the same paper may appear once by citekey (DOI unresolved) and once by DOI
// (citation target) before resolution catches up.
func (id Identity) Equal(other Identity) bool {
	if ck := id.Citekey(); ck != "" && ck == other.Citekey() {
		return true
	}
	if doi := id.DOI(); doi != "" && doi == other.DOI() {
		return true
	}
	return false
}

// Key returns the map key for this identity: the normalized DOI when
// present, falling back to the citekey. Equal identities that share a DOI
// therefore share a Key, whether or not one of them is a bare reference.
func (id Identity) Key() string {
	if doi := id.DOI(); doi != "" {
		return doi
	}
	return "citekey:" + id.Citekey()
}

// String returns the display label: the citekey when present, else the DOI.
func (id Identity) String() string {
	if ck := id.Citekey(); ck != "" {
		return ck
	}
	return "doi:" + id.DOI()
}
