// Package files resolves the attached files of a bibliography entry into
// filesystem paths, per known bibliography source format.
package files

import (
	"encoding/base64"
	"fmt"
	"regexp"
	"strings"

	"github.com/bibweb/citationweb/internal/bib"
)

// Source format names accepted in configuration.
const (
	FormatBibDesk = "bibdesk"
	FormatPlain   = "plain"
)

// ErrUnsupportedSource is returned for unrecognized source formats. This is
// a configuration error and aborts the run.
type ErrUnsupportedSource struct {
	Format string
}

func (e *ErrUnsupportedSource) Error() string {
	return fmt.Sprintf("unsupported bibliography source format: %q (valid: %s, %s)",
		e.Format, FormatBibDesk, FormatPlain)
}

// Resolver turns an entry's attached-file references into ordered paths.
type Resolver interface {
	Paths(e *bib.Entry) ([]string, error)
}

// ForFormat returns the resolver for a source format name.
func ForFormat(format string) (Resolver, error) {
	switch format {
	case FormatBibDesk, "":
		return &BibDeskResolver{}, nil
	case FormatPlain:
		return &PlainResolver{}, nil
	default:
		return nil, &ErrUnsupportedSource{Format: format}
	}
}

// bibdeskPathPattern matches the file path embedded in a decoded BibDesk
// bookmark blob. BibDesk stores attachments as base64-encoded binary plists;
// the absolute path appears inside as "Users/.../<name>.pdf" followed by a
// backslash. Only the first match per field is considered.
var bibdeskPathPattern = regexp.MustCompile(`(Users/.+?\.pdf)\\`)

// BibDeskResolver decodes the Bdsk-File-N fields written by BibDesk.
type BibDeskResolver struct{}

// Paths resolves up to bib.MaxNumberedFields attachments in field order.
// Fields whose blob cannot be decoded or contains no recognizable path are
// skipped; a malformed attachment is not worth failing the entry over.
func (r *BibDeskResolver) Paths(e *bib.Entry) ([]string, error) {
	var paths []string

	for n := 1; n <= bib.MaxNumberedFields; n++ {
		blob := e.NumberedField("Bdsk-File-", n)
		if blob == "" {
			break
		}

		decoded, err := base64.StdEncoding.DecodeString(strings.Join(strings.Fields(blob), ""))
		if err != nil {
			continue
		}

		match := bibdeskPathPattern.FindSubmatch(decoded)
		if match == nil {
			continue
		}
		paths = append(paths, "/"+string(match[1]))
	}

	return paths, nil
}

// PlainResolver reads a plain File field, tolerating the JabRef convention
// "description:path:type" with multiple attachments separated by ";".
type PlainResolver struct{}

// Paths resolves the File (or file) field of the entry.
func (r *PlainResolver) Paths(e *bib.Entry) ([]string, error) {
	value := e.Get("File")
	if value == "" {
		return nil, nil
	}

	var paths []string
	for _, item := range strings.Split(value, ";") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}

		// JabRef style: ":path:PDF" or "desc:path:PDF"
		if parts := strings.Split(item, ":"); len(parts) >= 3 {
			item = parts[1]
		}
		if item != "" {
			paths = append(paths, item)
		}
	}

	return paths, nil
}
