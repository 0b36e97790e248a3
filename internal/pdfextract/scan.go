package pdfextract

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
)

// DOI pattern: 10.XXXX/... where XXXX is 4+ digits.
var doiPattern = regexp.MustCompile(`10\.\d{4,9}/[^\s<>"{}|\\^~\[\]` + "`" + `]+`)

// ScanDOIs scans the plain text of a PDF for DOI-shaped strings. It is a
// secondary extraction source for files the external tool cannot resolve:
// it finds DOIs printed in the reference list itself, without reference
// resolution. Pages that fail text extraction are skipped.
func ScanDOIs(path string, maxPages int) ([]string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, &FileError{Path: path, Err: fmt.Errorf("%w: %v", ErrCannotOpen, err)}
	}
	defer f.Close()

	if maxPages <= 0 || maxPages > r.NumPage() {
		maxPages = r.NumPage()
	}

	seen := make(map[string]bool)
	var dois []string

	for i := 1; i <= maxPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}

		for _, match := range doiPattern.FindAllString(text, -1) {
			match = strings.TrimRight(match, ".,;:)")
			if !isValidDOI(match) || seen[match] {
				continue
			}
			seen[match] = true
			dois = append(dois, match)
		}
	}

	return dois, nil
}

// isValidDOI performs basic shape validation on a DOI candidate.
func isValidDOI(doi string) bool {
	if len(doi) < 10 {
		return false
	}
	if !strings.HasPrefix(doi, "10.") {
		return false
	}
	slashIdx := strings.Index(doi, "/")
	return slashIdx != -1 && slashIdx < len(doi)-1
}
