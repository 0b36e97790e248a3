package identity

import "strings"

// doiPrefixes are resolver and label prefixes stripped during normalization.
// Longer prefixes first so "https://dx.doi.org/" wins over "doi.org/".
var doiPrefixes = []string{
	"https://dx.doi.org/",
	"http://dx.doi.org/",
	"https://doi.org/",
	"http://doi.org/",
	"dx.doi.org/",
	"doi.org/",
	"DOI:",
	"doi:",
}

// NormalizeDOI normalizes a DOI for comparison: trims whitespace, strips
// resolver-URL wrappers and "doi:" labels, and lowercases. DOIs are
// case-insensitive per the DOI handbook.
func NormalizeDOI(doi string) string {
	doi = strings.TrimSpace(doi)
	for _, prefix := range doiPrefixes {
		if strings.HasPrefix(doi, prefix) {
			doi = doi[len(prefix):]
			break
		}
	}
	return strings.ToLower(doi)
}
