package bib

import "strings"

// doiURLPrefixes are resolver URL prefixes recognized when mining DOIs from
// URL fields.
var doiURLPrefixes = []string{
	"https://doi.org/",
	"http://doi.org/",
	"https://dx.doi.org/",
	"http://dx.doi.org/",
}

// ConvertURLsToDOI scans entries without a doi field for resolver-style URLs
// (Bdsk-Url-N, then Url) and promotes the first match to a doi field.
// Returns the number of entries converted.
func ConvertURLsToDOI(b *Bibliography) int {
	converted := 0

	for _, e := range b.Entries() {
		if e.DOI() != "" {
			continue
		}

		urls := make([]string, 0, MaxNumberedFields+1)
		for n := 1; n <= MaxNumberedFields; n++ {
			if url := e.NumberedField("Bdsk-Url-", n); url != "" {
				urls = append(urls, url)
			}
		}
		if url := e.Get("Url"); url != "" {
			urls = append(urls, url)
		}

		for _, url := range urls {
			if doi := ExtractDOIFromURL(url); doi != "" {
				e.Set("DOI", doi)
				converted++
				break
			}
		}
	}

	return converted
}

// ExtractDOIFromURL extracts a DOI from a resolver URL such as
// "http://dx.doi.org/10.1000/xyz". Returns "" if the URL is not a resolver
// address.
func ExtractDOIFromURL(url string) string {
	for _, prefix := range doiURLPrefixes {
		if pos := strings.Index(url, prefix); pos >= 0 {
			return url[pos+len(prefix):]
		}
	}
	return ""
}
