package pdfextract

import (
	"encoding/xml"
	"fmt"
	"strings"
)

// pdfResult is the root of the pdf-extract XML output.
type pdfResult struct {
	XMLName xml.Name      `xml:"pdf"`
	Refs    []resolvedRef `xml:"resolved_reference"`
}

type resolvedRef struct {
	DOI string `xml:"doi,attr"`
}

const (
	xmlStart = `<?xml version="1.0"?>`
	xmlEnd   = `</pdf>`
)

// parseResolvedDOIs extracts the DOIs of resolved references from the raw
// tool output. Returns an empty list when no references were resolved.
func parseResolvedDOIs(output []byte) ([]string, error) {
	var result pdfResult
	if err := xml.Unmarshal([]byte(prepareXML(string(output))), &result); err != nil {
		return nil, fmt.Errorf("parsing pdf-extract output: %w", err)
	}

	dois := make([]string, 0, len(result.Refs))
	for _, ref := range result.Refs {
		dois = append(dois, ref.DOI)
	}
	return dois, nil
}

// prepareXML strips the tool's terminal chatter around the XML document.
// The tool prints progress lines before the XML and emits a self-closing
// <pdf/> when nothing was found.
func prepareXML(s string) string {
	s = strings.ReplaceAll(s, `\n`, " ")
	s = strings.ReplaceAll(s, "<pdf/>", "<pdf></pdf>")

	start := strings.Index(s, xmlStart)
	end := strings.Index(s, xmlEnd)
	if start >= 0 && end >= 0 {
		s = s[start : end+len(xmlEnd)]
	}
	return s
}
