package bib

import (
	"fmt"
	"os"
	"strings"
)

// Write serializes the bibliography to BibTeX, entries in input order,
// fields in first-seen order, followed by the appendix verbatim.
func Write(b *Bibliography) string {
	var sb strings.Builder

	for _, e := range b.Entries() {
		writeEntry(&sb, e)
		sb.WriteString("\n")
	}

	if b.Appendix != "" {
		sb.WriteString(b.Appendix)
	}

	return sb.String()
}

// WriteFile serializes the bibliography to a file.
func WriteFile(b *Bibliography, path string) error {
	if err := os.WriteFile(path, []byte(Write(b)), 0644); err != nil {
		return fmt.Errorf("writing bibliography: %w", err)
	}
	return nil
}

func writeEntry(sb *strings.Builder, e *Entry) {
	entryType := e.Type
	if entryType == "" {
		entryType = "misc"
	}

	fmt.Fprintf(sb, "@%s{%s,\n", entryType, e.Key)
	for _, name := range e.FieldNames() {
		fmt.Fprintf(sb, "  %s = {%s},\n", name, e.Get(name))
	}
	sb.WriteString("}\n")
}
