package bib

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleBib = `@article{Smith2024,
  author = {Smith, Jane and Jones, Bob},
  title = {A {Nested} Title with {Braces}},
  year = {2024},
  doi = {10.1000/smith},
  Cites = {Jones2023},
}

@book{Jones2023,
  author = "Jones, Bob",
  title = "Quoted Title",
  year = 2023,
}

@comment{BibDesk Static Groups{
<?xml version="1.0"?>
}}
`

func TestParse(t *testing.T) {
	b, err := Parse(sampleBib)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if b.Len() != 2 {
		t.Fatalf("parsed %d entries, want 2", b.Len())
	}

	smith := b.Get("Smith2024")
	if smith == nil {
		t.Fatal("entry Smith2024 not found")
	}
	if smith.Type != "article" {
		t.Errorf("Type = %q, want article", smith.Type)
	}
	if got := smith.Get("title"); got != "A {Nested} Title with {Braces}" {
		t.Errorf("title = %q", got)
	}
	if got := smith.DOI(); got != "10.1000/smith" {
		t.Errorf("doi = %q, want 10.1000/smith", got)
	}
	if got := smith.Get("Cites"); got != "Jones2023" {
		t.Errorf("Cites = %q, want Jones2023", got)
	}

	jones := b.Get("Jones2023")
	if jones == nil {
		t.Fatal("entry Jones2023 not found")
	}
	if got := jones.Get("title"); got != "Quoted Title" {
		t.Errorf("quoted title = %q", got)
	}
	if got := jones.Get("year"); got != "2023" {
		t.Errorf("bare year = %q", got)
	}

	if !strings.Contains(b.Appendix, "BibDesk Static Groups") {
		t.Errorf("appendix not captured: %q", b.Appendix)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{name: "unterminated entry", in: "@article{Key, title = {x},"},
		{name: "missing equals", in: "@article{Key, title {x}}"},
		{name: "unbalanced braces", in: "@article{Key, title = {x}"},
		{name: "duplicate citekeys", in: "@article{K,}\n@book{K,}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse(tt.in); err == nil {
				t.Errorf("Parse(%q) succeeded, want error", tt.in)
			}
		})
	}
}

func TestRoundTripPreservesFieldsAndAppendix(t *testing.T) {
	b, err := Parse(sampleBib)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	// Write a field the parser has never seen; round-trips must keep it.
	b.Get("Smith2024").Set("Extracted-DOIs", "10.1/a; 10.1/b")

	out := Write(b)
	b2, err := Parse(out)
	if err != nil {
		t.Fatalf("re-parse: %v", err)
	}

	if got := b2.Get("Smith2024").Get("extracted-dois"); got != "10.1/a; 10.1/b" {
		t.Errorf("Extracted-DOIs after round-trip = %q", got)
	}
	if got := b2.Get("Jones2023").Get("title"); got != "Quoted Title" {
		t.Errorf("title after round-trip = %q", got)
	}
	if b2.Appendix != b.Appendix {
		t.Errorf("appendix changed: %q -> %q", b.Appendix, b2.Appendix)
	}
	if !strings.HasSuffix(out, b.Appendix) {
		t.Error("appendix is not at the end of the serialized output")
	}
}

func TestParseFileAndWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lib.bib")
	if err := os.WriteFile(path, []byte(sampleBib), 0644); err != nil {
		t.Fatal(err)
	}

	b, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}

	out := filepath.Join(dir, "out.bib")
	if err := WriteFile(b, out); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	b2, err := ParseFile(out)
	if err != nil {
		t.Fatalf("ParseFile(out): %v", err)
	}
	if b2.Len() != b.Len() {
		t.Errorf("entry count changed: %d -> %d", b.Len(), b2.Len())
	}
}

func TestExtractAppendix(t *testing.T) {
	content := "@article{A,\n}\n@comment{groups}\ntrailing\n"
	got := ExtractAppendix(content, AppendixMarker)
	want := "@comment{groups}\ntrailing\n"
	if got != want {
		t.Errorf("ExtractAppendix = %q, want %q", got, want)
	}

	if got := ExtractAppendix("@article{A,\n}\n", AppendixMarker); got != "" {
		t.Errorf("ExtractAppendix without marker = %q, want empty", got)
	}
}
