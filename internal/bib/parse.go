package bib

import (
	"fmt"
	"os"
	"strings"
)

// AppendixMarker starts the trailing appendix section of a .bib file.
// Programs like BibDesk append @comment{} blocks holding folder and
// smart-group metadata after the entries; these must round-trip verbatim.
const AppendixMarker = "@comment{"

// ParseError reports a syntax error with its line number.
type ParseError struct {
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

// ParseFile reads and parses a .bib file, including its appendix.
func ParseFile(path string) (*Bibliography, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading bibliography: %w", err)
	}

	b, err := Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return b, nil
}

// Parse parses BibTeX content into a Bibliography. Entry and field order are
// preserved. @comment, @preamble and @string blocks are not entries; a
// trailing @comment section is captured as the appendix.
func Parse(content string) (*Bibliography, error) {
	b := NewBibliography()
	b.Appendix = ExtractAppendix(content, AppendixMarker)

	p := &parser{src: content, line: 1}
	for {
		if !p.seekTo('@') {
			break
		}
		p.next() // consume '@'

		blockType := strings.ToLower(p.readIdent())
		switch blockType {
		case "comment", "preamble", "string":
			if err := p.skipBlock(); err != nil {
				return nil, err
			}
			continue
		}

		entry, err := p.parseEntry(blockType)
		if err != nil {
			return nil, err
		}
		if err := b.Add(entry); err != nil {
			return nil, &ParseError{Line: p.line, Msg: err.Error()}
		}
	}

	return b, nil
}

// ExtractAppendix returns the trailing part of the content starting at the
// first line containing the marker (case-insensitive), or "" if absent.
// It relies on the appendix being at the end of the file.
func ExtractAppendix(content, marker string) string {
	var appendix strings.Builder
	reached := false

	for _, line := range strings.SplitAfter(content, "\n") {
		if !reached && strings.Contains(strings.ToLower(line), marker) {
			reached = true
		}
		if reached {
			appendix.WriteString(line)
		}
	}

	return appendix.String()
}

// parser is a cursor over BibTeX source.
type parser struct {
	src  string
	pos  int
	line int
}

func (p *parser) errf(format string, args ...interface{}) error {
	return &ParseError{Line: p.line, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) eof() bool {
	return p.pos >= len(p.src)
}

func (p *parser) peek() byte {
	return p.src[p.pos]
}

func (p *parser) next() byte {
	c := p.src[p.pos]
	p.pos++
	if c == '\n' {
		p.line++
	}
	return c
}

// seekTo advances to the next occurrence of c. Reports whether it was found.
func (p *parser) seekTo(c byte) bool {
	for !p.eof() {
		if p.peek() == c {
			return true
		}
		p.next()
	}
	return false
}

func (p *parser) skipSpace() {
	for !p.eof() {
		switch p.peek() {
		case ' ', '\t', '\r', '\n':
			p.next()
		default:
			return
		}
	}
}

// readIdent reads an identifier (entry type or field name).
func (p *parser) readIdent() string {
	start := p.pos
	for !p.eof() {
		c := p.peek()
		if c == '{' || c == '(' || c == '=' || c == ',' || c == '}' ||
			c == ' ' || c == '\t' || c == '\r' || c == '\n' {
			break
		}
		p.next()
	}
	return strings.TrimSpace(p.src[start:p.pos])
}

// skipBlock skips a balanced {...} block (for @comment and friends).
func (p *parser) skipBlock() error {
	p.skipSpace()
	if p.eof() || p.peek() != '{' {
		return p.errf("expected '{' after block type")
	}
	_, err := p.readBraced()
	return err
}

// readBraced consumes a balanced {...} group and returns its inner content.
func (p *parser) readBraced() (string, error) {
	p.next() // consume '{'
	start := p.pos
	depth := 1
	for !p.eof() {
		switch p.next() {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return p.src[start : p.pos-1], nil
			}
		}
	}
	return "", p.errf("unbalanced braces")
}

// readQuoted consumes a "..." value, tolerating braced groups inside.
func (p *parser) readQuoted() (string, error) {
	p.next() // consume '"'
	start := p.pos
	depth := 0
	for !p.eof() {
		switch p.next() {
		case '{':
			depth++
		case '}':
			depth--
		case '"':
			if depth == 0 {
				return p.src[start : p.pos-1], nil
			}
		}
	}
	return "", p.errf("unterminated quoted value")
}

// readBare consumes an unquoted value (numbers, month macros).
func (p *parser) readBare() string {
	start := p.pos
	for !p.eof() {
		c := p.peek()
		if c == ',' || c == '}' || c == '\n' {
			break
		}
		p.next()
	}
	return strings.TrimSpace(p.src[start:p.pos])
}

// parseEntry parses "{key, field = value, ...}" after the entry type.
func (p *parser) parseEntry(entryType string) (*Entry, error) {
	p.skipSpace()
	if p.eof() || p.peek() != '{' {
		return nil, p.errf("expected '{' after @%s", entryType)
	}
	p.next()

	// Citekey up to the first comma.
	start := p.pos
	for !p.eof() && p.peek() != ',' && p.peek() != '}' {
		p.next()
	}
	if p.eof() {
		return nil, p.errf("unterminated entry")
	}
	key := strings.TrimSpace(p.src[start:p.pos])
	if key == "" {
		return nil, p.errf("entry without citekey")
	}

	entry := NewEntry(key, entryType)

	for {
		p.skipSpace()
		if p.eof() {
			return nil, p.errf("unterminated entry %s", key)
		}
		if p.peek() == ',' {
			p.next()
		}
		p.skipSpace()
		if p.eof() {
			return nil, p.errf("unterminated entry %s", key)
		}
		if p.peek() == '}' {
			p.next()
			return entry, nil
		}

		name := p.readIdent()
		if name == "" {
			return nil, p.errf("entry %s: expected field name", key)
		}
		p.skipSpace()
		if p.eof() || p.peek() != '=' {
			return nil, p.errf("entry %s: expected '=' after field %q", key, name)
		}
		p.next()
		p.skipSpace()
		if p.eof() {
			return nil, p.errf("unterminated entry %s", key)
		}

		var value string
		var err error
		switch p.peek() {
		case '{':
			value, err = p.readBraced()
		case '"':
			value, err = p.readQuoted()
		default:
			value = p.readBare()
		}
		if err != nil {
			return nil, err
		}

		entry.Set(name, value)
	}
}
