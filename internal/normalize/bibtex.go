// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package normalize

import (
	"strings"
	"unicode"

	"github.com/pdiddy/cv-engine/pkg/types"
)

// ParseBibtex parses a single BibTeX entry such as
//
//	@article{key, title = {A {Title}}, year = 2021, journal = "J"}
//
// It tolerates nested braces, quoted values, bare numbers and "#"
// concatenation. Malformed input yields whatever fields were read before
// the damage; ok is false only when no entry header was found.
func ParseBibtex(src string) (*types.BibEntry, bool) {
	at := strings.IndexByte(src, '@')
	if at < 0 {
		return nil, false
	}
	p := &bibScanner{src: src, pos: at + 1}

	typ := p.ident()
	p.skipSpace()
	if typ == "" || !p.accept('{') && !p.accept('(') {
		return nil, false
	}

	entry := &types.BibEntry{
		Type:   strings.ToLower(typ),
		Fields: make(map[string]string),
	}

	p.skipSpace()
	keyStart := p.pos
	for !p.eof() && p.peek() != ',' && p.peek() != '}' && p.peek() != ')' {
		p.pos++
	}
	entry.Key = strings.TrimSpace(src[keyStart:p.pos])

	for {
		p.skipSpace()
		for p.accept(',') {
			p.skipSpace()
		}
		if p.eof() || p.peek() == '}' || p.peek() == ')' {
			break
		}
		name := strings.ToLower(p.ident())
		p.skipSpace()
		if name == "" || !p.accept('=') {
			break
		}
		value, ok := p.value()
		if !ok {
			break
		}
		entry.Fields[name] = cleanBibValue(value)
	}
	return entry, true
}

type bibScanner struct {
	src string
	pos int
}

func (p *bibScanner) eof() bool  { return p.pos >= len(p.src) }
func (p *bibScanner) peek() byte { return p.src[p.pos] }

func (p *bibScanner) accept(c byte) bool {
	if !p.eof() && p.peek() == c {
		p.pos++
		return true
	}
	return false
}

func (p *bibScanner) skipSpace() {
	for !p.eof() && unicode.IsSpace(rune(p.peek())) {
		p.pos++
	}
}

func (p *bibScanner) ident() string {
	start := p.pos
	for !p.eof() {
		c := p.peek()
		if c == '_' || c == '-' || c == ':' || c == '.' ||
			c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' {
			p.pos++
			continue
		}
		break
	}
	return p.src[start:p.pos]
}

// value reads one field value including "#" concatenations.
func (p *bibScanner) value() (string, bool) {
	var b strings.Builder
	for {
		p.skipSpace()
		if p.eof() {
			return b.String(), b.Len() > 0
		}
		switch p.peek() {
		case '{':
			p.pos++
			b.WriteString(p.until('}'))
		case '"':
			p.pos++
			b.WriteString(p.until('"'))
		default:
			start := p.pos
			for !p.eof() && p.peek() != ',' && p.peek() != '}' && p.peek() != '#' && !unicode.IsSpace(rune(p.peek())) {
				p.pos++
			}
			b.WriteString(p.src[start:p.pos])
		}
		p.skipSpace()
		if !p.accept('#') {
			return b.String(), true
		}
	}
}

// until reads up to the closing delimiter at brace depth zero and consumes
// it. Inner braces are kept for cleanBibValue.
func (p *bibScanner) until(closing byte) string {
	start := p.pos
	depth := 0
	for !p.eof() {
		c := p.peek()
		switch {
		case c == '\\' && p.pos+1 < len(p.src):
			p.pos += 2
			continue
		case c == '{':
			depth++
		case c == '}' && depth > 0:
			depth--
		case c == closing && depth == 0:
			s := p.src[start:p.pos]
			p.pos++
			return s
		}
		p.pos++
	}
	return p.src[start:]
}

// cleanBibValue drops protective braces and collapses whitespace.
func cleanBibValue(v string) string {
	v = strings.NewReplacer("{", "", "}", "").Replace(v)
	return strings.Join(strings.Fields(v), " ")
}
