// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package format renders canonical records as styled Markdown entries.
// Every kind is described by a declarative Style; Format has no I/O and
// the same record always renders to the same text.
package format

import (
	"maps"
	"strings"

	"github.com/pdiddy/cv-engine/pkg/types"
)

// Line separators used between the lines of an entry.
const (
	// LineBreak forces a Markdown line break inside one paragraph.
	LineBreak = "  \n"
	Space     = " "
)

// Wrap is the emphasis applied to a fragment value.
type Wrap int

const (
	WrapNone Wrap = iota
	WrapQuote
	WrapItalic
	WrapBold
)

// Fragment returns the rendered text of one piece of an entry, already
// escaped, or "" when its source fields are absent.
type Fragment func(f *Formatter, r types.Record) string

// Part is one fragment with its decoration. Rendering order is value,
// Wrap, Prefix/Suffix, Terminal period, then Link.
type Part struct {
	Name     string
	Value    Fragment
	Wrap     Wrap
	Prefix   string
	Suffix   string
	Terminal bool

	// Sep is written before the part when the line already has content.
	Sep string

	// Link, when it returns a URL, turns the decorated part into a link.
	Link func(r types.Record) string
}

// Line is a run of parts; a Terminal line ends with a period unless it
// already ends in punctuation.
type Line struct {
	Parts    []Part
	Terminal bool
}

// Style describes how one kind renders.
type Style struct {
	Lines []Line

	// LineSep joins non-empty lines; LineBreak when empty.
	LineSep string

	// Require names parts of which at least one must be non-empty for the
	// entry to render. An entry failing the check is degenerate.
	Require []string
}

// Formatter renders records through a style table.
type Formatter struct {
	escape    bool
	styles    map[types.Kind]Style
	pubStyles map[string]Style
}

// Option configures a Formatter.
type Option func(*Formatter)

// WithEscape switches escaping of structural characters on or off.
func WithEscape(on bool) Option {
	return func(f *Formatter) { f.escape = on }
}

// WithStyle overrides the style for one kind. For publications it replaces
// every per-type style.
func WithStyle(kind types.Kind, s Style) Option {
	return func(f *Formatter) {
		f.styles[kind] = s
		if kind == types.KindPublication {
			clear(f.pubStyles)
		}
	}
}

// WithPublicationStyle overrides the style for one publication group
// (see PublicationGroup).
func WithPublicationStyle(group string, s Style) Option {
	return func(f *Formatter) { f.pubStyles[group] = s }
}

// New returns a Formatter with the default style table and escaping on.
func New(opts ...Option) *Formatter {
	f := &Formatter{
		escape:    true,
		styles:    maps.Clone(Styles),
		pubStyles: maps.Clone(PublicationStyles),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Format renders r as an entry of the given kind. A teaching record may be
// formatted as a workshop, for example. The Text of the result is empty when
// the record is degenerate or the kind has no style.
func (f *Formatter) Format(r types.Record, kind types.Kind) types.FormattedEntry {
	entry := types.FormattedEntry{
		Kind:       kind,
		Year:       r.Year,
		MonthIndex: r.Month.Index,
		SortOrder:  r.SortOrder,
		Row:        r.Row,
	}
	style, ok := f.styleFor(r, kind)
	if !ok {
		return entry
	}
	entry.Text = f.render(style, r)
	return entry
}

func (f *Formatter) styleFor(r types.Record, kind types.Kind) (Style, bool) {
	if kind == types.KindPublication {
		if s, ok := f.pubStyles[PublicationGroup(r)]; ok {
			return s, true
		}
	}
	s, ok := f.styles[kind]
	return s, ok
}

// Text escapes a literal value unless escaping is off or the value is
// already markup.
func (f *Formatter) Text(s string) string {
	if !f.escape || IsMarkup(s) {
		return s
	}
	return Escape(s)
}

func (f *Formatter) render(s Style, r types.Record) string {
	rendered := make(map[string]bool, len(s.Require))
	var lines []string
	for _, line := range s.Lines {
		var b strings.Builder
		for _, p := range line.Parts {
			text := f.renderPart(p, r)
			if text == "" {
				continue
			}
			if p.Name != "" {
				rendered[p.Name] = true
			}
			if b.Len() > 0 {
				b.WriteString(p.Sep)
			}
			b.WriteString(text)
		}
		text := b.String()
		if text == "" {
			continue
		}
		if line.Terminal {
			text = terminate(text)
		}
		lines = append(lines, text)
	}

	if len(s.Require) > 0 {
		ok := false
		for _, name := range s.Require {
			if rendered[name] {
				ok = true
				break
			}
		}
		if !ok {
			return ""
		}
	}

	sep := s.LineSep
	if sep == "" {
		sep = LineBreak
	}
	return strings.Join(lines, sep)
}

func (f *Formatter) renderPart(p Part, r types.Record) string {
	v := strings.TrimSpace(p.Value(f, r))
	if v == "" {
		return ""
	}
	switch p.Wrap {
	case WrapQuote:
		v = `"` + v + `"`
	case WrapItalic:
		v = "*" + v + "*"
	case WrapBold:
		v = "**" + v + "**"
	}
	v = p.Prefix + v + p.Suffix
	if p.Terminal {
		v = terminate(v)
	}
	if p.Link != nil {
		if url := strings.TrimSpace(p.Link(r)); url != "" {
			v = Link(v, url)
		}
	}
	return v
}

// Link renders a Markdown link. text must already be escaped.
func Link(text, url string) string {
	return "[" + text + "](" + url + ")"
}

// terminate appends a period unless s already ends in punctuation. Closing
// emphasis and quote marks are looked through.
func terminate(s string) string {
	trimmed := strings.TrimRight(s, `*"')]`)
	if trimmed == "" {
		return s
	}
	switch trimmed[len(trimmed)-1] {
	case '.', '!', '?', ':':
		return s
	}
	return s + "."
}
