// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cv composes assembled sections into the site pages and the full
// curriculum vitae.
package cv

import (
	"fmt"
	"strings"
	"time"

	"github.com/pdiddy/cv-engine/internal/assemble"
	"github.com/pdiddy/cv-engine/internal/format"
	"github.com/pdiddy/cv-engine/internal/logger"
	"github.com/pdiddy/cv-engine/pkg/types"
)

// Document names.
const (
	DocTeaching     = "teaching"
	DocPublications = "publications"
	DocConferences  = "conferences"
	DocProjects     = "projects"
	DocCV           = "cv"
)

// AllDocuments lists every document in write order.
var AllDocuments = []string{DocTeaching, DocPublications, DocConferences, DocProjects, DocCV}

// NoData is shown in place of a section whose sheet is missing.
const NoData = "*No data available.*"

// Sheets holds the normalized records of each sheet by kind. A missing key
// means the sheet was absent from the workbook.
type Sheets map[types.Kind][]types.Record

// Has reports whether the sheet for kind was present.
func (s Sheets) Has(kind types.Kind) bool {
	_, ok := s[kind]
	return ok
}

// Usable reports whether any sheet holds at least one record.
func (s Sheets) Usable() bool {
	for _, records := range s {
		if len(records) > 0 {
			return true
		}
	}
	return false
}

// Builder renders documents from normalized sheets.
type Builder struct {
	formatter *format.Formatter
	author    string
	now       func() time.Time
	log       logger.Logger
}

// Option configures a Builder.
type Option func(*Builder)

// WithAuthor sets the author written into front matter.
func WithAuthor(author string) Option {
	return func(b *Builder) { b.author = author }
}

// WithClock sets the clock used for the "last updated" line.
func WithClock(now func() time.Time) Option {
	return func(b *Builder) { b.now = now }
}

// WithLogger sets the builder's logger.
func WithLogger(l logger.Logger) Option {
	return func(b *Builder) { b.log = l }
}

// NewBuilder returns a Builder using f to format entries.
func NewBuilder(f *format.Formatter, opts ...Option) *Builder {
	b := &Builder{formatter: f, now: time.Now, log: logger.Nop()}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build renders the named documents, or all of them when names is empty.
// It fails with types.ErrNoUsableInput when no sheet has a usable record,
// so an empty CV is never published.
func (b *Builder) Build(sheets Sheets, names []string) ([]types.Document, error) {
	if !sheets.Usable() {
		return nil, types.ErrNoUsableInput
	}
	if len(names) == 0 {
		names = AllDocuments
	}
	docs := make([]types.Document, 0, len(names))
	for _, name := range names {
		doc, err := b.Document(sheets, name)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// Document renders one named document.
func (b *Builder) Document(sheets Sheets, name string) (types.Document, error) {
	switch name {
	case DocTeaching:
		return b.page(name, "Teaching", sheets, types.KindTeaching, TeachingLayout)
	case DocPublications:
		return b.page(name, "Publications", sheets, types.KindPublication, PublicationLayout)
	case DocConferences:
		return b.page(name, "Conferences", sheets, types.KindConference, ConferenceLayout)
	case DocProjects:
		return b.page(name, "Projects", sheets, types.KindProject, ProjectLayout)
	case DocCV:
		return b.curriculum(sheets)
	}
	return types.Document{}, fmt.Errorf("unknown document %q", name)
}

// page renders a site page: front matter, then one section.
func (b *Builder) page(name, title string, sheets Sheets, kind types.Kind, layout assemble.CategoryConfig) (types.Document, error) {
	fm, err := PageFrontMatter(title, b.author).Render()
	if err != nil {
		return types.Document{}, err
	}

	var body string
	if !sheets.Has(kind) {
		b.log.Warn("sheet missing", "document", name, "kind", kind, "err", types.ErrMissingSource)
		body = NoData + "\n"
	} else {
		section := assemble.Assemble(sheets[kind], layout, b.formatter)
		if section.Count() == 0 {
			section.Intro = NoData
		}
		if kind == types.KindPublication && section.Count() > 0 {
			section.Intro = publicationSummary(section, sheets[kind])
		}
		body = assemble.Render(section, 1)
	}
	return types.Document{Name: name, Body: fm + "\n" + body}, nil
}

// curriculum renders cv.md: header, education, the body sections in
// canonical order and the last-updated stamp.
func (b *Builder) curriculum(sheets Sheets) (types.Document, error) {
	fm, err := FrontMatter{Author: b.author, Generator: Generator}.Render()
	if err != nil {
		return types.Document{}, err
	}

	var out strings.Builder
	out.WriteString(fm)
	out.WriteString("\n")
	out.WriteString(b.header(sheets))

	b.writeSection(&out, b.education(sheets))
	for _, l := range cvLayouts {
		var section types.Section
		switch {
		case !sheets.Has(l.sheet):
			b.log.Warn("sheet missing", "section", l.config.Heading, "kind", l.sheet, "err", types.ErrMissingSource)
			section = types.Section{Heading: l.config.Heading, Intro: NoData}
		default:
			section = assemble.Assemble(sheets[l.sheet], l.config, b.formatter)
			if l.intro != nil && section.Count() > 0 {
				section.Intro = l.intro(section, sheets[l.sheet])
			}
		}
		b.writeSection(&out, section)
	}

	stamp := Stamp(b.now())
	out.WriteString(stamp + "\n")
	return types.Document{Name: DocCV, Body: out.String(), Stamp: stamp}, nil
}

func (b *Builder) writeSection(out *strings.Builder, s types.Section) {
	text := assemble.Render(s, 2)
	if text == "" {
		b.log.Debug("section omitted", "section", s.Heading)
		return
	}
	out.WriteString(text)
	out.WriteString("---\n\n")
}

const stampPrefix = "*Last updated: "

// Stamp returns the "last updated" line for t.
func Stamp(t time.Time) string {
	return stampPrefix + t.Format("January 2006") + "*"
}

// StampOf returns the last "last updated" line found in body, or "".
func StampOf(body string) string {
	lines := strings.Split(body, "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if l := lines[i]; strings.HasPrefix(l, stampPrefix) && strings.HasSuffix(l, "*") {
			return l
		}
	}
	return ""
}

// header renders the profile block, falling back to the author's name.
func (b *Builder) header(sheets Sheets) string {
	profiles := sheets[types.KindProfile]
	if len(profiles) == 0 {
		if b.author == "" {
			return ""
		}
		return "# " + b.formatter.Text(b.author) + "\n\n---\n\n"
	}
	p := profiles[0]
	f := b.formatter

	name := p.Title
	if name == "" {
		name = b.author
	}
	var out strings.Builder
	out.WriteString("# " + f.Text(name) + "\n\n")
	if p.Subtitle != "" {
		out.WriteString("*" + f.Text(p.Subtitle) + "*" + format.LineBreak)
	}

	var contact []string
	if p.Email != "" {
		contact = append(contact, format.Link(f.Text(p.Email), "mailto:"+p.Email))
	}
	if p.Website != "" {
		contact = append(contact, format.Link("Website", p.Website))
	}
	if id := ORCID(p.ORCID); id != "" {
		contact = append(contact, format.Link("ORCID", "https://orcid.org/"+id))
	}
	if p.GitHub != "" {
		contact = append(contact, format.Link("GitHub", p.GitHub))
	}
	if p.LinkedIn != "" {
		contact = append(contact, format.Link("LinkedIn", p.LinkedIn))
	}
	if p.Address != "" {
		contact = append(contact, f.Text(p.Address))
	}
	if len(contact) > 0 {
		out.WriteString(strings.Join(contact, " | ") + "\n")
	}
	if p.Statement != "" {
		out.WriteString("\n" + f.Text(p.Statement) + "\n")
	}
	out.WriteString("\n---\n\n")
	return out.String()
}

// ORCID extracts the bare identifier from an ORCID value, which may be a
// full https://orcid.org/ URL.
func ORCID(v string) string {
	v = strings.TrimRight(strings.TrimSpace(v), "/")
	if i := strings.LastIndex(v, "/"); i >= 0 {
		v = v[i+1:]
	}
	return v
}

// publicationSummary renders "*12 publications (2015–2024)*".
func publicationSummary(s types.Section, records []types.Record) string {
	minYear, maxYear := 0, 0
	for _, r := range records {
		if r.Year == 0 {
			continue
		}
		if minYear == 0 || r.Year < minYear {
			minYear = r.Year
		}
		if r.Year > maxYear {
			maxYear = r.Year
		}
	}
	summary := fmt.Sprintf("%d %s", s.Count(), plural(s.Count(), "publication"))
	if span := format.YearRange(minYear, maxYear, false); span != "" {
		summary += " (" + span + ")"
	}
	return "*" + summary + "*"
}

// presentationSummary renders "*7 presentations*".
func presentationSummary(s types.Section, _ []types.Record) string {
	return fmt.Sprintf("*%d %s*", s.Count(), plural(s.Count(), "presentation"))
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
