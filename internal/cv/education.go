// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cv

import (
	"strings"

	"github.com/pdiddy/cv-engine/internal/assemble"
	"github.com/pdiddy/cv-engine/internal/format"
	"github.com/pdiddy/cv-engine/pkg/types"
)

// education builds the Education section. Doctorates come first, each
// followed by the graduate certificates earned at the same university;
// certificates without a university attach to every doctorate. Other
// degrees follow. Certificates matching no doctorate are listed on their
// own so no row is lost.
func (b *Builder) education(sheets Sheets) types.Section {
	const heading = "Education"
	if !sheets.Has(types.KindEducation) {
		b.log.Warn("sheet missing", "section", heading, "kind", types.KindEducation, "err", types.ErrMissingSource)
		return types.Section{Heading: heading, Intro: NoData}
	}

	var doctorates, certificates, others []types.Record
	for _, r := range sheets[types.KindEducation] {
		switch format.DegreeLevel(r.Degree) {
		case format.DegreeDoctorate:
			doctorates = append(doctorates, r)
		case format.DegreeCertificate:
			certificates = append(certificates, r)
		default:
			others = append(others, r)
		}
	}

	attached := make(map[int]bool)
	var phd []types.FormattedEntry
	for _, d := range doctorates {
		entry := b.formatter.Format(d, types.KindEducation)
		if entry.Empty() {
			continue
		}
		var nested []string
		for _, c := range certificates {
			if c.Institution != "" && c.Institution != d.Institution {
				continue
			}
			if line := b.certificateLine(c); line != "" {
				nested = append(nested, line)
				attached[c.Row] = true
			}
		}
		if len(nested) > 0 {
			entry.Text += "\n\n" + strings.Join(nested, "\n\n")
		}
		phd = append(phd, entry)
	}
	assemble.SortEntries(phd)

	var rest []types.FormattedEntry
	for _, r := range others {
		if e := b.formatter.Format(r, types.KindEducation); !e.Empty() {
			rest = append(rest, e)
		}
	}
	for _, c := range certificates {
		if attached[c.Row] {
			continue
		}
		if e := b.formatter.Format(c, types.KindEducation); !e.Empty() {
			rest = append(rest, e)
		}
	}
	assemble.SortEntries(rest)

	return types.Section{
		Heading: heading,
		Groups:  []types.Group{{Entries: append(phd, rest...)}},
	}
}

// certificateLine renders "Graduate Certificate in X (status)".
func (b *Builder) certificateLine(r types.Record) string {
	if r.Title == "" {
		return ""
	}
	line := "Graduate Certificate in " + b.formatter.Text(r.Title)
	if r.Status != "" && !strings.EqualFold(r.Status, "finished") {
		line += " (" + b.formatter.Text(r.Status) + ")"
	}
	return line
}
