// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package format

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/pdiddy/cv-engine/pkg/types"
)

// Publication groups returned by PublicationGroup.
const (
	PubArticle = "article"
	PubChapter = "chapter"
	PubOther   = "other"
)

// PublicationGroup classifies a publication by its entry type.
func PublicationGroup(r types.Record) string {
	switch r.PubType {
	case "article":
		return PubArticle
	case "incollection", "inproceedings", "inbook":
		return PubChapter
	default:
		return PubOther
	}
}

// Degree levels returned by DegreeLevel.
const (
	DegreeDoctorate   = "doctorate"
	DegreeCertificate = "graduate certificate"
	DegreeMasters     = "masters"
	DegreeBachelors   = "bachelors"
)

// DegreeLevel lowercases a degree and turns underscores into spaces, so
// "Graduate_Certificate" reads as "graduate certificate".
func DegreeLevel(degree string) string {
	return strings.ToLower(strings.TrimSpace(strings.ReplaceAll(degree, "_", " ")))
}

// field returns a fragment reading one string through Text.
func field(get func(types.Record) string) Fragment {
	return func(f *Formatter, r types.Record) string {
		return f.Text(get(r))
	}
}

// bib returns a fragment reading a BibTeX field.
func bib(name string) Fragment {
	return func(f *Formatter, r types.Record) string {
		return f.Text(r.Bibtex.Field(name))
	}
}

func title(f *Formatter, r types.Record) string { return f.Text(r.Title) }

// talkTitle falls back to the event name for untitled presentations.
func talkTitle(f *Formatter, r types.Record) string {
	if r.Title != "" {
		return f.Text(r.Title)
	}
	return f.Text(r.EventName)
}

// eventLine renders "Event: *Theme* (Number)". The event is left out when
// it already serves as the title.
func eventLine(f *Formatter, r types.Record) string {
	var b strings.Builder
	if r.Title != "" && r.EventName != "" && r.EventName != r.Title {
		b.WriteString(f.Text(r.EventName))
	}
	if r.EventTheme != "" {
		if b.Len() > 0 {
			b.WriteString(": ")
		}
		b.WriteString("*" + f.Text(r.EventTheme) + "*")
	}
	if b.Len() > 0 && r.ConferenceNumber != "" {
		b.WriteString(" (" + f.Text(r.ConferenceNumber) + ")")
	}
	return b.String()
}

// location joins institution, city and country.
func location(f *Formatter, r types.Record) string {
	var parts []string
	for _, p := range []string{r.Institution, r.City, r.Country} {
		if p != "" {
			parts = append(parts, f.Text(p))
		}
	}
	return strings.Join(parts, ", ")
}

func monthYear(f *Formatter, r types.Record) string {
	return f.Text(DateRange(r.Month, r.Year, r.EndYear, r.Ongoing))
}

func years(_ *Formatter, r types.Record) string { return YearRange(r.Year, r.EndYear, r.Ongoing) }

// openYears renders a range that runs to the present unless it has an end.
func openYears(_ *Formatter, r types.Record) string {
	return YearRange(r.Year, r.EndYear, r.Ongoing || r.EndYear == 0)
}

func authors(f *Formatter, r types.Record) string {
	names := SplitAuthors(r.Authors)
	for i, n := range names {
		names[i] = f.Text(AuthorName(n))
	}
	return strings.Join(names, "; ")
}

// withCoAuthors renders the co-author trailer "With A and B.".
func withCoAuthors(f *Formatter, r types.Record) string {
	if r.CoAuthors == "" {
		return ""
	}
	return terminate("With " + f.Text(r.CoAuthors))
}

func notes(f *Formatter, r types.Record) string { return f.Text(r.SpecialNotes) }

// courseTitle uses the course code when the course has no title.
func courseTitle(f *Formatter, r types.Record) string {
	if r.Title != "" {
		return f.Text(r.Title)
	}
	return f.Text(r.CourseCode)
}

func courseCode(f *Formatter, r types.Record) string {
	if r.Title == "" {
		return ""
	}
	return f.Text(r.CourseCode)
}

// termYears renders "Fall 2019–2021" from the semester and year range.
func termYears(f *Formatter, r types.Record) string {
	var parts []string
	if r.Term != "" {
		parts = append(parts, f.Text(r.Term))
	}
	if y := YearRange(r.Year, r.EndYear, r.Ongoing); y != "" {
		parts = append(parts, y)
	}
	return strings.Join(parts, " ")
}

func teachingDetails(f *Formatter, r types.Record) string {
	var details []string
	if r.Supervisor != "" {
		details = append(details, "Supervised by "+f.Text(r.Supervisor))
	}
	if r.CoInstructor != "" {
		details = append(details, "Co-taught with "+f.Text(r.CoInstructor))
	}
	if r.SpecialNotes != "" {
		details = append(details, f.Text(r.SpecialNotes))
	}
	return strings.Join(details, "; ")
}

func workshopPlace(f *Formatter, r types.Record) string {
	var parts []string
	if r.Institution != "" {
		parts = append(parts, f.Text(r.Institution))
	}
	if y := YearRange(r.Year, r.EndYear, r.Ongoing); y != "" {
		parts = append(parts, y)
	}
	return strings.Join(parts, ", ")
}

func workshopDetails(f *Formatter, r types.Record) string {
	var details []string
	if r.Supervisor != "" {
		details = append(details, "Supervised by "+f.Text(r.Supervisor))
	}
	if r.CoInstructor != "" {
		details = append(details, "Co-facilitated with "+f.Text(r.CoInstructor))
	}
	return strings.Join(details, "; ")
}

func amount(f *Formatter, r types.Record) string {
	return f.Text(Amount(r.Amount, r.Currency))
}

// degreeTitle renders "Ph.D. in Title" and its siblings.
func degreeTitle(f *Formatter, r types.Record) string {
	t := r.Title
	if t == "" {
		return ""
	}
	switch level := DegreeLevel(r.Degree); level {
	case DegreeDoctorate:
		if !strings.Contains(t, "Ph.D.") {
			t = "Ph.D. in " + t
		}
	case DegreeMasters:
		if !strings.Contains(t, "M.A.") {
			t = "M.A. in " + t
		}
	case DegreeBachelors:
		if !strings.Contains(t, "B.A.") {
			t = "B.A. in " + t
		}
	case DegreeCertificate:
		t = "Graduate Certificate in " + t
	default:
		if level != "" {
			t = titleWords(level) + " in " + t
		}
	}
	return f.Text(t)
}

// degreeStatus shows the status of unfinished degrees.
func degreeStatus(f *Formatter, r types.Record) string {
	if strings.EqualFold(r.Status, "finished") {
		return ""
	}
	return f.Text(r.Status)
}

func advisor(f *Formatter, r types.Record) string {
	if r.Advisor == "" {
		return ""
	}
	if r.AdvisorURL != "" {
		return Link(f.Text(r.Advisor), r.AdvisorURL)
	}
	return f.Text(r.Advisor)
}

func committee(f *Formatter, r types.Record) string {
	names := make([]string, 0, len(r.Committee))
	for _, p := range r.Committee {
		if p.URL != "" {
			names = append(names, Link(f.Text(p.Name), p.URL))
			continue
		}
		names = append(names, f.Text(p.Name))
	}
	return strings.Join(names, ", ")
}

func projectTitle(f *Formatter, r types.Record) string {
	if r.ShortTitle != "" {
		return f.Text(r.ShortTitle)
	}
	return f.Text(r.Title)
}

func projectTech(f *Formatter, r types.Record) string {
	var parts []string
	for _, p := range []string{r.Technologies, r.Methods} {
		if p != "" {
			parts = append(parts, f.Text(p))
		}
	}
	return strings.Join(parts, "; ")
}

// volume renders "12(3)" from the volume and number fields.
func volume(f *Formatter, r types.Record) string {
	v := r.Bibtex.Field("volume")
	if v == "" {
		return ""
	}
	if n := r.Bibtex.Field("number"); n != "" {
		return f.Text(v) + "(" + f.Text(n) + ")"
	}
	return f.Text(v)
}

// doi renders the DOI as a link to its resolver.
func doi(f *Formatter, r types.Record) string {
	d := r.Bibtex.Field("doi")
	if d == "" {
		return ""
	}
	return Link(f.Text(d), DOIURL(d))
}

// DOIURL returns the resolver URL for a DOI.
func DOIURL(doi string) string {
	doi = strings.TrimPrefix(strings.TrimPrefix(doi, "https://doi.org/"), "doi:")
	return "https://doi.org/" + doi
}

// pubURL links the title to the URL, else to the DOI.
func pubURL(r types.Record) string {
	if r.URL != "" {
		return r.URL
	}
	if d := r.Bibtex.Field("doi"); d != "" {
		return DOIURL(d)
	}
	return ""
}

func projectURL(r types.Record) string { return r.URL }

func titleWords(s string) string {
	return cases.Title(language.English).String(s)
}

// citationHead renders "Authors (Year)." shared by all publication styles.
var citationHead = Line{
	Terminal: true,
	Parts: []Part{
		{Name: "authors", Value: authors},
		{Name: "year", Value: years, Prefix: "(", Suffix: ")", Sep: " "},
	},
}

// PublicationStyles holds the styles selected by PublicationGroup.
var PublicationStyles = map[string]Style{
	PubArticle: {
		LineSep: Space,
		Require: []string{"title"},
		Lines: []Line{
			citationHead,
			{Parts: []Part{{Name: "title", Value: title, Wrap: WrapQuote, Terminal: true, Link: pubURL}}},
			{Terminal: true, Parts: []Part{
				{Value: bib("journal"), Wrap: WrapItalic},
				{Value: volume, Sep: ", "},
				{Value: bib("pages"), Sep: ": "},
			}},
			{Parts: []Part{{Value: doi, Prefix: "DOI: "}}},
		},
	},
	PubChapter: {
		LineSep: Space,
		Require: []string{"title"},
		Lines: []Line{
			citationHead,
			{Parts: []Part{{Name: "title", Value: title, Wrap: WrapQuote, Terminal: true, Link: pubURL}}},
			{Terminal: true, Parts: []Part{
				{Value: bib("booktitle"), Wrap: WrapItalic, Prefix: "In "},
				{Value: bib("editor"), Prefix: "edited by ", Sep: ", "},
				{Value: bib("pages"), Prefix: "pp. ", Sep: ", "},
			}},
			{Terminal: true, Parts: []Part{{Value: bib("publisher")}}},
		},
	},
	PubOther: {
		LineSep: Space,
		Require: []string{"title"},
		Lines: []Line{
			citationHead,
			{Parts: []Part{{Name: "title", Value: title, Wrap: WrapQuote, Terminal: true, Link: pubURL}}},
			{Terminal: true, Parts: []Part{{Value: bib("publisher")}}},
		},
	},
}

// Styles is the default style table.
var Styles = map[types.Kind]Style{
	types.KindConference: {
		Require: []string{"title"},
		Lines: []Line{
			{Parts: []Part{{Name: "title", Value: talkTitle, Wrap: WrapQuote}}},
			{Parts: []Part{{Value: eventLine}}},
			{Terminal: true, Parts: []Part{
				{Name: "location", Value: location},
				{Name: "date", Value: monthYear, Sep: ", "},
			}},
			{Parts: []Part{{Value: withCoAuthors, Wrap: WrapItalic}}},
			{Parts: []Part{{Value: notes, Wrap: WrapItalic}}},
		},
	},

	types.KindTeaching: {
		Require: []string{"title"},
		Lines: []Line{
			{Parts: []Part{
				{Name: "title", Value: courseTitle, Wrap: WrapBold},
				{Value: courseCode, Prefix: "(", Suffix: ")", Sep: " "},
				{Name: "date", Value: termYears, Sep: " — "},
			}},
			{Parts: []Part{{Value: teachingDetails, Wrap: WrapItalic}}},
		},
	},

	types.KindWorkshop: {
		Require: []string{"title"},
		Lines: []Line{
			{Parts: []Part{
				{Name: "title", Value: courseTitle, Wrap: WrapBold},
				{Value: workshopPlace, Sep: " — "},
			}},
			{Parts: []Part{{Value: field(func(r types.Record) string { return r.Description })}}},
			{Parts: []Part{{Value: workshopDetails, Wrap: WrapItalic}}},
		},
	},

	types.KindProject: {
		Require: []string{"title"},
		Lines: []Line{
			{Parts: []Part{{Name: "title", Value: projectTitle, Wrap: WrapBold, Link: projectURL}}},
			{Parts: []Part{
				{Value: years, Prefix: "**Years:** "},
				{Value: field(func(r types.Record) string { return r.ProjectType }), Prefix: "**Type:** ", Sep: " | "},
				{Value: field(func(r types.Record) string { return r.Status }), Prefix: "**Status:** ", Sep: " | "},
			}},
			{Parts: []Part{{Value: field(func(r types.Record) string { return r.Description })}}},
			{Parts: []Part{{Value: projectTech, Prefix: "**Technologies/Methods:** "}}},
			{Parts: []Part{{Value: field(func(r types.Record) string { return r.Collaborators }), Prefix: "**Collaborators:** "}}},
			{Parts: []Part{{Value: field(func(r types.Record) string { return r.ExhibitionVenues }), Prefix: "**Exhibited at:** "}}},
			{Parts: []Part{{Value: field(func(r types.Record) string { return r.Keywords }), Prefix: "**Keywords:** "}}},
		},
	},

	types.KindAward: {
		Require: []string{"title"},
		Lines: []Line{
			{Parts: []Part{
				{Name: "title", Value: title, Wrap: WrapBold},
				{Value: years, Prefix: "(", Suffix: ")", Sep: " "},
			}},
			{Parts: []Part{{Value: field(func(r types.Record) string { return r.Institution }), Wrap: WrapItalic}}},
			{Parts: []Part{{Value: amount, Prefix: "Amount: "}}},
			{Parts: []Part{{Value: field(func(r types.Record) string { return r.Description })}}},
		},
	},

	types.KindFunding: {
		Require: []string{"title"},
		Lines: []Line{
			{Parts: []Part{
				{Name: "title", Value: title, Wrap: WrapBold},
				{Value: years, Prefix: "(", Suffix: ")", Sep: " "},
			}},
			{Parts: []Part{{Value: field(func(r types.Record) string { return r.Institution }), Wrap: WrapItalic}}},
			{Parts: []Part{{Value: amount, Prefix: "Amount: "}}},
			{Parts: []Part{{Value: field(func(r types.Record) string { return r.PI }), Prefix: "Supervisor: "}}},
		},
	},

	types.KindEducation: {
		Require: []string{"title"},
		Lines: []Line{
			{Parts: []Part{
				{Name: "title", Value: degreeTitle, Wrap: WrapBold},
				{Value: degreeStatus, Prefix: "(", Suffix: ")", Sep: " "},
				{Value: years, Sep: ", "},
			}},
			{Parts: []Part{{Value: field(func(r types.Record) string { return r.Institution })}}},
			{Parts: []Part{{Value: field(func(r types.Record) string { return r.Thesis }), Wrap: WrapItalic, Prefix: "Thesis: "}}},
			{Parts: []Part{{Value: advisor, Prefix: "Advisor: "}}},
			{Parts: []Part{{Value: committee, Prefix: "Committee: "}}},
		},
	},

	types.KindLanguage: {
		Require: []string{"title"},
		Lines: []Line{
			{Parts: []Part{
				{Name: "title", Value: title, Wrap: WrapBold},
				{Value: field(func(r types.Record) string { return r.Proficiency }), Sep: ": "},
			}},
		},
	},

	types.KindService: {
		Require: []string{"title"},
		Lines: []Line{
			{Parts: []Part{
				{Name: "title", Value: title, Wrap: WrapBold},
				{Value: field(func(r types.Record) string { return r.Organization }), Sep: ", "},
				{Value: years, Prefix: "(", Suffix: ")", Sep: " "},
			}},
			{Parts: []Part{{Value: field(func(r types.Record) string { return r.Description })}}},
		},
	},

	types.KindMembership: {
		Require: []string{"title"},
		Lines: []Line{
			{Parts: []Part{
				{Name: "title", Value: title, Wrap: WrapBold},
				{Value: field(func(r types.Record) string { return r.MembershipType }), Prefix: "(", Suffix: ")", Sep: " "},
				{Value: openYears, Sep: ", "},
			}},
		},
	},
}
