// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/cv-engine/internal/normalize"
	"github.com/pdiddy/cv-engine/pkg/types"
)

func TestEscape(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Foo & Bar", `Foo \& Bar`},
		{"50% of_x", `50\% of\_x`},
		{"{a}~^#$", `\{a\}\~\^\#\$`},
		{`a\b`, `a\\b`},
		{`already \& escaped`, `already \& escaped`},
		{"plain", "plain"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := Escape(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, Escape(got), "escaping twice must be a no-op")
		})
	}
}

func TestIsMarkup(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"https://example.org/a_b", true},
		{"mailto:me@example.org", true},
		{`\textbf{x}`, true},
		{"*emphasis*", true},
		{"_under_", true},
		{"# Heading", true},
		{"[Paper](https://x.org)", true},
		{"see [1] (2020)", true},
		{"Foo & Bar", false},
		{"[draft]", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, IsMarkup(tt.in))
		})
	}
}

func TestAuthors(t *testing.T) {
	assert.Equal(t, "Doe, Jane; Roe, Rick", Authors("Jane Doe and Rick Roe"))
	assert.Equal(t, "Doe, Jane; Roe, Rick", Authors("Doe, Jane; Roe, Rick"))
	assert.Equal(t, "Sartre, Jean Paul", Authors("Jean Paul Sartre"))
	assert.Equal(t, "Plato", Authors("Plato"))
	assert.Equal(t, "", Authors("  "))
}

func TestYearRange(t *testing.T) {
	assert.Equal(t, "2019–2021", YearRange(2019, 2021, false))
	assert.Equal(t, "2019", YearRange(2019, 2019, false))
	assert.Equal(t, "2019", YearRange(2019, 0, false))
	assert.Equal(t, "2019–present", YearRange(2019, 0, true))
	assert.Equal(t, "2021", YearRange(0, 2021, false))
	assert.Equal(t, "", YearRange(0, 0, true))
}

func TestDate(t *testing.T) {
	assert.Equal(t, "September 2023", Date(types.Month{Index: 9, Display: "September"}, 2023))
	assert.Equal(t, "2023", Date(types.Month{}, 2023))
	assert.Equal(t, "Spring", Date(types.Month{Display: "Spring"}, 0))
}

func TestAmount(t *testing.T) {
	tests := []struct {
		amount, code, want string
	}{
		{"1234.5", "BRL", "R$ 1,234.50"},
		{"1234.5", "usd", "$1,234.50"},
		{"1234.5", "EUR", "€1,234.50"},
		{"1000", "GBP", "£1,000.00"},
		{"1000", "JPY", "1,000.00 JPY"},
		{"1,500", "", "1,500.00"},
		{"in kind", "USD", "in kind"},
		{"", "USD", ""},
	}
	for _, tt := range tests {
		t.Run(tt.amount+"/"+tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, Amount(tt.amount, tt.code))
		})
	}
}

func TestFormatConferenceScenario(t *testing.T) {
	rec, ok := normalize.Normalize(types.RawRow{"title": "Foo & Bar", "year": 2023.0, "month": "Sept"}, 0, normalize.Conference)
	require.True(t, ok)
	require.Equal(t, types.Month{Index: 9, Display: "September"}, rec.Month)

	entry := New().Format(rec, types.KindConference)

	assert.Contains(t, entry.Text, `"Foo \& Bar"`)
	assert.Contains(t, entry.Text, "September 2023")
	assert.Equal(t, 2023, entry.Year)
	assert.Equal(t, 9, entry.MonthIndex)
}

func TestFormatYearRangeScenario(t *testing.T) {
	tests := []struct {
		name   string
		schema normalize.Schema
		kind   types.Kind
		row    types.RawRow
	}{
		{"award", normalize.Award, types.KindAward, types.RawRow{"award_name": "Grant"}},
		{"conference", normalize.Conference, types.KindConference, types.RawRow{"title": "Talk"}},
		{"conference with month", normalize.Conference, types.KindConference, types.RawRow{"title": "Talk", "month": "May"}},
		{"publication", normalize.Publication, types.KindPublication, types.RawRow{"title": "Paper", "authors": "Jane Doe", "type": "article"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.row["year"] = "2019 to 2021"
			rec, ok := normalize.Normalize(tt.row, 0, tt.schema)
			require.True(t, ok)

			entry := New().Format(rec, tt.kind)
			assert.Contains(t, entry.Text, "2019–2021")
			assert.Equal(t, 2019, entry.Year)
		})
	}
}

func TestDateRange(t *testing.T) {
	may := types.Month{Index: 5, Display: "May"}
	assert.Equal(t, "May 2019–2021", DateRange(may, 2019, 2021, false))
	assert.Equal(t, "2019–present", DateRange(types.Month{}, 2019, 0, true))
	assert.Equal(t, "May 2019", DateRange(may, 2019, 2019, false))
	assert.Equal(t, "", DateRange(types.Month{}, 0, 0, false))
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name string
		kind types.Kind
		rec  types.Record
		want string
	}{
		{
			name: "full conference",
			kind: types.KindConference,
			rec: types.Record{
				Title: "Foo & Bar", EventName: "Summit", EventTheme: "Futures", ConferenceNumber: "3rd",
				Institution: "A Univ", City: "Lisbon", Country: "Portugal",
				Month: types.Month{Index: 9, Display: "September"}, Year: 2023,
				CoAuthors: "Ada Lovelace", SpecialNotes: "Invited",
			},
			want: "\"Foo \\& Bar\"  \nSummit: *Futures* (3rd)  \nA Univ, Lisbon, Portugal, September 2023.  \n*With Ada Lovelace.*  \n*Invited*",
		},
		{
			name: "conference titled by its event",
			kind: types.KindConference,
			rec:  types.Record{EventName: "Summit", Year: 2020},
			want: "\"Summit\"  \n2020.",
		},
		{
			name: "journal article",
			kind: types.KindPublication,
			rec: types.Record{
				Title: "The Big Idea", Authors: "Jane Doe and Rick Roe", Year: 2021, PubType: "article",
				Bibtex: &types.BibEntry{Type: "article", Fields: map[string]string{
					"journal": "Journal of Things", "volume": "12", "number": "3",
					"pages": "1--10", "doi": "10.1000/x_y",
				}},
			},
			want: `Doe, Jane; Roe, Rick (2021). ["The Big Idea".](https://doi.org/10.1000/x_y) ` +
				`*Journal of Things*, 12(3): 1--10. DOI: [10.1000/x\_y](https://doi.org/10.1000/x_y)`,
		},
		{
			name: "book chapter",
			kind: types.KindPublication,
			rec: types.Record{
				Title: "A Chapter", Authors: "Doe, Jane", Year: 2019, PubType: "incollection",
				URL: "https://example.org/ch",
				Bibtex: &types.BibEntry{Fields: map[string]string{
					"booktitle": "Big Book", "editor": "Roe", "pages": "5--9", "publisher": "Press",
				}},
			},
			want: `Doe, Jane (2019). ["A Chapter".](https://example.org/ch) In *Big Book*, edited by Roe, pp. 5--9. Press.`,
		},
		{
			name: "teaching range",
			kind: types.KindTeaching,
			rec: types.Record{
				Title: "Intro Seminar", CourseCode: "SEM 101", Term: "Fall",
				Year: 2019, EndYear: 2021, Supervisor: "Dr. X",
			},
			want: "**Intro Seminar** (SEM 101) — Fall 2019–2021  \n*Supervised by Dr. X*",
		},
		{
			name: "teaching row as workshop",
			kind: types.KindWorkshop,
			rec:  types.Record{Title: "Git Basics", Institution: "Library", Year: 2022, CoInstructor: "Bo"},
			want: "**Git Basics** — Library, 2022  \n*Co-facilitated with Bo*",
		},
		{
			name: "award with amount",
			kind: types.KindAward,
			rec:  types.Record{Title: "Grant", Year: 2019, EndYear: 2021, Amount: "1234.5", Currency: "brl"},
			want: "**Grant** (2019–2021)  \nAmount: R\\$ 1,234.50",
		},
		{
			name: "funding",
			kind: types.KindFunding,
			rec:  types.Record{Title: "Fellowship", Institution: "Agency", Year: 2020, PI: "Prof. Y"},
			want: "**Fellowship** (2020)  \n*Agency*  \nSupervisor: Prof. Y",
		},
		{
			name: "doctorate",
			kind: types.KindEducation,
			rec: types.Record{
				Degree: "doctorate", Title: "Design", Status: "In progress", Institution: "A Univ",
				Thesis: "On Things", Advisor: "Ada", AdvisorURL: "https://a.org",
				Committee: []types.Person{{Name: "Alan"}, {Name: "Grace", URL: "https://g.org"}},
			},
			want: "**Ph.D. in Design** (In progress)  \nA Univ  \nThesis: *On Things*  \nAdvisor: [Ada](https://a.org)  \nCommittee: Alan, [Grace](https://g.org)",
		},
		{
			name: "membership runs to present",
			kind: types.KindMembership,
			rec:  types.Record{Title: "ACM", MembershipType: "Member", Year: 2018},
			want: "**ACM** (Member), 2018–present",
		},
		{
			name: "language",
			kind: types.KindLanguage,
			rec:  types.Record{Title: "Portuguese", Proficiency: "Native"},
			want: "**Portuguese**: Native",
		},
		{
			name: "service",
			kind: types.KindService,
			rec:  types.Record{Title: "Reviewer", Organization: "Journal", Year: 2020, EndYear: 2022},
			want: "**Reviewer**, Journal (2020–2022)",
		},
		{
			name: "project",
			kind: types.KindProject,
			rec: types.Record{
				Title: "Atlas of Things", ShortTitle: "Atlas", URL: "https://atlas.example.org",
				Year: 2022, Ongoing: true, ProjectType: "Research", Status: "Active",
				Description: "Maps things.", Technologies: "Go",
			},
			want: "[**Atlas**](https://atlas.example.org)  \n**Years:** 2022–present | **Type:** Research | **Status:** Active  \nMaps things.  \n**Technologies/Methods:** Go",
		},
	}

	f := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := f.Format(tt.rec, tt.kind)
			assert.Equal(t, tt.want, got.Text)
			assert.Equal(t, tt.kind, got.Kind)
		})
	}
}

func TestFormatDegenerate(t *testing.T) {
	f := New()
	tests := []struct {
		name string
		kind types.Kind
		rec  types.Record
	}{
		{"talk without title or event", types.KindConference, types.Record{City: "Lisbon", Year: 2020}},
		{"award without title", types.KindAward, types.Record{Year: 2020, Amount: "5"}},
		{"course without title or code", types.KindTeaching, types.Record{Term: "Fall"}},
		{"publication without title", types.KindPublication, types.Record{Authors: "Doe, J", Year: 2001}},
		{"kind without style", types.KindProfile, types.Record{Title: "Name"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := f.Format(tt.rec, tt.kind)
			assert.True(t, entry.Empty())
		})
	}
}

func TestFormatMarkupPassesThrough(t *testing.T) {
	rec := types.Record{Title: "[Paper_One](https://x.org/a_b)", Year: 2020}
	entry := New().Format(rec, types.KindAward)
	assert.Equal(t, "**[Paper_One](https://x.org/a_b)** (2020)", entry.Text)
}

func TestFormatWithoutEscaping(t *testing.T) {
	rec := types.Record{Title: "Foo & Bar_Baz", Year: 2020}
	entry := New(WithEscape(false)).Format(rec, types.KindAward)
	assert.Equal(t, "**Foo & Bar_Baz** (2020)", entry.Text)
}

func TestFormatIsDeterministic(t *testing.T) {
	rec := types.Record{Title: "Talk", EventName: "Conf", City: "Rome", Year: 2024, Row: 3}
	f := New()
	assert.Equal(t, f.Format(rec, types.KindConference), f.Format(rec, types.KindConference))
}

func TestWithStyle(t *testing.T) {
	custom := Style{Lines: []Line{{Parts: []Part{{Name: "title", Value: title, Wrap: WrapItalic}}}}}
	entry := New(WithStyle(types.KindAward, custom)).Format(types.Record{Title: "Prize"}, types.KindAward)
	assert.Equal(t, "*Prize*", entry.Text)
}

func TestWithStyleOverridesPublications(t *testing.T) {
	custom := Style{Lines: []Line{{Parts: []Part{{Name: "title", Value: title, Wrap: WrapItalic}}}}}
	rec := types.Record{Title: "Paper", Authors: "Jane Doe", Year: 2020, PubType: "article"}

	entry := New(WithStyle(types.KindPublication, custom)).Format(rec, types.KindPublication)
	assert.Equal(t, "*Paper*", entry.Text)

	group := PublicationGroup(rec)
	entry = New(WithPublicationStyle(group, custom)).Format(rec, types.KindPublication)
	assert.Equal(t, "*Paper*", entry.Text)

	assert.NotEqual(t, "*Paper*", New().Format(rec, types.KindPublication).Text, "package defaults untouched")
}
