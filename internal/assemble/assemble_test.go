// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package assemble

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/cv-engine/internal/format"
	"github.com/pdiddy/cv-engine/internal/normalize"
	"github.com/pdiddy/cv-engine/pkg/types"
)

func byCategory(r types.Record) string    { return r.Category }
func byInstitution(r types.Record) string { return r.Institution }
func byRole(r types.Record) string        { return r.Role }

func TestAssembleSubGroupOrdersByYear(t *testing.T) {
	rows := []types.RawRow{
		{"course_title": "Intro Seminar", "year": 2020.0, "institution": "A Univ", "category": "Instructor"},
		{"course_title": "Advanced Seminar", "year": 2022.0, "institution": "A Univ", "category": "Instructor"},
	}
	records, report := normalize.New(nil).NormalizeAll(rows, normalize.Teaching)
	require.Equal(t, 2, report.Kept)

	section := Assemble(records, CategoryConfig{
		Heading:    "Teaching",
		GroupBy:    byCategory,
		Priority:   normalize.TeachingCategories,
		SubGroupBy: byInstitution,
		Marker:     MarkerDash,
	}, format.New())

	require.Len(t, section.Groups, 1)
	require.Len(t, section.Groups[0].Groups, 1)
	assert.Equal(t, "A Univ", section.Groups[0].Groups[0].Heading)

	out := Render(section, 1)
	assert.Contains(t, out, "## Instructor\n\n**A Univ**\n\n")
	advanced := strings.Index(out, "Advanced Seminar")
	intro := strings.Index(out, "Intro Seminar")
	require.NotEqual(t, -1, advanced)
	require.NotEqual(t, -1, intro)
	assert.Less(t, advanced, intro)
}

func TestAssembleOmitsDegenerateEntries(t *testing.T) {
	rows := []types.RawRow{
		{"title": "First", "year": 2021.0, "role": "presenter"},
		{"city": "Lisbon", "year": 2020.0, "role": "presenter"},
		{"title": "Third", "year": 2019.0, "role": "presenter"},
	}
	records, _ := normalize.New(nil).NormalizeAll(rows, normalize.Conference)
	require.Len(t, records, 3)

	section := Assemble(records, CategoryConfig{GroupBy: byRole}, format.New())
	assert.Equal(t, len(records)-1, section.Count())
}

func TestAssembleGroupOrder(t *testing.T) {
	records := []types.Record{
		{Kind: types.KindConference, Title: "a", Role: "panelist", Year: 2020},
		{Kind: types.KindConference, Title: "b", Role: "keynote", Year: 2020},
		{Kind: types.KindConference, Title: "c", Role: "presenter", Year: 2020},
		{Kind: types.KindConference, Title: "d", Role: "", Year: 2020},
		{Kind: types.KindConference, Title: "e", Role: "discussant", Year: 2020},
		{Kind: types.KindConference, Title: "f", Role: "booth", Year: 2020},
	}
	section := Assemble(records, CategoryConfig{
		GroupBy:     byRole,
		Priority:    normalize.ConferenceRoles,
		HeadingFunc: normalize.TitleCase,
	}, format.New())

	var keys, headings []string
	for _, g := range section.Groups {
		keys = append(keys, g.Key)
		headings = append(headings, g.Heading)
	}
	assert.Equal(t, []string{"presenter", "discussant", "panelist", "booth", "keynote", ""}, keys)
	assert.Equal(t, []string{"Presenter", "Discussant", "Panelist", "Booth", "Keynote", ""}, headings)
}

func TestAssembleSubGroupTieBreak(t *testing.T) {
	records := []types.Record{
		{Kind: types.KindAward, Title: "x", Institution: "Zeta", Year: 2021},
		{Kind: types.KindAward, Title: "y", Institution: "Alpha", Year: 2021},
		{Kind: types.KindAward, Title: "z", Institution: "Mid", Year: 2023},
	}
	section := Assemble(records, CategoryConfig{SubGroupBy: byInstitution}, format.New())

	require.Len(t, section.Groups, 1)
	var subs []string
	for _, g := range section.Groups[0].Groups {
		subs = append(subs, g.Key)
	}
	assert.Equal(t, []string{"Mid", "Alpha", "Zeta"}, subs)
}

func TestSortEntries(t *testing.T) {
	entries := []types.FormattedEntry{
		{Text: "no year", Row: 0},
		{Text: "2020 row 5", Year: 2020, SortOrder: 999, Row: 5},
		{Text: "2021 march", Year: 2021, MonthIndex: 3, SortOrder: 999, Row: 2},
		{Text: "2020 ordered", Year: 2020, SortOrder: 1, Row: 9},
		{Text: "2021 may", Year: 2021, MonthIndex: 5, SortOrder: 999, Row: 3},
		{Text: "2020 row 4", Year: 2020, SortOrder: 999, Row: 4},
	}
	SortEntries(entries)

	var got []string
	for _, e := range entries {
		got = append(got, e.Text)
	}
	assert.Equal(t, []string{"2021 may", "2021 march", "2020 ordered", "2020 row 4", "2020 row 5", "no year"}, got)
}

func TestAssembleFilterAndKind(t *testing.T) {
	records := []types.Record{
		{Kind: types.KindTeaching, Title: "Git Basics", Category: "Workshop", Year: 2022},
		{Kind: types.KindTeaching, Title: "Biology", Category: "Instructor", Year: 2022},
	}
	section := Assemble(records, CategoryConfig{
		Heading: "Workshops",
		Kind:    types.KindWorkshop,
		Filter:  func(r types.Record) bool { return r.Category == "Workshop" },
	}, format.New())

	require.Equal(t, 1, section.Count())
	assert.Equal(t, types.KindWorkshop, section.Groups[0].Entries[0].Kind)
}

func TestRender(t *testing.T) {
	section := types.Section{
		Heading: "Awards",
		Intro:   "*2 awards*",
		Marker:  MarkerNumbered,
		Groups: []types.Group{
			{Key: "k", Heading: "Prizes", Entries: []types.FormattedEntry{
				{Text: "**A**  \nline two"},
				{Text: ""},
				{Text: "**B**"},
			}},
			{Key: "empty", Heading: "Nothing"},
		},
	}

	want := "## Awards\n\n*2 awards*\n\n### Prizes\n\n1. **A**  \n   line two\n\n2. **B**\n\n"
	assert.Equal(t, want, Render(section, 2))
}

func TestRenderEmptySection(t *testing.T) {
	section := Assemble([]types.Record{{Kind: types.KindAward}}, CategoryConfig{Heading: "Awards"}, format.New())
	assert.True(t, section.Empty())
	assert.Equal(t, "", Render(section, 2))
}
