// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the cv-engine pipeline:
// raw spreadsheet rows, canonical records, formatted entries, sections,
// documents and the pipeline configuration.
package types

// RawRow is one spreadsheet row keyed by normalized column name. Values are
// string, float64, int, bool or nil.
type RawRow map[string]any

// Kind is the category of a record and selects its schema and entry style.
type Kind string

const (
	KindTeaching    Kind = "teaching"
	KindConference  Kind = "conference"
	KindPublication Kind = "publication"
	KindProject     Kind = "project"
	KindAward       Kind = "award"
	KindFunding     Kind = "funding"
	KindEducation   Kind = "education"
	KindWorkshop    Kind = "workshop"
	KindLanguage    Kind = "language"
	KindService     Kind = "service"
	KindMembership  Kind = "membership"
	KindProfile     Kind = "profile"
)

// DefaultSortOrder is the sentinel manual ordering given to rows without
// one, so they sort after every explicitly ordered row.
const DefaultSortOrder = 999

// Month is a normalized month. Index is 1..12, or 0 when the source text
// could not be parsed; Display then keeps the original text verbatim.
type Month struct {
	Index   int    `json:"index" yaml:"index"`
	Display string `json:"display" yaml:"display"`
}

// Known reports whether the month was recognized.
func (m Month) Known() bool { return m.Index >= 1 && m.Index <= 12 }

// Person is a named contributor with an optional profile link.
type Person struct {
	Name string `json:"name" yaml:"name"`
	URL  string `json:"url,omitempty" yaml:"url,omitempty"`
}

// BibEntry is a parsed BibTeX entry.
type BibEntry struct {
	// Type is the lowercased entry type (article, incollection, ...).
	Type string `json:"type" yaml:"type"`

	// Key is the citation key.
	Key string `json:"key" yaml:"key"`

	// Fields maps lowercased field names to their unbraced values.
	Fields map[string]string `json:"fields" yaml:"fields"`
}

// Field returns the named field or "".
func (b *BibEntry) Field(name string) string {
	if b == nil {
		return ""
	}
	return b.Fields[name]
}

// Record is the canonical, typed form of one spreadsheet row. A string
// field is empty when the value is absent; Year and EndYear are 0 when
// absent. Records are never mutated after normalization.
type Record struct {
	Kind Kind `json:"kind" yaml:"kind"`

	// Row is the zero-based position of the source row; it breaks
	// ordering ties deterministically.
	Row int `json:"row" yaml:"row"`

	Title     string `json:"title,omitempty" yaml:"title,omitempty"`
	Subtitle  string `json:"subtitle,omitempty" yaml:"subtitle,omitempty"`
	Year      int    `json:"year,omitempty" yaml:"year,omitempty"`
	EndYear   int    `json:"end_year,omitempty" yaml:"end_year,omitempty"`
	Ongoing   bool   `json:"ongoing,omitempty" yaml:"ongoing,omitempty"`
	Month     Month  `json:"month" yaml:"month"`
	SortOrder int    `json:"sort_order" yaml:"sort_order"`

	// Category is the teaching category, title-cased for display.
	Category string `json:"category,omitempty" yaml:"category,omitempty"`
	// Role is the lowercased conference role.
	Role string `json:"role,omitempty" yaml:"role,omitempty"`
	// PubType is the lowercased bibliographic entry type.
	PubType string `json:"pub_type,omitempty" yaml:"pub_type,omitempty"`

	Institution string `json:"institution,omitempty" yaml:"institution,omitempty"`
	City        string `json:"city,omitempty" yaml:"city,omitempty"`
	Country     string `json:"country,omitempty" yaml:"country,omitempty"`

	Authors       string   `json:"authors,omitempty" yaml:"authors,omitempty"`
	CoAuthors     string   `json:"co_authors,omitempty" yaml:"co_authors,omitempty"`
	Supervisor    string   `json:"supervisor,omitempty" yaml:"supervisor,omitempty"`
	CoInstructor  string   `json:"co_instructor,omitempty" yaml:"co_instructor,omitempty"`
	Advisor       string   `json:"advisor,omitempty" yaml:"advisor,omitempty"`
	AdvisorURL    string   `json:"advisor_url,omitempty" yaml:"advisor_url,omitempty"`
	Committee     []Person `json:"committee,omitempty" yaml:"committee,omitempty"`
	PI            string   `json:"pi,omitempty" yaml:"pi,omitempty"`
	Collaborators string   `json:"collaborators,omitempty" yaml:"collaborators,omitempty"`

	CourseCode string `json:"course_code,omitempty" yaml:"course_code,omitempty"`
	Term       string `json:"term,omitempty" yaml:"term,omitempty"`

	EventName        string `json:"event_name,omitempty" yaml:"event_name,omitempty"`
	EventTheme       string `json:"event_theme,omitempty" yaml:"event_theme,omitempty"`
	ConferenceNumber string `json:"conference_number,omitempty" yaml:"conference_number,omitempty"`

	Degree string `json:"degree,omitempty" yaml:"degree,omitempty"`
	Status string `json:"status,omitempty" yaml:"status,omitempty"`
	Thesis string `json:"thesis,omitempty" yaml:"thesis,omitempty"`

	Amount   string `json:"amount,omitempty" yaml:"amount,omitempty"`
	Currency string `json:"currency,omitempty" yaml:"currency,omitempty"`

	ShortTitle       string `json:"short_title,omitempty" yaml:"short_title,omitempty"`
	URL              string `json:"url,omitempty" yaml:"url,omitempty"`
	ProjectType      string `json:"project_type,omitempty" yaml:"project_type,omitempty"`
	Description      string `json:"description,omitempty" yaml:"description,omitempty"`
	Methods          string `json:"methods,omitempty" yaml:"methods,omitempty"`
	Technologies     string `json:"technologies,omitempty" yaml:"technologies,omitempty"`
	Keywords         string `json:"keywords,omitempty" yaml:"keywords,omitempty"`
	ExhibitionVenues string `json:"exhibition_venues,omitempty" yaml:"exhibition_venues,omitempty"`

	SpecialNotes   string `json:"special_notes,omitempty" yaml:"special_notes,omitempty"`
	Organization   string `json:"organization,omitempty" yaml:"organization,omitempty"`
	ServiceType    string `json:"service_type,omitempty" yaml:"service_type,omitempty"`
	MembershipType string `json:"membership_type,omitempty" yaml:"membership_type,omitempty"`
	Proficiency    string `json:"proficiency,omitempty" yaml:"proficiency,omitempty"`

	Email     string `json:"email,omitempty" yaml:"email,omitempty"`
	Website   string `json:"website,omitempty" yaml:"website,omitempty"`
	ORCID     string `json:"orcid,omitempty" yaml:"orcid,omitempty"`
	GitHub    string `json:"github,omitempty" yaml:"github,omitempty"`
	LinkedIn  string `json:"linkedin,omitempty" yaml:"linkedin,omitempty"`
	Address   string `json:"address,omitempty" yaml:"address,omitempty"`
	Statement string `json:"statement,omitempty" yaml:"statement,omitempty"`

	Bibtex *BibEntry `json:"bibtex,omitempty" yaml:"bibtex,omitempty"`
}

// FormattedEntry is the rendered text of one record plus the keys used to
// order it within its group. Text is empty for degenerate records.
type FormattedEntry struct {
	Kind       Kind   `json:"kind" yaml:"kind"`
	Text       string `json:"text" yaml:"text"`
	Year       int    `json:"year" yaml:"year"`
	MonthIndex int    `json:"month_index" yaml:"month_index"`
	SortOrder  int    `json:"sort_order" yaml:"sort_order"`
	Row        int    `json:"row" yaml:"row"`
}

// Empty reports whether the entry rendered no text.
func (e FormattedEntry) Empty() bool { return e.Text == "" }
