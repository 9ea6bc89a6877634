// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package normalize

import "github.com/pdiddy/cv-engine/pkg/types"

// Field names a typed Record field that a schema can bind to columns.
type Field string

const (
	FieldTitle            Field = "title"
	FieldSubtitle         Field = "subtitle"
	FieldYear             Field = "year"
	FieldEndYear          Field = "end_year"
	FieldStartDate        Field = "start_date"
	FieldMonth            Field = "month"
	FieldSortOrder        Field = "sort_order"
	FieldCategory         Field = "category"
	FieldRole             Field = "role"
	FieldPubType          Field = "type"
	FieldInstitution      Field = "institution"
	FieldCity             Field = "city"
	FieldCountry          Field = "country"
	FieldAuthors          Field = "authors"
	FieldCoAuthors        Field = "co_authors"
	FieldSupervisor       Field = "supervisor"
	FieldCoInstructor     Field = "co_instructor"
	FieldAdvisor          Field = "advisor"
	FieldAdvisorURL       Field = "advisor_link"
	FieldCommittee        Field = "committee_member"
	FieldPI               Field = "pi"
	FieldCollaborators    Field = "collaborators"
	FieldCourseCode       Field = "course_code"
	FieldTerm             Field = "semester"
	FieldEventName        Field = "event_name"
	FieldEventTheme       Field = "event_theme"
	FieldConferenceNumber Field = "conference_number"
	FieldDegree           Field = "degree"
	FieldStatus           Field = "status"
	FieldThesis           Field = "thesis"
	FieldAmount           Field = "amount"
	FieldCurrency         Field = "currency"
	FieldShortTitle       Field = "short_title"
	FieldURL              Field = "url"
	FieldProjectType      Field = "project_type"
	FieldDescription      Field = "description"
	FieldMethods          Field = "methods"
	FieldTechnologies     Field = "technologies"
	FieldKeywords         Field = "keywords"
	FieldExhibitionVenues Field = "exhibition_venues"
	FieldSpecialNotes     Field = "special_notes"
	FieldOrganization     Field = "organization"
	FieldServiceType      Field = "service_type"
	FieldMembershipType   Field = "membership_type"
	FieldProficiency      Field = "proficiency"
	FieldEmail            Field = "email"
	FieldWebsite          Field = "website"
	FieldORCID            Field = "orcid"
	FieldGitHub           Field = "github"
	FieldLinkedIn         Field = "linkedin"
	FieldAddress          Field = "address"
	FieldStatement        Field = "research_statement"
	FieldBibtex           Field = "bibtex"
)

// maxCommitteeMembers bounds the numbered committee_memberN columns read.
const maxCommitteeMembers = 5

// Schema describes the columns expected for one kind of record.
type Schema struct {
	// Kind is stamped on every record produced with this schema.
	Kind types.Kind

	// Fields lists the expected fields in column order.
	Fields []Field

	// Columns overrides the column names read for a field. By default a
	// field reads the column with its own name.
	Columns map[Field][]string

	// Require lists fields that must all be present; RequireAny lists
	// fields of which at least one must be present. A row failing either
	// check is dropped as malformed.
	Require    []Field
	RequireAny []Field

	// AllowField names the field checked against Allowed (lowercased).
	// Values outside the list are reported but kept.
	AllowField Field
	Allowed    []string
}

// columns returns the column names read for f, in lookup order.
func (s Schema) columns(f Field) []string {
	if cols, ok := s.Columns[f]; ok {
		return cols
	}
	return []string{string(f)}
}

// TeachingCategories is the display priority of teaching categories.
var TeachingCategories = []string{
	"Instructor",
	"Mentored Teaching",
	"Teaching Assistant",
	"Guest Lectures",
	"Tutoring",
	"Workshop",
}

// ConferenceRoles is the display priority of conference roles.
var ConferenceRoles = []string{"presenter", "organizer", "chair", "discussant", "panelist"}

// Schemas for every sheet the pipeline reads.
var (
	Teaching = Schema{
		Kind: types.KindTeaching,
		Fields: []Field{
			FieldCategory, FieldInstitution, FieldCourseCode, FieldTitle, FieldTerm,
			FieldYear, FieldEndYear, FieldSupervisor, FieldCoInstructor,
			FieldSpecialNotes, FieldDescription, FieldSortOrder,
		},
		Columns: map[Field][]string{
			FieldTitle: {"course_title", "title"},
		},
		RequireAny: []Field{FieldTitle, FieldCourseCode},
		AllowField: FieldCategory,
		Allowed:    lower(TeachingCategories),
	}

	Conference = Schema{
		Kind: types.KindConference,
		Fields: []Field{
			FieldTitle, FieldEventName, FieldEventTheme, FieldConferenceNumber,
			FieldInstitution, FieldCity, FieldCountry, FieldMonth, FieldYear,
			FieldRole, FieldCoAuthors, FieldSpecialNotes, FieldSortOrder,
		},
		AllowField: FieldRole,
		Allowed:    ConferenceRoles,
	}

	Publication = Schema{
		Kind: types.KindPublication,
		Fields: []Field{
			FieldBibtex, FieldTitle, FieldAuthors, FieldYear, FieldMonth,
			FieldPubType, FieldURL, FieldSortOrder,
		},
		Columns: map[Field][]string{
			FieldAuthors: {"authors", "author"},
		},
		Require: []Field{FieldTitle},
	}

	Project = Schema{
		Kind: types.KindProject,
		Fields: []Field{
			FieldTitle, FieldShortTitle, FieldStatus, FieldStartDate, FieldEndYear,
			FieldProjectType, FieldDescription, FieldMethods, FieldTechnologies,
			FieldURL, FieldExhibitionVenues, FieldKeywords, FieldCollaborators,
			FieldSortOrder,
		},
		Columns: map[Field][]string{
			FieldStartDate: {"start_date", "year"},
			FieldEndYear:   {"end_date", "end_year"},
		},
		Require: []Field{FieldTitle},
	}

	Award = Schema{
		Kind: types.KindAward,
		Fields: []Field{
			FieldTitle, FieldInstitution, FieldYear, FieldAmount, FieldCurrency,
			FieldDescription, FieldSortOrder,
		},
		Columns: map[Field][]string{
			FieldTitle: {"award_name", "title"},
		},
		Require: []Field{FieldTitle},
	}

	Funding = Schema{
		Kind: types.KindFunding,
		Fields: []Field{
			FieldTitle, FieldInstitution, FieldYear, FieldEndYear, FieldAmount,
			FieldCurrency, FieldPI, FieldSortOrder,
		},
		Columns: map[Field][]string{
			FieldYear: {"start_year", "year"},
		},
		Require: []Field{FieldTitle},
	}

	Education = Schema{
		Kind: types.KindEducation,
		Fields: []Field{
			FieldDegree, FieldTitle, FieldInstitution, FieldStatus, FieldThesis,
			FieldAdvisor, FieldAdvisorURL, FieldCommittee, FieldYear, FieldSortOrder,
		},
		Columns: map[Field][]string{
			FieldInstitution: {"university", "institution"},
		},
		Require: []Field{FieldDegree, FieldTitle},
	}

	Language = Schema{
		Kind:   types.KindLanguage,
		Fields: []Field{FieldTitle, FieldProficiency, FieldSortOrder},
		Columns: map[Field][]string{
			FieldTitle: {"language"},
		},
		Require: []Field{FieldTitle},
	}

	Service = Schema{
		Kind: types.KindService,
		Fields: []Field{
			FieldServiceType, FieldTitle, FieldOrganization, FieldYear, FieldEndYear,
			FieldDescription, FieldSortOrder,
		},
		Columns: map[Field][]string{
			FieldTitle: {"position", "title"},
			FieldYear:  {"start_year", "year"},
		},
		Require: []Field{FieldTitle},
	}

	Membership = Schema{
		Kind: types.KindMembership,
		Fields: []Field{
			FieldTitle, FieldMembershipType, FieldYear, FieldEndYear, FieldSortOrder,
		},
		Columns: map[Field][]string{
			FieldTitle: {"organization"},
			FieldYear:  {"start_year", "year"},
		},
		Require: []Field{FieldTitle},
	}

	Profile = Schema{
		Kind: types.KindProfile,
		Fields: []Field{
			FieldTitle, FieldSubtitle, FieldEmail, FieldWebsite, FieldORCID,
			FieldGitHub, FieldLinkedIn, FieldAddress, FieldStatement,
		},
		Columns: map[Field][]string{
			FieldTitle:    {"name"},
			FieldSubtitle: {"title"},
		},
	}
)

func lower(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = toLower(v)
	}
	return out
}
