// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package normalize turns loosely typed spreadsheet rows into canonical
// records. Normalization never fails: unparsable values become absent
// fields and rows missing their required fields are counted and skipped.
package normalize

import (
	"fmt"
	"slices"
	"strings"

	"github.com/pdiddy/cv-engine/internal/logger"
	"github.com/pdiddy/cv-engine/pkg/types"
)

// Report summarizes one NormalizeAll call.
type Report struct {
	Kind    types.Kind
	Seen    int
	Kept    int
	Skipped int

	// Issues holds every recovered problem, each wrapping one of
	// types.ErrMalformedRow, types.ErrMalformedField or types.ErrUnknownValue.
	Issues []error
}

// Normalizer normalizes rows and logs the problems it recovers from.
type Normalizer struct {
	log logger.Logger
}

// New returns a Normalizer. A nil logger discards diagnostics.
func New(log logger.Logger) *Normalizer {
	if log == nil {
		log = logger.Nop()
	}
	return &Normalizer{log: log}
}

// Normalize converts one row. ok is false when the row lacks the fields the
// schema requires; the returned record is then the zero value.
func Normalize(row types.RawRow, index int, schema Schema) (types.Record, bool) {
	rec, _, ok := normalizeRow(row, index, schema)
	return rec, ok
}

// Normalize converts one row and logs any issue found.
func (n *Normalizer) Normalize(row types.RawRow, index int, schema Schema) (types.Record, bool) {
	rec, issues, ok := normalizeRow(row, index, schema)
	for _, err := range issues {
		n.log.Warn("normalize", "kind", schema.Kind, "row", index, "err", err)
	}
	return rec, ok
}

// NormalizeAll converts rows in order. Skipped rows do not shift the Row
// index of later records.
func (n *Normalizer) NormalizeAll(rows []types.RawRow, schema Schema) ([]types.Record, Report) {
	report := Report{Kind: schema.Kind}
	records := make([]types.Record, 0, len(rows))
	for i, row := range rows {
		report.Seen++
		if blankRow(row) {
			report.Skipped++
			continue
		}
		rec, issues, ok := normalizeRow(row, i, schema)
		for _, err := range issues {
			n.log.Warn("normalize", "kind", schema.Kind, "row", i, "err", err)
		}
		report.Issues = append(report.Issues, issues...)
		if !ok {
			report.Skipped++
			continue
		}
		report.Kept++
		records = append(records, rec)
	}
	n.log.Debug("normalized sheet", "kind", schema.Kind, "seen", report.Seen, "kept", report.Kept, "skipped", report.Skipped)
	return records, report
}

// blankRow reports whether every cell of the row is blank. Spreadsheet
// exports pad tables with such rows.
func blankRow(row types.RawRow) bool {
	for _, v := range row {
		if CellString(v) != "" {
			return false
		}
	}
	return true
}

func normalizeRow(row types.RawRow, index int, schema Schema) (types.Record, []error, bool) {
	rec := types.Record{
		Kind:      schema.Kind,
		Row:       index,
		SortOrder: types.DefaultSortOrder,
	}
	present := make(map[Field]bool)
	var issues []error
	malformed := func(f Field, v string) {
		issues = append(issues, fmt.Errorf("%w: %s %q in row %d", types.ErrMalformedField, f, v, index))
	}

	for _, f := range schema.Fields {
		if f == FieldCommittee {
			rec.Committee = committee(row)
			present[f] = len(rec.Committee) > 0
			continue
		}
		v := lookup(row, schema.columns(f))
		if v == "" {
			continue
		}

		switch f {
		case FieldYear:
			yr, ok := ParseYears(v)
			if !ok {
				malformed(f, v)
				continue
			}
			rec.Year, rec.Ongoing = yr.Start, rec.Ongoing || yr.Ongoing
			if yr.End != 0 {
				rec.EndYear = yr.End
			}
		case FieldStartDate:
			yr, ok := ParseYears(v)
			if !ok {
				malformed(f, v)
				continue
			}
			rec.Year, rec.Ongoing = yr.Start, rec.Ongoing || yr.Ongoing
			if yr.End != 0 {
				rec.EndYear = yr.End
			}
			if !rec.Month.Known() {
				if m := monthFromDate(v); m.Known() {
					rec.Month = m
				}
			}
		case FieldEndYear:
			yr, ok := ParseYears(v)
			if !ok {
				malformed(f, v)
				continue
			}
			if yr.Start != 0 {
				rec.EndYear = yr.Start
			}
			rec.Ongoing = rec.Ongoing || yr.Ongoing
		case FieldMonth:
			rec.Month = ParseMonth(v)
		case FieldSortOrder:
			order, ok := ParseSortOrder(v)
			if !ok {
				malformed(f, v)
			}
			rec.SortOrder = order
		case FieldCategory:
			rec.Category = TitleCase(v)
		case FieldRole:
			rec.Role = toLower(v)
		case FieldPubType:
			rec.PubType = toLower(v)
		case FieldBibtex:
			if entry, ok := ParseBibtex(v); ok {
				rec.Bibtex = entry
			} else {
				malformed(f, v)
				continue
			}
		default:
			if p := stringField(&rec, f); p != nil {
				*p = v
			}
		}
		present[f] = true
	}

	if rec.Bibtex != nil {
		fillFromBibtex(&rec, present)
	}
	if rec.EndYear == rec.Year {
		rec.EndYear = 0
	}

	if missing := missingRequired(schema, present); missing != "" {
		issues = append(issues, fmt.Errorf("%w: row %d has no %s", types.ErrMalformedRow, index, missing))
		return types.Record{}, issues, false
	}

	if schema.AllowField != "" && present[schema.AllowField] {
		var v string
		switch schema.AllowField {
		case FieldCategory:
			v = rec.Category
		case FieldRole:
			v = rec.Role
		}
		if !slices.Contains(schema.Allowed, toLower(v)) {
			issues = append(issues, fmt.Errorf("%w: %s %q in row %d", types.ErrUnknownValue, schema.AllowField, v, index))
		}
	}
	return rec, issues, true
}

// lookup returns the first non-blank value among the given columns.
func lookup(row types.RawRow, columns []string) string {
	for _, c := range columns {
		if v := CellString(row[c]); v != "" {
			return v
		}
	}
	return ""
}

// committee reads the numbered committee member columns, including the
// misspelled "commitee_member" headers found in older workbooks.
func committee(row types.RawRow) []types.Person {
	var people []types.Person
	for i := 1; i <= maxCommitteeMembers; i++ {
		var person types.Person
		for _, base := range []string{"committee_member", "commitee_member"} {
			col := fmt.Sprintf("%s%d", base, i)
			if person.Name == "" {
				person.Name = CellString(row[col])
			}
			if person.URL == "" {
				person.URL = lookup(row, []string{col + "_url", col + "_link"})
			}
		}
		if person.Name != "" {
			people = append(people, person)
		}
	}
	return people
}

func missingRequired(schema Schema, present map[Field]bool) string {
	for _, f := range schema.Require {
		if !present[f] {
			return string(f)
		}
	}
	if len(schema.RequireAny) == 0 {
		return ""
	}
	for _, f := range schema.RequireAny {
		if present[f] {
			return ""
		}
	}
	names := make([]string, len(schema.RequireAny))
	for i, f := range schema.RequireAny {
		names[i] = string(f)
	}
	return strings.Join(names, " or ")
}

// fillFromBibtex copies citation fields into columns left blank.
func fillFromBibtex(rec *types.Record, present map[Field]bool) {
	bib := rec.Bibtex
	if rec.Title == "" && bib.Field("title") != "" {
		rec.Title = bib.Field("title")
		present[FieldTitle] = true
	}
	if rec.Authors == "" && bib.Field("author") != "" {
		rec.Authors = bib.Field("author")
		present[FieldAuthors] = true
	}
	if rec.Year == 0 {
		if yr, ok := ParseYears(bib.Field("year")); ok && yr.Start != 0 {
			rec.Year = yr.Start
			present[FieldYear] = true
		}
	}
	if rec.Month.Display == "" && bib.Field("month") != "" {
		rec.Month = ParseMonth(bib.Field("month"))
		present[FieldMonth] = true
	}
	if rec.PubType == "" && bib.Type != "" {
		rec.PubType = bib.Type
		present[FieldPubType] = true
	}
	if rec.URL == "" && bib.Field("url") != "" {
		rec.URL = bib.Field("url")
		present[FieldURL] = true
	}
}

// stringField maps plain text fields to their Record slot.
func stringField(rec *types.Record, f Field) *string {
	switch f {
	case FieldTitle:
		return &rec.Title
	case FieldSubtitle:
		return &rec.Subtitle
	case FieldInstitution:
		return &rec.Institution
	case FieldCity:
		return &rec.City
	case FieldCountry:
		return &rec.Country
	case FieldAuthors:
		return &rec.Authors
	case FieldCoAuthors:
		return &rec.CoAuthors
	case FieldSupervisor:
		return &rec.Supervisor
	case FieldCoInstructor:
		return &rec.CoInstructor
	case FieldAdvisor:
		return &rec.Advisor
	case FieldAdvisorURL:
		return &rec.AdvisorURL
	case FieldPI:
		return &rec.PI
	case FieldCollaborators:
		return &rec.Collaborators
	case FieldCourseCode:
		return &rec.CourseCode
	case FieldTerm:
		return &rec.Term
	case FieldEventName:
		return &rec.EventName
	case FieldEventTheme:
		return &rec.EventTheme
	case FieldConferenceNumber:
		return &rec.ConferenceNumber
	case FieldDegree:
		return &rec.Degree
	case FieldStatus:
		return &rec.Status
	case FieldThesis:
		return &rec.Thesis
	case FieldAmount:
		return &rec.Amount
	case FieldCurrency:
		return &rec.Currency
	case FieldShortTitle:
		return &rec.ShortTitle
	case FieldURL:
		return &rec.URL
	case FieldProjectType:
		return &rec.ProjectType
	case FieldDescription:
		return &rec.Description
	case FieldMethods:
		return &rec.Methods
	case FieldTechnologies:
		return &rec.Technologies
	case FieldKeywords:
		return &rec.Keywords
	case FieldExhibitionVenues:
		return &rec.ExhibitionVenues
	case FieldSpecialNotes:
		return &rec.SpecialNotes
	case FieldOrganization:
		return &rec.Organization
	case FieldServiceType:
		return &rec.ServiceType
	case FieldMembershipType:
		return &rec.MembershipType
	case FieldProficiency:
		return &rec.Proficiency
	case FieldEmail:
		return &rec.Email
	case FieldWebsite:
		return &rec.Website
	case FieldORCID:
		return &rec.ORCID
	case FieldGitHub:
		return &rec.GitHub
	case FieldLinkedIn:
		return &rec.LinkedIn
	case FieldAddress:
		return &rec.Address
	case FieldStatement:
		return &rec.Statement
	}
	return nil
}
