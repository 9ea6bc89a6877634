// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cv

import (
	"github.com/pdiddy/cv-engine/internal/assemble"
	"github.com/pdiddy/cv-engine/internal/format"
	"github.com/pdiddy/cv-engine/internal/normalize"
	"github.com/pdiddy/cv-engine/pkg/types"
)

func byCategory(r types.Record) string    { return r.Category }
func byInstitution(r types.Record) string { return r.Institution }
func byRole(r types.Record) string        { return r.Role }
func byServiceType(r types.Record) string { return r.ServiceType }

func isWorkshop(r types.Record) bool    { return r.Category == "Workshop" }
func isNotWorkshop(r types.Record) bool { return !isWorkshop(r) }

// PublicationHeadings names the publication groups.
var PublicationHeadings = map[string]string{
	format.PubArticle: "Peer-Reviewed Journal Articles",
	format.PubChapter: "Book Chapters and Edited Volumes",
	format.PubOther:   "Other Publications",
}

// Section layouts shared by the pages and the CV.
var (
	TeachingLayout = assemble.CategoryConfig{
		Heading:    "Teaching",
		GroupBy:    byCategory,
		Priority:   normalize.TeachingCategories,
		SubGroupBy: byInstitution,
		Marker:     assemble.MarkerDash,
	}

	PublicationLayout = assemble.CategoryConfig{
		Heading:  "Publications",
		GroupBy:  format.PublicationGroup,
		Priority: []string{format.PubArticle, format.PubChapter, format.PubOther},
		Headings: PublicationHeadings,
		Marker:   assemble.MarkerNumbered,
	}

	ConferenceLayout = assemble.CategoryConfig{
		GroupBy:     byRole,
		Priority:    normalize.ConferenceRoles,
		HeadingFunc: normalize.TitleCase,
		Marker:      assemble.MarkerDash,
	}

	ProjectLayout = assemble.CategoryConfig{
		Heading: "Projects",
	}
)

// cvLayouts lists the CV body sections in their canonical order. Education
// and the header are built separately.
var cvLayouts = []struct {
	sheet  types.Kind
	config assemble.CategoryConfig
	intro  func(types.Section, []types.Record) string
}{
	{types.KindPublication, PublicationLayout, publicationSummary},
	{types.KindTeaching, assemble.CategoryConfig{
		Heading:    "Teaching Experience",
		GroupBy:    byCategory,
		Priority:   normalize.TeachingCategories,
		SubGroupBy: byInstitution,
		Marker:     assemble.MarkerNumbered,
		Filter:     isNotWorkshop,
	}, nil},
	{types.KindConference, assemble.CategoryConfig{
		Heading:     "Conference Presentations",
		GroupBy:     byRole,
		Priority:    normalize.ConferenceRoles,
		HeadingFunc: normalize.TitleCase,
	}, presentationSummary},
	{types.KindAward, assemble.CategoryConfig{Heading: "Awards and Honors"}, nil},
	{types.KindFunding, assemble.CategoryConfig{Heading: "Funded Research"}, nil},
	{types.KindProject, assemble.CategoryConfig{Heading: "Projects"}, nil},
	{types.KindTeaching, assemble.CategoryConfig{
		Heading: "Workshops and Professional Development",
		Kind:    types.KindWorkshop,
		Filter:  isWorkshop,
	}, nil},
	{types.KindLanguage, assemble.CategoryConfig{Heading: "Languages"}, nil},
	{types.KindService, assemble.CategoryConfig{Heading: "Academic Service", GroupBy: byServiceType}, nil},
	{types.KindMembership, assemble.CategoryConfig{Heading: "Professional Memberships"}, nil},
}
