// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Group is a titled set of entries inside a section. Groups nest one level:
// a category group may hold institution or role sub-groups instead of
// entries.
type Group struct {
	// Key is the grouping key the records shared (e.g. "Instructor").
	Key string `json:"key" yaml:"key"`

	// Heading is the display text; empty means no heading line.
	Heading string `json:"heading,omitempty" yaml:"heading,omitempty"`

	// Groups holds nested sub-groups; Entries is empty when set.
	Groups []Group `json:"groups,omitempty" yaml:"groups,omitempty"`

	// Entries holds the ordered, non-empty entries of the group.
	Entries []FormattedEntry `json:"entries,omitempty" yaml:"entries,omitempty"`
}

// Count returns the number of entries in the group and its sub-groups.
func (g Group) Count() int {
	n := len(g.Entries)
	for _, sub := range g.Groups {
		n += sub.Count()
	}
	return n
}

// MaxYear returns the most recent year across the group's entries, or 0.
func (g Group) MaxYear() int {
	max := 0
	for _, e := range g.Entries {
		if e.Year > max {
			max = e.Year
		}
	}
	for _, sub := range g.Groups {
		if y := sub.MaxYear(); y > max {
			max = y
		}
	}
	return max
}

// Section is a titled part of a document.
type Section struct {
	// Heading is the section title (e.g. "Teaching Experience").
	Heading string `json:"heading" yaml:"heading"`

	// Intro is an optional line printed under the heading, such as a
	// publication count or a missing-data notice.
	Intro string `json:"intro,omitempty" yaml:"intro,omitempty"`

	// Groups holds the section's top-level groups in display order.
	Groups []Group `json:"groups" yaml:"groups"`

	// Marker prefixes each rendered entry: "-" for a bullet list, "1." for
	// a list numbered per group, or "" for plain paragraphs.
	Marker string `json:"marker,omitempty" yaml:"marker,omitempty"`
}

// Count returns the number of entries in the section.
func (s Section) Count() int {
	n := 0
	for _, g := range s.Groups {
		n += g.Count()
	}
	return n
}

// Empty reports whether the section has neither entries nor an intro line.
func (s Section) Empty() bool {
	return s.Count() == 0 && s.Intro == ""
}

// Document is one generated Markdown file.
type Document struct {
	// Name is the document key ("teaching", "cv", ...); the file is Name.md.
	Name string `json:"name" yaml:"name"`

	// Body is the complete Markdown text including front matter.
	Body string `json:"body" yaml:"body"`

	// Stamp is the "last updated" line inside Body, if any. It is excluded
	// from content hashes so unchanged data hashes identically across runs.
	Stamp string `json:"stamp,omitempty" yaml:"stamp,omitempty"`
}

// FileName returns the document's file name.
func (d Document) FileName() string { return d.Name + ".md" }
