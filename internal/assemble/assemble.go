// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package assemble groups formatted entries into ordered sections and
// renders them as Markdown.
package assemble

import (
	"cmp"
	"slices"

	"github.com/pdiddy/cv-engine/internal/format"
	"github.com/pdiddy/cv-engine/pkg/types"
)

// List markers for CategoryConfig.Marker.
const (
	MarkerNone     = ""
	MarkerDash     = "-"
	MarkerNumbered = "1."
)

// KeyFunc extracts a grouping key from a record. An empty key places the
// record in a group without a heading.
type KeyFunc func(r types.Record) string

// CategoryConfig describes how one section groups and orders its records.
type CategoryConfig struct {
	Heading string

	// Kind selects the entry style; records keep their own kind when empty.
	Kind types.Kind

	// GroupBy splits records into top-level groups. Nil puts every record
	// in one group without a heading.
	GroupBy KeyFunc

	// Priority fixes the order of known group keys. Other keys follow in
	// alphabetical order, and the empty key comes last.
	Priority []string

	// Headings overrides the display heading of a group key. HeadingFunc is
	// consulted for keys not in Headings; the key itself is used otherwise.
	Headings    map[string]string
	HeadingFunc func(key string) string

	// SubGroupBy nests records of each group by a second key. Sub-groups
	// are ordered by their most recent year, newest first.
	SubGroupBy KeyFunc

	// Marker is the list marker written before each entry.
	Marker string

	// Filter keeps only records for which it returns true.
	Filter func(r types.Record) bool
}

// Assemble formats, groups and orders records into a section. Degenerate
// entries are dropped and groups left without entries are omitted.
func Assemble(records []types.Record, cfg CategoryConfig, f *format.Formatter) types.Section {
	section := types.Section{Heading: cfg.Heading, Marker: cfg.Marker}

	type item struct {
		rec   types.Record
		entry types.FormattedEntry
	}
	byKey := make(map[string][]item)
	for _, r := range records {
		if cfg.Filter != nil && !cfg.Filter(r) {
			continue
		}
		kind := cfg.Kind
		if kind == "" {
			kind = r.Kind
		}
		entry := f.Format(r, kind)
		if entry.Empty() {
			continue
		}
		key := ""
		if cfg.GroupBy != nil {
			key = cfg.GroupBy(r)
		}
		byKey[key] = append(byKey[key], item{rec: r, entry: entry})
	}

	for _, key := range orderKeys(keysOf(byKey), cfg.Priority) {
		items := byKey[key]
		group := types.Group{Key: key, Heading: cfg.heading(key)}
		if cfg.SubGroupBy == nil {
			for _, it := range items {
				group.Entries = append(group.Entries, it.entry)
			}
			SortEntries(group.Entries)
		} else {
			subs := make(map[string][]types.FormattedEntry)
			for _, it := range items {
				sub := cfg.SubGroupBy(it.rec)
				subs[sub] = append(subs[sub], it.entry)
			}
			for sub, entries := range subs {
				SortEntries(entries)
				group.Groups = append(group.Groups, types.Group{Key: sub, Heading: sub, Entries: entries})
			}
			SortGroupsByRecency(group.Groups)
		}
		if group.Count() > 0 {
			section.Groups = append(section.Groups, group)
		}
	}
	return section
}

func (c CategoryConfig) heading(key string) string {
	if h, ok := c.Headings[key]; ok {
		return h
	}
	if c.HeadingFunc != nil && key != "" {
		return c.HeadingFunc(key)
	}
	return key
}

func keysOf[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}

// orderKeys places priority keys first in their listed order, then the
// remaining keys alphabetically, then the empty key.
func orderKeys(keys, priority []string) []string {
	rank := make(map[string]int, len(priority))
	for i, p := range priority {
		rank[p] = i
	}
	slices.SortFunc(keys, func(a, b string) int {
		ra, aok := rank[a]
		rb, bok := rank[b]
		switch {
		case aok && bok:
			return cmp.Compare(ra, rb)
		case aok:
			return -1
		case bok:
			return 1
		case a == "" || b == "":
			return cmp.Compare(b, a)
		default:
			return cmp.Compare(a, b)
		}
	})
	return keys
}

// SortEntries orders entries by year descending (absent years last), month
// descending, manual sort order ascending and source row ascending.
func SortEntries(entries []types.FormattedEntry) {
	slices.SortStableFunc(entries, func(a, b types.FormattedEntry) int {
		if (a.Year == 0) != (b.Year == 0) {
			if a.Year == 0 {
				return 1
			}
			return -1
		}
		if c := cmp.Compare(b.Year, a.Year); c != 0 {
			return c
		}
		if c := cmp.Compare(b.MonthIndex, a.MonthIndex); c != 0 {
			return c
		}
		if c := cmp.Compare(a.SortOrder, b.SortOrder); c != 0 {
			return c
		}
		return cmp.Compare(a.Row, b.Row)
	})
}

// SortGroupsByRecency orders groups by their most recent year, newest
// first, breaking ties by key.
func SortGroupsByRecency(groups []types.Group) {
	slices.SortStableFunc(groups, func(a, b types.Group) int {
		if c := cmp.Compare(b.MaxYear(), a.MaxYear()); c != 0 {
			return c
		}
		return cmp.Compare(a.Key, b.Key)
	})
}
