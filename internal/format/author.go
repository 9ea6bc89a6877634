// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package format

import (
	"regexp"
	"strings"
)

// authorSep splits BibTeX " and " lists and semicolon lists.
var authorSep = regexp.MustCompile(`(?i)\s+and\s+|\s*;\s*`)

// SplitAuthors splits an author list into trimmed, non-empty names.
func SplitAuthors(s string) []string {
	var names []string
	for _, n := range authorSep.Split(strings.TrimSpace(s), -1) {
		if n = strings.TrimSpace(n); n != "" {
			names = append(names, n)
		}
	}
	return names
}

// AuthorName renders one name as "Last, First". Names already in that form
// are kept; "First Middle Last" is transposed; single names pass through.
func AuthorName(name string) string {
	name = strings.Join(strings.Fields(name), " ")
	if last, first, ok := strings.Cut(name, ","); ok {
		last, first = strings.TrimSpace(last), strings.TrimSpace(first)
		if first == "" {
			return last
		}
		return last + ", " + first
	}
	parts := strings.Fields(name)
	if len(parts) < 2 {
		return name
	}
	return parts[len(parts)-1] + ", " + strings.Join(parts[:len(parts)-1], " ")
}

// Authors renders an author list as "Last, First" names joined by "; ".
func Authors(s string) string {
	names := SplitAuthors(s)
	for i, n := range names {
		names[i] = AuthorName(n)
	}
	return strings.Join(names, "; ")
}
