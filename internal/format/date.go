// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package format

import (
	"strconv"
	"strings"

	"github.com/pdiddy/cv-engine/pkg/types"
)

// RangeDash separates the ends of a year range.
const RangeDash = "–"

// Date renders "{month} {year}", or whichever of the two is present.
func Date(m types.Month, year int) string {
	var parts []string
	if m.Display != "" {
		parts = append(parts, m.Display)
	}
	if year != 0 {
		parts = append(parts, strconv.Itoa(year))
	}
	return strings.Join(parts, " ")
}

// DateRange renders "{month} {years}", where years is the YearRange of
// start, end and ongoing.
func DateRange(m types.Month, start, end int, ongoing bool) string {
	var parts []string
	if m.Display != "" {
		parts = append(parts, m.Display)
	}
	if y := YearRange(start, end, ongoing); y != "" {
		parts = append(parts, y)
	}
	return strings.Join(parts, " ")
}

// YearRange renders start–end with an en dash. The end is omitted when it
// is absent or equal to start; an ongoing range ends in "present".
func YearRange(start, end int, ongoing bool) string {
	switch {
	case start == 0 && end == 0:
		return ""
	case start == 0:
		return strconv.Itoa(end)
	case end != 0 && end != start:
		return strconv.Itoa(start) + RangeDash + strconv.Itoa(end)
	case ongoing:
		return strconv.Itoa(start) + RangeDash + "present"
	default:
		return strconv.Itoa(start)
	}
}
