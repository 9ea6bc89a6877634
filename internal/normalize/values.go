// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package normalize

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/pdiddy/cv-engine/pkg/types"
)

var (
	// digitRun matches maximal runs of digits; four-digit runs are years.
	digitRun = regexp.MustCompile(`\d+`)

	// openEnded matches words meaning a range has not ended.
	openEnded = regexp.MustCompile(`(?i)\b(present|current|ongoing|now)\b`)

	// isoMonth captures the month of a YYYY-MM or YYYY-MM-DD date.
	isoMonth = regexp.MustCompile(`^\d{4}-(\d{1,2})(?:-\d{1,2})?`)
)

var monthAbbrev = map[string]int{
	"jan": 1, "feb": 2, "mar": 3, "apr": 4, "may": 5, "jun": 6,
	"jul": 7, "aug": 8, "sep": 9, "sept": 9, "oct": 10, "nov": 11, "dec": 12,
}

// CellString converts a spreadsheet cell to trimmed text. Whole floats lose
// their ".0" suffix so 2019.0 reads as "2019"; NaN and "nan" read as blank.
func CellString(v any) string {
	var s string
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		s = x
	case float64:
		s = formatFloat(x)
	case float32:
		s = formatFloat(float64(x))
	case int:
		s = strconv.Itoa(x)
	case int64:
		s = strconv.FormatInt(x, 10)
	case bool:
		s = strconv.FormatBool(x)
	case fmt.Stringer:
		s = x.String()
	default:
		s = fmt.Sprint(x)
	}
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "nan") {
		return ""
	}
	return s
}

func formatFloat(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return ""
	}
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// ParseMonth normalizes a month value. It accepts 1-12 (including "9.0"),
// three-letter and full English names, "sept" and a trailing dot, in any
// case. Anything else is kept verbatim with index 0.
func ParseMonth(v string) types.Month {
	s := strings.TrimSpace(v)
	if s == "" {
		return types.Month{}
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		if m := int(f); float64(m) == f && m >= 1 && m <= 12 {
			return types.Month{Index: m, Display: time.Month(m).String()}
		}
		return types.Month{Display: s}
	}
	l := strings.TrimSuffix(strings.ToLower(s), ".")
	if m, ok := monthAbbrev[l]; ok {
		return types.Month{Index: m, Display: time.Month(m).String()}
	}
	for m := 1; m <= 12; m++ {
		if l == strings.ToLower(time.Month(m).String()) {
			return types.Month{Index: m, Display: time.Month(m).String()}
		}
	}
	return types.Month{Display: s}
}

// YearRange is the result of lenient year parsing.
type YearRange struct {
	Start   int
	End     int
	Ongoing bool
}

// ParseYears extracts a year or a year range from free text: "2019",
// "2019.0", "2019 to 2021", "2019-2021", "2019–2021", "2019 - present",
// "2024-06-01". The first four-digit run is the start, the second the end.
// ok is false when the text holds no year and no open-ended marker.
func ParseYears(v string) (YearRange, bool) {
	s := strings.TrimSpace(v)
	if s == "" {
		return YearRange{}, false
	}
	var yr YearRange
	for _, run := range digitRun.FindAllString(s, -1) {
		if len(run) != 4 {
			continue
		}
		n, _ := strconv.Atoi(run)
		switch {
		case yr.Start == 0:
			yr.Start = n
		case yr.End == 0:
			yr.End = n
		}
	}
	yr.Ongoing = openEnded.MatchString(s)
	if yr.End == yr.Start {
		yr.End = 0
	}
	return yr, yr.Start != 0 || yr.Ongoing
}

// ParseSortOrder parses a manual ordering value, returning the sentinel
// types.DefaultSortOrder when blank or unparsable.
func ParseSortOrder(v string) (int, bool) {
	s := strings.TrimSpace(v)
	if s == "" {
		return types.DefaultSortOrder, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return types.DefaultSortOrder, false
	}
	return int(f), true
}

// monthFromDate returns the month of an ISO-like date, or the zero Month.
func monthFromDate(v string) types.Month {
	m := isoMonth.FindStringSubmatch(strings.TrimSpace(v))
	if m == nil {
		return types.Month{}
	}
	month := ParseMonth(m[1])
	if !month.Known() {
		return types.Month{}
	}
	return month
}

// TitleCase title-cases a label such as a teaching category or role.
func TitleCase(s string) string {
	return cases.Title(language.English).String(strings.ToLower(strings.ReplaceAll(s, "_", " ")))
}

func toLower(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
