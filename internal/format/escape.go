// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package format

import (
	"regexp"
	"strings"
)

// specialChars are the structural characters escaped in literal values.
const specialChars = `&%$#^_{}~\`

var (
	urlScheme  = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9+.-]*://|^mailto:`)
	texCommand = regexp.MustCompile(`^\\[A-Za-z]`)
)

// IsMarkup reports whether s already carries markup and must pass through
// unescaped: a URL, a backslash command, a leading emphasis or heading
// marker, or an opening bracket followed later by "(".
func IsMarkup(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	if urlScheme.MatchString(s) || texCommand.MatchString(s) {
		return true
	}
	switch s[0] {
	case '*', '_', '#':
		return true
	}
	if i := strings.IndexByte(s, '['); i >= 0 && strings.IndexByte(s[i+1:], '(') >= 0 {
		return true
	}
	return false
}

// Escape backslash-escapes every structural character of s. A character
// that is already escaped is left alone, so Escape(Escape(s)) == Escape(s).
func Escape(s string) string {
	if !strings.ContainsAny(s, specialChars) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 8)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '\\' && i+1 < len(s) && strings.IndexByte(specialChars, s[i+1]) >= 0 {
			b.WriteByte(c)
			b.WriteByte(s[i+1])
			i++
			continue
		}
		if strings.IndexByte(specialChars, c) >= 0 {
			b.WriteByte('\\')
		}
		b.WriteByte(c)
	}
	return b.String()
}
