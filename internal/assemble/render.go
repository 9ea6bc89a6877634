// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package assemble

import (
	"strconv"
	"strings"

	"github.com/pdiddy/cv-engine/pkg/types"
)

// Render writes a section as Markdown. The section heading uses level
// hashes, group headings one level deeper and sub-group headings bold
// lines. Every entry is followed by a blank line. An empty section renders
// as "".
func Render(s types.Section, level int) string {
	if s.Empty() {
		return ""
	}
	if level < 1 {
		level = 1
	}
	var b strings.Builder
	if s.Heading != "" {
		b.WriteString(strings.Repeat("#", level) + " " + s.Heading + "\n\n")
	}
	if s.Intro != "" {
		b.WriteString(s.Intro + "\n\n")
	}
	for _, g := range s.Groups {
		if g.Count() == 0 {
			continue
		}
		if g.Heading != "" {
			b.WriteString(strings.Repeat("#", level+1) + " " + g.Heading + "\n\n")
		}
		writeEntries(&b, g.Entries, s.Marker)
		for _, sub := range g.Groups {
			if len(sub.Entries) == 0 {
				continue
			}
			if sub.Heading != "" {
				b.WriteString("**" + sub.Heading + "**\n\n")
			}
			writeEntries(&b, sub.Entries, s.Marker)
		}
	}
	return b.String()
}

func writeEntries(b *strings.Builder, entries []types.FormattedEntry, marker string) {
	n := 0
	for _, e := range entries {
		if e.Empty() {
			continue
		}
		n++
		prefix := ""
		switch marker {
		case MarkerNone:
		case MarkerNumbered:
			prefix = strconv.Itoa(n) + ". "
		default:
			prefix = marker + " "
		}
		b.WriteString(prefix)
		b.WriteString(indent(e.Text, len(prefix)))
		b.WriteString("\n\n")
	}
}

// indent indents every line after the first so it continues a list item.
func indent(text string, width int) string {
	if width == 0 || !strings.Contains(text, "\n") {
		return text
	}
	pad := strings.Repeat(" ", width)
	lines := strings.Split(text, "\n")
	for i := 1; i < len(lines); i++ {
		if lines[i] != "" {
			lines[i] = pad + lines[i]
		}
	}
	return strings.Join(lines, "\n")
}
