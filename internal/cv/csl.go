// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cv

import (
	"io"
	"strconv"
	"strings"

	"github.com/gosimple/slug"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/cv-engine/internal/format"
	"github.com/pdiddy/cv-engine/pkg/types"
)

// CSLItem represents a bibliographic entry in CSL (Citation Style Language)
// format. The field names and structure follow the CSL-YAML schema so that
// pandoc's citeproc and reference managers can consume the output.
type CSLItem struct {
	ID             string    `yaml:"id"`
	Type           string    `yaml:"type"`
	Title          string    `yaml:"title"`
	Author         []CSLName `yaml:"author,omitempty"`
	Editor         []CSLName `yaml:"editor,omitempty"`
	ContainerTitle string    `yaml:"container-title,omitempty"`
	Volume         string    `yaml:"volume,omitempty"`
	Issue          string    `yaml:"issue,omitempty"`
	Page           string    `yaml:"page,omitempty"`
	Publisher      string    `yaml:"publisher,omitempty"`
	Issued         *CSLDate  `yaml:"issued,omitempty"`
	DOI            string    `yaml:"DOI,omitempty"`
	URL            string    `yaml:"URL,omitempty"`
}

// CSLName represents a person's name in CSL format.
type CSLName struct {
	Family  string `yaml:"family,omitempty"`
	Given   string `yaml:"given,omitempty"`
	Literal string `yaml:"literal,omitempty"`
}

// CSLDate represents a date in CSL format using date-parts.
type CSLDate struct {
	DateParts [][]int `yaml:"date-parts"`
}

// cslTypes maps BibTeX entry types to CSL item types.
var cslTypes = map[string]string{
	"article":       "article-journal",
	"book":          "book",
	"inbook":        "chapter",
	"incollection":  "chapter",
	"inproceedings": "paper-conference",
	"phdthesis":     "thesis",
	"mastersthesis": "thesis",
	"techreport":    "report",
}

// FormatCSL writes publication records as a CSL-YAML list to w. Records
// without a title are skipped.
func FormatCSL(records []types.Record, w io.Writer) error {
	items := make([]CSLItem, 0, len(records))
	taken := make(map[string]bool)
	for _, r := range records {
		if r.Title == "" {
			continue
		}
		item := toCSLItem(r)
		item.ID = uniqueID(item.ID, taken)
		taken[item.ID] = true
		items = append(items, item)
	}
	enc := yaml.NewEncoder(w)
	if err := enc.Encode(items); err != nil {
		enc.Close()
		return err
	}
	return enc.Close()
}

// uniqueID returns id, or the first of id-2, id-3, ... not yet taken.
func uniqueID(id string, taken map[string]bool) string {
	if !taken[id] {
		return id
	}
	for n := 2; ; n++ {
		if c := id + "-" + strconv.Itoa(n); !taken[c] {
			return c
		}
	}
}

// toCSLItem converts a publication record to a CSLItem.
func toCSLItem(r types.Record) CSLItem {
	bib := r.Bibtex
	item := CSLItem{
		ID:        citationKey(r),
		Type:      "article",
		Title:     r.Title,
		Volume:    bib.Field("volume"),
		Issue:     bib.Field("number"),
		Page:      strings.ReplaceAll(bib.Field("pages"), "--", "-"),
		Publisher: bib.Field("publisher"),
		DOI:       bib.Field("doi"),
		URL:       r.URL,
	}
	if t, ok := cslTypes[r.PubType]; ok {
		item.Type = t
	}
	item.ContainerTitle = bib.Field("journal")
	if item.ContainerTitle == "" {
		item.ContainerTitle = bib.Field("booktitle")
	}

	for _, a := range format.SplitAuthors(r.Authors) {
		item.Author = append(item.Author, parseAuthorName(a))
	}
	for _, e := range format.SplitAuthors(bib.Field("editor")) {
		item.Editor = append(item.Editor, parseAuthorName(e))
	}

	if r.Year != 0 {
		parts := []int{r.Year}
		if r.Month.Known() {
			parts = append(parts, r.Month.Index)
		}
		item.Issued = &CSLDate{DateParts: [][]int{parts}}
	}
	return item
}

// citationKey prefers the BibTeX key and otherwise derives one from the
// first author's family name and the year.
func citationKey(r types.Record) string {
	if r.Bibtex != nil && r.Bibtex.Key != "" {
		return r.Bibtex.Key
	}
	base := "item"
	if names := format.SplitAuthors(r.Authors); len(names) > 0 {
		n := parseAuthorName(names[0])
		base = n.Family
		if base == "" {
			base = n.Literal
		}
	}
	key := slug.Make(base)
	if r.Year != 0 {
		key += strconv.Itoa(r.Year)
	}
	return key
}

// parseAuthorName splits a name into CSL family/given parts. "Last, First"
// splits on the comma; otherwise the last token is the family name.
// Single-token names use the literal field.
func parseAuthorName(name string) CSLName {
	name = strings.TrimSpace(name)
	if name == "" {
		return CSLName{}
	}
	if family, given, ok := strings.Cut(name, ","); ok {
		return CSLName{Family: strings.TrimSpace(family), Given: strings.TrimSpace(given)}
	}
	idx := strings.LastIndex(name, " ")
	if idx < 0 {
		return CSLName{Literal: name}
	}
	return CSLName{
		Given:  name[:idx],
		Family: name[idx+1:],
	}
}
