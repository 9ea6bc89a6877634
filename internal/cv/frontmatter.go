// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cv

import (
	"bytes"
	"fmt"

	"github.com/gosimple/slug"
	"go.yaml.in/yaml/v3"
)

// Generator is written into every document's front matter.
const Generator = "cv-engine"

// FrontMatter is the Jekyll header of a generated page.
type FrontMatter struct {
	Layout        string `yaml:"layout,omitempty"`
	Title         string `yaml:"title,omitempty"`
	Permalink     string `yaml:"permalink,omitempty"`
	AuthorProfile bool   `yaml:"author_profile,omitempty"`
	Author        string `yaml:"author,omitempty"`
	Generator     string `yaml:"generator"`
}

// PageFrontMatter returns the archive-layout header of a site page.
func PageFrontMatter(title, author string) FrontMatter {
	return FrontMatter{
		Layout:        "archive",
		Title:         title,
		Permalink:     Permalink(title),
		AuthorProfile: true,
		Author:        author,
		Generator:     Generator,
	}
}

// Permalink derives a site path from a title: "Conference Talks" becomes
// "/conference-talks/".
func Permalink(title string) string {
	return "/" + slug.Make(title) + "/"
}

// Render writes the front matter between "---" fences.
func (fm FrontMatter) Render() (string, error) {
	var buf bytes.Buffer
	buf.WriteString("---\n")
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(fm); err != nil {
		return "", fmt.Errorf("encoding front matter: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("encoding front matter: %w", err)
	}
	buf.WriteString("---\n")
	return buf.String(), nil
}
