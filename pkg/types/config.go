// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used when fetching the workbook.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "cv-engine/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`

	// MaxRetries bounds the retries on 429 and 5xx gateway responses (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries" mapstructure:"max_retries" validate:"gte=0,lte=10"`
}

// SourceFormat identifies how the workbook is stored.
type SourceFormat string

const (
	SourceXLSX SourceFormat = "xlsx"
	SourceCSV  SourceFormat = "csv"
)

// SourceConfig holds settings for loading the spreadsheet workbook.
type SourceConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// Format selects the workbook reader: xlsx or csv.
	Format SourceFormat `json:"format" yaml:"format" mapstructure:"format" validate:"oneof=xlsx csv"`

	// Locations lists workbook URLs or file paths tried in order. For the
	// csv format each location is a directory of <Sheet>.csv files.
	Locations []string `json:"locations" yaml:"locations" mapstructure:"locations" validate:"min=1,dive,required"`

	// SheetAliases maps a canonical sheet name to alternative names tried
	// when the canonical one is absent (e.g. Header -> [Profile]).
	SheetAliases map[string][]string `json:"sheet_aliases,omitempty" yaml:"sheet_aliases,omitempty" mapstructure:"sheet_aliases"`

	// SecretsDir holds credential files; a workbook-token file there is
	// sent as a bearer token when downloading workbook URLs.
	SecretsDir string `json:"secrets_dir,omitempty" yaml:"secrets_dir,omitempty" mapstructure:"secrets_dir"`
}

// BuildConfig holds settings for Markdown generation.
type BuildConfig struct {
	// OutputDir receives the generated Markdown documents.
	OutputDir string `json:"output_dir" yaml:"output_dir" mapstructure:"output_dir" validate:"required"`

	// Author is written into every document's front matter.
	Author string `json:"author" yaml:"author" mapstructure:"author"`

	// Escape enables escaping of structural characters in entry values.
	Escape bool `json:"escape" yaml:"escape" mapstructure:"escape"`

	// CSL enables the CSL-YAML bibliography export (references.yaml).
	CSL bool `json:"csl" yaml:"csl" mapstructure:"csl"`

	// Ledger records runs and document hashes in <output_dir>/.cv-engine.
	Ledger bool `json:"ledger" yaml:"ledger" mapstructure:"ledger"`

	// Documents restricts which documents are written; empty means all.
	Documents []string `json:"documents,omitempty" yaml:"documents,omitempty" mapstructure:"documents" validate:"dive,oneof=teaching publications conferences projects cv"`
}

// ConversionConfig holds settings for the Markdown-to-PDF stage.
type ConversionConfig struct {
	// Input is the Markdown file converted to PDF, relative to the output dir.
	Input string `json:"input" yaml:"input" mapstructure:"input" validate:"required"`

	// Output is the PDF file name, relative to the output dir.
	Output string `json:"output" yaml:"output" mapstructure:"output" validate:"required"`

	// Engines lists pandoc PDF engines in order of preference.
	Engines []string `json:"engines" yaml:"engines" mapstructure:"engines" validate:"min=1"`

	// Template is an optional pandoc template; ignored when the file is missing.
	Template string `json:"template,omitempty" yaml:"template,omitempty" mapstructure:"template"`

	// CSS is an optional stylesheet passed to HTML-based engines.
	CSS string `json:"css,omitempty" yaml:"css,omitempty" mapstructure:"css"`

	// Variables are passed to pandoc as -V key=value.
	Variables map[string]string `json:"variables,omitempty" yaml:"variables,omitempty" mapstructure:"variables"`

	// Timeout bounds a single pandoc invocation.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// ContainerImage is the pandoc image used when pandoc is not on PATH.
	ContainerImage string `json:"container_image,omitempty" yaml:"container_image,omitempty" mapstructure:"container_image"`
}

// PublishConfig holds settings for copying outputs into the site tree.
type PublishConfig struct {
	// PagesDir receives the Markdown pages (e.g. "../_pages").
	PagesDir string `json:"pages_dir" yaml:"pages_dir" mapstructure:"pages_dir"`

	// AssetsDir receives the PDF (e.g. "../assets").
	AssetsDir string `json:"assets_dir" yaml:"assets_dir" mapstructure:"assets_dir"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level string `json:"level" yaml:"level" mapstructure:"level" validate:"omitempty,oneof=debug info warn error"`
	JSON  bool   `json:"json" yaml:"json" mapstructure:"json"`
}

// PipelineConfig groups all stage configurations for the pipeline.
type PipelineConfig struct {
	Source     SourceConfig     `json:"source" yaml:"source" mapstructure:"source"`
	Build      BuildConfig      `json:"build" yaml:"build" mapstructure:"build"`
	Conversion ConversionConfig `json:"conversion" yaml:"conversion" mapstructure:"conversion"`
	Publish    PublishConfig    `json:"publish" yaml:"publish" mapstructure:"publish"`
	Log        LogConfig        `json:"log" yaml:"log" mapstructure:"log"`
}

// WantsDocument reports whether the named document should be written.
func (c BuildConfig) WantsDocument(name string) bool {
	if len(c.Documents) == 0 {
		return true
	}
	for _, d := range c.Documents {
		if d == name {
			return true
		}
	}
	return false
}
