// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/pdiddy/cv-engine/pkg/types"
)

// setDefaults registers the default configuration on v.
func setDefaults(v *viper.Viper) {
	v.SetDefault("source.format", string(types.SourceXLSX))
	v.SetDefault("source.locations", []string{"cv.xlsx"})
	v.SetDefault("source.timeout", 30*time.Second)
	v.SetDefault("source.user_agent", "cv-engine/"+version)
	v.SetDefault("source.max_retries", 3)
	v.SetDefault("source.secrets_dir", ".secrets")

	v.SetDefault("build.output_dir", ".")
	v.SetDefault("build.escape", true)
	v.SetDefault("build.csl", true)
	v.SetDefault("build.ledger", true)

	v.SetDefault("conversion.input", "cv.md")
	v.SetDefault("conversion.output", "cv.pdf")
	v.SetDefault("conversion.engines", []string{"xelatex", "pdflatex", "wkhtmltopdf", "weasyprint", "prince"})
	v.SetDefault("conversion.template", "pandoc/cv.tex")
	v.SetDefault("conversion.css", "pandoc/cv.css")
	v.SetDefault("conversion.timeout", 2*time.Minute)
	v.SetDefault("conversion.container_image", "pandoc/latex:3.5")
	v.SetDefault("conversion.variables", map[string]string{
		"colorlinks": "true",
		"linkcolor":  "blue",
		"urlcolor":   "blue",
		"citecolor":  "blue",
		"papersize":  "a4",
	})

	v.SetDefault("publish.pages_dir", "../_pages")
	v.SetDefault("publish.assets_dir", "../assets")

	v.SetDefault("log.level", "info")
}

// loadConfig unmarshals and validates the pipeline configuration.
func loadConfig(v *viper.Viper) (types.PipelineConfig, error) {
	var cfg types.PipelineConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("reading configuration: %w", err)
	}
	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(cfg); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", describe(err))
	}
	return cfg, nil
}

// describe flattens validation errors into "field: rule" pairs.
func describe(err error) error {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msg := fe.Namespace() + ": " + fe.Tag()
		if fe.Param() != "" {
			msg += "=" + fe.Param()
		}
		msgs = append(msgs, msg)
	}
	return fmt.Errorf("%s", strings.Join(msgs, "; "))
}
