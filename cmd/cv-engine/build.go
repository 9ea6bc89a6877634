// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/cv-engine/internal/pipeline"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Generate the Markdown pages and CV from the workbook",
	Long: `Build loads the workbook, normalizes every sheet, and writes teaching.md,
publications.md, conferences.md, projects.md and cv.md to the output
directory, plus references.yaml when CSL export is enabled. Malformed rows
are skipped and reported; the build fails only when no sheet has any usable
row.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := newPipeline()
		if err != nil {
			return err
		}
		_, err = p.Build(cmd.Context())
		return err
	},
}

// newPipeline loads the configuration and builds a Pipeline reporting
// status lines to stdout.
func newPipeline() (*pipeline.Pipeline, error) {
	cfg, err := loadConfig(viper.GetViper())
	if err != nil {
		return nil, err
	}
	return pipeline.New(cfg,
		pipeline.WithLogger(newLogger()),
		pipeline.WithStatus(os.Stdout),
	)
}

func init() {
	rootCmd.AddCommand(buildCmd)
}
