// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Render the generated CV to PDF with pandoc",
	Long: `Convert renders the CV Markdown in the output directory to PDF. Host
pandoc is used when installed, trying each configured PDF engine in turn;
otherwise pandoc runs inside the configured container image with docker or
podman.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := newPipeline()
		if err != nil {
			return err
		}
		result, err := p.Convert(cmd.Context())
		if err != nil {
			return err
		}
		if result.HasFailures() || result.Converted == 0 {
			return fmt.Errorf("conversion failed: %d converted, %d skipped, %d failed",
				result.Converted, result.Skipped, result.Failed)
		}
		return nil
	},
}

func init() {
	convertCmd.Flags().String("input", "", "Markdown file to convert, relative to the output directory")
	convertCmd.Flags().String("output", "", "PDF file to write, relative to the output directory")
	convertCmd.Flags().StringSlice("engine", nil, "PDF engines to try, in order (repeatable)")
	convertCmd.Flags().String("image", "", "container image used when pandoc is not installed")

	viper.BindPFlag("conversion.input", convertCmd.Flags().Lookup("input"))
	viper.BindPFlag("conversion.output", convertCmd.Flags().Lookup("output"))
	viper.BindPFlag("conversion.engines", convertCmd.Flags().Lookup("engine"))
	viper.BindPFlag("conversion.container_image", convertCmd.Flags().Lookup("image"))

	rootCmd.AddCommand(convertCmd)
}
