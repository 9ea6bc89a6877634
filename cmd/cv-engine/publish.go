// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Build, convert and copy the results into the site",
	Long: `Publish runs the whole pipeline: it builds the Markdown documents,
renders the CV to PDF, and copies the pages into the site's pages directory
and the PDF into both the pages and assets directories. A failed PDF
conversion is reported but the Markdown pages are still published.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := newPipeline()
		if err != nil {
			return err
		}
		noPDF, _ := cmd.Flags().GetBool("no-pdf")
		_, err = p.Run(cmd.Context(), !noPDF)
		return err
	},
}

func init() {
	publishCmd.Flags().Bool("no-pdf", false, "skip PDF conversion and publish the Markdown only")
	publishCmd.Flags().String("pages-dir", "", "site directory receiving the Markdown pages")
	publishCmd.Flags().String("assets-dir", "", "site directory receiving the PDF")

	viper.BindPFlag("publish.pages_dir", publishCmd.Flags().Lookup("pages-dir"))
	viper.BindPFlag("publish.assets_dir", publishCmd.Flags().Lookup("assets-dir"))

	rootCmd.AddCommand(publishCmd)
}
