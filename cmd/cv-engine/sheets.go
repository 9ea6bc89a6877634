// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/cv-engine/internal/pipeline"
)

var sheetsCmd = &cobra.Command{
	Use:   "sheets",
	Short: "List the workbook's sheets and the ones the pipeline reads",
	Long: `Sheets loads the workbook and prints every sheet with its row count and
columns, then shows which sheet each pipeline input resolves to. Inputs with
no matching sheet are listed as missing; their sections render as empty.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := newPipeline()
		if err != nil {
			return err
		}
		wb, err := p.Workbook(cmd.Context())
		if err != nil {
			return err
		}

		w := os.Stdout
		fmt.Fprintf(w, "Workbook: %s\n\n", wb.Location)
		for _, s := range wb.Sheets {
			fmt.Fprintf(w, "  %-28s %4d rows  %s\n", s.Name, len(s.Rows), strings.Join(s.Header, ", "))
		}

		fmt.Fprintln(w)
		missing := 0
		for _, b := range pipeline.Bindings {
			s, ok := wb.Lookup(b.Sheet)
			if !ok {
				fmt.Fprintf(w, "  %-16s missing\n", b.Sheet)
				missing++
				continue
			}
			fmt.Fprintf(w, "  %-16s -> %s (%s)\n", b.Sheet, s.Name, b.Schema.Kind)
		}
		fmt.Fprintf(w, "\nSheets summary: %d found, %d inputs resolved, %d missing\n",
			len(wb.Sheets), len(pipeline.Bindings)-missing, missing)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sheetsCmd)
}
