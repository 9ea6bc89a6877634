// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/cv-engine/internal/ledger"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent builds recorded in the ledger",
	Long: `History lists the most recent builds recorded in the output directory's
ledger, newest first, with the row counts and which documents changed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		outDir := viper.GetString("build.output_dir")
		if _, err := os.Stat(ledger.Path(outDir)); err != nil {
			return fmt.Errorf("no ledger in %s: run build first", outDir)
		}
		store, err := ledger.Open(outDir)
		if err != nil {
			return err
		}
		defer store.Close()

		limit, _ := cmd.Flags().GetInt("limit")
		runs, err := store.History(cmd.Context(), limit)
		if err != nil {
			return err
		}

		w := os.Stdout
		for _, r := range runs {
			fmt.Fprintf(w, "%s  %s  %-9s  %d kept, %d skipped\n",
				r.StartedAt.Local().Format(time.DateTime), r.ID, r.Status, r.RowsKept, r.RowsSkipped)
			for _, d := range r.Documents {
				mark := " "
				if d.Changed {
					mark = "*"
				}
				fmt.Fprintf(w, "    %s %-16s %6d bytes  %s\n", mark, d.Name, d.Bytes, d.Hash[:12])
			}
		}
		fmt.Fprintf(w, "\n%d runs\n", len(runs))
		return nil
	},
}

func init() {
	historyCmd.Flags().Int("limit", 10, "maximum number of runs to show")

	rootCmd.AddCommand(historyCmd)
}
