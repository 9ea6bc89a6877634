// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the cv-engine CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/cv-engine/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the cv-engine CLI.
var rootCmd = &cobra.Command{
	Use:   "cv-engine",
	Short: "Publish an academic CV from a spreadsheet workbook",
	Long: `cv-engine reads an academic record kept in a spreadsheet workbook and
publishes it as Markdown pages for a Jekyll site (teaching, publications,
conferences, projects) plus a complete curriculum vitae, optionally rendered
to PDF with pandoc.

Each stage is a subcommand: build writes the Markdown, convert renders the
PDF, and publish runs everything and copies the results into the site tree.`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./cv-engine.yaml or ~/.config/cv-engine/cv-engine.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().Bool("log-json", false, "emit logs as JSON")

	rootCmd.PersistentFlags().StringSlice("source", nil, "workbook URL or path, tried in order (repeatable)")
	rootCmd.PersistentFlags().String("format", "", "workbook format: xlsx or csv")
	rootCmd.PersistentFlags().String("output-dir", "", "directory receiving the generated documents")
	rootCmd.PersistentFlags().StringSlice("documents", nil, "documents to write: teaching, publications, conferences, projects, cv")
	rootCmd.PersistentFlags().Bool("no-escape", false, "do not escape Markdown characters in values")

	flags := map[string]string{
		"log.level":        "log-level",
		"log.json":         "log-json",
		"source.locations": "source",
		"source.format":    "format",
		"build.output_dir": "output-dir",
		"build.documents":  "documents",
	}
	for key, name := range flags {
		viper.BindPFlag(key, rootCmd.PersistentFlags().Lookup(name))
	}
}

func initConfig() {
	setDefaults(viper.GetViper())

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("cv-engine")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "cv-engine"))
		}
	}

	viper.SetEnvPrefix("CV_ENGINE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}

	if off, _ := rootCmd.PersistentFlags().GetBool("no-escape"); off {
		viper.Set("build.escape", false)
	}
}

// newLogger builds the logger selected by the log.* settings.
func newLogger() logger.Logger {
	return logger.New(logger.Config{
		Level: logger.Level(viper.GetString("log.level")),
		JSON:  viper.GetBool("log.json"),
	})
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
