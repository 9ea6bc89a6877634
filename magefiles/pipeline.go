//go:build mage

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Sheets lists the workbook's sheets and which pipeline inputs they satisfy.
func Sheets() error {
	mg.Deps(Build)
	return sh.RunV(binPath, "sheets")
}

// Generate writes the Markdown pages and the CV from the workbook.
func Generate() error {
	mg.Deps(Build)
	return sh.RunV(binPath, "build")
}

// Pdf renders the generated CV to PDF.
func Pdf() error {
	mg.SerialDeps(Generate)
	return sh.RunV(binPath, "convert")
}

// Publish runs the whole pipeline and copies the results into the site.
func Publish() error {
	mg.Deps(Build)
	return sh.RunV(binPath, "publish")
}

// History shows the most recent builds recorded in the ledger.
func History() error {
	mg.Deps(Build)
	return sh.RunV(binPath, "history")
}
