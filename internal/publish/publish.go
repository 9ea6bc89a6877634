// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package publish copies generated pages and the PDF into the website tree.
package publish

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/pdiddy/cv-engine/pkg/types"
)

// Result holds the outcome of a publish run.
type Result struct {
	Copied  int
	Skipped int
	Failed  int
}

// HasFailures reports whether any copy failed.
func (r Result) HasFailures() bool {
	return r.Failed > 0
}

// Publisher copies files from the output directory to the site directories.
type Publisher struct {
	fs  afero.Fs
	cfg types.PublishConfig
}

// New returns a Publisher writing through fs.
func New(fs afero.Fs, cfg types.PublishConfig) *Publisher {
	return &Publisher{fs: fs, cfg: cfg}
}

// Publish copies each page from outputDir into PagesDir, and the PDF, when
// pdf is not empty, into both PagesDir and AssetsDir. Sources that do not
// exist are skipped; an unset destination directory disables that copy.
func (p *Publisher) Publish(outputDir string, pages []string, pdf string, w io.Writer) Result {
	var result Result
	copyTo := func(name, destDir string) {
		if destDir == "" {
			return
		}
		src := filepath.Join(outputDir, name)
		if ok, _ := afero.Exists(p.fs, src); !ok {
			fmt.Fprintf(w, "skipped: %s (not found)\n", name)
			result.Skipped++
			return
		}
		dest := filepath.Join(destDir, name)
		if err := p.copyFile(src, dest); err != nil {
			fmt.Fprintf(w, "failed:  %s (%v)\n", name, err)
			result.Failed++
			return
		}
		fmt.Fprintf(w, "copied: %s -> %s\n", name, destDir)
		result.Copied++
	}

	for _, page := range pages {
		copyTo(page, p.cfg.PagesDir)
	}
	if pdf != "" {
		copyTo(pdf, p.cfg.PagesDir)
		copyTo(pdf, p.cfg.AssetsDir)
	}

	fmt.Fprintf(w, "\nPublish summary: %d copied, %d skipped, %d failed\n",
		result.Copied, result.Skipped, result.Failed)
	return result
}

// copyFile copies src to dest, creating dest's directory and preserving
// the source modification time.
func (p *Publisher) copyFile(src, dest string) error {
	if err := p.fs.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(dest), err)
	}
	in, err := p.fs.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := p.fs.OpenFile(dest, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	if info, err := p.fs.Stat(src); err == nil {
		_ = p.fs.Chtimes(dest, info.ModTime(), info.ModTime())
	}
	return nil
}
