// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline wires the stages together: load the workbook, normalize
// each sheet, build the documents, write them, then optionally convert the
// CV to PDF and publish everything into the site tree.
package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"time"

	"github.com/spf13/afero"

	"github.com/pdiddy/cv-engine/internal/container"
	"github.com/pdiddy/cv-engine/internal/convert"
	"github.com/pdiddy/cv-engine/internal/cv"
	"github.com/pdiddy/cv-engine/internal/format"
	"github.com/pdiddy/cv-engine/internal/httputil"
	"github.com/pdiddy/cv-engine/internal/ledger"
	"github.com/pdiddy/cv-engine/internal/logger"
	"github.com/pdiddy/cv-engine/internal/normalize"
	"github.com/pdiddy/cv-engine/internal/publish"
	"github.com/pdiddy/cv-engine/internal/secrets"
	"github.com/pdiddy/cv-engine/internal/sheet"
	"github.com/pdiddy/cv-engine/pkg/types"
)

// ReferencesFile is the CSL-YAML bibliography written next to the documents.
const ReferencesFile = "references.yaml"

// Binding ties a canonical sheet name to the schema its rows follow.
type Binding struct {
	Sheet  string
	Schema normalize.Schema
}

// Bindings lists every sheet the pipeline reads.
var Bindings = []Binding{
	{"Header", normalize.Profile},
	{"Training", normalize.Education},
	{"Teaching", normalize.Teaching},
	{"Conferences", normalize.Conference},
	{"Publications", normalize.Publication},
	{"Projects", normalize.Project},
	{"Awards", normalize.Award},
	{"FundedResearch", normalize.Funding},
	{"Languages", normalize.Language},
	{"Service", normalize.Service},
	{"Memberships", normalize.Membership},
}

// Pipeline runs the build, convert and publish stages for one configuration.
type Pipeline struct {
	cfg    types.PipelineConfig
	fs     afero.Fs
	source sheet.Source
	exec   container.Executor
	log    logger.Logger
	out    io.Writer
	now    func() time.Time
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithFs sets the filesystem documents are written to and published through.
func WithFs(fs afero.Fs) Option { return func(p *Pipeline) { p.fs = fs } }

// WithSource replaces the workbook source built from the configuration.
func WithSource(s sheet.Source) Option { return func(p *Pipeline) { p.source = s } }

// WithExecutor sets the command runner used for pandoc and containers.
func WithExecutor(e container.Executor) Option { return func(p *Pipeline) { p.exec = e } }

// WithLogger sets the structured logger.
func WithLogger(l logger.Logger) Option { return func(p *Pipeline) { p.log = l } }

// WithStatus sets the writer receiving per-file status lines.
func WithStatus(w io.Writer) Option { return func(p *Pipeline) { p.out = w } }

// WithClock sets the clock used for the "last updated" stamp.
func WithClock(now func() time.Time) Option { return func(p *Pipeline) { p.now = now } }

// New returns a Pipeline for cfg. Unless WithSource is given, the workbook
// source is built from cfg.Source, authenticating URL downloads with the
// workbook-token secret when one is present.
func New(cfg types.PipelineConfig, opts ...Option) (*Pipeline, error) {
	p := &Pipeline{
		cfg:  cfg,
		fs:   afero.NewOsFs(),
		exec: container.OSExecutor{},
		log:  logger.Nop(),
		out:  io.Discard,
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.source == nil {
		keys, err := secrets.Load(p.fs, cfg.Source.SecretsDir, p.log)
		if err != nil {
			return nil, err
		}
		client := httputil.WithBearer(&http.Client{Timeout: cfg.Source.Timeout}, keys.Get(secrets.WorkbookToken))
		src, err := sheet.NewSource(cfg.Source, p.fs, client, p.log)
		if err != nil {
			return nil, err
		}
		p.source = src
	}
	return p, nil
}

// Workbook reads the raw workbook without normalizing it.
func (p *Pipeline) Workbook(ctx context.Context) (*sheet.Workbook, error) {
	return p.source.Load(ctx)
}

// Loaded is the normalized content of a workbook.
type Loaded struct {
	Sheets  cv.Sheets
	Reports []normalize.Report
	Missing []string
}

// Kept returns the number of records kept across all sheets.
func (l Loaded) Kept() int {
	n := 0
	for _, r := range l.Reports {
		n += r.Kept
	}
	return n
}

// Skipped returns the number of rows skipped across all sheets.
func (l Loaded) Skipped() int {
	n := 0
	for _, r := range l.Reports {
		n += r.Skipped
	}
	return n
}

// Load reads the workbook and normalizes every bound sheet. Absent sheets
// are listed in Missing and left out of Sheets.
func (p *Pipeline) Load(ctx context.Context) (Loaded, error) {
	wb, err := p.source.Load(ctx)
	if err != nil {
		return Loaded{}, err
	}

	n := normalize.New(p.log)
	loaded := Loaded{Sheets: cv.Sheets{}}
	for _, b := range Bindings {
		s, ok := wb.Lookup(b.Sheet)
		if !ok {
			p.log.Warn("sheet missing", "sheet", b.Sheet, "err", types.ErrMissingSource)
			loaded.Missing = append(loaded.Missing, b.Sheet)
			continue
		}
		records, report := n.NormalizeAll(s.Rows, b.Schema)
		loaded.Sheets[b.Schema.Kind] = records
		loaded.Reports = append(loaded.Reports, report)
		fmt.Fprintf(p.out, "loaded: %s (%d kept, %d skipped)\n", s.Name, report.Kept, report.Skipped)
	}
	return loaded, nil
}

// BuildResult summarizes one build.
type BuildResult struct {
	RunID     string
	Documents []types.Document
	Written   []string
	Unchanged []string
	Kept      int
	Skipped   int
}

// Build loads the workbook, renders the configured documents and writes
// them to the output directory. With the ledger on, a file that already
// holds the document, ignoring the "last updated" line, is left untouched.
// Documents are recorded in the ledger only once their file is in place.
// Build returns types.ErrNoUsableInput, writing nothing, when no sheet
// yields a record.
func (p *Pipeline) Build(ctx context.Context) (BuildResult, error) {
	outDir := p.cfg.Build.OutputDir

	var store *ledger.Store
	var runID string
	if p.cfg.Build.Ledger {
		var err error
		if store, err = ledger.Open(outDir); err != nil {
			return BuildResult{}, err
		}
		defer store.Close()
		if runID, err = store.BeginRun(ctx); err != nil {
			return BuildResult{}, err
		}
	}
	finish := func(status string, kept, skipped int) {
		if store == nil {
			return
		}
		if err := store.FinishRun(ctx, runID, status, kept, skipped); err != nil {
			p.log.Error("ledger", "run", runID, "err", err)
		}
	}

	loaded, err := p.Load(ctx)
	if err != nil {
		finish(ledger.StatusFailed, 0, 0)
		return BuildResult{}, err
	}
	result := BuildResult{RunID: runID, Kept: loaded.Kept(), Skipped: loaded.Skipped()}

	formatter := format.New(format.WithEscape(p.cfg.Build.Escape))
	builder := cv.NewBuilder(formatter,
		cv.WithAuthor(p.cfg.Build.Author),
		cv.WithClock(p.now),
		cv.WithLogger(p.log),
	)
	docs, err := builder.Build(loaded.Sheets, p.cfg.Build.Documents)
	if err != nil {
		finish(ledger.StatusFailed, result.Kept, result.Skipped)
		return result, err
	}
	result.Documents = docs

	if err := p.fs.MkdirAll(outDir, 0o755); err != nil {
		finish(ledger.StatusFailed, result.Kept, result.Skipped)
		return result, fmt.Errorf("creating %s: %w", outDir, err)
	}

	for _, doc := range docs {
		path := filepath.Join(outDir, doc.FileName())
		if store != nil && p.current(path, doc) {
			p.record(ctx, store, runID, doc)
			fmt.Fprintf(p.out, "unchanged: %s\n", doc.FileName())
			result.Unchanged = append(result.Unchanged, doc.FileName())
			continue
		}
		if err := afero.WriteFile(p.fs, path, []byte(doc.Body), 0o644); err != nil {
			finish(ledger.StatusFailed, result.Kept, result.Skipped)
			return result, fmt.Errorf("writing %s: %w", path, err)
		}
		if store != nil {
			p.record(ctx, store, runID, doc)
		}
		fmt.Fprintf(p.out, "wrote: %s\n", doc.FileName())
		result.Written = append(result.Written, doc.FileName())
	}

	if p.cfg.Build.CSL && loaded.Sheets.Has(types.KindPublication) {
		if err := p.writeReferences(loaded.Sheets[types.KindPublication]); err != nil {
			p.log.Warn("references not written", "err", err)
		}
	}

	fmt.Fprintf(p.out, "\nBuild summary: %d written, %d unchanged, %d rows kept, %d rows skipped\n",
		len(result.Written), len(result.Unchanged), result.Kept, result.Skipped)
	finish(ledger.StatusSucceeded, result.Kept, result.Skipped)
	return result, nil
}

// current reports whether the file at path already holds doc, ignoring its
// "last updated" line.
func (p *Pipeline) current(path string, doc types.Document) bool {
	data, err := afero.ReadFile(p.fs, path)
	if err != nil {
		return false
	}
	body := string(data)
	onDisk := types.Document{Name: doc.Name, Body: body, Stamp: cv.StampOf(body)}
	if doc.Stamp == "" {
		onDisk.Stamp = ""
	}
	return ledger.Hash(onDisk) == ledger.Hash(doc)
}

// record adds doc to the run once its file is in place.
func (p *Pipeline) record(ctx context.Context, store *ledger.Store, runID string, doc types.Document) {
	if _, err := store.RecordDocument(ctx, runID, doc); err != nil {
		p.log.Error("ledger", "document", doc.Name, "err", err)
	}
}

func (p *Pipeline) writeReferences(records []types.Record) error {
	var buf bytes.Buffer
	if err := cv.FormatCSL(records, &buf); err != nil {
		return err
	}
	path := filepath.Join(p.cfg.Build.OutputDir, ReferencesFile)
	if err := afero.WriteFile(p.fs, path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	fmt.Fprintf(p.out, "wrote: %s\n", ReferencesFile)
	return nil
}

// Convert renders the configured Markdown file to PDF.
func (p *Pipeline) Convert(ctx context.Context) (convert.BatchResult, error) {
	conv, err := convert.New(ctx, p.cfg.Conversion, p.exec, p.fs, p.log)
	if err != nil {
		return convert.BatchResult{}, err
	}
	outDir := p.cfg.Build.OutputDir
	job := convert.Job{
		Input:  filepath.Join(outDir, p.cfg.Conversion.Input),
		Output: filepath.Join(outDir, p.cfg.Conversion.Output),
	}
	return convert.ConvertBatch(ctx, conv, []convert.Job{job}, p.fs, p.out), nil
}

// Publish copies the configured pages, and the PDF when withPDF is set,
// into the site directories.
func (p *Pipeline) Publish(withPDF bool) publish.Result {
	var pages []string
	for _, name := range cv.AllDocuments {
		if p.cfg.Build.WantsDocument(name) {
			pages = append(pages, types.Document{Name: name}.FileName())
		}
	}
	pdf := ""
	if withPDF {
		pdf = p.cfg.Conversion.Output
	}
	return publish.New(p.fs, p.cfg.Publish).Publish(p.cfg.Build.OutputDir, pages, pdf, p.out)
}

// ErrConversionFailed means the PDF could not be produced. The Markdown
// documents were still built and published.
var ErrConversionFailed = errors.New("PDF conversion failed")

// Run builds, converts and publishes. A conversion failure does not stop
// the Markdown from being published; Run then returns ErrConversionFailed.
func (p *Pipeline) Run(ctx context.Context, withPDF bool) (BuildResult, error) {
	result, err := p.Build(ctx)
	if err != nil {
		return result, err
	}

	var convErr error
	if withPDF {
		batch, err := p.Convert(ctx)
		switch {
		case err != nil:
			convErr = fmt.Errorf("%w: %v", ErrConversionFailed, err)
		case batch.HasFailures() || batch.Converted == 0:
			convErr = ErrConversionFailed
		}
		if convErr != nil {
			p.log.Error("pdf conversion", "err", convErr)
		}
	}

	if pub := p.Publish(withPDF && convErr == nil); pub.HasFailures() {
		return result, errors.Join(convErr, fmt.Errorf("publishing: %d files failed", pub.Failed))
	}
	return result, convErr
}
