// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert renders generated Markdown documents to PDF with pandoc,
// either installed on the host or run from a container image.
package convert

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/pdiddy/cv-engine/internal/container"
	"github.com/pdiddy/cv-engine/internal/logger"
	"github.com/pdiddy/cv-engine/pkg/types"
)

// ErrNoConverter means neither pandoc nor a container runtime with the
// pandoc image is available.
var ErrNoConverter = errors.New("no PDF converter available")

// Job is one Markdown-to-PDF conversion. Paths are absolute or relative to
// the working directory.
type Job struct {
	Input  string
	Output string
}

// Converter transforms a Markdown file into a PDF. Different backends
// (host pandoc, containerized pandoc) implement this interface.
type Converter interface {
	// Name identifies the backend in status lines.
	Name() string

	// Convert renders job.Input to job.Output.
	Convert(ctx context.Context, job Job) error
}

// BatchResult holds the outcome of a batch conversion run.
type BatchResult struct {
	Converted int
	Skipped   int
	Failed    int
}

// Total returns the total number of jobs processed.
func (r BatchResult) Total() int {
	return r.Converted + r.Skipped + r.Failed
}

// HasFailures reports whether any job failed conversion.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// ConvertBatch runs each job through the converter, printing per-job status
// to w and returning a summary. Jobs whose input does not exist on fs are
// skipped.
func ConvertBatch(ctx context.Context, c Converter, jobs []Job, fs afero.Fs, w io.Writer) BatchResult {
	var result BatchResult
	for _, job := range jobs {
		name := filepath.Base(job.Input)
		if ok, _ := afero.Exists(fs, job.Input); !ok {
			fmt.Fprintf(w, "skipped: %s (not found)\n", name)
			result.Skipped++
			continue
		}
		if err := c.Convert(ctx, job); err != nil {
			fmt.Fprintf(w, "failed:  %s (%v)\n", name, err)
			result.Failed++
			continue
		}
		fmt.Fprintf(w, "converted: %s -> %s (%s)\n", name, filepath.Base(job.Output), c.Name())
		result.Converted++
	}
	fmt.Fprintf(w, "\nBatch summary: %d converted, %d skipped, %d failed (total: %d)\n",
		result.Converted, result.Skipped, result.Failed, result.Total())
	return result
}

// New selects a converter: pandoc on the host when it responds to
// --version, otherwise pandoc from cfg.ContainerImage through docker or
// podman. It returns ErrNoConverter when neither works.
func New(ctx context.Context, cfg types.ConversionConfig, exec container.Executor, fs afero.Fs, log logger.Logger) (Converter, error) {
	if log == nil {
		log = logger.Nop()
	}
	pandoc, err := NewPandocConverter(ctx, cfg, exec, fs, log)
	if err == nil {
		return pandoc, nil
	}
	log.Info("host pandoc unavailable", "err", err)

	if cfg.ContainerImage == "" {
		return nil, fmt.Errorf("%w: %v", ErrNoConverter, err)
	}
	rt, rtErr := container.DetectRuntimeWith(ctx, exec)
	if rtErr != nil {
		return nil, fmt.Errorf("%w: %v; %v", ErrNoConverter, err, rtErr)
	}
	cc, ccErr := NewContainerConverter(ctx, rt, cfg, fs)
	if ccErr != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoConverter, ccErr)
	}
	log.Info("using containerized pandoc", "runtime", rt.Name(), "image", cfg.ContainerImage)
	return cc, nil
}
