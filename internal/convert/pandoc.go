// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/spf13/afero"

	"github.com/pdiddy/cv-engine/internal/container"
	"github.com/pdiddy/cv-engine/internal/logger"
	"github.com/pdiddy/cv-engine/pkg/types"
)

const binPandoc = "pandoc"

// DefaultEngines is the engine preference order used when none is configured.
var DefaultEngines = []string{"xelatex", "pdflatex", "wkhtmltopdf", "weasyprint", "prince"}

// DefaultTimeout bounds one pandoc attempt when none is configured.
const DefaultTimeout = 2 * time.Minute

var (
	latexEngines = map[string]bool{"xelatex": true, "pdflatex": true, "lualatex": true}
	htmlEngines  = map[string]bool{"wkhtmltopdf": true, "weasyprint": true, "prince": true}
)

// PandocConverter runs pandoc from the host PATH, trying each available
// PDF engine in preference order until one succeeds.
type PandocConverter struct {
	cfg     types.ConversionConfig
	exec    container.Executor
	fs      afero.Fs
	log     logger.Logger
	engines []string
}

// NewPandocConverter verifies that pandoc responds to --version and probes
// the configured engines the same way. It fails when pandoc or every engine
// is missing.
func NewPandocConverter(ctx context.Context, cfg types.ConversionConfig, exec container.Executor, fs afero.Fs, log logger.Logger) (*PandocConverter, error) {
	if log == nil {
		log = logger.Nop()
	}
	if !responds(ctx, exec, binPandoc) {
		return nil, fmt.Errorf("%s not found or not operational", binPandoc)
	}

	candidates := cfg.Engines
	if len(candidates) == 0 {
		candidates = DefaultEngines
	}
	var engines []string
	for _, e := range candidates {
		if responds(ctx, exec, e) {
			engines = append(engines, e)
			continue
		}
		log.Debug("pdf engine unavailable", "engine", e)
	}
	if len(engines) == 0 {
		return nil, fmt.Errorf("no PDF engine available (tried %s)", strings.Join(candidates, ", "))
	}
	return &PandocConverter{cfg: cfg, exec: exec, fs: fs, log: log, engines: engines}, nil
}

func responds(ctx context.Context, exec container.Executor, bin string) bool {
	if _, err := exec.LookPath(bin); err != nil {
		return false
	}
	return exec.RunSilent(ctx, bin, "--version") == nil
}

// Name implements Converter.
func (p *PandocConverter) Name() string { return binPandoc }

// Engines returns the engines that responded, in the order they are tried.
func (p *PandocConverter) Engines() []string { return p.engines }

// Convert implements Converter. Each engine gets its own timeout; the
// errors of every failed attempt are returned together.
func (p *PandocConverter) Convert(ctx context.Context, job Job) error {
	var errs []error
	for _, engine := range p.engines {
		args := Args(job, engine, p.cfg, p.fs)
		if err := p.attempt(ctx, args); err != nil {
			p.log.Warn("pdf engine failed", "engine", engine, "input", job.Input, "err", err)
			errs = append(errs, fmt.Errorf("%s: %w", engine, err))
			if ctx.Err() != nil {
				break
			}
			continue
		}
		p.log.Info("pdf written", "engine", engine, "output", job.Output)
		return nil
	}
	return fmt.Errorf("all PDF engines failed: %w", errors.Join(errs...))
}

func (p *PandocConverter) attempt(ctx context.Context, args []string) error {
	timeout := p.cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var stderr strings.Builder
	if err := p.exec.Run(ctx, binPandoc, args, io.Discard, &stderr); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return fmt.Errorf("timed out after %s", timeout)
		}
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("%w: %s", err, msg)
		}
		return err
	}
	return nil
}

// Args builds the pandoc command line for one engine. The template is
// passed only when it exists on fs; the stylesheet only to HTML-based
// engines; LaTeX engines get a one-inch margin. Variables are emitted in
// key order.
func Args(job Job, engine string, cfg types.ConversionConfig, fs afero.Fs) []string {
	return buildArgs(job, engine, cfg, func(path string) bool { return exists(fs, path) })
}

func buildArgs(job Job, engine string, cfg types.ConversionConfig, present func(string) bool) []string {
	args := []string{job.Input, "-o", job.Output, "--pdf-engine=" + engine, "--standalone"}

	if cfg.Template != "" && latexEngines[engine] && present(cfg.Template) {
		args = append(args, "--template="+cfg.Template)
	}
	if cfg.CSS != "" && htmlEngines[engine] && present(cfg.CSS) {
		args = append(args, "--css="+cfg.CSS)
	}
	if latexEngines[engine] {
		args = append(args, "-V", "geometry:margin=1in")
	}

	keys := make([]string, 0, len(cfg.Variables))
	for k := range cfg.Variables {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		args = append(args, "-V", k+"="+cfg.Variables[k])
	}
	return args
}

func exists(fs afero.Fs, path string) bool {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	ok, _ := afero.Exists(fs, path)
	return ok
}
