// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/pdiddy/cv-engine/internal/container"
	"github.com/pdiddy/cv-engine/pkg/types"
)

// workDir is where the job's directory is mounted inside the container.
const workDir = "/data"

// ContainerConverter runs pandoc from a container image such as
// pandoc/latex. It depends on a container.Runtime (docker or podman)
// injected at construction time. The image ships a LaTeX engine, so only
// the first configured LaTeX engine is used.
type ContainerConverter struct {
	runtime container.Runtime
	cfg     types.ConversionConfig
	fs      afero.Fs
	engine  string
}

// NewContainerConverter verifies that the configured image exists locally
// before returning.
func NewContainerConverter(ctx context.Context, rt container.Runtime, cfg types.ConversionConfig, fs afero.Fs) (*ContainerConverter, error) {
	if err := rt.ImageExists(ctx, cfg.ContainerImage); err != nil {
		return nil, fmt.Errorf("pandoc image not available in %s: %w", rt.Name(), err)
	}
	engine := "xelatex"
	for _, e := range cfg.Engines {
		if latexEngines[e] {
			engine = e
			break
		}
	}
	return &ContainerConverter{runtime: rt, cfg: cfg, fs: fs, engine: engine}, nil
}

// Name implements Converter.
func (c *ContainerConverter) Name() string {
	return c.runtime.Name() + ":" + c.cfg.ContainerImage
}

// Convert mounts the input's directory at /data and runs pandoc there. The
// output is written next to the input; template and stylesheet paths must
// live under the same directory to be visible in the container.
func (c *ContainerConverter) Convert(ctx context.Context, job Job) error {
	dir, err := filepath.Abs(filepath.Dir(job.Input))
	if err != nil {
		return fmt.Errorf("resolving %s: %w", job.Input, err)
	}
	if out, err := filepath.Abs(filepath.Dir(job.Output)); err != nil || out != dir {
		return fmt.Errorf("output %s must be in the input directory %s", job.Output, dir)
	}

	inner := types.ConversionConfig{Variables: c.cfg.Variables}
	if rel, ok := within(dir, c.cfg.Template); ok && exists(c.fs, c.cfg.Template) {
		inner.Template = rel
	}
	if rel, ok := within(dir, c.cfg.CSS); ok && exists(c.fs, c.cfg.CSS) {
		inner.CSS = rel
	}
	local := Job{Input: filepath.Base(job.Input), Output: filepath.Base(job.Output)}

	spec := container.RunSpec{
		Image:   c.cfg.ContainerImage,
		Args:    buildArgs(local, c.engine, inner, func(string) bool { return true }),
		Mounts:  []container.Mount{{Host: dir, Container: workDir}},
		WorkDir: workDir,
	}

	timeout := c.cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return c.runtime.Run(ctx, spec)
}

// within returns path relative to dir when path lies inside it.
func within(dir, path string) (string, bool) {
	if path == "" {
		return "", false
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", false
	}
	rel, err := filepath.Rel(dir, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return filepath.ToSlash(rel), true
}
