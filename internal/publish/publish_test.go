// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package publish

import (
	"bytes"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/cv-engine/pkg/types"
)

func TestPublish(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "out/teaching.md", []byte("teaching"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "out/cv.md", []byte("cv"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "out/cv.pdf", []byte("%PDF"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "site/_pages/cv.md", []byte("stale"), 0o644))

	p := New(fs, types.PublishConfig{PagesDir: "site/_pages", AssetsDir: "site/assets"})
	var log bytes.Buffer
	res := p.Publish("out", []string{"teaching.md", "projects.md", "cv.md"}, "cv.pdf", &log)

	assert.Equal(t, Result{Copied: 4, Skipped: 1}, res)
	assert.False(t, res.HasFailures())

	for path, want := range map[string]string{
		"site/_pages/teaching.md": "teaching",
		"site/_pages/cv.md":       "cv",
		"site/_pages/cv.pdf":      "%PDF",
		"site/assets/cv.pdf":      "%PDF",
	} {
		got, err := afero.ReadFile(fs, path)
		require.NoError(t, err, path)
		assert.Equal(t, want, string(got), path)
	}
	exists, _ := afero.Exists(fs, "site/_pages/projects.md")
	assert.False(t, exists)

	assert.Contains(t, log.String(), "skipped: projects.md (not found)")
	assert.Contains(t, log.String(), "Publish summary: 4 copied, 1 skipped, 0 failed")
}

func TestPublishWithoutPDF(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "out/cv.md", []byte("cv"), 0o644))

	p := New(fs, types.PublishConfig{PagesDir: "pages", AssetsDir: "assets"})
	res := p.Publish("out", []string{"cv.md"}, "", &bytes.Buffer{})

	assert.Equal(t, Result{Copied: 1}, res)
	exists, _ := afero.DirExists(fs, "assets")
	assert.False(t, exists)
}

func TestPublishUnsetDirectories(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "out/cv.pdf", []byte("%PDF"), 0o644))

	p := New(fs, types.PublishConfig{AssetsDir: "assets"})
	res := p.Publish("out", []string{"cv.md"}, "cv.pdf", &bytes.Buffer{})

	assert.Equal(t, Result{Copied: 1}, res)
	got, err := afero.ReadFile(fs, "assets/cv.pdf")
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(got))
}

func TestPublishReadOnlyDestination(t *testing.T) {
	base := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(base, "out/cv.md", []byte("cv"), 0o644))

	p := New(afero.NewReadOnlyFs(base), types.PublishConfig{PagesDir: "pages"})
	var log bytes.Buffer
	res := p.Publish("out", []string{"cv.md"}, "", &log)

	assert.Equal(t, Result{Failed: 1}, res)
	assert.True(t, res.HasFailures())
	assert.Contains(t, log.String(), "failed:  cv.md")
}
