// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads credentials from a directory of plain-text files.
// Each file is one secret: the file name is the key and the trimmed
// contents are the value.
//
// Recognized keys: workbook-token.
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/pdiddy/cv-engine/internal/logger"
)

// WorkbookToken is sent as a bearer token when downloading a private
// workbook URL.
const WorkbookToken = "workbook-token"

// Secrets maps key names to values.
type Secrets map[string]string

// Get returns the value for key, or "" when it is not set.
func (s Secrets) Get(key string) string { return s[key] }

// Load reads every regular file in dir on fs. An empty dir or a missing
// directory is not an error and yields empty Secrets. Dotfiles and empty files are ignored;
// unreadable files are logged and skipped.
func Load(fs afero.Fs, dir string, log logger.Logger) (Secrets, error) {
	if dir == "" {
		return Secrets{}, nil
	}
	if log == nil {
		log = logger.Nop()
	}
	entries, err := afero.ReadDir(fs, dir)
	if err != nil {
		if os.IsNotExist(err) {
			return Secrets{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	out := Secrets{}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}
		data, err := afero.ReadFile(fs, filepath.Join(dir, name))
		if err != nil {
			log.Warn("secret not readable", "key", name, "err", err)
			continue
		}
		if value := strings.TrimSpace(string(data)); value != "" {
			out[name] = value
		}
	}
	return out, nil
}
