// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sheet

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/pdiddy/cv-engine/internal/logger"
)

// CSVSource reads a workbook exported as a directory of <Sheet>.csv files.
// The first directory holding at least one CSV file wins.
type CSVSource struct {
	Dirs    []string
	Fs      afero.Fs
	Aliases map[string][]string
	Log     logger.Logger
}

// Load implements Source.
func (s *CSVSource) Load(ctx context.Context) (*Workbook, error) {
	log := s.Log
	if log == nil {
		log = logger.Nop()
	}
	return firstOf(ctx, s.Dirs, log, s.loadDir)
}

func (s *CSVSource) loadDir(_ context.Context, dir string) (*Workbook, error) {
	fs := s.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}
	entries, err := afero.ReadDir(fs, dir)
	if err != nil {
		return nil, err
	}

	wb := &Workbook{Location: dir, aliases: s.Aliases}
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".csv") {
			continue
		}
		data, err := afero.ReadFile(fs, filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}
		name := strings.TrimSuffix(e.Name(), filepath.Ext(e.Name()))
		sh, err := ParseCSV(name, data)
		if err != nil {
			return nil, err
		}
		wb.Sheets = append(wb.Sheets, sh)
	}
	if len(wb.Sheets) == 0 {
		return nil, fmt.Errorf("no .csv files in %s", dir)
	}
	wb.Sheets = sortedSheets(wb.Sheets)
	return wb, nil
}

// ParseCSV reads one CSV document as a sheet. Rows may have differing
// lengths and a leading UTF-8 byte order mark is ignored.
func ParseCSV(name string, data []byte) (Sheet, error) {
	r := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	table, err := r.ReadAll()
	if err != nil {
		return Sheet{}, fmt.Errorf("parsing %s.csv: %w", name, err)
	}
	return tableToSheet(name, table), nil
}
