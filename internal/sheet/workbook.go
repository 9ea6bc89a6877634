// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package sheet loads the spreadsheet workbook that feeds the pipeline.
// A workbook is a set of named sheets; each sheet is a header row followed
// by data rows keyed by normalized column name.
package sheet

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/afero"

	"github.com/pdiddy/cv-engine/internal/logger"
	"github.com/pdiddy/cv-engine/pkg/types"
)

// Sheet is one named table of the workbook.
type Sheet struct {
	Name   string
	Header []string
	Rows   []types.RawRow
}

// Workbook holds every sheet read from one location.
type Workbook struct {
	// Location is the URL or path the workbook was read from.
	Location string
	Sheets   []Sheet

	aliases map[string][]string
}

// DefaultAliases lists the alternative names tried for each canonical sheet.
var DefaultAliases = map[string][]string{
	"Header":         {"Profile"},
	"Teaching":       {"Teaching Experience"},
	"Conferences":    {"Conference Presentations", "Presentations"},
	"Awards":         {"Awards and Honors"},
	"FundedResearch": {"Funded Research", "Funding"},
	"Training":       {"Education"},
	"Service":        {"Academic Service"},
	"Memberships":    {"Professional Memberships"},
}

// SetAliases replaces the alternative names used by Lookup. Names missing
// from aliases fall back to DefaultAliases.
func (w *Workbook) SetAliases(aliases map[string][]string) {
	w.aliases = aliases
}

// Names returns the sheet names in workbook order.
func (w *Workbook) Names() []string {
	names := make([]string, len(w.Sheets))
	for i, s := range w.Sheets {
		names[i] = s.Name
	}
	return names
}

// Lookup finds a sheet by exact name, then case-insensitively, then by
// each configured alternative name in the same two ways.
func (w *Workbook) Lookup(name string) (Sheet, bool) {
	candidates := []string{name}
	if alt, ok := w.aliases[name]; ok {
		candidates = append(candidates, alt...)
	} else {
		candidates = append(candidates, DefaultAliases[name]...)
	}
	for _, c := range candidates {
		if s, ok := w.find(c); ok {
			return s, true
		}
	}
	return Sheet{}, false
}

func (w *Workbook) find(name string) (Sheet, bool) {
	for _, s := range w.Sheets {
		if s.Name == name {
			return s, true
		}
	}
	want := strings.TrimSpace(name)
	for _, s := range w.Sheets {
		if strings.EqualFold(strings.TrimSpace(s.Name), want) {
			return s, true
		}
	}
	return Sheet{}, false
}

// Source loads a workbook.
type Source interface {
	Load(ctx context.Context) (*Workbook, error)
}

// NewSource returns the Source selected by cfg.Format. Local paths are read
// through fs; URLs are fetched with client.
func NewSource(cfg types.SourceConfig, fs afero.Fs, client *http.Client, log logger.Logger) (Source, error) {
	if len(cfg.Locations) == 0 {
		return nil, fmt.Errorf("no workbook locations configured")
	}
	if log == nil {
		log = logger.Nop()
	}
	switch cfg.Format {
	case types.SourceXLSX, "":
		return &XLSXSource{
			Locations:  cfg.Locations,
			Fs:         fs,
			Client:     client,
			UserAgent:  cfg.UserAgent,
			MaxRetries: cfg.MaxRetries,
			Aliases:    cfg.SheetAliases,
			Log:        log,
		}, nil
	case types.SourceCSV:
		return &CSVSource{Dirs: cfg.Locations, Fs: fs, Aliases: cfg.SheetAliases, Log: log}, nil
	}
	return nil, fmt.Errorf("unsupported workbook format %q", cfg.Format)
}

// firstOf tries each location in order and returns the first workbook that
// loads. All errors are returned joined when none does.
func firstOf(ctx context.Context, locations []string, log logger.Logger, load func(context.Context, string) (*Workbook, error)) (*Workbook, error) {
	var errs []error
	for _, loc := range locations {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		wb, err := load(ctx, loc)
		if err != nil {
			log.Warn("workbook unavailable", "location", loc, "err", err)
			errs = append(errs, fmt.Errorf("%s: %w", loc, err))
			continue
		}
		log.Info("workbook loaded", "location", loc, "sheets", len(wb.Sheets))
		return wb, nil
	}
	return nil, fmt.Errorf("loading workbook: %w", errors.Join(errs...))
}

// NormalizeHeader turns a column title into a row key: trimmed, lowercased,
// with runs of spaces and dashes replaced by one underscore.
func NormalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	var b strings.Builder
	sep := false
	for _, r := range h {
		if r == ' ' || r == '-' || r == '\t' {
			sep = true
			continue
		}
		if sep && b.Len() > 0 {
			b.WriteByte('_')
		}
		sep = false
		b.WriteRune(r)
	}
	return b.String()
}

// tableToSheet builds a Sheet from raw string cells. The first row is the
// header; columns with a blank header are dropped and a repeated header
// keeps its first column. Numeric cells become float64.
func tableToSheet(name string, table [][]string) Sheet {
	s := Sheet{Name: name}
	if len(table) == 0 {
		return s
	}
	cols := make([]string, len(table[0]))
	seen := make(map[string]bool)
	for i, h := range table[0] {
		key := NormalizeHeader(h)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		cols[i] = key
		s.Header = append(s.Header, key)
	}
	for _, cells := range table[1:] {
		row := make(types.RawRow, len(s.Header))
		for i, key := range cols {
			if key == "" {
				continue
			}
			var v string
			if i < len(cells) {
				v = cells[i]
			}
			row[key] = cellValue(v)
		}
		s.Rows = append(s.Rows, row)
	}
	return s
}

// cellValue returns nil for blank text, float64 for plain decimal numbers
// and the trimmed text otherwise. Codes with leading zeros stay text.
func cellValue(v string) any {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	if !looksNumeric(v) {
		return v
	}
	if f, err := strconv.ParseFloat(v, 64); err == nil {
		return f
	}
	return v
}

func looksNumeric(v string) bool {
	digits := strings.TrimPrefix(v, "-")
	if digits == "" || len(digits) > 1 && digits[0] == '0' && digits[1] != '.' {
		return false
	}
	for _, r := range digits {
		if (r < '0' || r > '9') && r != '.' {
			return false
		}
	}
	return true
}

// sortedSheets orders sheets by name; CSV directories have no sheet order.
func sortedSheets(sheets []Sheet) []Sheet {
	sort.Slice(sheets, func(i, j int) bool { return sheets[i].Name < sheets[j].Name })
	return sheets
}
