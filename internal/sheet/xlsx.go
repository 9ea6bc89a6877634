// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sheet

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/spf13/afero"
	"github.com/xuri/excelize/v2"

	"github.com/pdiddy/cv-engine/internal/httputil"
	"github.com/pdiddy/cv-engine/internal/logger"
)

// XLSXSource reads an .xlsx workbook from the first location that works.
// Locations starting with http:// or https:// are downloaded; anything
// else is a path on Fs. A published Google Sheet serves xlsx at its
// pub?output=xlsx URL.
type XLSXSource struct {
	Locations  []string
	Fs         afero.Fs
	Client     *http.Client
	UserAgent  string
	MaxRetries int
	Aliases    map[string][]string
	Log        logger.Logger
}

// Load implements Source.
func (s *XLSXSource) Load(ctx context.Context) (*Workbook, error) {
	log := s.Log
	if log == nil {
		log = logger.Nop()
	}
	return firstOf(ctx, s.Locations, log, s.loadOne)
}

func (s *XLSXSource) loadOne(ctx context.Context, loc string) (*Workbook, error) {
	data, err := s.read(ctx, loc)
	if err != nil {
		return nil, err
	}
	wb, err := ParseXLSX(data)
	if err != nil {
		return nil, err
	}
	wb.Location = loc
	wb.aliases = s.Aliases
	return wb, nil
}

func (s *XLSXSource) read(ctx context.Context, loc string) ([]byte, error) {
	if isURL(loc) {
		client := s.Client
		if client == nil {
			client = http.DefaultClient
		}
		return httputil.Get(ctx, client, loc, s.UserAgent, s.MaxRetries)
	}
	fs := s.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return afero.ReadFile(fs, loc)
}

// ParseXLSX reads every sheet of an xlsx document, in workbook order.
func ParseXLSX(data []byte) (*Workbook, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("opening xlsx: %w", err)
	}
	defer f.Close()

	wb := &Workbook{}
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil {
			return nil, fmt.Errorf("reading sheet %q: %w", name, err)
		}
		wb.Sheets = append(wb.Sheets, tableToSheet(name, rows))
	}
	return wb, nil
}

func isURL(loc string) bool {
	return strings.HasPrefix(loc, "http://") || strings.HasPrefix(loc, "https://")
}
