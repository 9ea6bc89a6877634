// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sheet

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/pdiddy/cv-engine/internal/httputil"
	"github.com/pdiddy/cv-engine/pkg/types"
)

func init() {
	httputil.RetryBaseDelay = time.Millisecond
}

// sampleXLSX builds a two-sheet workbook in memory.
func sampleXLSX(t *testing.T) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	require.NoError(t, f.SetSheetName("Sheet1", "Teaching Experience"))
	require.NoError(t, f.SetSheetRow("Teaching Experience", "A1", &[]any{"Category", "Course Title", "Year", "course-code", ""}))
	require.NoError(t, f.SetSheetRow("Teaching Experience", "A2", &[]any{"Instructor", "Intro Seminar", 2021, "0101", "ignored"}))
	require.NoError(t, f.SetSheetRow("Teaching Experience", "A3", &[]any{"Workshop", "Git Basics"}))

	_, err := f.NewSheet("Profile")
	require.NoError(t, err)
	require.NoError(t, f.SetSheetRow("Profile", "A1", &[]any{"Name", "Email"}))
	require.NoError(t, f.SetSheetRow("Profile", "A2", &[]any{"Jane Doe", "jane@example.org"}))

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func TestNormalizeHeader(t *testing.T) {
	tests := map[string]string{
		"Course Title":       "course_title",
		" Start-Date ":       "start_date",
		"Committee  Member1": "committee_member1",
		"year":               "year",
		"   ":                "",
	}
	for in, want := range tests {
		assert.Equal(t, want, NormalizeHeader(in), in)
	}
}

func TestCellValue(t *testing.T) {
	assert.Nil(t, cellValue("  "))
	assert.Equal(t, 2019.0, cellValue("2019"))
	assert.Equal(t, 9.5, cellValue("9.5"))
	assert.Equal(t, -3.0, cellValue("-3"))
	assert.Equal(t, "0101", cellValue("0101"))
	assert.Equal(t, "2019-2020", cellValue("2019-2020"))
	assert.Equal(t, "NaN", cellValue("NaN"))
	assert.Equal(t, "Fall", cellValue(" Fall "))
}

func TestParseXLSX(t *testing.T) {
	wb, err := ParseXLSX(sampleXLSX(t))
	require.NoError(t, err)

	assert.Equal(t, []string{"Teaching Experience", "Profile"}, wb.Names())

	teaching := wb.Sheets[0]
	assert.Equal(t, []string{"category", "course_title", "year", "course_code"}, teaching.Header)
	require.Len(t, teaching.Rows, 2)
	assert.Equal(t, types.RawRow{
		"category": "Instructor", "course_title": "Intro Seminar", "year": 2021.0, "course_code": "0101",
	}, teaching.Rows[0])
	assert.Equal(t, types.RawRow{
		"category": "Workshop", "course_title": "Git Basics", "year": nil, "course_code": nil,
	}, teaching.Rows[1])
}

func TestParseXLSX_Invalid(t *testing.T) {
	_, err := ParseXLSX([]byte("not a workbook"))
	assert.Error(t, err)
}

func TestLookup(t *testing.T) {
	wb := &Workbook{Sheets: []Sheet{
		{Name: "Teaching Experience"},
		{Name: "publications"},
		{Name: "Profile"},
		{Name: "Header"},
	}}

	tests := []struct {
		name string
		want string
		ok   bool
	}{
		{"Header", "Header", true},
		{"Publications", "publications", true},
		{"Teaching", "Teaching Experience", true},
		{"Projects", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, ok := wb.Lookup(tt.name)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, s.Name)
		})
	}

	wb.Sheets = wb.Sheets[:3]
	s, ok := wb.Lookup("Header")
	require.True(t, ok)
	assert.Equal(t, "Profile", s.Name)

	wb.SetAliases(map[string][]string{"Header": {"About"}})
	_, ok = wb.Lookup("Header")
	assert.False(t, ok, "configured aliases replace the defaults")
}

func TestXLSXSource_HTTP(t *testing.T) {
	data := sampleXLSX(t)
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write(data)
	}))
	defer ts.Close()

	src := &XLSXSource{Locations: []string{ts.URL}, Client: ts.Client(), MaxRetries: 2}
	wb, err := src.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, ts.URL, wb.Location)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
	_, ok := wb.Lookup("Teaching")
	assert.True(t, ok)
}

func TestXLSXSource_FallsBackToNextLocation(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/data/cv.xlsx", sampleXLSX(t), 0o644))

	src := &XLSXSource{Locations: []string{ts.URL, "/data/missing.xlsx", "/data/cv.xlsx"}, Fs: fs, Client: ts.Client()}
	wb, err := src.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "/data/cv.xlsx", wb.Location)
}

func TestXLSXSource_AllLocationsFail(t *testing.T) {
	src := &XLSXSource{Locations: []string{"/nope/a.xlsx", "/nope/b.xlsx"}, Fs: afero.NewMemMapFs()}
	_, err := src.Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "/nope/a.xlsx")
	assert.Contains(t, err.Error(), "/nope/b.xlsx")
}

func TestCSVSource(t *testing.T) {
	dir := t.TempDir()
	fs := afero.NewOsFs()
	require.NoError(t, afero.WriteFile(fs, filepath.Join(dir, "Publications.csv"),
		[]byte("\xef\xbb\xbfTitle,Year,Authors\n\"A, B\",2020,Jane Doe\nShort\n"), 0o644))
	require.NoError(t, afero.WriteFile(fs, filepath.Join(dir, "Header.csv"), []byte("Name\nJane Doe\n"), 0o644))
	require.NoError(t, afero.WriteFile(fs, filepath.Join(dir, "notes.txt"), []byte("skip me"), 0o644))

	src := &CSVSource{Dirs: []string{filepath.Join(dir, "missing"), dir}, Fs: fs}
	wb, err := src.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"Header", "Publications"}, wb.Names())
	pubs, ok := wb.Lookup("publications")
	require.True(t, ok)
	require.Len(t, pubs.Rows, 2)
	assert.Equal(t, "A, B", pubs.Rows[0]["title"])
	assert.Equal(t, 2020.0, pubs.Rows[0]["year"])
	assert.Equal(t, "Short", pubs.Rows[1]["title"])
	assert.Nil(t, pubs.Rows[1]["authors"])
}

func TestNewSource(t *testing.T) {
	src, err := NewSource(types.SourceConfig{Format: types.SourceCSV, Locations: []string{"x"}}, afero.NewMemMapFs(), nil, nil)
	require.NoError(t, err)
	assert.IsType(t, &CSVSource{}, src)

	src, err = NewSource(types.SourceConfig{Locations: []string{"x"}}, afero.NewMemMapFs(), nil, nil)
	require.NoError(t, err)
	assert.IsType(t, &XLSXSource{}, src)

	_, err = NewSource(types.SourceConfig{Format: "ods", Locations: []string{"x"}}, nil, nil, nil)
	assert.Error(t, err)

	_, err = NewSource(types.SourceConfig{}, nil, nil, nil)
	assert.Error(t, err)
}
