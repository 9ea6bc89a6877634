// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLevelFilters(t *testing.T) {
	tests := []struct {
		level   Level
		logged  []string
		dropped []string
	}{
		{DebugLevel, []string{"d", "i", "w", "e"}, nil},
		{InfoLevel, []string{"i", "w", "e"}, []string{"d"}},
		{WarnLevel, []string{"w", "e"}, []string{"d", "i"}},
		{ErrorLevel, []string{"e"}, []string{"d", "i", "w"}},
		{"", []string{"i", "w", "e"}, []string{"d"}},
	}
	for _, tt := range tests {
		t.Run(string(tt.level), func(t *testing.T) {
			var buf bytes.Buffer
			l := New(Config{Level: tt.level, Output: &buf, JSON: true})
			l.Debug("d")
			l.Info("i")
			l.Warn("w")
			l.Error("e")

			var got []string
			for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
				if line == "" {
					continue
				}
				var entry map[string]any
				require.NoError(t, json.Unmarshal([]byte(line), &entry), line)
				got = append(got, entry["msg"].(string))
			}
			assert.Equal(t, tt.logged, got)
			for _, msg := range tt.dropped {
				assert.NotContains(t, got, msg)
			}
		})
	}
}

func TestKeyvals(t *testing.T) {
	var buf bytes.Buffer
	New(Config{Output: &buf, JSON: true}).Warn("row skipped", "sheet", "Teaching", "row", 3)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "row skipped", entry["msg"])
	assert.Equal(t, "Teaching", entry["sheet"])
	assert.EqualValues(t, 3, entry["row"])
}

func TestNopDiscards(t *testing.T) {
	l := Nop()
	l.Error("ignored", "k", "v")
}
