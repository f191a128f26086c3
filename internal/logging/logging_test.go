package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	log, err := New("info", FormatJSON, &buf)
	require.NoError(t, err)

	log.Debug().Msg("hidden")
	log.Info().Str("game", "g1").Msg("move")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "g1", entry["game"])
	assert.Equal(t, "move", entry["message"])
	assert.Contains(t, entry, "time")
}

func TestNewConsole(t *testing.T) {
	var buf bytes.Buffer
	log, err := New("debug", FormatConsole, &buf)
	require.NoError(t, err)

	log.Debug().Str("chip", "wQ1").Msg("request")
	assert.Contains(t, buf.String(), "request")
	assert.Contains(t, buf.String(), "chip=wQ1")
}

func TestNewRejectsBadSettings(t *testing.T) {
	tests := []struct {
		name   string
		level  string
		format string
	}{
		{"level", "loud", FormatJSON},
		{"format", "info", "xml"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(tc.level, tc.format, &bytes.Buffer{})
			assert.Error(t, err)
		})
	}
}
