package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseLevel("loud")
	assert.Error(t, err)
}

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(&buf, "info", "json")
	require.NoError(t, err)

	WithRun(l, "run-1").Info("planned", "agents", 3)
	l.Debug("hidden")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "planned", rec["msg"])
	assert.Equal(t, "run-1", rec["run_id"])
	assert.EqualValues(t, 3, rec["agents"])
}

func TestNewText(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(&buf, "debug", "text")
	require.NoError(t, err)

	l.Debug("agent planned", "agent", "agent0")
	assert.Contains(t, buf.String(), "agent=agent0")
}

func TestNewRejectsFormat(t *testing.T) {
	_, err := New(&bytes.Buffer{}, "info", "xml")
	assert.Error(t, err)
}
