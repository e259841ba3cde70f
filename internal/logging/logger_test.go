package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func restoreDefault(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })
}

func TestNewJSON(t *testing.T) {
	restoreDefault(t)
	var buf bytes.Buffer
	logger, closeFn, err := New(Config{Level: "info", Format: "json", Output: &buf})
	require.NoError(t, err)
	defer func() { _ = closeFn() }()

	slog.Debug("hidden")
	logger.Info("loaded", slog.Int("rows", 3))
	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "loaded", rec["msg"])
	assert.Equal(t, float64(3), rec["rows"])
}

func TestNewTextWithFile(t *testing.T) {
	restoreDefault(t)
	var buf bytes.Buffer
	path := filepath.Join(t.TempDir(), "logs", "parqview.log")
	_, closeFn, err := New(Config{Level: "debug", Output: &buf, File: path})
	require.NoError(t, err)
	slog.Debug("row group", slog.Int("group", 1))
	require.NoError(t, closeFn())

	assert.Contains(t, buf.String(), "msg=\"row group\"")
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), "group=1")
}

func TestNewRejectsUnknown(t *testing.T) {
	_, _, err := New(Config{Level: "loud"})
	assert.Error(t, err)
	_, _, err = New(Config{Format: "xml"})
	assert.Error(t, err)
}

func TestParseLevel(t *testing.T) {
	cases := []struct {
		in   string
		want slog.Level
	}{
		{"", slog.LevelInfo},
		{"DEBUG", slog.LevelDebug},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
	}
	for _, tc := range cases {
		got, err := ParseLevel(tc.in)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got)
	}
}
