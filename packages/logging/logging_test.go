package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_JSON(t *testing.T) {
	t.Setenv(EnvLevel, "")
	var buf bytes.Buffer
	l := New(&buf, "info", "json")

	l.Debug("hidden")
	l.Info("saved variable", slog.String("variable", "ticket"))

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "saved variable", record["msg"])
	assert.Equal(t, "ticket", record["variable"])
}

func TestNew_EnvOverride(t *testing.T) {
	t.Setenv(EnvLevel, "debug")
	var buf bytes.Buffer
	l := New(&buf, "error", "text")

	l.Debug("visible")
	assert.Contains(t, buf.String(), "visible")
}

func TestNew_Off(t *testing.T) {
	t.Setenv(EnvLevel, "")
	var buf bytes.Buffer
	l := New(&buf, "off", "text")
	l.Error("dropped")
	assert.Empty(t, buf.String())
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelInfo, ParseLevel(" info "))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warn"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("unknown"))
}
