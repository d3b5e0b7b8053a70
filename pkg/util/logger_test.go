package util

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoggerJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{Level: LevelInfo, Format: FormatJSON, Output: &buf})

	logger.Info("probe finished", "probe", "display-geometry")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "probe finished", entry["msg"])
	assert.Equal(t, "display-geometry", entry["probe"])
}

func TestNewLoggerLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{Level: LevelWarn, Format: FormatText, Output: &buf})

	logger.Info("dropped")
	assert.Empty(t, buf.String())

	logger.Warn("kept")
	assert.Contains(t, buf.String(), "kept")
}

func TestNewLoggerDefaultsOnUnknown(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{Level: "bogus", Format: "bogus", Output: &buf})

	logger.Debug("dropped at default level")
	assert.Empty(t, buf.String())

	logger.Info("text by default")
	assert.Contains(t, buf.String(), "text by default")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLevel(LevelDebug))
	assert.Equal(t, slog.LevelInfo, parseLevel(LevelInfo))
	assert.Equal(t, slog.LevelWarn, parseLevel(LevelWarn))
	assert.Equal(t, slog.LevelError, parseLevel(LevelError))
	assert.Equal(t, slog.LevelInfo, parseLevel("nope"))
}
