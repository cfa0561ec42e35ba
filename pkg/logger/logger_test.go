package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	logger := New()
	assert.NotNil(t, logger)
	assert.NotNil(t, logger.info)
	assert.NotNil(t, logger.error)
	assert.NotNil(t, logger.warn)
}

func TestLogger_MultipleCalls(t *testing.T) {
	logger := New()
	assert.NotNil(t, logger)

	// Test multiple calls don't panic
	logger.Info("Info 1")
	logger.Error("Error 1")
	logger.Warn("Warn 1")
	logger.Debug("Debug 1")
}

func TestLogger_WithFieldsAndFormatting(t *testing.T) {
	var buf bytes.Buffer
	logger := New()
	logger.entry.Logger.SetOutput(&buf)

	logger.With(Fields{"mode": "following"}).Info("served %d items for %s", 3, "viewer-1")

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "served 3 items for viewer-1", line["msg"])
	assert.Equal(t, "following", line["mode"])
	assert.Equal(t, "info", line["level"])
}

func TestNewWithLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithLevel("warn")
	logger.entry.Logger.SetOutput(&buf)

	logger.Info("dropped")
	assert.Zero(t, buf.Len())

	logger.Warn("kept")
	assert.Contains(t, buf.String(), "kept")

	fallback := NewWithLevel("nonsense")
	assert.Equal(t, "info", fallback.entry.Logger.GetLevel().String())
}
