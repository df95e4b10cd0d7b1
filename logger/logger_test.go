package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewLoggerJSON(t *testing.T) {
	var buf bytes.Buffer
	l, err := NewLogger(&LoggerConfig{Output: &buf})
	require.NoError(t, err)

	l.Debug("hidden")
	l.Info("tree built", zap.Int("leaves", 3))
	require.NoError(t, l.Sync())

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "tree built", entry["msg"])
	assert.Equal(t, float64(3), entry["leaves"])
}

func TestNewLoggerDebug(t *testing.T) {
	var buf bytes.Buffer
	l, err := NewLogger(&LoggerConfig{Debug: true, Output: &buf})
	require.NoError(t, err)

	l.Debug("proof generated")
	assert.Contains(t, buf.String(), "proof generated")
}
