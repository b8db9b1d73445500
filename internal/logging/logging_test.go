package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer

	logger, err := New(&buf, "info", "json")
	require.NoError(t, err)

	logger.WithField("file", "a.py").Info("scanned")
	logger.Debug("hidden")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "scanned", entry["msg"])
	assert.Equal(t, "a.py", entry["file"])
	assert.NotContains(t, buf.String(), "hidden")
}

func TestNew_Text(t *testing.T) {
	var buf bytes.Buffer

	logger, err := New(&buf, "DEBUG", "text")
	require.NoError(t, err)

	logger.Debug("visible")
	assert.Contains(t, buf.String(), "visible")
}

func TestNew_InvalidSettings(t *testing.T) {
	_, err := New(&bytes.Buffer{}, "loud", "text")
	assert.Error(t, err)

	_, err = New(&bytes.Buffer{}, "info", "xml")
	assert.Error(t, err)
}

func TestSetup_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hazard.log")

	logger, err := Setup("info", "text", path)
	require.NoError(t, err)

	logger.Info("to file")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "to file")
}

func TestDiscard(t *testing.T) {
	logger := Discard()
	logger.Error("nothing")

	assert.NotNil(t, logger)
}
