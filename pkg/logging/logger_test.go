package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrefixWriter(t *testing.T) {
	var buf bytes.Buffer
	pw := NewPrefixWriter("> ", &buf)

	n, err := pw.Write([]byte("one\ntw"))
	require.NoError(t, err)
	assert.Equal(t, 6, n)
	assert.Equal(t, "> one\n", buf.String())

	_, err = pw.Write([]byte("o\nthree"))
	require.NoError(t, err)
	assert.Equal(t, "> one\n> two\n", buf.String())

	require.NoError(t, pw.Flush())
	assert.Equal(t, "> one\n> two\n> three", buf.String())

	require.NoError(t, pw.Flush())
	assert.Equal(t, "> one\n> two\n> three", buf.String())
}

func TestNewLogger_Text(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(Options{Name: "pkgext", Level: "debug", Output: &buf})

	logger.Debug("scanning", "root", "dist")
	logger.Trace("hidden")

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, textPrefix), out)
	assert.Contains(t, out, "pkgext: scanning: root=dist")
	assert.NotContains(t, out, "hidden")
}

func TestNewLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(Options{Name: "pkgext", Level: "info", JSON: true, Output: &buf})

	logger.Info("found", "extension", "msix")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "found", entry["@message"])
	assert.Equal(t, "msix", entry["extension"])
	assert.Equal(t, "pkgext", entry["@module"])
}

func TestNewLogger_DefaultLevel(t *testing.T) {
	logger := NewLogger(Options{Name: "pkgext", Level: "bogus", Output: &bytes.Buffer{}})
	assert.Equal(t, hclog.Warn, logger.GetLevel())
}
