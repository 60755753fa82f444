package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PKGEXT_LOG_LEVEL", "PKGEXT_JSON_LOG", "PKGEXT_MAX_ENTRIES"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.False(t, cfg.JSONLog)
	assert.Equal(t, 100000, cfg.MaxEntries)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("PKGEXT_LOG_LEVEL", "debug")
	t.Setenv("PKGEXT_JSON_LOG", "true")
	t.Setenv("PKGEXT_MAX_ENTRIES", "50")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Config{LogLevel: "debug", JSONLog: true, MaxEntries: 50}, cfg)
}

func TestLoad_RejectsBadValues(t *testing.T) {
	t.Setenv("PKGEXT_MAX_ENTRIES", "0")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("PKGEXT_MAX_ENTRIES", "many")
	_, err = Load()
	assert.Error(t, err)
}

func TestUsage(t *testing.T) {
	assert.Contains(t, Usage(), "PKGEXT_LOG_LEVEL")
}
