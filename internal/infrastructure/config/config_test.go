package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "data/records.jsonl", cfg.RecordsFile)
	assert.Equal(t, "data", cfg.RefDataDir)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.AtomicWrites)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("RECORDS_FILE", "/tmp/r.jsonl")
	t.Setenv("RECORDS_ATOMIC_WRITES", "true")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "/tmp/r.jsonl", cfg.RecordsFile)
	assert.True(t, cfg.AtomicWrites)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadConfigIgnoresBadBool(t *testing.T) {
	t.Setenv("RECORDS_ATOMIC_WRITES", "maybe")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.False(t, cfg.AtomicWrites)
}
