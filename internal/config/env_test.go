package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvInputDir, "/app/ppt")
	t.Setenv(EnvOutputDir, " /app/output ")
	t.Setenv(EnvEngine, "gemini")
	t.Setenv(EnvGeminiKeys, "k1, ,k2")

	cfg := Default()
	ApplyEnv(cfg)

	assert.Equal(t, "/app/ppt", cfg.Paths.Input)
	assert.Equal(t, "/app/output", cfg.Paths.Output)
	assert.Equal(t, "data/temp", cfg.Paths.Temp)
	assert.Equal(t, "gemini", cfg.Engine.Name)
	assert.Equal(t, []string{"k1", "k2"}, cfg.Gemini.APIKeys)
}

func TestApplyEnvSingleGeminiKey(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvGeminiKey, "only")

	cfg := Default()
	ApplyEnv(cfg)
	assert.Equal(t, []string{"only"}, cfg.Gemini.APIKeys)
}

func TestLoadDotEnv(t *testing.T) {
	clearEnv(t)
	require.NoError(t, os.Unsetenv(EnvTempDir))

	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("DECK_TEMP_DIR=/scratch\n"), 0644))

	got, err := LoadDotEnv(filepath.Join(dir, "absent.env"), path)
	require.NoError(t, err)
	assert.Equal(t, path, got)
	assert.Equal(t, "/scratch", os.Getenv(EnvTempDir))
	t.Cleanup(func() { os.Unsetenv(EnvTempDir) })

	got, err = LoadDotEnv(filepath.Join(dir, "absent.env"))
	require.NoError(t, err)
	assert.Empty(t, got)
}
