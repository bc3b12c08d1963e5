package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{EnvInputDir, EnvOutputDir, EnvTempDir, EnvEngine, EnvLogLevel,
		EnvOpenAIKey, EnvGeminiKey, EnvGeminiKeys} {
		t.Setenv(k, "")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{
			name:    "valid config",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "missing model path",
			mutate:  func(c *Config) { c.Whisper.ModelPath = "" },
			wantErr: true,
		},
		{
			name:    "model path not needed for openai",
			mutate:  func(c *Config) { c.Whisper.ModelPath = ""; c.Engine.Name = "OpenAI" },
			wantErr: false,
		},
		{
			name:    "missing paths",
			mutate:  func(c *Config) { c.Paths = PathsConfig{} },
			wantErr: true,
		},
		{
			name:    "unknown engine",
			mutate:  func(c *Config) { c.Engine.Name = "deepspeech" },
			wantErr: true,
		},
		{
			name:    "negative concurrency",
			mutate:  func(c *Config) { c.Performance.MaxConcurrent = -1 },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateFillsDefaults(t *testing.T) {
	cfg := &Config{
		Paths:   PathsConfig{Input: "in", Output: "out"},
		Whisper: WhisperConfig{ModelPath: "m.bin", BinaryPath: "whisper-cli"},
		Media:   MediaConfig{Extensions: []string{"M4A", ".Mp3"}},
	}
	require.NoError(t, cfg.Validate())

	assert.Equal(t, EngineWhisperCpp, cfg.Engine.Name)
	assert.Equal(t, "data/temp", cfg.Paths.Temp)
	assert.Equal(t, 1, cfg.Performance.MaxConcurrent)
	assert.Equal(t, 16000, cfg.FFmpeg.SampleRate)
	assert.Equal(t, []string{".m4a", ".mp3"}, cfg.Media.Extensions)
}

func TestLoad(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")

	content := `
engine:
  name: whisper_cpp

whisper:
  model_path: "models/test.bin"
  binary_path: "./whisper"
  language: "en"
  prompt: "test"

paths:
  input: "data/input"
  output: "data/output"

media:
  min_clip_seconds: 0.5

logging:
  level: "debug"
  format: "json"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "models/test.bin", cfg.Whisper.ModelPath)
	assert.Equal(t, "data/input", cfg.Paths.Input)
	assert.Equal(t, 0.5, cfg.Media.MinClipSeconds)
	assert.Equal(t, "json", cfg.Logging.Format)
	// untouched keys keep their defaults
	assert.Equal(t, "ffprobe", cfg.FFmpeg.ProbePath)
	assert.Equal(t, DefaultAudioExtensions, cfg.Media.Extensions)
}

func TestLoadInvalidFile(t *testing.T) {
	_, err := Load("nonexistent.yaml")
	assert.Error(t, err)
}

func TestLoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("paths: [unclosed"), 0644))

	_, err := LoadOrDefault(path)
	assert.Error(t, err)
}

func TestLoadOrDefault(t *testing.T) {
	clearEnv(t)
	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default().Paths, cfg.Paths)
}
