package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Engine names accepted by engine.name
const (
	EngineWhisperCpp = "whisper_cpp"
	EngineOpenAI     = "openai"
	EngineGemini     = "gemini"
)

type Config struct {
	Paths       PathsConfig       `yaml:"paths"`
	Engine      EngineConfig      `yaml:"engine"`
	Whisper     WhisperConfig     `yaml:"whisper"`
	OpenAI      OpenAIConfig      `yaml:"openai"`
	Gemini      GeminiConfig      `yaml:"gemini"`
	FFmpeg      FFmpegConfig      `yaml:"ffmpeg"`
	Media       MediaConfig       `yaml:"media"`
	Output      OutputConfig      `yaml:"output"`
	Logging     LoggingConfig     `yaml:"logging"`
	Performance PerformanceConfig `yaml:"performance"`
}

type PathsConfig struct {
	Input  string `yaml:"input"`
	Output string `yaml:"output"`
	Temp   string `yaml:"temp"`
}

type EngineConfig struct {
	Name string `yaml:"name"`
}

type WhisperConfig struct {
	ModelPath  string `yaml:"model_path"`
	BinaryPath string `yaml:"binary_path"`
	Language   string `yaml:"language"`
	Prompt     string `yaml:"prompt"`
	Threads    int    `yaml:"threads"`
	BestOf     int    `yaml:"best_of"`
}

type OpenAIConfig struct {
	Model   string `yaml:"model"`
	BaseURL string `yaml:"base_url"`
	APIKey  string `yaml:"-"`
}

type GeminiConfig struct {
	Model   string   `yaml:"model"`
	APIKeys []string `yaml:"-"`
}

type FFmpegConfig struct {
	BinaryPath string `yaml:"binary_path"`
	ProbePath  string `yaml:"probe_path"`
	SampleRate int    `yaml:"sample_rate"`
}

type MediaConfig struct {
	Extensions     []string `yaml:"extensions"`
	MinClipSeconds float64  `yaml:"min_clip_seconds"`
}

type OutputConfig struct {
	Docx bool `yaml:"docx"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type PerformanceConfig struct {
	MaxConcurrent int `yaml:"max_concurrent"`
}

// DefaultAudioExtensions are the media parts treated as narration audio
var DefaultAudioExtensions = []string{".m4a", ".mp3", ".wav", ".wma", ".aac", ".ogg", ".flac"}

// Default returns the configuration used when no config file is present
func Default() *Config {
	return &Config{
		Paths: PathsConfig{
			Input:  "data/input",
			Output: "data/output",
			Temp:   "data/temp",
		},
		Engine: EngineConfig{Name: EngineWhisperCpp},
		Whisper: WhisperConfig{
			ModelPath:  "models/ggml-base.bin",
			BinaryPath: "whisper-cli",
			Language:   "auto",
			Threads:    4,
			BestOf:     5,
		},
		OpenAI: OpenAIConfig{Model: "whisper-1"},
		Gemini: GeminiConfig{Model: "gemini-2.5-flash"},
		FFmpeg: FFmpegConfig{
			BinaryPath: "ffmpeg",
			ProbePath:  "ffprobe",
			SampleRate: 16000,
		},
		Media: MediaConfig{
			Extensions:     append([]string(nil), DefaultAudioExtensions...),
			MinClipSeconds: 1.0,
		},
		Logging:     LoggingConfig{Level: "info", Format: "text"},
		Performance: PerformanceConfig{MaxConcurrent: 1},
	}
}

// Load reads a YAML config file on top of the defaults, applies environment
// overrides and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	return finish(cfg)
}

// LoadOrDefault behaves like Load but falls back to the defaults when the
// file does not exist.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if err == nil {
		return cfg, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return finish(Default())
	}
	return nil, err
}

func finish(cfg *Config) (*Config, error) {
	ApplyEnv(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Paths.Input == "" {
		return fmt.Errorf("paths.input is required")
	}
	if c.Paths.Output == "" {
		return fmt.Errorf("paths.output is required")
	}
	if c.Performance.MaxConcurrent < 0 {
		return fmt.Errorf("performance.max_concurrent must not be negative")
	}
	if c.Media.MinClipSeconds < 0 {
		return fmt.Errorf("media.min_clip_seconds must not be negative")
	}

	c.Engine.Name = strings.ToLower(strings.TrimSpace(c.Engine.Name))
	if c.Engine.Name == "" {
		c.Engine.Name = EngineWhisperCpp
	}
	switch c.Engine.Name {
	case EngineWhisperCpp:
		if c.Whisper.ModelPath == "" {
			return fmt.Errorf("whisper.model_path is required")
		}
		if c.Whisper.BinaryPath == "" {
			return fmt.Errorf("whisper.binary_path is required")
		}
	case EngineOpenAI, EngineGemini:
	default:
		return fmt.Errorf("engine.name %q is not supported", c.Engine.Name)
	}

	if c.Paths.Temp == "" {
		c.Paths.Temp = "data/temp"
	}
	if c.Performance.MaxConcurrent == 0 {
		c.Performance.MaxConcurrent = 1
	}
	if c.Whisper.Threads == 0 {
		c.Whisper.Threads = 4
	}
	if c.Whisper.Language == "" {
		c.Whisper.Language = "auto"
	}
	if c.FFmpeg.BinaryPath == "" {
		c.FFmpeg.BinaryPath = "ffmpeg"
	}
	if c.FFmpeg.ProbePath == "" {
		c.FFmpeg.ProbePath = "ffprobe"
	}
	if c.FFmpeg.SampleRate == 0 {
		c.FFmpeg.SampleRate = 16000
	}
	if len(c.Media.Extensions) == 0 {
		c.Media.Extensions = append([]string(nil), DefaultAudioExtensions...)
	}
	for i, ext := range c.Media.Extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		c.Media.Extensions[i] = ext
	}
	if c.OpenAI.Model == "" {
		c.OpenAI.Model = "whisper-1"
	}
	if c.Gemini.Model == "" {
		c.Gemini.Model = "gemini-2.5-flash"
	}

	return nil
}
