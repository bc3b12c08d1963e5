package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variables recognised on top of the config file
const (
	EnvInputDir   = "DECK_INPUT_DIR"
	EnvOutputDir  = "DECK_OUTPUT_DIR"
	EnvTempDir    = "DECK_TEMP_DIR"
	EnvEngine     = "DECK_ENGINE"
	EnvLogLevel   = "DECK_LOG_LEVEL"
	EnvOpenAIKey  = "OPENAI_API_KEY"
	EnvGeminiKey  = "GEMINI_API_KEY"
	EnvGeminiKeys = "GEMINI_API_KEYS"
)

// LoadDotEnv loads the first .env file found in the given paths. Variables
// already present in the process environment win.
func LoadDotEnv(paths ...string) (string, error) {
	if len(paths) == 0 {
		paths = []string{".env", ".env.local"}
	}

	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return "", fmt.Errorf("load %s: %w", p, err)
		}
		return p, nil
	}
	return "", nil
}

// ApplyEnv overrides file values with deployment-provided variables
func ApplyEnv(c *Config) {
	if v := getenv(EnvInputDir); v != "" {
		c.Paths.Input = v
	}
	if v := getenv(EnvOutputDir); v != "" {
		c.Paths.Output = v
	}
	if v := getenv(EnvTempDir); v != "" {
		c.Paths.Temp = v
	}
	if v := getenv(EnvEngine); v != "" {
		c.Engine.Name = v
	}
	if v := getenv(EnvLogLevel); v != "" {
		c.Logging.Level = v
	}
	if v := getenv(EnvOpenAIKey); v != "" {
		c.OpenAI.APIKey = v
	}

	keys := splitList(getenv(EnvGeminiKeys))
	if len(keys) == 0 {
		keys = splitList(getenv(EnvGeminiKey))
	}
	if len(keys) > 0 {
		c.Gemini.APIKeys = keys
	}
}

func getenv(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func splitList(v string) []string {
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
