package engine

import (
	"fmt"

	"github.com/sashabaranov/go-openai"

	"github.com/nguyentantai21042004/deck-scribe/internal/config"
	"github.com/nguyentantai21042004/deck-scribe/internal/logger"
	"github.com/nguyentantai21042004/deck-scribe/pkg/executor"
)

// New builds the engine selected by cfg.Engine.Name
func New(cfg *config.Config, exec executor.Executor, log logger.Logger) (Engine, error) {
	switch cfg.Engine.Name {
	case config.EngineWhisperCpp, "":
		return NewWhisperCpp(cfg.Whisper, exec, log), nil

	case config.EngineOpenAI:
		if cfg.OpenAI.APIKey == "" {
			return nil, fmt.Errorf("openai engine requires %s", config.EnvOpenAIKey)
		}
		clientCfg := openai.DefaultConfig(cfg.OpenAI.APIKey)
		if cfg.OpenAI.BaseURL != "" {
			clientCfg.BaseURL = cfg.OpenAI.BaseURL
		}
		return NewOpenAI(openai.NewClientWithConfig(clientCfg), cfg.OpenAI.Model, cfg.Whisper, log), nil

	case config.EngineGemini:
		if len(cfg.Gemini.APIKeys) == 0 {
			return nil, fmt.Errorf("gemini engine requires %s or %s", config.EnvGeminiKeys, config.EnvGeminiKey)
		}
		return NewGemini(cfg.Gemini.APIKeys, cfg.Gemini.Model, cfg.Whisper.Language, log), nil

	default:
		return nil, fmt.Errorf("unknown engine %q", cfg.Engine.Name)
	}
}
