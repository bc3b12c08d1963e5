package engine

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"

	"github.com/nguyentantai21042004/deck-scribe/internal/config"
	"github.com/nguyentantai21042004/deck-scribe/internal/logger"
)

// transcriptionClient is the part of *openai.Client we use
type transcriptionClient interface {
	CreateTranscription(ctx context.Context, request openai.AudioRequest) (openai.AudioResponse, error)
}

type openAIEngine struct {
	client   transcriptionClient
	model    string
	language string
	prompt   string
	logger   logger.Logger
}

// NewOpenAI transcribes through the OpenAI audio API (or any compatible
// server reachable through the client's base URL)
func NewOpenAI(client transcriptionClient, model string, whisper config.WhisperConfig, log logger.Logger) Engine {
	if model == "" {
		model = openai.Whisper1
	}
	return &openAIEngine{
		client:   client,
		model:    model,
		language: whisper.Language,
		prompt:   whisper.Prompt,
		logger:   log,
	}
}

func (o *openAIEngine) Name() string {
	return config.EngineOpenAI
}

func (o *openAIEngine) Transcribe(ctx context.Context, audioPath string) (*Result, error) {
	req := openai.AudioRequest{
		Model:    o.model,
		FilePath: audioPath,
		Prompt:   o.prompt,
		Format:   openai.AudioResponseFormatVerboseJSON,
	}
	if o.language != "auto" {
		req.Language = o.language
	}

	o.logger.Info(ctx, "Sending %s to OpenAI (%s)", audioPath, o.model)

	resp, err := o.client.CreateTranscription(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("createTranscription failed: %w", err)
	}

	result := &Result{
		Text:     resp.Text,
		Language: resp.Language,
		Engine:   config.EngineOpenAI,
	}
	for _, s := range resp.Segments {
		result.Segments = append(result.Segments, Segment{
			Start: seconds(s.Start),
			End:   seconds(s.End),
			Text:  s.Text,
		})
	}
	result.Normalize()
	return result, nil
}
