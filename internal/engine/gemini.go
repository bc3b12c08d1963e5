package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"

	"google.golang.org/genai"

	"github.com/nguyentantai21042004/deck-scribe/internal/config"
	"github.com/nguyentantai21042004/deck-scribe/internal/logger"
)

const transcribePrompt = `Transcribe the spoken narration in the attached audio verbatim.
%sReturn JSON only, with this shape:
{"language": "<ISO 639-1 code>", "segments": [{"start": <seconds>, "end": <seconds>, "text": "<utterance>"}]}
Segments must be in chronological order, non-overlapping, and no longer than about 10 seconds each.
If there is no speech, return {"language": "", "segments": []}.`

// generateFunc calls the Gemini API with a single key
type generateFunc func(ctx context.Context, apiKey, model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)

type geminiEngine struct {
	apiKeys    []string
	mu         sync.Mutex
	currentKey int
	model      string
	language   string
	generate   generateFunc
	logger     logger.Logger
}

// NewGemini transcribes by sending the WAV inline to Gemini. Keys are
// rotated on 429 / quota errors.
func NewGemini(apiKeys []string, model, language string, log logger.Logger) Engine {
	return &geminiEngine{
		apiKeys:  apiKeys,
		model:    model,
		language: language,
		generate: generateContent,
		logger:   log,
	}
}

func (g *geminiEngine) Name() string {
	return config.EngineGemini
}

type geminiTranscript struct {
	Language string `json:"language"`
	Segments []struct {
		Start float64 `json:"start"`
		End   float64 `json:"end"`
		Text  string  `json:"text"`
	} `json:"segments"`
}

func (g *geminiEngine) Transcribe(ctx context.Context, audioPath string) (*Result, error) {
	audio, err := os.ReadFile(audioPath)
	if err != nil {
		return nil, fmt.Errorf("read audio: %w", err)
	}

	hint := ""
	if g.language != "" && g.language != "auto" {
		hint = fmt.Sprintf("The narration language is %q.\n", g.language)
	}

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromText(fmt.Sprintf(transcribePrompt, hint)),
			genai.NewPartFromBytes(audio, "audio/wav"),
		}, genai.RoleUser),
	}
	cfg := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		Temperature:      genai.Ptr[float32](0),
	}

	text, err := g.callGemini(ctx, contents, cfg)
	if err != nil {
		return nil, err
	}

	var parsed geminiTranscript
	if err := json.Unmarshal([]byte(stripCodeFence(text)), &parsed); err != nil {
		return nil, fmt.Errorf("parse gemini response: %w", err)
	}

	result := &Result{Language: parsed.Language, Engine: config.EngineGemini}
	for _, s := range parsed.Segments {
		result.Segments = append(result.Segments, Segment{
			Start: seconds(s.Start),
			End:   seconds(s.End),
			Text:  s.Text,
		})
	}
	result.Normalize()
	return result, nil
}

// callGemini sends the request and returns the concatenated text parts.
// Rotates API keys on 429 / quota errors.
func (g *geminiEngine) callGemini(ctx context.Context, contents []*genai.Content, cfg *genai.GenerateContentConfig) (string, error) {
	attempts := len(g.apiKeys)
	if attempts == 0 {
		return "", fmt.Errorf("no Gemini API keys configured")
	}
	var lastErr error

	for range attempts {
		keyIndex, key := g.key()

		result, err := g.generate(ctx, key, g.model, contents, cfg)
		if err != nil {
			errMsg := err.Error()
			if strings.Contains(errMsg, "429") || strings.Contains(errMsg, "quota") || strings.Contains(errMsg, "RESOURCE_EXHAUSTED") {
				g.logger.Warn(ctx, "Key %d rate limited, rotating...", keyIndex+1)
				g.rotateKey(keyIndex)
				lastErr = err
				continue
			}
			return "", fmt.Errorf("generate content: %w", err)
		}

		if result != nil && len(result.Candidates) > 0 && result.Candidates[0].Content != nil {
			var text string
			for _, part := range result.Candidates[0].Content.Parts {
				if part.Text != "" {
					text += part.Text
				}
			}
			return text, nil
		}

		return "", fmt.Errorf("empty response from Gemini")
	}

	return "", fmt.Errorf("all API keys exhausted: %w", lastErr)
}

func (g *geminiEngine) key() (int, string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.currentKey, g.apiKeys[g.currentKey]
}

// rotateKey moves past the key at index unless another call already did
func (g *geminiEngine) rotateKey(index int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.currentKey == index {
		g.currentKey = (g.currentKey + 1) % len(g.apiKeys)
	}
}

func generateContent(ctx context.Context, apiKey, model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create client: %w", err)
	}
	return client.Models.GenerateContent(ctx, model, contents, cfg)
}

// stripCodeFence removes a ```json fence some models add despite the MIME type
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
