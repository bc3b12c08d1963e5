package processor

import (
	"context"
	"time"

	"github.com/nguyentantai21042004/deck-scribe/internal/engine"
)

// transcribe hands the combined narration to the configured engine
func (p *implProcessor) transcribe(ctx context.Context, audio *ExtractedAudio) (*engine.Result, error) {
	p.logger.Info(ctx, "Transcribing %s with %s (%s)", audio.Document.Name, p.engine.Name(), audio.Duration.Round(time.Millisecond))

	result, err := p.engine.Transcribe(ctx, audio.Path)
	if err != nil {
		return nil, &ModelError{Document: audio.Document.Name, Engine: p.engine.Name(), Err: err}
	}
	if result == nil {
		result = &engine.Result{}
	}
	result.Normalize()
	return result, nil
}
