package processor

import (
	"context"
	"fmt"
	"time"

	"github.com/nguyentantai21042004/deck-scribe/internal/pptx"
)

// process orchestrates extraction, transcription and output for one document.
// The error is classified with Classify.
func (p *implProcessor) process(ctx context.Context, doc pptx.Document) (Outcome, error) {
	startTime := time.Now()
	outcome := Outcome{Document: doc}

	p.logger.Info(ctx, "Processing %s", doc.Name)

	workDir, err := p.newWorkDir()
	if err != nil {
		return outcome, &ExtractionError{Document: doc.Name, Err: err}
	}
	defer p.cleanupWorkDir(ctx, workDir)

	// Step 1: Extract audio
	audio, err := p.extractAudio(ctx, doc, workDir)
	if err != nil {
		return outcome, err
	}

	// Step 2: Transcribe
	result, err := p.transcribe(ctx, audio)
	if err != nil {
		return outcome, err
	}
	if result.Empty() {
		return outcome, fmt.Errorf("%w: transcription of %s was empty", ErrNoAudio, doc.Name)
	}

	// Step 3: Write the .txt/.vtt pair
	pair, err := p.writeOutputs(ctx, doc, result)
	if err != nil {
		return outcome, err
	}

	outcome.Pair = pair
	outcome.Elapsed = time.Since(startTime)
	p.logger.Info(ctx, "Transcription saved as %s and %s (%d segments, %s)",
		pair.Text, pair.VTT, len(result.Segments), outcome.Elapsed.Round(time.Millisecond))
	return outcome, nil
}

// ProcessFile processes a single presentation outside of a batch
func (p *implProcessor) ProcessFile(ctx context.Context, path string) error {
	if !pptx.IsPresentation(path) {
		return fmt.Errorf("%s is not a presentation", path)
	}
	outcome := p.runOne(ctx, pptx.NewDocument(path))
	if outcome.Kind.Failed() {
		return outcome.Err
	}
	return nil
}

// runOne processes a document and logs the outcome at a severity matching
// its class
func (p *implProcessor) runOne(ctx context.Context, doc pptx.Document) Outcome {
	startTime := time.Now()
	outcome, err := p.process(ctx, doc)
	outcome.Document = doc
	outcome.Elapsed = time.Since(startTime)
	outcome.Err = err
	outcome.Kind = Classify(err)

	switch outcome.Kind {
	case KindNone:
		p.logger.Info(ctx, "Completed processing for %s", doc.Name)
	case KindNoAudio:
		p.logger.Info(ctx, "No audio found in %s, skipping: %v", doc.Name, err)
	case KindExtraction, KindModel, KindCanceled, KindUnknown:
		p.logger.Warn(ctx, "%s: %s: %v", outcome.Kind, doc.Name, err)
	case KindWrite:
		p.logger.Error(ctx, "%s: %v (check that %s is writable and has free space; later documents will likely fail too)",
			outcome.Kind, err, p.cfg.Paths.Output)
	}
	return outcome
}
