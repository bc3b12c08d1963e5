package processor

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/nguyentantai21042004/deck-scribe/internal/pptx"
)

const narrationFile = "narration.wav"

// extractAudio pulls every narration clip out of the presentation, drops
// clips that are undecodable or too short, and joins the rest in slide order
// into a single WAV inside workDir.
func (p *implProcessor) extractAudio(ctx context.Context, doc pptx.Document, workDir string) (*ExtractedAudio, error) {
	archive, err := pptx.Open(doc.Path)
	if err != nil {
		return nil, &ExtractionError{Document: doc.Name, Err: err}
	}
	defer archive.Close()

	streams := archive.AudioStreams(p.cfg.Media.Extensions)
	if len(streams) == 0 {
		return nil, fmt.Errorf("%w: no audio streams in %s", ErrNoAudio, doc.Name)
	}

	p.logger.Info(ctx, "Found %d audio stream(s) in %s", len(streams), doc.Name)

	minClip := time.Duration(p.cfg.Media.MinClipSeconds * float64(time.Second))
	var (
		clips    []string
		total    time.Duration
		tooShort int
	)

	for i, stream := range streams {
		if err := ctx.Err(); err != nil {
			return nil, &ExtractionError{Document: doc.Name, Err: err}
		}

		raw := filepath.Join(workDir, fmt.Sprintf("clip%03d%s", i+1, path.Ext(stream.Name)))
		if err := archive.Extract(stream.Name, raw); err != nil {
			p.logger.Warn(ctx, "Corrupted audio skipped: %s (%s): %v", stream.Name, doc.Name, err)
			continue
		}

		duration, err := p.media.Probe(ctx, raw)
		if err != nil {
			p.logger.Warn(ctx, "Unreadable audio skipped: %s (%s): %v", stream.Name, doc.Name, err)
			continue
		}
		if duration < minClip {
			p.logger.Info(ctx, "Skipping %s, duration too short: %s", stream.Name, duration)
			tooShort++
			continue
		}

		wav := filepath.Join(workDir, fmt.Sprintf("clip%03d.wav", i+1))
		if err := p.media.Normalize(ctx, raw, wav); err != nil {
			p.logger.Warn(ctx, "Undecodable audio skipped: %s (%s): %v", stream.Name, doc.Name, err)
			continue
		}
		os.Remove(raw)

		p.logger.Debug(ctx, "Clip %d: %s (slide %d, %s)", len(clips)+1, stream.Name, stream.Slide, duration)
		clips = append(clips, wav)
		total += duration
	}

	if len(clips) == 0 {
		if err := ctx.Err(); err != nil {
			return nil, &ExtractionError{Document: doc.Name, Err: err}
		}
		if tooShort == len(streams) {
			return nil, fmt.Errorf("%w: all %d clip(s) in %s are shorter than %s", ErrNoAudio, tooShort, doc.Name, minClip)
		}
		return nil, &ExtractionError{
			Document: doc.Name,
			Err:      fmt.Errorf("%d of %d audio stream(s) could not be decoded", len(streams)-tooShort, len(streams)),
		}
	}

	narration := filepath.Join(workDir, narrationFile)
	if len(clips) == 1 {
		if err := os.Rename(clips[0], narration); err != nil {
			return nil, &ExtractionError{Document: doc.Name, Err: err}
		}
	} else if err := p.media.Concat(ctx, clips, narration); err != nil {
		return nil, &ExtractionError{Document: doc.Name, Err: err}
	}

	p.logger.Info(ctx, "Audio extracted successfully: %d clip(s), %s total", len(clips), total.Round(time.Millisecond))

	return &ExtractedAudio{
		Document: doc,
		Path:     narration,
		Format:   AudioFormat,
		Clips:    len(clips),
		Duration: total,
	}, nil
}
