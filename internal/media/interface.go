package media

import (
	"context"
	"time"
)

// Converter wraps the ffmpeg/ffprobe operations used on narration clips
type Converter interface {
	// Probe returns the decoded duration of an audio file
	Probe(ctx context.Context, path string) (time.Duration, error)
	// Normalize re-encodes src as mono PCM WAV at the configured sample rate
	Normalize(ctx context.Context, src, dst string) error
	// Concat joins normalized WAV clips in order into dst
	Concat(ctx context.Context, clips []string, dst string) error
}
