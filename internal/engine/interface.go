package engine

import "context"

// Engine turns a WAV file into timed text
type Engine interface {
	Name() string
	Transcribe(ctx context.Context, audioPath string) (*Result, error)
}
