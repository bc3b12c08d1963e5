package processor

import "context"

// Processor runs the discovery, extraction and transcription pipeline
type Processor interface {
	// Run processes every presentation in the configured input directory
	Run(ctx context.Context) (*Report, error)
	// ProcessFile processes and logs a single file. Documents without audio
	// are not reported as errors.
	ProcessFile(ctx context.Context, path string) error
}
