package processor

import (
	"context"
	"errors"
	"fmt"
)

// ErrNoAudio marks a document without usable narration. It is not a failure.
var ErrNoAudio = errors.New("no audio")

// ExtractionError is returned when a presentation cannot be read or none of
// its audio streams can be decoded
type ExtractionError struct {
	Document string
	Err      error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extraction failed for %s: %v", e.Document, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// ModelError is returned when the transcription engine fails
type ModelError struct {
	Document string
	Engine   string
	Err      error
}

func (e *ModelError) Error() string {
	return fmt.Sprintf("%s engine failed for %s: %v", e.Engine, e.Document, e.Err)
}

func (e *ModelError) Unwrap() error { return e.Err }

// WriteError is returned when the output pair cannot be written. It usually
// affects every later document as well.
type WriteError struct {
	Document string
	Dir      string
	Err      error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("writing outputs for %s to %s: %v", e.Document, e.Dir, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// Kind is the outcome class of one document
type Kind int

const (
	KindNone Kind = iota
	KindNoAudio
	KindExtraction
	KindModel
	KindWrite
	KindCanceled
	KindUnknown
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "ok"
	case KindNoAudio:
		return "NoAudio"
	case KindExtraction:
		return "ExtractionError"
	case KindModel:
		return "ModelError"
	case KindWrite:
		return "WriteError"
	case KindCanceled:
		return "Canceled"
	default:
		return "Unknown"
	}
}

// Failed reports whether the kind counts against the batch exit status
func (k Kind) Failed() bool {
	return k != KindNone && k != KindNoAudio
}

// Classify maps an error returned by Process to its Kind
func Classify(err error) Kind {
	var (
		extractErr *ExtractionError
		modelErr   *ModelError
		writeErr   *WriteError
	)

	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return KindCanceled
	case errors.Is(err, ErrNoAudio):
		return KindNoAudio
	case errors.As(err, &writeErr):
		return KindWrite
	case errors.As(err, &modelErr):
		return KindModel
	case errors.As(err, &extractErr):
		return KindExtraction
	default:
		return KindUnknown
	}
}
