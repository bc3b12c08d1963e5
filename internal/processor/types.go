package processor

import (
	"time"

	"github.com/nguyentantai21042004/deck-scribe/internal/pptx"
	"github.com/nguyentantai21042004/deck-scribe/internal/transcript"
)

// AudioFormat describes every ExtractedAudio handed to an engine
const AudioFormat = "wav/pcm_s16le/mono"

// ExtractedAudio is the combined narration of one document. It lives in the
// document's work dir and is removed with it.
type ExtractedAudio struct {
	Document pptx.Document
	Path     string
	Format   string
	Clips    int
	Duration time.Duration
}

// Outcome records what happened to one document
type Outcome struct {
	Document pptx.Document
	Kind     Kind
	Err      error
	Pair     transcript.Pair
	Elapsed  time.Duration
}

// Report summarises a batch
type Report struct {
	Outcomes []Outcome
}

func (r *Report) count(match func(Kind) bool) int {
	n := 0
	for _, o := range r.Outcomes {
		if match(o.Kind) {
			n++
		}
	}
	return n
}

// Succeeded is the number of documents that produced an output pair
func (r *Report) Succeeded() int {
	return r.count(func(k Kind) bool { return k == KindNone })
}

// Skipped is the number of documents without usable audio
func (r *Report) Skipped() int {
	return r.count(func(k Kind) bool { return k == KindNoAudio })
}

// Failed is the number of documents that did not complete
func (r *Report) Failed() int {
	return r.count(Kind.Failed)
}

// ExitCode is 0 when no document failed and 1 otherwise
func (r *Report) ExitCode() int {
	if r.Failed() > 0 {
		return 1
	}
	return 0
}
