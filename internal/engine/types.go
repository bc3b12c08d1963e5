package engine

import (
	"sort"
	"strings"
	"time"
)

// Segment is one timed piece of recognized speech
type Segment struct {
	Start time.Duration
	End   time.Duration
	Text  string
}

// Result is the output of one transcription call
type Result struct {
	Segments []Segment
	// Text is the full transcript. Engines that only return segments get it
	// filled in by Normalize.
	Text     string
	Language string
	Engine   string
}

// Normalize trims segment text, drops segments left blank, orders the rest
// by start time and derives Text from them when the engine did not provide it.
func (r *Result) Normalize() {
	kept := r.Segments[:0]
	for _, s := range r.Segments {
		s.Text = strings.TrimSpace(s.Text)
		if s.Text != "" {
			kept = append(kept, s)
		}
	}
	r.Segments = kept
	sort.SliceStable(r.Segments, func(i, j int) bool {
		return r.Segments[i].Start < r.Segments[j].Start
	})

	r.Text = strings.TrimSpace(r.Text)
	if r.Text == "" {
		parts := make([]string, 0, len(r.Segments))
		for _, s := range r.Segments {
			parts = append(parts, s.Text)
		}
		r.Text = strings.Join(parts, " ")
	}
}

// Empty reports whether nothing but whitespace was recognized, however
// many segments the engine returned
func (r *Result) Empty() bool {
	if strings.TrimSpace(r.Text) != "" {
		return false
	}
	for _, s := range r.Segments {
		if strings.TrimSpace(s.Text) != "" {
			return false
		}
	}
	return true
}

func seconds(v float64) time.Duration {
	return time.Duration(v * float64(time.Second))
}

func millis(v int64) time.Duration {
	return time.Duration(v) * time.Millisecond
}
