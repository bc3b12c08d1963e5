package processor

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/nguyentantai21042004/deck-scribe/internal/pptx"
)

// Run discovers every presentation in the input dir and processes them. It
// returns an error only when the batch cannot start.
func (p *implProcessor) Run(ctx context.Context) (*Report, error) {
	p.sweepStaleWorkDirs(ctx)

	docs, err := pptx.Discover(p.cfg.Paths.Input)
	if err != nil {
		return nil, fmt.Errorf("discover presentations: %w", err)
	}
	if len(docs) == 0 {
		p.logger.Info(ctx, "No .pptx files found in %s", p.cfg.Paths.Input)
		return &Report{}, nil
	}

	p.logger.Info(ctx, "Found %d presentation(s) in %s", len(docs), p.cfg.Paths.Input)
	return p.runDocuments(ctx, docs), nil
}

// runDocuments processes docs and reports one outcome per document, in input
// order. One document failing never stops the rest.
func (p *implProcessor) runDocuments(ctx context.Context, docs []pptx.Document) *Report {
	startTime := time.Now()
	progress := p.newBatchProgress(len(docs))

	var outcomes []Outcome
	if p.cfg.Performance.MaxConcurrent > 1 {
		outcomes = p.runParallel(ctx, docs, progress)
	} else {
		outcomes = p.runSequential(ctx, docs, progress)
	}
	progress.wait()

	report := &Report{Outcomes: outcomes}
	p.logger.Info(ctx, "Batch finished in %s: %d succeeded, %d skipped, %d failed",
		time.Since(startTime).Round(time.Millisecond), report.Succeeded(), report.Skipped(), report.Failed())
	return report
}

func (p *implProcessor) runSequential(ctx context.Context, docs []pptx.Document, progress *batchProgress) []Outcome {
	outcomes := make([]Outcome, len(docs))
	for i, doc := range docs {
		if err := ctx.Err(); err != nil {
			outcomes[i] = canceled(doc, err)
			continue
		}
		outcomes[i] = p.runOne(ctx, doc)
		progress.done(outcomes[i].Elapsed)
	}
	return outcomes
}

func (p *implProcessor) runParallel(ctx context.Context, docs []pptx.Document, progress *batchProgress) []Outcome {
	outcomes := make([]Outcome, len(docs))

	var g errgroup.Group
	g.SetLimit(p.cfg.Performance.MaxConcurrent)
	for i, doc := range docs {
		if err := ctx.Err(); err != nil {
			outcomes[i] = canceled(doc, err)
			continue
		}

		// blocks until a slot is free
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				outcomes[i] = canceled(doc, err)
				return nil
			}
			outcomes[i] = p.runOne(ctx, doc)
			progress.done(outcomes[i].Elapsed)
			return nil
		})
	}
	g.Wait()
	return outcomes
}

func canceled(doc pptx.Document, err error) Outcome {
	return Outcome{Document: doc, Kind: KindCanceled, Err: err}
}
