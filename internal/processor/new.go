package processor

import (
	"io"

	"github.com/nguyentantai21042004/deck-scribe/internal/config"
	"github.com/nguyentantai21042004/deck-scribe/internal/engine"
	"github.com/nguyentantai21042004/deck-scribe/internal/logger"
	"github.com/nguyentantai21042004/deck-scribe/internal/media"
)

type implProcessor struct {
	cfg      *config.Config
	media    media.Converter
	engine   engine.Engine
	logger   logger.Logger
	progress io.Writer
}

// Option customises a Processor
type Option func(*implProcessor)

// WithProgress renders a progress bar to w while a batch runs
func WithProgress(w io.Writer) Option {
	return func(p *implProcessor) {
		p.progress = w
	}
}

// New creates a new Processor instance
func New(cfg *config.Config, conv media.Converter, eng engine.Engine, log logger.Logger, opts ...Option) Processor {
	p := &implProcessor{
		cfg:    cfg,
		media:  conv,
		engine: eng,
		logger: log,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}
