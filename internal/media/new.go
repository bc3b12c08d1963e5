package media

import (
	"github.com/nguyentantai21042004/deck-scribe/internal/config"
	"github.com/nguyentantai21042004/deck-scribe/internal/logger"
	"github.com/nguyentantai21042004/deck-scribe/pkg/executor"
)

type implConverter struct {
	cfg      config.FFmpegConfig
	executor executor.Executor
	logger   logger.Logger
}

// New creates a new Converter instance
func New(cfg config.FFmpegConfig, exec executor.Executor, log logger.Logger) Converter {
	return &implConverter{
		cfg:      cfg,
		executor: exec,
		logger:   log,
	}
}
