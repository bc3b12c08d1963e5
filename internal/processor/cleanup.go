package processor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	workDirPrefix = "deck-"
	// work dirs older than this are left over from killed runs
	staleAfter = 6 * time.Hour
)

// newWorkDir creates an isolated temp dir for one document
func (p *implProcessor) newWorkDir() (string, error) {
	if err := os.MkdirAll(p.cfg.Paths.Temp, 0755); err != nil {
		return "", fmt.Errorf("create temp dir: %w", err)
	}
	dir, err := os.MkdirTemp(p.cfg.Paths.Temp, workDirPrefix+"*")
	if err != nil {
		return "", fmt.Errorf("create work dir: %w", err)
	}
	return dir, nil
}

// cleanupWorkDir removes a work dir, logs warning if fails
func (p *implProcessor) cleanupWorkDir(ctx context.Context, dir string) {
	if err := os.RemoveAll(dir); err != nil {
		p.logger.Warn(ctx, "Failed to cleanup temp dir %s: %v", dir, err)
	} else {
		p.logger.Debug(ctx, "Cleaned up temp dir: %s", dir)
	}
}

// sweepStaleWorkDirs removes work dirs abandoned by earlier runs
func (p *implProcessor) sweepStaleWorkDirs(ctx context.Context) {
	entries, err := os.ReadDir(p.cfg.Paths.Temp)
	if err != nil {
		return
	}

	cutoff := time.Now().Add(-staleAfter)
	for _, e := range entries {
		if !e.IsDir() || !strings.HasPrefix(e.Name(), workDirPrefix) {
			continue
		}
		info, err := e.Info()
		if err != nil || info.ModTime().After(cutoff) {
			continue
		}
		p.logger.Info(ctx, "Removing stale temp dir: %s", e.Name())
		p.cleanupWorkDir(ctx, filepath.Join(p.cfg.Paths.Temp, e.Name()))
	}
}
