package media

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Probe asks ffprobe for the container duration
func (c *implConverter) Probe(ctx context.Context, path string) (time.Duration, error) {
	args := []string{
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	}

	out, err := c.executor.Execute(ctx, c.cfg.ProbePath, args...)
	if err != nil {
		return 0, fmt.Errorf("ffprobe %s: %w", filepath.Base(path), err)
	}

	seconds, err := strconv.ParseFloat(strings.TrimSpace(out), 64)
	if err != nil || math.IsNaN(seconds) || seconds < 0 {
		return 0, fmt.Errorf("ffprobe %s: unreadable duration %q", filepath.Base(path), strings.TrimSpace(out))
	}

	return time.Duration(seconds * float64(time.Second)), nil
}

// Normalize converts a clip to 16-bit PCM mono WAV, the input format
// whisper.cpp expects.
func (c *implConverter) Normalize(ctx context.Context, src, dst string) error {
	// -vn: drop any video/cover art stream
	// -ar/-ac: resample to mono at the configured rate
	// -c:a pcm_s16le: uncompressed 16-bit little-endian
	// -map_metadata -1: keep output bytes independent of source tags
	args := []string{
		"-hide_banner", "-nostdin",
		"-i", src,
		"-vn",
		"-ar", strconv.Itoa(c.cfg.SampleRate),
		"-ac", "1",
		"-c:a", "pcm_s16le",
		"-map_metadata", "-1",
		"-fflags", "+bitexact",
		"-flags:a", "+bitexact",
		"-y",
		dst,
	}

	if _, err := c.executor.Execute(ctx, c.cfg.BinaryPath, args...); err != nil {
		return fmt.Errorf("ffmpeg normalize %s: %w", filepath.Base(src), err)
	}

	c.logger.Debug(ctx, "Normalized clip: %s -> %s", src, dst)
	return nil
}

// Concat joins clips with the concat demuxer. All clips must share codec
// and sample rate, which Normalize guarantees.
func (c *implConverter) Concat(ctx context.Context, clips []string, dst string) error {
	if len(clips) == 0 {
		return fmt.Errorf("concat: no clips")
	}

	listPath := strings.TrimSuffix(dst, filepath.Ext(dst)) + "_concat.txt"
	var b strings.Builder
	for _, clip := range clips {
		abs, err := filepath.Abs(clip)
		if err != nil {
			return fmt.Errorf("concat: resolve %s: %w", clip, err)
		}
		fmt.Fprintf(&b, "file '%s'\n", strings.ReplaceAll(abs, "'", `'\''`))
	}
	if err := os.WriteFile(listPath, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("concat: write list: %w", err)
	}
	defer os.Remove(listPath)

	args := []string{
		"-hide_banner", "-nostdin",
		"-f", "concat",
		"-safe", "0",
		"-i", listPath,
		"-c", "copy",
		"-map_metadata", "-1",
		"-fflags", "+bitexact",
		"-y",
		dst,
	}

	if _, err := c.executor.Execute(ctx, c.cfg.BinaryPath, args...); err != nil {
		return fmt.Errorf("ffmpeg concat: %w", err)
	}

	c.logger.Debug(ctx, "Concatenated %d clips into %s", len(clips), dst)
	return nil
}
