package transcript

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nguyentantai21042004/deck-scribe/internal/engine"
)

// Suffix is appended to the document base name for every artifact
const Suffix = "_transcription"

// Pair holds the paths of the written text and subtitle files
type Pair struct {
	Text string
	VTT  string
}

// PairPaths returns where the artifacts for base are written in outDir
func PairPaths(outDir, base string) Pair {
	return Pair{
		Text: filepath.Join(outDir, base+Suffix+".txt"),
		VTT:  filepath.Join(outDir, base+Suffix+".vtt"),
	}
}

// RenderText returns the plain transcript followed by a newline
func RenderText(r *engine.Result) []byte {
	return []byte(strings.TrimSpace(r.Text) + "\n")
}

// RenderVTT returns a WebVTT document with one cue per segment. Times are
// truncated to milliseconds and every cue ends strictly after it starts.
func RenderVTT(r *engine.Result) []byte {
	var b strings.Builder
	b.WriteString("WEBVTT\n")
	for _, seg := range r.Segments {
		start, end := cueBounds(seg)
		b.WriteByte('\n')
		fmt.Fprintf(&b, "%s --> %s\n", formatVTTTimestamp(start), formatVTTTimestamp(end))
		if text := cueText(seg.Text); text != "" {
			fmt.Fprintf(&b, "%s\n", text)
		}
	}
	return []byte(b.String())
}

// WritePair writes both artifacts for one document. Both files are staged
// in outDir and renamed into place. On failure the previous pair, if any,
// is left as it was and no new file is left behind.
func WritePair(outDir, base string, r *engine.Result) (Pair, error) {
	pair := PairPaths(outDir, base)

	if err := os.MkdirAll(outDir, 0755); err != nil {
		return Pair{}, fmt.Errorf("creating directory %s: %w", outDir, err)
	}

	txtTmp, err := stage(outDir, RenderText(r))
	if err != nil {
		return Pair{}, err
	}
	defer os.Remove(txtTmp)

	vttTmp, err := stage(outDir, RenderVTT(r))
	if err != nil {
		return Pair{}, err
	}
	defer os.Remove(vttTmp)

	// keep the old transcript until the subtitles are in place
	backup, err := setAside(outDir, pair.Text)
	if err != nil {
		return Pair{}, err
	}

	if err := os.Rename(txtTmp, pair.Text); err != nil {
		return Pair{}, restore(fmt.Errorf("renaming transcript: %w", err), backup, pair.Text)
	}
	if err := os.Rename(vttTmp, pair.VTT); err != nil {
		err = fmt.Errorf("renaming subtitles: %w", err)
		if rmErr := os.Remove(pair.Text); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) {
			err = fmt.Errorf("%w (cleanup: %v)", err, rmErr)
		}
		return Pair{}, restore(err, backup, pair.Text)
	}

	if backup != "" {
		os.Remove(backup)
	}
	return pair, nil
}

// setAside moves an existing file at path to a hidden name in dir and
// returns that name, or "" when there is nothing to move
func setAside(dir, path string) (string, error) {
	if _, err := os.Lstat(path); errors.Is(err, os.ErrNotExist) {
		return "", nil
	}

	reserved, err := stage(dir, nil)
	if err != nil {
		return "", err
	}
	backup := strings.TrimSuffix(reserved, ".tmp") + ".bak"
	if err := os.Rename(reserved, backup); err != nil {
		os.Remove(reserved)
		return "", fmt.Errorf("reserving backup: %w", err)
	}
	if err := os.Rename(path, backup); err != nil {
		os.Remove(backup)
		return "", fmt.Errorf("moving %s aside: %w", filepath.Base(path), err)
	}
	return backup, nil
}

// restore puts a file moved by setAside back at path
func restore(err error, backup, path string) error {
	if backup == "" {
		return err
	}
	if rbErr := os.Rename(backup, path); rbErr != nil {
		return fmt.Errorf("%w (restoring %s: %v)", err, filepath.Base(path), rbErr)
	}
	return err
}

// stage writes data to a hidden temp file in dir and returns its path
func stage(dir string, data []byte) (string, error) {
	tmpFile, err := os.CreateTemp(dir, ".transcript-*.tmp")
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		os.Remove(tmpPath)
		return "", fmt.Errorf("writing transcript: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		tmpFile.Close()
		os.Remove(tmpPath)
		return "", fmt.Errorf("syncing transcript: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("closing transcript: %w", err)
	}
	return tmpPath, nil
}

func cueBounds(seg engine.Segment) (time.Duration, time.Duration) {
	start := seg.Start.Truncate(time.Millisecond)
	end := seg.End.Truncate(time.Millisecond)
	if start < 0 {
		start = 0
	}
	if end <= start {
		end = start + time.Millisecond
	}
	return start, end
}

// cueText drops blank lines (they terminate a cue) and the arrow token
func cueText(text string) string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(strings.ReplaceAll(line, "-->", "->"))
		if line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}

// formatVTTTimestamp formats a duration as HH:MM:SS.mmm (WebVTT format).
func formatVTTTimestamp(d time.Duration) string {
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	ms := int(d.Milliseconds()) % 1000
	return fmt.Sprintf("%02d:%02d:%02d.%03d", h, m, s, ms)
}
