package transcript

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyentantai21042004/deck-scribe/internal/engine"
)

func sampleResult() *engine.Result {
	r := &engine.Result{
		Segments: []engine.Segment{
			{Start: 0, End: 5*time.Second + 230*time.Millisecond, Text: "Welcome to the quarterly review."},
			{Start: 5*time.Second + 500*time.Millisecond, End: 10*time.Second + 100*time.Millisecond, Text: "Let's look at the numbers."},
			{Start: time.Hour + 2*time.Minute + 3*time.Second + 4*time.Millisecond, End: time.Hour + 2*time.Minute + 3*time.Second + 4*time.Millisecond, Text: "Same start and end."},
		},
	}
	r.Normalize()
	return r
}

// cueRanges parses every "start --> end" line of a VTT document
func cueRanges(t *testing.T, vtt string) [][2]time.Duration {
	t.Helper()
	var out [][2]time.Duration
	for _, line := range strings.Split(vtt, "\n") {
		if !strings.Contains(line, " --> ") {
			continue
		}
		parts := strings.Split(line, " --> ")
		require.Len(t, parts, 2)
		out = append(out, [2]time.Duration{parseStamp(t, parts[0]), parseStamp(t, parts[1])})
	}
	return out
}

func parseStamp(t *testing.T, s string) time.Duration {
	t.Helper()
	var h, m, sec, ms int
	n, err := fmt.Sscanf(s, "%d:%d:%d.%d", &h, &m, &sec, &ms)
	require.NoError(t, err)
	require.Equal(t, 4, n)
	return time.Duration(h)*time.Hour + time.Duration(m)*time.Minute +
		time.Duration(sec)*time.Second + time.Duration(ms)*time.Millisecond
}

func TestRenderVTT(t *testing.T) {
	got := string(RenderVTT(sampleResult()))

	want := "WEBVTT\n" +
		"\n00:00:00.000 --> 00:00:05.230\nWelcome to the quarterly review.\n" +
		"\n00:00:05.500 --> 00:00:10.100\nLet's look at the numbers.\n" +
		"\n01:02:03.004 --> 01:02:03.005\nSame start and end.\n"
	assert.Equal(t, want, got)
}

func TestRenderVTTCueCountAndOrdering(t *testing.T) {
	r := &engine.Result{}
	for i := 0; i < 25; i++ {
		start := time.Duration(i) * 1500 * time.Millisecond
		// every third segment has a degenerate or inverted range
		end := start + time.Second
		if i%3 == 0 {
			end = start - 10*time.Millisecond
		}
		r.Segments = append(r.Segments, engine.Segment{Start: start, End: end, Text: "x"})
	}

	ranges := cueRanges(t, string(RenderVTT(r)))
	require.Len(t, ranges, len(r.Segments))
	for i, rg := range ranges {
		assert.Less(t, rg[0], rg[1], "cue %d", i)
	}
}

func TestRenderVTTSubMillisecond(t *testing.T) {
	r := &engine.Result{Segments: []engine.Segment{{Start: time.Second + 100*time.Microsecond, End: time.Second + 400*time.Microsecond, Text: "a"}}}
	ranges := cueRanges(t, string(RenderVTT(r)))
	require.Len(t, ranges, 1)
	assert.Less(t, ranges[0][0], ranges[0][1])
}

func TestCueText(t *testing.T) {
	assert.Equal(t, "first\nsecond", cueText("first\n\n  second  \n"))
	assert.Equal(t, "a -> b", cueText("a --> b"))
	assert.Equal(t, "", cueText("  \n "))
}

func TestRenderText(t *testing.T) {
	got := string(RenderText(sampleResult()))
	assert.Equal(t, "Welcome to the quarterly review. Let's look at the numbers. Same start and end.\n", got)
}

func TestWritePair(t *testing.T) {
	out := filepath.Join(t.TempDir(), "nested", "output")

	pair, err := WritePair(out, "talk", sampleResult())
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(out, "talk_transcription.txt"), pair.Text)
	assert.Equal(t, filepath.Join(out, "talk_transcription.vtt"), pair.VTT)

	entries, err := os.ReadDir(out)
	require.NoError(t, err)
	require.Len(t, entries, 2, "no staging files left behind")

	vtt, err := os.ReadFile(pair.VTT)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(vtt), "WEBVTT\n"))
}

func TestWritePairIdempotent(t *testing.T) {
	out := t.TempDir()

	first, err := WritePair(out, "talk", sampleResult())
	require.NoError(t, err)
	txt1, _ := os.ReadFile(first.Text)
	vtt1, _ := os.ReadFile(first.VTT)

	second, err := WritePair(out, "talk", sampleResult())
	require.NoError(t, err)
	txt2, _ := os.ReadFile(second.Text)
	vtt2, _ := os.ReadFile(second.VTT)

	assert.Equal(t, txt1, txt2)
	assert.Equal(t, vtt1, vtt2)
}

func TestWritePairUnwritable(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "output")
	require.NoError(t, os.WriteFile(blocker, []byte("a file, not a dir"), 0644))

	_, err := WritePair(blocker, "talk", sampleResult())
	require.Error(t, err)

	_, statErr := os.Stat(filepath.Join(dir, "talk_transcription.txt"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestWritePairVTTRenameFails(t *testing.T) {
	out := t.TempDir()
	// a directory squatting on the .vtt name makes the second rename fail
	require.NoError(t, os.Mkdir(filepath.Join(out, "talk_transcription.vtt"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(out, "talk_transcription.vtt", "keep"), []byte("x"), 0644))

	_, err := WritePair(out, "talk", sampleResult())
	require.Error(t, err)

	_, statErr := os.Stat(filepath.Join(out, "talk_transcription.txt"))
	assert.True(t, os.IsNotExist(statErr), "text file must not be left without its subtitles")
}

func TestWritePairFailedRewriteKeepsPreviousTranscript(t *testing.T) {
	out := t.TempDir()
	first, err := WritePair(out, "talk", sampleResult())
	require.NoError(t, err)
	previous, err := os.ReadFile(first.Text)
	require.NoError(t, err)

	require.NoError(t, os.Remove(first.VTT))
	require.NoError(t, os.Mkdir(first.VTT, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(first.VTT, "keep"), []byte("x"), 0644))

	changed := &engine.Result{Segments: []engine.Segment{{Start: 0, End: time.Second, Text: "Rewritten."}}}
	changed.Normalize()
	_, err = WritePair(out, "talk", changed)
	require.Error(t, err)

	got, err := os.ReadFile(first.Text)
	require.NoError(t, err, "previous transcript must survive a failed rewrite")
	assert.Equal(t, string(previous), string(got))

	entries, err := os.ReadDir(out)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.ElementsMatch(t, []string{"talk_transcription.txt", "talk_transcription.vtt"}, names)
}

func TestWriteDocx(t *testing.T) {
	path := DocxPath(t.TempDir(), "talk")
	require.NoError(t, WriteDocx(path, "talk", sampleResult()))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
	assert.True(t, strings.HasSuffix(path, "talk_transcription.docx"))
}
