package pptx

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyentantai21042004/deck-scribe/internal/testutil"
)

var exts = []string{".m4a", ".mp3", ".wav"}

func names(streams []AudioStream) []string {
	out := make([]string, len(streams))
	for i, s := range streams {
		out[i] = s.Name
	}
	return out
}

func openDeck(t *testing.T, d testutil.Deck) *Archive {
	t.Helper()
	path := filepath.Join(t.TempDir(), "deck.pptx")
	testutil.WriteDeck(t, path, d)

	a, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { a.Close() })
	return a
}

func TestAudioStreamsSlideOrder(t *testing.T) {
	a := openDeck(t, testutil.Deck{
		Slides: [][]string{
			{"media10.m4a"},
			{},
			{"media2.mp3", "image1.png"},
			{"media10.m4a", "media3.wav"},
		},
		Loose: []string{"media11.m4a", "media1.m4a", "clip.mp4"},
	})

	streams := a.AudioStreams(exts)
	assert.Equal(t, []string{
		"ppt/media/media10.m4a",
		"ppt/media/media2.mp3",
		"ppt/media/media3.wav",
		"ppt/media/media1.m4a",
		"ppt/media/media11.m4a",
	}, names(streams))

	assert.Equal(t, 1, streams[0].Slide)
	assert.Equal(t, 3, streams[1].Slide)
	assert.Equal(t, 4, streams[2].Slide)
	assert.Equal(t, 0, streams[3].Slide)
}

func TestAudioStreamsPresentationOrder(t *testing.T) {
	// slide part 2 is shown first
	a := openDeck(t, testutil.Deck{
		Slides: [][]string{{"a.m4a"}, {"b.m4a"}},
		Order:  []int{2, 1},
	})

	assert.Equal(t, []string{"ppt/media/b.m4a", "ppt/media/a.m4a"}, names(a.AudioStreams(exts)))
}

func TestAudioStreamsNone(t *testing.T) {
	a := openDeck(t, testutil.Deck{Slides: [][]string{{"image1.png"}, {}}})
	assert.Empty(t, a.AudioStreams(exts))
}

func TestAudioStreamsWithoutSlideStructure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bare.pptx")
	testutil.WriteDeck(t, path, testutil.Deck{Loose: []string{"media12.m4a", "media9.m4a"}})

	a, err := Open(path)
	require.NoError(t, err)
	defer a.Close()

	assert.Equal(t, []string{"ppt/media/media9.m4a", "ppt/media/media12.m4a"}, names(a.AudioStreams(exts)))
}

func TestOpenNotArchive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corrupt.pptx")
	testutil.WriteFile(t, path, "definitely not a zip")

	_, err := Open(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotArchive))
}

func TestExtract(t *testing.T) {
	a := openDeck(t, testutil.Deck{Slides: [][]string{{"media1.m4a"}}})

	dst := filepath.Join(t.TempDir(), "clip.m4a")
	require.NoError(t, a.Extract("ppt/media/media1.m4a", dst))

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "audio:media1.m4a", string(data))

	assert.Error(t, a.Extract("ppt/media/missing.m4a", dst))
}

func TestNaturalLess(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"media2.m4a", "media10.m4a", true},
		{"media10.m4a", "media2.m4a", false},
		{"a.m4a", "b.m4a", true},
		{"media1", "media1.m4a", true},
		{"media1.m4a", "media1.m4a", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, naturalLess(tt.a, tt.b), "%s < %s", tt.a, tt.b)
	}
}

func TestResolveTarget(t *testing.T) {
	assert.Equal(t, "ppt/media/a.m4a", resolveTarget("ppt/slides/slide1.xml", "../media/a.m4a"))
	assert.Equal(t, "ppt/slides/slide1.xml", resolveTarget("ppt/presentation.xml", "slides/slide1.xml"))
	assert.Equal(t, "ppt/media/a.m4a", resolveTarget("ppt/slides/slide1.xml", "/ppt/media/a.m4a"))
	assert.Equal(t, "ppt/slides/_rels/slide3.xml.rels", relsPath("ppt/slides/slide3.xml"))
}
