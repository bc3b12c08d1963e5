package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyentantai21042004/deck-scribe/internal/logger"
)

func TestWatcherHandlesNewPresentations(t *testing.T) {
	dir := t.TempDir()

	var (
		mu      sync.Mutex
		handled []string
	)
	handler := func(ctx context.Context, path string) error {
		mu.Lock()
		handled = append(handled, filepath.Base(path))
		mu.Unlock()
		return nil
	}

	w, err := New(dir, handler, logger.NewNop(), 1)
	require.NoError(t, err)
	w.(*implWatcher).settle = 10 * time.Millisecond
	defer w.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Start(ctx) }()

	for _, name := range []string{"notes.txt", ".hidden.pptx", "~$talk.pptx", "talk.pptx"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644))
	}

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(handled) == 1
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"talk.pptx"}, handled)
}

func TestWatcherHandlesFilesCreatedBeforeStart(t *testing.T) {
	dir := t.TempDir()

	handled := make(chan string, 4)
	handler := func(ctx context.Context, path string) error {
		handled <- filepath.Base(path)
		return nil
	}

	w, err := New(dir, handler, logger.NewNop(), 2)
	require.NoError(t, err)
	w.(*implWatcher).settle = 10 * time.Millisecond
	defer w.Stop()

	// arrives while an initial batch would still be running
	require.NoError(t, os.WriteFile(filepath.Join(dir, "late.pptx"), []byte("x"), 0644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Start(ctx)

	select {
	case name := <-handled:
		assert.Equal(t, "late.pptx", name)
	case <-time.After(5 * time.Second):
		t.Fatal("presentation created before Start was not handled")
	}
}

func TestNewMissingDir(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "missing"), nil, logger.NewNop(), 1)
	assert.Error(t, err)
}

func TestClaimDeduplicates(t *testing.T) {
	w := &implWatcher{inFlight: map[string]bool{}}
	assert.True(t, w.claim("a.pptx"))
	assert.False(t, w.claim("a.pptx"))
	w.release("a.pptx")
	assert.True(t, w.claim("a.pptx"))
}
