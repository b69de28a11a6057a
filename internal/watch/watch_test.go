package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

func TestWatcher(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	path := filepath.Join(dir, ".revfix.yaml")
	require.NoError(t, os.WriteFile(path, []byte("steps: 10\n"), 0o644))

	logger, _ := zap.NewProduction()
	changes := make(chan struct{}, 4)
	w, err := New(path, logger, func() { changes <- struct{}{} })
	require.NoError(t, err)
	w.SetDebounce(150 * time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	// unrelated files in the same directory are ignored
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x"), 0o644))

	// several writes in quick succession coalesce into one notification
	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(path, []byte("steps: 20\n"), 0o644))
	}

	select {
	case <-changes:
	case <-time.After(5 * time.Second):
		t.Fatal("no change notification received")
	}

	select {
	case <-changes:
		t.Fatal("writes were not debounced")
	case <-time.After(400 * time.Millisecond):
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestNewMissingDirectory(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "missing", "cfg.yaml"), nil, func() {})
	assert.Error(t, err)
}
