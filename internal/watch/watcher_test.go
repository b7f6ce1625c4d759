package watch_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-kronometer/internal/settings"
	"github.com/tartampluch/go-kronometer/internal/watch"
)

func startWatcher(t *testing.T, path string) *watch.Watcher {
	t.Helper()
	w, err := watch.New(path, 50*time.Millisecond)
	require.NoError(t, err)
	require.NoError(t, w.Start())
	t.Cleanup(w.Stop)
	return w
}

func TestWatcher_DetectsWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kronometer.yaml")
	require.NoError(t, os.WriteFile(path, []byte("language: en\n"), 0600))
	w := startWatcher(t, path)

	require.NoError(t, os.WriteFile(path, []byte("language: fr\n"), 0600))

	select {
	case <-w.Changes:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for change event")
	}
}

// TestWatcher_DetectsAtomicSave covers the temp file + rename done by settings.Save.
func TestWatcher_DetectsAtomicSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kronometer.yaml")
	require.NoError(t, settings.Save(path, settings.DefaultSettings()))
	w := startWatcher(t, path)

	s := settings.DefaultSettings()
	s.UseLeapYears = true
	require.NoError(t, s.Save(path))

	select {
	case <-w.Changes:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for change event")
	}
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	w := startWatcher(t, filepath.Join(dir, "kronometer.yaml"))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hello"), 0600))

	select {
	case <-w.Changes:
		t.Error("unexpected change event")
	case <-time.After(300 * time.Millisecond):
	}
}

// TestWatcher_Debounce collapses a burst of writes into a single signal.
func TestWatcher_Debounce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kronometer.yaml")
	w := startWatcher(t, path)

	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(path, []byte{byte('a' + i)}, 0600))
	}

	select {
	case <-w.Changes:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for change event")
	}

	select {
	case <-w.Changes:
		t.Error("burst must produce a single signal")
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcher_MissingDir(t *testing.T) {
	w, err := watch.New(filepath.Join(t.TempDir(), "missing", "kronometer.yaml"), 0)
	require.NoError(t, err)
	assert.Error(t, w.Start())
}
