package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/semowl/config"
)

func newWatcher(t *testing.T, root string) *Watcher {
	t.Helper()
	w, err := New(config.WatchConfig{
		Root:     root,
		Patterns: []string{"**/*.owx", "**/*.owl"},
		Debounce: 50 * time.Millisecond,
	}, nil)
	require.NoError(t, err)
	return w
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	dir := filepath.Dir(path)
	require.NoError(t, os.MkdirAll(dir, 0755))
	// Rename into place so the watcher never sees a half-written file.
	tmp := filepath.Join(dir, "."+filepath.Base(path)+".tmp")
	require.NoError(t, os.WriteFile(tmp, []byte(content), 0644))
	require.NoError(t, os.Rename(tmp, path))
}

func waitEvent(t *testing.T, w *Watcher) Event {
	t.Helper()
	select {
	case ev, ok := <-w.Events():
		require.True(t, ok, "events channel closed")
		return ev
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for watch event")
		return Event{}
	}
}

func TestNewValidatesConfig(t *testing.T) {
	_, err := New(config.WatchConfig{}, nil)
	assert.Error(t, err)

	_, err = New(config.WatchConfig{Root: t.TempDir(), Patterns: []string{"[unclosed"}}, nil)
	assert.Error(t, err)
}

func TestMatch(t *testing.T) {
	w := newWatcher(t, t.TempDir())
	defer w.Stop()

	tests := []struct {
		path string
		want bool
	}{
		{"zoo.owx", true},
		{"nested/deep/zoo.owl", true},
		{"zoo.ttl", false},
		{"README.md", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, w.Match(tt.path), tt.path)
	}
}

func TestFilesSkipsHiddenDirectories(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "b.owx"), "<Ontology/>")
	writeFile(t, filepath.Join(root, "sub", "a.owl"), "<Ontology/>")
	writeFile(t, filepath.Join(root, ".git", "c.owx"), "<Ontology/>")
	writeFile(t, filepath.Join(root, "notes.txt"), "x")

	w := newWatcher(t, root)
	defer w.Stop()

	files, err := w.Files()
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(w.root, "b.owx"),
		filepath.Join(w.root, "sub", "a.owl"),
	}, files)
}

func TestWatcherReportsCreateModifyDelete(t *testing.T) {
	root := t.TempDir()
	w := newWatcher(t, root)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx))
	defer w.Stop()

	path := filepath.Join(root, "zoo.owx")
	writeFile(t, path, "<Ontology/>")
	ev := waitEvent(t, w)
	assert.Equal(t, "zoo.owx", ev.Path)
	assert.Equal(t, OpCreate, ev.Operation)

	writeFile(t, path, "<Ontology ontologyIRI=\"http://example.org/zoo\"/>")
	ev = waitEvent(t, w)
	assert.Equal(t, OpModify, ev.Operation)

	require.NoError(t, os.Remove(path))
	ev = waitEvent(t, w)
	assert.Equal(t, OpDelete, ev.Operation)
}

func TestWatcherIgnoresUnchangedContent(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "zoo.owx")
	writeFile(t, path, "<Ontology/>")

	w := newWatcher(t, root)
	_, err := w.Files()
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx))
	defer w.Stop()

	writeFile(t, path, "<Ontology/>")
	writeFile(t, filepath.Join(root, "other.owl"), "<Ontology/>")

	ev := waitEvent(t, w)
	assert.Equal(t, "other.owl", ev.Path)
}

func TestWatcherFollowsNewDirectories(t *testing.T) {
	root := t.TempDir()
	w := newWatcher(t, root)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx))
	defer w.Stop()

	dir := filepath.Join(root, "models")
	require.NoError(t, os.Mkdir(dir, 0755))
	time.Sleep(100 * time.Millisecond)
	writeFile(t, filepath.Join(dir, "zoo.owl"), "<Ontology/>")

	ev := waitEvent(t, w)
	assert.Equal(t, "models/zoo.owl", ev.Path)
}

func TestStopClosesEvents(t *testing.T) {
	w := newWatcher(t, t.TempDir())
	require.NoError(t, w.Start(context.Background()))
	require.NoError(t, w.Stop())

	_, ok := <-w.Events()
	assert.False(t, ok)
}
