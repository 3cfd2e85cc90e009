// Package watch reports changes to ontology files under a directory tree.
package watch

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"

	"github.com/c360studio/semowl/config"
)

const (
	// eventChannelBuffer is the size of the watch event channel.
	eventChannelBuffer = 100

	defaultDebounce = 300 * time.Millisecond
)

// Operation indicates the type of file change.
type Operation string

// OpCreate, OpModify, and OpDelete enumerate the file change types.
const (
	OpCreate Operation = "create"
	OpModify Operation = "modify"
	OpDelete Operation = "delete"
)

// Event is a debounced change to a matching file.
type Event struct {
	// Path is the slash-separated path relative to the watch root.
	Path string

	// AbsPath is the absolute file path.
	AbsPath string

	Operation Operation
}

// Watcher emits an Event for every matching file whose content changes.
type Watcher struct {
	root     string
	patterns []string
	debounce time.Duration
	watcher  *fsnotify.Watcher
	logger   *slog.Logger

	pendingMu sync.Mutex
	pending   map[string]fsnotify.Op

	hashMu sync.Mutex
	hashes map[string]string

	events  chan Event
	done    chan struct{}
	started atomic.Bool
	dropped atomic.Int64
}

// New creates a watcher for cfg.Root. Patterns are doublestar globs matched
// against slash-separated paths relative to the root.
func New(cfg config.WatchConfig, logger *slog.Logger) (*Watcher, error) {
	if cfg.Root == "" {
		return nil, errors.New("watch root is required")
	}
	for _, p := range cfg.Patterns {
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("invalid watch pattern %q", p)
		}
	}
	root, err := filepath.Abs(cfg.Root)
	if err != nil {
		return nil, fmt.Errorf("resolve watch root: %w", err)
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	debounce := cfg.Debounce
	if debounce <= 0 {
		debounce = defaultDebounce
	}
	return &Watcher{
		root:     root,
		patterns: cfg.Patterns,
		debounce: debounce,
		watcher:  fsw,
		logger:   logger,
		pending:  make(map[string]fsnotify.Op),
		hashes:   make(map[string]string),
		events:   make(chan Event, eventChannelBuffer),
		done:     make(chan struct{}),
	}, nil
}

// Events returns the channel of debounced changes. It is closed when the
// watcher stops.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Match reports whether a slash-separated relative path matches one of the
// watch patterns.
func (w *Watcher) Match(rel string) bool {
	for _, p := range w.patterns {
		if ok, _ := doublestar.Match(p, rel); ok {
			return true
		}
	}
	return false
}

// Files returns the matching files that currently exist, sorted, and
// records their content hashes so unchanged files are not reported later.
func (w *Watcher) Files() ([]string, error) {
	fsys := os.DirFS(w.root)
	seen := make(map[string]bool)
	for _, p := range w.patterns {
		matches, err := doublestar.Glob(fsys, p, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("glob %s: %w", p, err)
		}
		for _, m := range matches {
			if hidden(m) {
				continue
			}
			seen[m] = true
		}
	}
	files := make([]string, 0, len(seen))
	for rel := range seen {
		abs := filepath.Join(w.root, filepath.FromSlash(rel))
		if content, err := os.ReadFile(abs); err == nil {
			w.setHash(rel, contentHash(content))
		}
		files = append(files, abs)
	}
	sort.Strings(files)
	return files, nil
}

// Start adds watches to the root and its subdirectories and begins
// processing events until ctx is done or Stop is called.
func (w *Watcher) Start(ctx context.Context) error {
	if err := w.addWatchesRecursive(w.root); err != nil {
		return err
	}
	w.started.Store(true)
	go w.processEvents(ctx)

	w.logger.Info("Ontology watcher started",
		"root", w.root,
		"debounce", w.debounce,
		"patterns", w.patterns)
	return nil
}

// Stop closes the watcher and waits for event processing to finish.
func (w *Watcher) Stop() error {
	err := w.watcher.Close()
	if w.started.Load() {
		<-w.done
	}
	return err
}

// DroppedEvents returns the number of events dropped due to channel overflow.
func (w *Watcher) DroppedEvents() int64 {
	return w.dropped.Load()
}

func hidden(rel string) bool {
	for _, part := range strings.Split(rel, "/") {
		if strings.HasPrefix(part, ".") && part != "." {
			return true
		}
	}
	return false
}

func (w *Watcher) addWatchesRecursive(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if err := w.watcher.Add(path); err != nil {
			w.logger.Warn("Failed to watch directory",
				"path", path,
				"error", err)
		}
		return nil
	})
}

func (w *Watcher) processEvents(ctx context.Context) {
	defer close(w.done)
	defer close(w.events)
	ticker := time.NewTicker(w.debounce)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleFSEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("Watcher error", "error", err)

		case <-ticker.C:
			w.flushPending(ctx)
		}
	}
}

func (w *Watcher) relative(path string) (string, bool) {
	rel, err := filepath.Rel(w.root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return "", false
	}
	return filepath.ToSlash(rel), true
}

func (w *Watcher) handleFSEvent(event fsnotify.Event) {
	rel, ok := w.relative(event.Name)
	if !ok || hidden(rel) {
		return
	}
	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.addWatchesRecursive(event.Name); err != nil {
				w.logger.Warn("Failed to watch new directory",
					"path", rel,
					"error", err)
			}
			return
		}
	}
	if !w.Match(rel) {
		return
	}

	w.pendingMu.Lock()
	w.pending[event.Name] |= event.Op
	w.pendingMu.Unlock()

	w.logger.Debug("Ontology change detected",
		"path", rel,
		"op", event.Op.String())
}

func (w *Watcher) flushPending(ctx context.Context) {
	w.pendingMu.Lock()
	if len(w.pending) == 0 {
		w.pendingMu.Unlock()
		return
	}
	toProcess := w.pending
	w.pending = make(map[string]fsnotify.Op)
	w.pendingMu.Unlock()

	paths := make([]string, 0, len(toProcess))
	for path := range toProcess {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	for _, path := range paths {
		if ctx.Err() != nil {
			return
		}
		rel, _ := w.relative(path)
		event := Event{Path: rel, AbsPath: path}

		content, err := os.ReadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			if w.forget(rel) {
				event.Operation = OpDelete
				w.send(event)
			}
			continue
		}
		if err != nil {
			w.logger.Warn("Failed to read changed file",
				"path", rel,
				"error", err)
			continue
		}

		hash := contentHash(content)
		old, had := w.swapHash(rel, hash)
		if had && old == hash {
			continue
		}
		if had {
			event.Operation = OpModify
		} else {
			event.Operation = OpCreate
		}
		w.send(event)
	}
}

func (w *Watcher) send(event Event) {
	select {
	case w.events <- event:
		w.logger.Debug("Sent watch event",
			"path", event.Path,
			"op", event.Operation)
	default:
		dropped := w.dropped.Add(1)
		w.logger.Warn("Event channel full, dropping event",
			"path", event.Path,
			"total_dropped", dropped)
	}
}

func contentHash(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}

func (w *Watcher) setHash(rel, hash string) {
	w.hashMu.Lock()
	defer w.hashMu.Unlock()
	w.hashes[rel] = hash
}

func (w *Watcher) swapHash(rel, hash string) (string, bool) {
	w.hashMu.Lock()
	defer w.hashMu.Unlock()
	old, ok := w.hashes[rel]
	w.hashes[rel] = hash
	return old, ok
}

func (w *Watcher) forget(rel string) bool {
	w.hashMu.Lock()
	defer w.hashMu.Unlock()
	_, ok := w.hashes[rel]
	delete(w.hashes, rel)
	return ok
}
