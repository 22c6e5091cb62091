// Package watch implements a platform-abstracted file-modification notifier
// and the watch/rebuild loop that drives it.
package watch

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/forgebuild/forge/internal/core"
	"github.com/forgebuild/forge/internal/logging"
)

var log = logging.Log

// debounceInterval is the delay applied after detecting a change, before
// acting on it, because some networked/virtualized filesystems deliver the
// notification before the writer's data is actually visible.
const debounceInterval = time.Millisecond

// watchGranularity selects whether AddFile registers individual files
// (inotify/kqueue) or accumulates paths for a single directory watch rooted
// at their deepest common ancestor (Windows). New picks it from runtime.GOOS;
// it is kept in a Watcher field so in-package tests can set either mode.
type watchGranularity int

const (
	// perFile watches each registered file directly; used on Linux/Darwin.
	perFile watchGranularity = iota
	// perDirectory accumulates paths and installs one recursive watch at
	// the deepest common ancestor on first Wait(); used on Windows.
	perDirectory
)

// Watcher encapsulates a platform-appropriate file-change notification channel.
type Watcher struct {
	granularity watchGranularity
	fsw         *fsnotify.Watcher

	mu       sync.Mutex
	pending  []string // accumulated paths awaiting the first Wait() under perDirectory
	watched  map[string]bool
	rootedAt string
	changed  map[string]bool // files reported modified since the last ReadChanges
}

// New constructs a Watcher appropriate for the running platform.
func New() (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, &core.WatcherError{Path: "", Err: err}
	}
	granularity := perFile
	if runtime.GOOS == "windows" {
		granularity = perDirectory
	}
	return &Watcher{
		granularity: granularity,
		fsw:         fsw,
		watched:     map[string]bool{},
		changed:     map[string]bool{},
	}, nil
}

// Close releases the underlying notification file descriptor/handle.
func (w *Watcher) Close() error { return w.fsw.Close() }

// AddFile registers path for modification notifications.
func (w *Watcher) AddFile(path string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.granularity == perDirectory {
		w.pending = append(w.pending, path)
		return nil
	}
	if w.watched[path] {
		return nil
	}
	if err := w.fsw.Add(path); err != nil {
		return &core.WatcherError{Path: path, Err: err}
	}
	w.watched[path] = true
	return nil
}

// installDirectoryWatch lazily sets up the single recursive directory watch
// rooted at the deepest common ancestor of every path registered so far.
// Must be called with w.mu held.
func (w *Watcher) installDirectoryWatch() error {
	if w.granularity != perDirectory || w.rootedAt != "" || len(w.pending) == 0 {
		return nil
	}
	root := deepestCommonAncestor(w.pending)
	if err := addRecursive(w.fsw, root); err != nil {
		return &core.WatcherError{Path: root, Err: err}
	}
	w.rootedAt = root
	for _, p := range w.pending {
		w.watched[p] = true
	}
	return nil
}

// deepestCommonAncestor returns the deepest directory that is an ancestor of
// (or equal to the directory of) every path given.
func deepestCommonAncestor(paths []string) string {
	if len(paths) == 0 {
		return "."
	}
	common := filepath.Dir(paths[0])
	for _, p := range paths[1:] {
		common = commonPrefixDir(common, filepath.Dir(p))
	}
	return common
}

func commonPrefixDir(a, b string) string {
	aParts := strings.Split(filepath.ToSlash(a), "/")
	bParts := strings.Split(filepath.ToSlash(b), "/")
	n := len(aParts)
	if len(bParts) < n {
		n = len(bParts)
	}
	i := 0
	for i < n && aParts[i] == bParts[i] {
		i++
	}
	if i == 0 {
		return string(filepath.Separator)
	}
	// strings.Join keeps the empty leading segment of an absolute path, which
	// filepath.Join would drop.
	joined := strings.Join(aParts[:i], "/")
	if joined == "" {
		return string(filepath.Separator)
	}
	return filepath.FromSlash(joined)
}

// addRecursive installs a watch on root and every subdirectory beneath it.
func addRecursive(fsw *fsnotify.Watcher, root string) error {
	return filepath.Walk(root, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return fsw.Add(p)
		}
		return nil
	})
}

// Wait blocks until any watched file is reported modified.
func (w *Watcher) Wait(ctx context.Context) error {
	w.mu.Lock()
	err := w.installDirectoryWatch()
	w.mu.Unlock()
	if err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if w.isRelevant(event) {
				w.recordChange(event.Name)
				return nil
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			log.Error("Error watching files: %s", err)
		}
	}
}

// WaitChild blocks until either a watched file is modified or the child
// process terminates, whichever happens first. Both the event subscription
// and the child-exit goroutine are armed before either is sampled, closing
// a lost-wakeup race: a naive "check then block" could miss a child that
// exits between the check and the blocking call.
func (w *Watcher) WaitChild(ctx context.Context, done <-chan struct{}) (changed bool, err error) {
	w.mu.Lock()
	installErr := w.installDirectoryWatch()
	w.mu.Unlock()
	if installErr != nil {
		return false, installErr
	}
	for {
		select {
		case <-ctx.Done():
			return false, ctx.Err()
		case <-done:
			return false, nil
		case event, ok := <-w.fsw.Events:
			if !ok {
				return false, nil
			}
			if w.isRelevant(event) {
				w.recordChange(event.Name)
				return true, nil
			}
		case werr, ok := <-w.fsw.Errors:
			if !ok {
				return false, nil
			}
			log.Error("Error watching files: %s", werr)
		}
	}
}

// isRelevant filters events down to content modifications on a path we
// actually registered; creation/deletion need not be reported.
func (w *Watcher) isRelevant(event fsnotify.Event) bool {
	if event.Op&fsnotify.Write == 0 {
		return false
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.watched[event.Name] || w.granularity == perDirectory
}

func (w *Watcher) recordChange(name string) {
	w.mu.Lock()
	w.changed[name] = true
	w.mu.Unlock()
}

// ReadChanges drains and returns the set of paths reported modified since
// the last call, without blocking.
func (w *Watcher) ReadChanges() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]string, 0, len(w.changed))
	for p := range w.changed {
		out = append(out, p)
	}
	w.changed = map[string]bool{}
	return out
}

// Debounce sleeps the race-discipline interval after a change is detected,
// before the caller acts on it.
func Debounce() { time.Sleep(debounceInterval) }
