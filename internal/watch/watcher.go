// Package watch re-runs a build whenever a changelog tree changes on disk.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"

	"github.com/unclog-go/unclog/internal/output"
)

var errWatcherClosed = errors.New("watcher closed")

// Options configures a Watcher.
type Options struct {
	// Debounce is how long the tree must stay quiet before rebuilding.
	Debounce time.Duration
	// Ignore lists doublestar patterns matched against changed base names.
	Ignore []string
	// Exclude lists paths whose changes never trigger a rebuild, such as the
	// output file when it lives inside the tree.
	Exclude []string
}

// Watcher watches every directory of a changelog tree. fsnotify is not
// recursive, so directories created later are added as they appear.
type Watcher struct {
	root    string
	opts    Options
	exclude map[string]bool
	watcher *fsnotify.Watcher
	mu      sync.Mutex
	closed  bool
}

// New creates a Watcher for the tree at root.
func New(root string, opts Options) (*Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}

	exclude := make(map[string]bool, len(opts.Exclude))
	for _, p := range opts.Exclude {
		if abs, err := filepath.Abs(p); err == nil {
			exclude[abs] = true
		}
	}

	return &Watcher{
		root:    root,
		opts:    opts,
		exclude: exclude,
		watcher: watcher,
	}, nil
}

// Run calls build once, then again after each burst of changes, until ctx
// is cancelled. Build errors are logged and watching continues, since the
// tree is often briefly invalid while being edited.
func (w *Watcher) Run(ctx context.Context, build func() error) error {
	if err := w.addTree(w.root); err != nil {
		return err
	}
	w.runBuild(build)

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.watcher.Events:
			if !ok {
				return errWatcherClosed
			}
			if !w.relevant(event) {
				continue
			}
			w.track(event)
			output.Debug("Change detected", "path", event.Name, "op", event.Op.String())

			if timer == nil {
				timer = time.NewTimer(w.opts.Debounce)
			} else {
				timer.Reset(w.opts.Debounce)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			w.runBuild(build)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return errWatcherClosed
			}
			return fmt.Errorf("watcher error: %w", err)
		}
	}
}

// Close stops the underlying watcher. It is safe to call more than once.
func (w *Watcher) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}
	w.closed = true
	return w.watcher.Close()
}

func (w *Watcher) runBuild(build func() error) {
	start := time.Now()
	if err := build(); err != nil {
		output.Error("Rebuild failed", "err", err)
		return
	}
	output.Debug("Rebuilt", "duration", time.Since(start))
}

// relevant reports whether event can change the rendered output.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if event.Op == fsnotify.Chmod {
		return false
	}
	if abs, err := filepath.Abs(event.Name); err == nil && w.exclude[abs] {
		return false
	}
	return !w.ignored(filepath.Base(event.Name))
}

func (w *Watcher) ignored(name string) bool {
	if strings.HasPrefix(name, ".") {
		return true
	}
	for _, pattern := range w.opts.Ignore {
		if ok, _ := doublestar.Match(pattern, name); ok {
			return true
		}
	}
	return false
}

// track starts watching directories created inside the tree.
func (w *Watcher) track(event fsnotify.Event) {
	if !event.Has(fsnotify.Create) {
		return
	}
	if err := w.addTree(event.Name); err != nil {
		output.Debug("Not watching new path", "path", event.Name, "err", err)
	}
}

// addTree watches dir and every non-hidden directory below it. Paths that
// are not directories are ignored.
func (w *Watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) && path != w.root {
				return nil
			}
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != w.root && w.ignored(d.Name()) {
			return filepath.SkipDir
		}
		if err := w.watcher.Add(path); err != nil {
			return fmt.Errorf("watching %s: %w", path, err)
		}
		output.Debug("Watching", "dir", path)
		return nil
	})
}
