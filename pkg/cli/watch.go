package cli

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/githubnext/pkgvet/pkg/logger"
)

var watchLog = logger.New("cli:watch")

// DefaultWatchDebounce is how long the watcher waits for a burst of changes
// to settle before re-validating.
const DefaultWatchDebounce = 300 * time.Millisecond

// PackageWatcher reports changes below a package root. Every directory is
// watched, except hidden and excluded ones.
type PackageWatcher struct {
	root     string
	debounce time.Duration
	watcher  *fsnotify.Watcher

	// exclude holds absolute directories whose changes are never reported.
	exclude []string
}

// NewPackageWatcher starts watching root and all of its subdirectories,
// skipping the exclude directories.
func NewPackageWatcher(root string, debounce time.Duration, exclude ...string) (*PackageWatcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = DefaultWatchDebounce
	}

	w := &PackageWatcher{root: root, debounce: debounce, watcher: fw}
	for _, dir := range exclude {
		if dir == "" {
			continue
		}
		abs, err := filepath.Abs(dir)
		if err != nil {
			fw.Close()
			return nil, err
		}
		w.exclude = append(w.exclude, abs)
	}
	if err := w.addRecursive(root); err != nil {
		fw.Close()
		return nil, err
	}
	return w, nil
}

// Close stops the watcher.
func (w *PackageWatcher) Close() error {
	return w.watcher.Close()
}

// Run calls onChange with the sorted changed paths after each burst of
// changes, until ctx is done or the watcher is closed.
func (w *PackageWatcher) Run(ctx context.Context, onChange func(paths []string)) error {
	pending := make(map[string]bool)
	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if w.shouldIgnore(event.Name) {
				continue
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.addRecursive(event.Name); err != nil {
						watchLog.Printf("Could not watch %s: %v", event.Name, err)
					}
				}
			}
			watchLog.Printf("Change: %s %s", event.Op, event.Name)
			pending[event.Name] = true
			timer.Reset(w.debounce)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			watchLog.Printf("Watcher error: %v", err)
		case <-timer.C:
			if len(pending) == 0 {
				continue
			}
			paths := make([]string, 0, len(pending))
			for p := range pending {
				paths = append(paths, p)
			}
			slices.Sort(paths)
			clear(pending)
			onChange(paths)
		}
	}
}

func (w *PackageWatcher) addRecursive(dir string) error {
	return filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if p != w.root && w.shouldIgnore(p) {
			return filepath.SkipDir
		}
		return w.watcher.Add(p)
	})
}

// shouldIgnore skips hidden files and folders, editor backup files and
// anything below an excluded directory.
func (w *PackageWatcher) shouldIgnore(path string) bool {
	if w.excluded(path) {
		return true
	}
	rel, err := filepath.Rel(w.root, path)
	if err != nil || rel == "." {
		return false
	}
	for _, part := range strings.Split(filepath.ToSlash(rel), "/") {
		if strings.HasPrefix(part, ".") {
			return true
		}
	}
	base := filepath.Base(path)
	return strings.HasSuffix(base, ".swp") || (strings.HasSuffix(base, "~") && base != "Samples~")
}

func (w *PackageWatcher) excluded(path string) bool {
	if len(w.exclude) == 0 {
		return false
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	for _, dir := range w.exclude {
		rel, err := filepath.Rel(dir, abs)
		if err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return true
		}
	}
	return false
}
