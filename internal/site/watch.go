package site

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// BuildFunc receives the result of each rebuild in watch mode.
type BuildFunc func(stats *Stats, err error)

// watchRoots returns the source directories watched for changes. Experiments
// are left out: their prepack step rewrites index.html in place, which would
// retrigger the build.
func (g *Generator) watchRoots() []string {
	return []string{
		g.cfg.Path(g.cfg.PostsDir),
		g.cfg.Path(g.cfg.LayoutsDir),
		g.cfg.Path(g.cfg.AssetsDir),
	}
}

// addRecursive watches dir and every directory below it.
func addRecursive(w *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.Add(path)
		}
		return nil
	})
}

// Watch rebuilds the site whenever a watched source file changes, coalescing
// bursts of events within the debounce interval. It blocks until ctx is
// cancelled.
func (g *Generator) Watch(ctx context.Context, onBuild BuildFunc) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer w.Close()

	for _, root := range g.watchRoots() {
		if _, err := os.Stat(root); os.IsNotExist(err) {
			continue
		}
		if err := addRecursive(w, root); err != nil {
			return fmt.Errorf("watching %s: %w", root, err)
		}
	}

	outDir, err := filepath.Abs(g.cfg.Path(g.cfg.OutputDir))
	if err != nil {
		return err
	}

	debounce := g.cfg.Debounce()
	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if isUnder(ev.Name, outDir) {
				continue
			}
			if ev.Has(fsnotify.Create) {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					_ = addRecursive(w, ev.Name)
				}
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
				continue
			}
			fmt.Fprintf(g.Log, "File updated %s. Rebuilding...\n", ev.Name)
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			fire = timer.C

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(g.Log, "Watch error: %v\n", err)

		case <-fire:
			fire = nil
			stats, err := g.Build()
			onBuild(stats, err)
		}
	}
}

// isUnder reports whether path lies inside dir.
func isUnder(path, dir string) bool {
	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	rel, err := filepath.Rel(dir, abs)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
