package controller

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounce coalesces the burst of write events a compiler produces while
// replacing the artifact.
const debounce = 200 * time.Millisecond

// Watch reports changes to the artifact at path, one value per rebuild.
// The channel is closed when the context is cancelled.
// Uses fsnotify for efficient file watching with polling fallback.
func Watch(ctx context.Context, path string) <-chan struct{} {
	ch := make(chan struct{}, 1)

	go func() {
		defer close(ch)

		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			watchPolling(ctx, ch, path)
			return
		}
		defer watcher.Close()

		// Watch the directory (more reliable than watching the file
		// directly; build tools replace files by rename).
		if err := watcher.Add(filepath.Dir(path)); err != nil {
			watcher.Close()
			watchPolling(ctx, ch, path)
			return
		}

		watchEvents(ctx, ch, watcher, path)
	}()

	return ch
}

func watchEvents(ctx context.Context, ch chan<- struct{}, watcher *fsnotify.Watcher, path string) {
	baseName := filepath.Base(path)
	var last time.Time

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != baseName {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if time.Since(last) < debounce {
				continue
			}
			last = time.Now()
			notify(ch)

		case _, ok := <-watcher.Errors:
			if !ok {
				return
			}
			// Usually recoverable, keep watching.
		}
	}
}

// watchPolling compares modification times when fsnotify isn't available.
func watchPolling(ctx context.Context, ch chan<- struct{}, path string) {
	var lastMod time.Time
	if info, err := os.Stat(path); err == nil {
		lastMod = info.ModTime()
	}

	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case <-ticker.C:
			info, err := os.Stat(path)
			if err != nil {
				continue
			}
			if info.ModTime().After(lastMod) {
				lastMod = info.ModTime()
				notify(ch)
			}
		}
	}
}

// notify delivers without blocking; a pending change is already enough.
func notify(ch chan<- struct{}) {
	select {
	case ch <- struct{}{}:
	default:
	}
}
