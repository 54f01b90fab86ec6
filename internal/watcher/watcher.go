// Package watcher reports changes to the scraped prices file so the catalog
// can be reloaded while the tool runs.
package watcher

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

type Watcher struct {
	path         string
	mu           sync.Mutex
	lastMod      time.Time
	lastSize     int64
	pollInterval time.Duration
	onChange     func()
	stop         chan struct{}
	wg           sync.WaitGroup
}

func New(path string, pollInterval time.Duration, onChange func()) *Watcher {
	return &Watcher{
		path:         path,
		pollInterval: pollInterval,
		onChange:     onChange,
		stop:         make(chan struct{}),
	}
}

// Start begins watching with fsnotify + polling fallback. The file's parent
// directory is watched, not the file itself, because scrapers and editors
// replace the file via rename.
func (w *Watcher) Start() error {
	if info, err := os.Stat(w.path); err == nil {
		w.mu.Lock()
		w.lastMod = info.ModTime()
		w.lastSize = info.Size()
		w.mu.Unlock()
	}

	fsw, err := fsnotify.NewWatcher()
	if err == nil {
		_ = fsw.Add(filepath.Dir(w.path))

		w.wg.Add(1)
		go func() {
			defer w.wg.Done()
			for {
				select {
				case event, ok := <-fsw.Events:
					if !ok {
						return
					}
					if filepath.Clean(event.Name) == filepath.Clean(w.path) &&
						event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
						w.check()
					}
				case <-w.stop:
					fsw.Close()
					return
				}
			}
		}()
	}

	// Polling fallback (always runs as safety net)
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		ticker := time.NewTicker(w.pollInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				w.check()
			case <-w.stop:
				return
			}
		}
	}()

	return nil
}

// Stop signals goroutines to exit and waits for them to finish.
func (w *Watcher) Stop() {
	close(w.stop)
	w.wg.Wait()
}

func (w *Watcher) check() {
	info, err := os.Stat(w.path)
	if err != nil {
		return
	}

	w.mu.Lock()
	changed := info.ModTime() != w.lastMod || info.Size() != w.lastSize
	if changed {
		w.lastMod = info.ModTime()
		w.lastSize = info.Size()
	}
	w.mu.Unlock()

	if changed && w.onChange != nil {
		w.onChange()
	}
}
