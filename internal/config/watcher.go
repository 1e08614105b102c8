package config

import (
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// debounceDelay coalesces the write bursts editors produce when
// saving a file.
const debounceDelay = 100 * time.Millisecond

// ReloadHandler receives freshly loaded options after a watched file
// changes.
type ReloadHandler func(Options)

// Watcher follows one options file and reloads it on change.
type Watcher struct {
	path    string
	handler ReloadHandler
	log     *log.Logger

	fsw  *fsnotify.Watcher
	stop chan struct{}
	done chan struct{}
}

// Watch begins following path. The handler runs on the watcher
// goroutine after each successful reload; parse or validation
// failures are logged and the previous options stay in effect.
func Watch(path string, handler ReloadHandler) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	// Watch the directory: editors that save via rename replace the
	// file inode, which a direct watch would lose.
	if err := fsw.Add(filepath.Dir(path)); err != nil {
		fsw.Close()
		return nil, err
	}

	w := &Watcher{
		path:    path,
		handler: handler,
		log:     log.Default(),
		fsw:     fsw,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	go w.run()
	return w, nil
}

// Close stops watching.
func (w *Watcher) Close() error {
	close(w.stop)
	err := w.fsw.Close()
	<-w.done
	return err
}

func (w *Watcher) run() {
	defer close(w.done)

	var pending *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-w.stop:
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != filepath.Clean(w.path) {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if pending == nil {
				pending = time.NewTimer(debounceDelay)
				fire = pending.C
			} else {
				if !pending.Stop() {
					<-pending.C
				}
				pending.Reset(debounceDelay)
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.Error("config watch error", "path", w.path, "err", err)
		case <-fire:
			pending = nil
			fire = nil
			opts, err := Load(w.path)
			if err != nil {
				w.log.Warn("config reload failed, keeping previous options", "path", w.path, "err", err)
				continue
			}
			w.handler(opts)
		}
	}
}
