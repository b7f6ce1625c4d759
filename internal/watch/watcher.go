// Package watch signals changes to the settings file.
package watch

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/tartampluch/go-kronometer/internal/config"
)

// Watcher monitors a single file through its parent directory, so atomic
// temp+rename saves are seen as well as in-place writes.
type Watcher struct {
	Path    string
	Changes <-chan struct{} // Read-only external channel

	changes  chan struct{}
	done     chan struct{}
	debounce time.Duration
	watcher  *fsnotify.Watcher
}

// New creates a watcher for path. Bursts of events closer than debounce
// collapse into one signal.
func New(path string, debounce time.Duration) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrWatcherInit, err)
	}
	if debounce <= 0 {
		debounce = config.WatchDebounce
	}

	ch := make(chan struct{}, config.ChannelBufferSize)
	return &Watcher{
		Path:     filepath.Clean(path),
		Changes:  ch,
		changes:  ch,
		done:     make(chan struct{}),
		debounce: debounce,
		watcher:  fw,
	}, nil
}

// Start begins watching.
func (w *Watcher) Start() error {
	if err := w.watcher.Add(filepath.Dir(w.Path)); err != nil {
		return fmt.Errorf("%s: %w", config.ErrWatcherInit, err)
	}
	go w.loop()
	return nil
}

// Stop closes the watcher and the Changes channel.
func (w *Watcher) Stop() {
	_ = w.watcher.Close()
	<-w.done
	close(w.changes)
}

func (w *Watcher) loop() {
	defer close(w.done)

	var pending time.Time
	ticker := time.NewTicker(w.debounce)
	defer ticker.Stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				if !pending.IsZero() {
					w.emit()
				}
				return
			}
			if filepath.Clean(event.Name) != w.Path {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				pending = time.Now()
			}

		case now := <-ticker.C:
			if !pending.IsZero() && now.Sub(pending) >= w.debounce {
				w.emit()
				pending = time.Time{}
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			slog.Warn(config.MsgWatchError,
				config.LogKeyComponent, config.CompWatch,
				config.LogKeyFile, w.Path,
				config.LogKeyError, err,
			)
		}
	}
}

// emit signals without blocking; an unread signal already covers this change.
func (w *Watcher) emit() {
	select {
	case w.changes <- struct{}{}:
	default:
	}
}
