package storage

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/taxolabs/taxo/internal/checksum"
)

// ChangeCallback is called after the backing document changes on disk
// outside the store's own write path (e.g. a hand edit or an external sync).
type ChangeCallback func()

// Watch starts an fsnotify watcher on the directory holding the store's
// document and invokes cb when the document content actually changes, until
// ctx is cancelled.
//
// The store replaces the document via rename, and editors often do the
// same, so the watch is on the parent directory rather than the file
// itself. Events are debounced and a checksum comparison suppresses
// notifications for writes that did not change the content.
func Watch(ctx context.Context, store Store, logger *slog.Logger, cb ChangeCallback) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	path := store.Path()
	if err := w.Add(filepath.Dir(path)); err != nil {
		return err
	}

	logger.Info("watcher: started", slog.String("path", path))

	last := checksum.File(path)

	var settleTimer *time.Timer
	var settleCh <-chan time.Time

	scheduleSettle := func() {
		if settleTimer == nil {
			settleTimer = time.NewTimer(200 * time.Millisecond)
			settleCh = settleTimer.C
		} else {
			settleTimer.Reset(200 * time.Millisecond)
		}
	}

	for {
		select {
		case <-ctx.Done():
			if settleTimer != nil {
				settleTimer.Stop()
			}
			logger.Info("watcher: stopped")
			return nil

		case <-settleCh:
			cs := checksum.File(path)
			if cs == last {
				continue
			}
			last = cs
			logger.Debug("watcher: document changed", slog.String("path", path))
			if cb != nil {
				cb()
			}

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Name != path {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) != 0 {
				scheduleSettle()
			}

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher: error", slog.String("error", err.Error()))
		}
	}
}
