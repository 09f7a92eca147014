// Package watch republishes when post sources change.
package watch

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/starford/inkpress/internal/checksum"
	"github.com/starford/inkpress/internal/parser"
	"github.com/starford/inkpress/internal/storage"
)

// DefaultDebounce collapses bursts of editor writes into one publish.
const DefaultDebounce = 200 * time.Millisecond

// PublishFunc runs one full publish pass.
type PublishFunc func(ctx context.Context) error

// EventCallback is called for each source change that counts toward a
// publish. kind is one of "created", "updated", "deleted".
type EventCallback func(kind string, name string)

// Options configure Watch.
type Options struct {
	Debounce time.Duration
	OnEvent  EventCallback
}

// Watch observes the source root of src and calls publish after a quiet
// period whenever an eligible post file was created, changed in content,
// removed or renamed. Events only mark names as pending; contents are
// compared once the quiet period ends, so a truncate followed by a rewrite
// of the same bytes is not a change. Publish errors are logged and watching
// continues. Watch returns when ctx is cancelled.
func Watch(ctx context.Context, src storage.Provider, root string, logger *slog.Logger, publish PublishFunc, opts Options) error {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.Add(root); err != nil {
		return err
	}

	tracker := checksum.NewTracker()
	prime(src, tracker, logger)

	logger.Info("watcher: started", slog.String("root", root), slog.Int("tracked", tracker.Len()))

	var timer *time.Timer
	var timerCh <-chan time.Time
	pending := make(map[string]struct{})

	schedule := func() {
		if timer == nil {
			timer = time.NewTimer(opts.Debounce)
			timerCh = timer.C
		} else {
			timer.Reset(opts.Debounce)
		}
	}

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			logger.Info("watcher: stopped")
			return nil

		case <-timerCh:
			changed := settle(src, tracker, pending, logger, opts.OnEvent)
			clear(pending)
			if !changed {
				continue
			}
			if err := publish(ctx); err != nil {
				logger.Error("watcher: publish failed", slog.String("error", err.Error()))
			}

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			// Rename fires on the old name; the new name arrives as Create.
			name := filepath.Base(ev.Name)
			if !parser.Eligible(name) {
				continue
			}
			pending[name] = struct{}{}
			schedule()

		case watchErr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Error("watcher: error", slog.String("error", watchErr.Error()))
		}
	}
}

// settle compares the current content of every pending name against the
// tracker and reports whether any of them changed.
func settle(src storage.Provider, tracker *checksum.Tracker, pending map[string]struct{}, logger *slog.Logger, onEvent EventCallback) bool {
	changed := false
	notify := func(kind, name string) {
		logger.Debug("watcher: change", slog.String("op", kind), slog.String("file", name))
		if onEvent != nil {
			onEvent(kind, name)
		}
		changed = true
	}

	for name := range pending {
		data, err := src.Read(name)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			if tracker.Forget(name) {
				notify("deleted", name)
			}
		case err != nil:
			logger.Warn("watcher: read failed", slog.String("file", name), slog.String("error", err.Error()))
		default:
			kind := "updated"
			if !tracker.Known(name) {
				kind = "created"
			}
			if tracker.Changed(name, data) {
				notify(kind, name)
			}
		}
	}
	return changed
}

// prime records the current content of every eligible file so that touching
// a file without changing it does not trigger a publish.
func prime(src storage.Provider, tracker *checksum.Tracker, logger *slog.Logger) {
	entries, err := src.Entries()
	if err != nil {
		logger.Warn("watcher: list failed", slog.String("error", err.Error()))
		return
	}
	for _, e := range entries {
		if !e.Regular || !parser.Eligible(e.Name) {
			continue
		}
		data, err := src.Read(e.Name)
		if err != nil {
			continue
		}
		tracker.Changed(e.Name, data)
	}
}
