package reactions

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/mlsorensen/labelcue"
)

// DefaultDebounce collapses the burst of events an editor or generator
// produces for a single save.
const DefaultDebounce = 250 * time.Millisecond

// Watcher reloads the table file whenever it changes and hands every table
// that loads cleanly to onChange. A file that fails to load is logged and
// skipped, leaving the previous table in effect.
type Watcher struct {
	mu       sync.Mutex
	watcher  *fsnotify.Watcher
	path     string
	debounce time.Duration
	onChange func(*labelcue.Table)
	log      *zap.Logger

	reloads int
	errors  int
}

// NewWatcher prepares a watcher for path. The containing directory is
// watched, so the file may be replaced by rename.
func NewWatcher(path string, debounce time.Duration, onChange func(*labelcue.Table), log *zap.Logger) (*Watcher, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating file watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(abs), err)
	}

	return &Watcher{
		watcher:  fw,
		path:     abs,
		debounce: debounce,
		onChange: onChange,
		log:      log,
	}, nil
}

// Run processes file events until ctx is canceled, then releases the
// watcher. It always returns nil.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	w.log.Info("watching reaction table", zap.String("path", w.path))

	timer := time.NewTimer(time.Hour)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			w.log.Debug("reaction table event", zap.String("op", ev.Op.String()))
			timer.Reset(w.debounce)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("file watcher error", zap.Error(err))

		case <-timer.C:
			w.reload()
		}
	}
}

// Stats returns the number of successful and failed reloads.
func (w *Watcher) Stats() (reloads, failures int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.reloads, w.errors
}

func (w *Watcher) reload() {
	t, err := Load(w.path)

	w.mu.Lock()
	if err != nil {
		w.errors++
	} else {
		w.reloads++
	}
	w.mu.Unlock()

	if err != nil {
		w.log.Warn("reaction table reload failed, keeping previous table", zap.Error(err))
		return
	}
	w.log.Info("reaction table reloaded", zap.Int("reactions", t.Len()), zap.Strings("labels", t.Labels()))
	w.onChange(t)
}
