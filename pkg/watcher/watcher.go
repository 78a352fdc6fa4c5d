// Package watcher turns a directory into a hot folder: IFC files
// dropped into it are reported once their writes have settled.
package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// HotFolder watches a directory and invokes a callback for every IFC
// file that appears or changes. Events are debounced per file so a
// slow upload triggers a single callback after its last write.
type HotFolder struct {
	watcher  *fsnotify.Watcher
	dir      string
	debounce time.Duration
	logger   *zap.Logger

	mu     sync.Mutex
	timers map[string]*time.Timer
}

// New creates a hot folder over dir. The directory must exist.
func New(dir string, debounce time.Duration, logger *zap.Logger) (*HotFolder, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		w.Close()
		return nil, fmt.Errorf("resolve path %s: %w", dir, err)
	}
	if err := w.Add(abs); err != nil {
		w.Close()
		return nil, fmt.Errorf("watch %s: %w", abs, err)
	}

	return &HotFolder{
		watcher:  w,
		dir:      abs,
		debounce: debounce,
		logger:   logger,
		timers:   make(map[string]*time.Timer),
	}, nil
}

// Run blocks delivering settled IFC files to callback until the
// context is canceled
func (h *HotFolder) Run(ctx context.Context, callback func(path string)) error {
	defer h.stopTimers()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-h.watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if !strings.EqualFold(filepath.Ext(event.Name), ".ifc") {
				continue
			}
			h.schedule(event.Name, callback)

		case err, ok := <-h.watcher.Errors:
			if !ok {
				return nil
			}
			h.logger.Warn("watcher error", zap.Error(err))
		}
	}
}

// schedule arms (or re-arms) the debounce timer for one file
func (h *HotFolder) schedule(path string, callback func(string)) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if timer, ok := h.timers[path]; ok {
		timer.Stop()
	}
	h.timers[path] = time.AfterFunc(h.debounce, func() {
		h.logger.Info("file settled", zap.String("file", filepath.Base(path)))
		callback(path)
	})
}

func (h *HotFolder) stopTimers() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, timer := range h.timers {
		timer.Stop()
	}
	h.timers = make(map[string]*time.Timer)
}

// Close stops the underlying filesystem watcher
func (h *HotFolder) Close() error {
	return h.watcher.Close()
}
