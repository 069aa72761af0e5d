package inventory

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/flight505/storygen/pkg/component"
	"github.com/flight505/storygen/pkg/parser"
	"github.com/flight505/storygen/pkg/story"
	"github.com/flight505/storygen/pkg/util"
	"github.com/flight505/storygen/pkg/variants"
)

// WatchOptions configures watch mode.
type WatchOptions struct {
	// DebounceMs groups rapid writes to the same file; 0 means 200.
	DebounceMs int

	// IgnorePatterns are extra filepath.Match patterns applied to base
	// names, on top of the built-in build-directory exclusions.
	IgnorePatterns []string

	// AutoGenerate regenerates the story file next to a component after
	// every successful re-parse.
	AutoGenerate bool
}

// DefaultWatchOptions returns watch options with standard debouncing.
func DefaultWatchOptions() WatchOptions {
	return WatchOptions{DebounceMs: 200}
}

// Watcher keeps an Inventory current as component files change on disk,
// optionally regenerating stories as it goes. Rapid saves are debounced
// per file so editors that write multiple times per save trigger one
// re-parse.
type Watcher struct {
	watcher *fsnotify.Watcher
	inv     *Inventory
	sources *util.SourceCache
	emitter *story.Emitter
	options WatchOptions
	logger  *slog.Logger

	debounceTimers map[string]*time.Timer
	debounceMu     sync.Mutex

	stopChan chan struct{}
	stopped  bool
	mu       sync.Mutex
}

// NewWatcher creates a watcher over inv. The emitter may be nil when
// AutoGenerate is off.
func NewWatcher(inv *Inventory, sources *util.SourceCache, emitter *story.Emitter, options WatchOptions, logger *slog.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create file watcher: %w", err)
	}
	if options.DebounceMs == 0 {
		options.DebounceMs = 200
	}
	if logger == nil {
		logger = slog.Default()
	}
	if sources == nil {
		sources = util.NewSourceCache(util.SourceCacheConfig{Logger: logger})
	}
	if options.AutoGenerate && emitter == nil {
		return nil, fmt.Errorf("auto-generate requires an emitter")
	}

	return &Watcher{
		watcher:        fsw,
		inv:            inv,
		sources:        sources,
		emitter:        emitter,
		options:        options,
		logger:         logger,
		debounceTimers: make(map[string]*time.Timer),
		stopChan:       make(chan struct{}),
	}, nil
}

// Start watches rootPath and its subdirectories and begins processing
// events in the background.
func (w *Watcher) Start(rootPath string) error {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return fmt.Errorf("watcher already stopped")
	}
	w.mu.Unlock()

	if err := w.watcher.Add(rootPath); err != nil {
		return fmt.Errorf("watch %s: %w", rootPath, err)
	}

	err := filepath.Walk(rootPath, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() {
			if w.shouldIgnore(path) {
				return filepath.SkipDir
			}
			if err := w.watcher.Add(path); err != nil {
				w.logger.Warn("failed to watch directory", "path", path, "error", err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("setup watches: %w", err)
	}

	w.logger.Info("file watcher started", "root", rootPath, "auto_generate", w.options.AutoGenerate)

	go w.eventLoop()
	return nil
}

// Stop stops the watcher. Idempotent.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return nil
	}
	w.stopped = true
	close(w.stopChan)

	w.debounceMu.Lock()
	for _, timer := range w.debounceTimers {
		timer.Stop()
	}
	w.debounceTimers = make(map[string]*time.Timer)
	w.debounceMu.Unlock()

	err := w.watcher.Close()
	w.logger.Info("file watcher stopped")
	return err
}

func (w *Watcher) eventLoop() {
	for {
		select {
		case <-w.stopChan:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("file watcher error", "error", err)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	path := event.Name

	if w.shouldIgnore(path) {
		return
	}
	if _, ok := parser.FrameworkForPath(path); !ok {
		return
	}
	// Writing generated stories must not trigger another generation.
	if strings.Contains(filepath.Base(path), ".stories.") {
		return
	}

	w.logger.Debug("file event", "op", event.Op.String(), "file", path)

	switch {
	case event.Op&fsnotify.Write == fsnotify.Write:
		w.debounceReparse(path)

	case event.Op&fsnotify.Create == fsnotify.Create:
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			if !w.shouldIgnore(path) {
				if err := w.watcher.Add(path); err != nil {
					w.logger.Warn("failed to watch new directory", "path", path, "error", err)
				}
			}
			return
		}
		w.debounceReparse(path)

	case event.Op&fsnotify.Remove == fsnotify.Remove:
		w.removeFile(path)

	case event.Op&fsnotify.Rename == fsnotify.Rename:
		w.removeFile(path)
	}
}

// debounceReparse schedules a re-parse after the debounce delay. Only the
// last event within the window fires.
func (w *Watcher) debounceReparse(path string) {
	w.debounceMu.Lock()
	defer w.debounceMu.Unlock()

	if timer, exists := w.debounceTimers[path]; exists {
		timer.Stop()
	}

	w.debounceTimers[path] = time.AfterFunc(
		time.Duration(w.options.DebounceMs)*time.Millisecond,
		func() {
			w.reparseFile(path)

			w.debounceMu.Lock()
			delete(w.debounceTimers, path)
			w.debounceMu.Unlock()
		},
	)
}

// reparseFile re-parses one file and updates the inventory. When nothing
// changed since the last parse (same content hash), the file is skipped.
func (w *Watcher) reparseFile(path string) {
	w.sources.Invalidate(path)
	src, err := w.sources.Read(path)
	if err != nil {
		w.logger.Warn("failed to read changed file", "file", path, "error", err)
		return
	}

	if !w.inv.Changed(path, src) {
		w.logger.Debug("content unchanged, skipping", "file", path)
		return
	}

	meta, err := parser.Parse(path, src)
	if err != nil {
		w.logger.Warn("failed to parse changed file", "file", path, "error", err)
		return
	}

	w.inv.Add(meta, src)
	w.logger.Info("component updated", "file", path, "component", meta.Name, "props", len(meta.Props))

	if w.options.AutoGenerate {
		w.regenerateStory(meta)
	}
}

// regenerateStory rewrites the story file next to the component.
func (w *Watcher) regenerateStory(meta *component.Metadata) {
	vars := variants.Infer(meta)
	content, err := w.emitter.Emit(meta, vars)
	if err != nil {
		w.logger.Warn("failed to generate story", "component", meta.Name, "error", err)
		return
	}
	outPath := story.DefaultOutputPath(meta.FilePath)
	if err := story.WriteStory(outPath, content); err != nil {
		w.logger.Warn("failed to write story", "path", outPath, "error", err)
		return
	}
	w.logger.Info("story regenerated", "component", meta.Name, "path", outPath)
}

func (w *Watcher) removeFile(path string) {
	w.logger.Debug("removing file from inventory", "file", path)
	w.inv.Remove(path)
}

func (w *Watcher) shouldIgnore(path string) bool {
	base := filepath.Base(path)
	for _, pattern := range w.options.IgnorePatterns {
		if matched, _ := filepath.Match(pattern, base); matched {
			return true
		}
	}
	switch base {
	case "node_modules", ".git", "dist", "build", "coverage", ".next", ".nuxt", ".storybook":
		return true
	}
	return false
}

// WatcherStats reports watcher state.
type WatcherStats struct {
	PendingReparses int
	IsRunning       bool
}

// GetStats returns current watcher statistics.
func (w *Watcher) GetStats() WatcherStats {
	w.debounceMu.Lock()
	pending := len(w.debounceTimers)
	w.debounceMu.Unlock()

	w.mu.Lock()
	running := !w.stopped
	w.mu.Unlock()

	return WatcherStats{PendingReparses: pending, IsRunning: running}
}
