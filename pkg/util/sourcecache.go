package util

import (
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/edsrzf/mmap-go"
)

// SourceCache provides read access to component source files using
// memory-mapped files, with a transparent os.ReadFile fallback when mmap
// fails (empty files, exotic filesystems). Watch mode re-reads the same
// files repeatedly; keeping them mapped avoids repeated full copies.
//
// Thread-safe: reads share an RWMutex, loads take the write lock. Slices
// returned by Read stay valid until Close even across invalidation and
// eviction: displaced mappings are retired, never unmapped mid-flight, so
// parallel parse workers can hold a slice for the whole parse.
type SourceCache struct {
	mu       sync.RWMutex
	files    map[string]*mappedSource
	retired  []mmap.MMap
	maxFiles int
	logger   *slog.Logger

	hits         int64
	misses       int64
	mmapFailures int64
}

type mappedSource struct {
	data     mmap.MMap
	fallback []byte // set when mmap failed and ReadFile was used
	size     int64
	modTime  int64
}

// SourceCacheConfig controls SourceCache behavior.
type SourceCacheConfig struct {
	// MaxFiles bounds the number of kept mappings; 0 means 4096.
	MaxFiles int
	Logger   *slog.Logger
}

// NewSourceCache creates an empty cache.
func NewSourceCache(cfg SourceCacheConfig) *SourceCache {
	if cfg.MaxFiles == 0 {
		cfg.MaxFiles = 4096
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &SourceCache{
		files:    make(map[string]*mappedSource),
		maxFiles: cfg.MaxFiles,
		logger:   cfg.Logger,
	}
}

// Read returns the file's content. The returned slice is backed by the
// mapping and must not be retained past Close, nor mutated; until Close
// it stays valid even if the entry is later invalidated or evicted.
// A stale entry (changed mtime or size) is reloaded transparently.
func (c *SourceCache) Read(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat source: %w", err)
	}

	c.mu.RLock()
	entry, ok := c.files[path]
	c.mu.RUnlock()
	if ok && entry.size == info.Size() && entry.modTime == info.ModTime().UnixNano() {
		c.hit()
		return entry.bytes(), nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	// Double-check after acquiring the write lock.
	if entry, ok := c.files[path]; ok && entry.size == info.Size() && entry.modTime == info.ModTime().UnixNano() {
		c.hits++
		return entry.bytes(), nil
	}
	c.misses++

	if old, ok := c.files[path]; ok {
		c.retireLocked(old)
		delete(c.files, path)
	}
	if len(c.files) >= c.maxFiles {
		c.evictOneLocked()
	}

	entry, err = c.load(path, info.Size(), info.ModTime().UnixNano())
	if err != nil {
		return nil, err
	}
	c.files[path] = entry
	return entry.bytes(), nil
}

// Invalidate drops a single path from the cache. The backing mapping is
// retired, not unmapped, so slices already handed out stay readable.
func (c *SourceCache) Invalidate(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if entry, ok := c.files[path]; ok {
		c.retireLocked(entry)
		delete(c.files, path)
	}
}

// Size returns the number of currently cached files.
func (c *SourceCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.files)
}

// Stats returns hit/miss/fallback counters.
func (c *SourceCache) Stats() (hits, misses, mmapFailures int64) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hits, c.misses, c.mmapFailures
}

// Close unmaps every cached file, including retired mappings. This is the
// only place mappings are ever unmapped; the cache is unusable afterwards.
func (c *SourceCache) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	var firstErr error
	for path, entry := range c.files {
		if err := entry.unmapErr(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("unmap %s: %w", path, err)
		}
	}
	for _, m := range c.retired {
		if err := m.Unmap(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("unmap retired mapping: %w", err)
		}
	}
	c.files = make(map[string]*mappedSource)
	c.retired = nil
	return firstErr
}

func (c *SourceCache) load(path string, size, modTime int64) (*mappedSource, error) {
	entry := &mappedSource{size: size, modTime: modTime}

	if size > 0 {
		if f, err := os.Open(path); err == nil {
			m, merr := mmap.Map(f, mmap.RDONLY, 0)
			f.Close()
			if merr == nil {
				entry.data = m
				return entry, nil
			}
			c.mmapFailures++
			c.logger.Debug("mmap failed, falling back to ReadFile", "path", path, "error", merr)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read source: %w", err)
	}
	entry.fallback = data
	return entry, nil
}

// evictOneLocked removes an arbitrary entry to stay under MaxFiles. The
// cache is an optimization, not an index; fairness does not matter here.
func (c *SourceCache) evictOneLocked() {
	for path, entry := range c.files {
		c.retireLocked(entry)
		delete(c.files, path)
		return
	}
}

// retireLocked queues an entry's mapping for unmapping at Close. In-flight
// readers may still hold slices into it, so it must stay mapped until then.
func (c *SourceCache) retireLocked(entry *mappedSource) {
	if entry.data != nil {
		c.retired = append(c.retired, entry.data)
		entry.data = nil
	}
}

func (c *SourceCache) hit() {
	c.mu.Lock()
	c.hits++
	c.mu.Unlock()
}

func (m *mappedSource) bytes() []byte {
	if m.data != nil {
		return m.data
	}
	return m.fallback
}

func (m *mappedSource) unmapErr() error {
	if m.data == nil {
		return nil
	}
	err := m.data.Unmap()
	m.data = nil
	return err
}
