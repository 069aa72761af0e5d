// Package inventory maintains the set of parsed components for a project:
// an LRU-bounded store keyed by file path with content-hash change
// detection, name lookups, filtered listing, and lossless JSON
// save/load for machine consumption.
package inventory

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/flight505/storygen/pkg/component"
)

// Entry is one inventoried component file.
type Entry struct {
	Meta        *component.Metadata `json:"meta"`
	ContentHash string              `json:"content_hash"`
	IndexedAt   int64               `json:"indexed_at"` // Unix milliseconds
}

// Config controls inventory behavior.
type Config struct {
	// MaxEntries bounds the LRU store; 0 means 1000.
	MaxEntries int
}

// Stats reports inventory state and cache effectiveness.
type Stats struct {
	Entries   int
	Hits      int64
	Misses    int64
	Evictions int64
}

// Inventory is a thread-safe store of parsed component metadata.
type Inventory struct {
	mu         sync.RWMutex
	entries    *lru.Cache[string, *Entry]
	nameToPath map[string]string
	logger     *slog.Logger

	hits      atomic.Int64
	misses    atomic.Int64
	evictions atomic.Int64
}

// New creates an empty inventory.
func New(cfg Config, logger *slog.Logger) *Inventory {
	if cfg.MaxEntries == 0 {
		cfg.MaxEntries = 1000
	}
	if logger == nil {
		logger = slog.Default()
	}

	inv := &Inventory{
		nameToPath: make(map[string]string),
		logger:     logger,
	}
	cache, err := lru.NewWithEvict(cfg.MaxEntries, func(path string, entry *Entry) {
		inv.evictions.Add(1)
		// Callbacks run under the operation that triggered them, which
		// already holds inv.mu; touch the map directly.
		if inv.nameToPath[entry.Meta.Name] == path {
			delete(inv.nameToPath, entry.Meta.Name)
		}
	})
	if err != nil {
		panic(fmt.Sprintf("create inventory cache: %v", err))
	}
	inv.entries = cache
	return inv
}

// HashContent returns the SHA-256 hex digest used for change detection.
func HashContent(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}

// Add records metadata for a file, replacing any previous entry.
func (inv *Inventory) Add(meta *component.Metadata, content []byte) {
	entry := &Entry{
		Meta:        meta,
		ContentHash: HashContent(content),
		IndexedAt:   time.Now().UnixMilli(),
	}
	inv.mu.Lock()
	defer inv.mu.Unlock()
	inv.entries.Add(meta.FilePath, entry)
	inv.nameToPath[meta.Name] = meta.FilePath
}

// Get returns the entry for a file path.
func (inv *Inventory) Get(path string) (*Entry, bool) {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	entry, ok := inv.entries.Get(path)
	if ok {
		inv.hits.Add(1)
	} else {
		inv.misses.Add(1)
	}
	return entry, ok
}

// Changed reports whether content differs from the recorded hash.
// Unknown paths always count as changed.
func (inv *Inventory) Changed(path string, content []byte) bool {
	entry, ok := inv.Get(path)
	if !ok {
		return true
	}
	return entry.ContentHash != HashContent(content)
}

// Remove drops a file from the inventory.
func (inv *Inventory) Remove(path string) {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	if entry, ok := inv.entries.Peek(path); ok {
		if inv.nameToPath[entry.Meta.Name] == path {
			delete(inv.nameToPath, entry.Meta.Name)
		}
	}
	inv.entries.Remove(path)
}

// ByName returns the metadata for a component name.
func (inv *Inventory) ByName(name string) (*component.Metadata, bool) {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	path, ok := inv.nameToPath[name]
	if !ok {
		return nil, false
	}
	entry, ok := inv.entries.Get(path)
	if !ok {
		return nil, false
	}
	return entry.Meta, true
}

// Filter narrows List results. Zero values match everything; Keyword
// matches case-insensitively against the component name.
type Filter struct {
	Framework     component.Framework
	ComponentType component.ComponentType
	Keyword       string
}

// List returns matching components sorted by name.
func (inv *Inventory) List(f Filter) []*component.Metadata {
	inv.mu.RLock()
	defer inv.mu.RUnlock()

	keyword := strings.ToLower(f.Keyword)
	var out []*component.Metadata
	for _, path := range inv.entries.Keys() {
		entry, ok := inv.entries.Peek(path)
		if !ok {
			continue
		}
		meta := entry.Meta
		if f.Framework != "" && meta.Framework != f.Framework {
			continue
		}
		if f.ComponentType != "" && meta.ComponentType != f.ComponentType {
			continue
		}
		if keyword != "" && !strings.Contains(strings.ToLower(meta.Name), keyword) {
			continue
		}
		out = append(out, meta)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Len returns the number of inventoried files.
func (inv *Inventory) Len() int {
	inv.mu.RLock()
	defer inv.mu.RUnlock()
	return inv.entries.Len()
}

// Stats returns current counters.
func (inv *Inventory) Stats() Stats {
	return Stats{
		Entries:   inv.Len(),
		Hits:      inv.hits.Load(),
		Misses:    inv.misses.Load(),
		Evictions: inv.evictions.Load(),
	}
}

// snapshot is the serialized inventory form.
type snapshot struct {
	Version     string   `json:"version"`
	GeneratedAt string   `json:"generated_at"`
	Components  []*Entry `json:"components"`
}

// SaveToFile writes the inventory as indented JSON, entries sorted by file
// path for reproducible output.
func (inv *Inventory) SaveToFile(path string) error {
	inv.mu.RLock()
	snap := snapshot{Version: "1", GeneratedAt: time.Now().UTC().Format(time.RFC3339)}
	for _, key := range inv.entries.Keys() {
		if entry, ok := inv.entries.Peek(key); ok {
			snap.Components = append(snap.Components, entry)
		}
	}
	inv.mu.RUnlock()

	sort.Slice(snap.Components, func(i, j int) bool {
		return snap.Components[i].Meta.FilePath < snap.Components[j].Meta.FilePath
	})

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal inventory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write inventory: %w", err)
	}
	return nil
}

// LoadFromFile merges a saved inventory into this one.
func (inv *Inventory) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read inventory: %w", err)
	}
	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("parse inventory: %w", err)
	}

	inv.mu.Lock()
	defer inv.mu.Unlock()
	for _, entry := range snap.Components {
		if entry.Meta == nil || entry.Meta.FilePath == "" {
			continue
		}
		inv.entries.Add(entry.Meta.FilePath, entry)
		inv.nameToPath[entry.Meta.Name] = entry.Meta.FilePath
	}
	return nil
}
