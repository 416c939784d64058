// Package photocache stores contact and item photos (base64 payloads)
// outside the main records so lists stay cheap to load. The cache is an
// explicit instance handed to whoever needs it, not a package-level
// singleton, with an optional JSON file behind it.
package photocache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Cache maps photo keys (contact or item ids) to encoded image data.
// Safe for concurrent use.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]string
	path    string // empty for a memory-only cache
}

// NewMemory returns a cache with no backing file.
func NewMemory() *Cache {
	return &Cache{entries: map[string]string{}}
}

// Open loads a cache from path, starting empty when the file does not
// exist yet.
func Open(path string) (*Cache, error) {
	c := &Cache{entries: map[string]string{}, path: path}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return c, nil
		}
		return nil, fmt.Errorf("read photo cache: %w", err)
	}
	if err := json.Unmarshal(data, &c.entries); err != nil {
		return nil, fmt.Errorf("parse photo cache: %w", err)
	}
	return c, nil
}

// Get returns the photo for key.
func (c *Cache) Get(key string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.entries[key]
	return v, ok
}

// Has reports whether key is cached.
func (c *Cache) Has(key string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.entries[key]
	return ok
}

// Set stores a photo under key.
func (c *Cache) Set(key, photo string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = photo
}

// Remove drops the photo for key.
func (c *Cache) Remove(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// Len reports the number of cached photos.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Flush writes the cache to its backing file via a temp-file rename. A
// memory-only cache flushes to nothing.
func (c *Cache) Flush() error {
	if c.path == "" {
		return nil
	}
	c.mu.RLock()
	data, err := json.MarshalIndent(c.entries, "", "  ")
	c.mu.RUnlock()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return fmt.Errorf("mkdir cache dir: %w", err)
	}
	tmp := c.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write photo cache: %w", err)
	}
	return os.Rename(tmp, c.path)
}
