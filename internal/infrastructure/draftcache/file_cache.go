package draftcache

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// FileCache is the local draft store: one JSON file per key under a base
// directory. It survives process restarts on the same machine, which is the
// durability floor for in-progress onboarding drafts.
type FileCache struct {
	dir string
	mu  sync.Mutex
}

// New creates the cache directory if needed.
func New(dir string) (*FileCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create draft dir: %w", err)
	}
	return &FileCache{dir: dir}, nil
}

// fileName maps a cache key to a safe file name.
func (c *FileCache) fileName(key string) string {
	safe := strings.NewReplacer(":", "_", "/", "_", "\\", "_").Replace(key)
	return filepath.Join(c.dir, safe+".json")
}

// Put writes the value synchronously, replacing any previous one. The write
// goes through a temp file so a crash never leaves a torn draft behind.
func (c *FileCache) Put(key string, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	target := c.fileName(key)
	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write draft: %w", err)
	}
	if err := os.Rename(tmp, target); err != nil {
		return fmt.Errorf("commit draft: %w", err)
	}
	return nil
}

// Get reads the value; ok is false when the key was never written.
func (c *FileCache) Get(key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	data, err := os.ReadFile(c.fileName(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("read draft: %w", err)
	}
	return data, true, nil
}

// Delete drops the key; deleting an absent key is not an error.
func (c *FileCache) Delete(key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := os.Remove(c.fileName(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete draft: %w", err)
	}
	return nil
}
