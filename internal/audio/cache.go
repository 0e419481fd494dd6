package audio

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
)

// Cache stores synthesized PCM on disk keyed by text and voice
type Cache struct {
	dir string
}

// NewCache creates the cache directory if needed
func NewCache(dir string) (*Cache, error) {
	if dir == "" {
		return nil, fmt.Errorf("cache directory is required")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}
	return &Cache{dir: dir}, nil
}

// Key returns the cache key for text spoken with voice
func Key(text, voice string) string {
	h := md5.New()
	h.Write([]byte(text))
	h.Write([]byte{0})
	h.Write([]byte(voice))
	return hex.EncodeToString(h.Sum(nil))
}

func (c *Cache) path(text, voice string) string {
	return filepath.Join(c.dir, Key(text, voice)+".pcm")
}

// Get returns cached PCM if present
func (c *Cache) Get(text, voice string) ([]byte, bool) {
	data, err := os.ReadFile(c.path(text, voice))
	if err != nil || len(data) == 0 {
		return nil, false
	}
	return data, true
}

// Put stores PCM for text and voice
func (c *Cache) Put(text, voice string, data []byte) error {
	final := c.path(text, voice)
	tmp := final + ".tmp"

	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write cache file: %w", err)
	}
	if err := os.Rename(tmp, final); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to rename cache file: %w", err)
	}
	return nil
}
