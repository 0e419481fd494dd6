package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"codeberg.org/snonux/lingopop/internal/logger"
)

// FileStore writes one file per key under a directory
type FileStore struct {
	basePath string
	logger   *logger.Logger
}

// NewFileStore creates the directory if needed
func NewFileStore(basePath string, log *logger.Logger) (*FileStore, error) {
	if log == nil {
		log = logger.NewNop()
	}
	if basePath == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory %s: %w", basePath, err)
	}

	log.Debug("FileStore opened", "path", basePath)
	return &FileStore{basePath: basePath, logger: log}, nil
}

// sanitizeKey makes a key safe for use as a filename
func sanitizeKey(key string) string {
	r := strings.NewReplacer("/", "_", "\\", "_", ":", "_", "..", "_")
	return r.Replace(key)
}

func (fs *FileStore) filePath(key string) string {
	return filepath.Join(fs.basePath, sanitizeKey(key)+".json")
}

// Get reads the file for key
func (fs *FileStore) Get(ctx context.Context, key string) ([]byte, error) {
	path := fs.filePath(key)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

// Set writes the file atomically via a temp file and rename
func (fs *FileStore) Set(ctx context.Context, key string, value []byte) error {
	target := fs.filePath(key)

	tmpFile, err := os.CreateTemp(fs.basePath, ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	if _, err := tmpFile.Write(value); err != nil {
		tmpFile.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, target); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	return nil
}

// Close is a no-op
func (fs *FileStore) Close() error {
	return nil
}
