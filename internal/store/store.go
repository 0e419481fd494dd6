package store

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"codeberg.org/snonux/lingopop/internal/logger"
)

// ErrNotFound is returned by Get when the key has never been set
var ErrNotFound = errors.New("key not found")

// Store is a string keyed blob store
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Close() error
}

// Backend names
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

// Config selects and configures a backend
type Config struct {
	Backend   string
	Path      string // data directory for file and sqlite
	RedisAddr string
	RedisDB   int
}

// Open creates the configured backend
func Open(ctx context.Context, config Config, log *logger.Logger) (Store, error) {
	if log == nil {
		log = logger.NewNop()
	}

	switch strings.ToLower(config.Backend) {
	case BackendMemory:
		return NewMemoryStore(), nil
	case BackendFile, "":
		return NewFileStore(config.Path, log)
	case BackendSQLite:
		return NewSQLiteStore(filepath.Join(config.Path, "lingopop.db"), log)
	case BackendRedis:
		return NewRedisStore(ctx, config.RedisAddr, config.RedisDB, log)
	default:
		return nil, fmt.Errorf("unknown storage backend: %s", config.Backend)
	}
}
