package audio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "speech")
	cache, err := NewCache(dir)
	require.NoError(t, err)

	_, ok := cache.Get("hola", "Kore")
	assert.False(t, ok)

	require.NoError(t, cache.Put("hola", "Kore", []byte{1, 2, 3, 4}))

	data, ok := cache.Get("hola", "Kore")
	assert.True(t, ok)
	assert.Equal(t, []byte{1, 2, 3, 4}, data)

	_, ok = cache.Get("hola", "Puck")
	assert.False(t, ok, "voice is part of the key")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")
}

func TestCacheKey(t *testing.T) {
	assert.Equal(t, Key("a", "b"), Key("a", "b"))
	assert.NotEqual(t, Key("a", "b"), Key("a", "c"))
	assert.NotEqual(t, Key("ab", "c"), Key("a", "bc"))
	assert.Len(t, Key("hola", "Kore"), 32)
}

func TestNewCacheRequiresDir(t *testing.T) {
	_, err := NewCache("")
	assert.Error(t, err)
}
