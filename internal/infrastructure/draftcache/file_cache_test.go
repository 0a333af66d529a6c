package draftcache_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrunx/Gasable-sub001/internal/infrastructure/draftcache"
)

func TestFileCache_PutGetDelete(t *testing.T) {
	cache, err := draftcache.New(t.TempDir())
	require.NoError(t, err)

	// Keys carry a colon separator; the cache must map them to safe file names.
	key := "gasable_store_draft:company-1"

	_, ok, err := cache.Get(key)
	require.NoError(t, err)
	assert.False(t, ok, "unwritten key reads as absent")

	require.NoError(t, cache.Put(key, []byte(`{"step":"store"}`)))
	data, ok, err := cache.Get(key)
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `{"step":"store"}`, string(data))

	// Overwrite replaces, never appends.
	require.NoError(t, cache.Put(key, []byte(`{"step":"products"}`)))
	data, _, err = cache.Get(key)
	require.NoError(t, err)
	assert.JSONEq(t, `{"step":"products"}`, string(data))

	require.NoError(t, cache.Delete(key))
	_, ok, err = cache.Get(key)
	require.NoError(t, err)
	assert.False(t, ok)

	assert.NoError(t, cache.Delete(key), "deleting an absent key is not an error")
}

func TestFileCache_KeysAreIsolated(t *testing.T) {
	cache, err := draftcache.New(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, cache.Put("draft:a", []byte("aaa")))
	require.NoError(t, cache.Put("draft:b", []byte("bbb")))

	a, ok, err := cache.Get("draft:a")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "aaa", string(a))

	require.NoError(t, cache.Delete("draft:a"))
	_, ok, _ = cache.Get("draft:b")
	assert.True(t, ok, "deleting one key leaves others alone")
}
