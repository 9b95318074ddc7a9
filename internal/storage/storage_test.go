package storage_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rzere/discover-kackar-sub000/internal/storage"
)

func TestDiskStore_WriteReadRemove(t *testing.T) {
	store, err := storage.NewDiskStore(t.TempDir())
	require.NoError(t, err)

	key := storage.OriginalsPrefix + "/abc.jpg"
	data := []byte("image bytes")

	require.NoError(t, store.Write(key, data))

	got, err := store.Read(key)
	require.NoError(t, err)
	assert.Equal(t, data, got)

	require.NoError(t, store.Remove(key))
	_, err = store.Read(key)
	assert.Error(t, err)

	// removing a missing key is not an error
	assert.NoError(t, store.Remove(key))
}

func TestDiskStore_RejectsTraversal(t *testing.T) {
	store, err := storage.NewDiskStore(t.TempDir())
	require.NoError(t, err)

	for _, key := range []string{"../outside.txt", "/etc/passwd", "."} {
		assert.ErrorIs(t, store.Write(key, []byte("x")), storage.ErrInvalidKey, key)
	}
	assert.Empty(t, store.Abs("../outside.txt"))
}

func TestDiskStore_AbsResolvesUnderRoot(t *testing.T) {
	root := t.TempDir()
	store, err := storage.NewDiskStore(root)
	require.NoError(t, err)

	abs := store.Abs(storage.OptimizedPrefix + "/x_mobile.webp")
	assert.Contains(t, abs, root)
}
