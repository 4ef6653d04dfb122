package fs_test

import (
	"testing"

	"github.com/apidex/apidex"
	"github.com/apidex/apidex/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentStore(t *testing.T) {
	t.Parallel()

	t.Run("implements apidex.DocumentStore", func(t *testing.T) {
		t.Parallel()
		var _ apidex.DocumentStore = fs.NewDocumentStore(t.TempDir())
	})

	t.Run("round-trips a document", func(t *testing.T) {
		t.Parallel()

		store := fs.NewDocumentStore(t.TempDir())

		require.NoError(t, store.WriteDocument("storage.apib", []byte("FORMAT: 1A")))

		data, err := store.ReadDocument("storage.apib")
		require.NoError(t, err)
		assert.Equal(t, []byte("FORMAT: 1A"), data)
	})

	t.Run("creates parent directories for nested output paths", func(t *testing.T) {
		t.Parallel()

		store := fs.NewDocumentStore(t.TempDir())

		require.NoError(t, store.WriteDocument("queue/openapi.yaml", []byte("openapi: 3.0.0")))

		data, err := store.ReadDocument("queue/openapi.yaml")
		require.NoError(t, err)
		assert.Equal(t, []byte("openapi: 3.0.0"), data)
	})

	t.Run("returns ENOTFOUND for unknown documents", func(t *testing.T) {
		t.Parallel()

		store := fs.NewDocumentStore(t.TempDir())

		_, err := store.ReadDocument("missing.apib")
		assert.Equal(t, apidex.ENOTFOUND, apidex.ErrorCode(err))

		_, err = store.DocumentHash("missing.apib")
		assert.Equal(t, apidex.ENOTFOUND, apidex.ErrorCode(err))
	})

	t.Run("hashes stored content", func(t *testing.T) {
		t.Parallel()

		store := fs.NewDocumentStore(t.TempDir())
		data := []byte("FORMAT: 1A")

		require.NoError(t, store.WriteDocument("storage.apib", data))

		hash, err := store.DocumentHash("storage.apib")
		require.NoError(t, err)
		assert.Equal(t, fs.Hash(data), hash)
	})
}

func TestHash(t *testing.T) {
	t.Parallel()

	a := fs.Hash([]byte("one"))
	b := fs.Hash([]byte("two"))

	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
	assert.Equal(t, a, fs.Hash([]byte("one")))
}
