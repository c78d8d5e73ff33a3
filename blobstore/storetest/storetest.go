// Package storetest provides a conformance suite for blobstore.BlobStore implementations.
package storetest

import (
	"context"
	"testing"

	"github.com/hupe1980/weft/blobstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Run exercises the BlobStore contract against store.
// The store must be empty when Run is called.
func Run(t *testing.T, store blobstore.BlobStore) {
	t.Helper()
	ctx := context.Background()

	t.Run("GetMissing", func(t *testing.T) {
		_, err := store.Get(ctx, "missing.wg")
		assert.ErrorIs(t, err, blobstore.ErrNotFound)
	})

	t.Run("PutGet", func(t *testing.T) {
		data := []byte("hello graph")
		require.NoError(t, store.Put(ctx, "graphs/a.wg", data))

		got, err := store.Get(ctx, "graphs/a.wg")
		require.NoError(t, err)
		assert.Equal(t, data, got)

		// stored bytes are isolated from the caller's buffer
		data[0] = 'X'
		got, err = store.Get(ctx, "graphs/a.wg")
		require.NoError(t, err)
		assert.Equal(t, "hello graph", string(got))
	})

	t.Run("Overwrite", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, "graphs/b.wg", []byte("v1")))
		require.NoError(t, store.Put(ctx, "graphs/b.wg", []byte("v2")))

		got, err := store.Get(ctx, "graphs/b.wg")
		require.NoError(t, err)
		assert.Equal(t, "v2", string(got))
	})

	t.Run("EmptyBlob", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, "empty.wg", nil))
		got, err := store.Get(ctx, "empty.wg")
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("List", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, "other/c.wg", []byte("c")))

		names, err := store.List(ctx, "graphs/")
		require.NoError(t, err)
		assert.Equal(t, []string{"graphs/a.wg", "graphs/b.wg"}, names)

		all, err := store.List(ctx, "")
		require.NoError(t, err)
		assert.Equal(t, []string{"empty.wg", "graphs/a.wg", "graphs/b.wg", "other/c.wg"}, all)

		none, err := store.List(ctx, "nope/")
		require.NoError(t, err)
		assert.Empty(t, none)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Delete(ctx, "graphs/a.wg"))
		_, err := store.Get(ctx, "graphs/a.wg")
		assert.ErrorIs(t, err, blobstore.ErrNotFound)

		// idempotent
		require.NoError(t, store.Delete(ctx, "graphs/a.wg"))

		names, err := store.List(ctx, "graphs/")
		require.NoError(t, err)
		assert.Equal(t, []string{"graphs/b.wg"}, names)
	})
}
