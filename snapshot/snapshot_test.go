package snapshot

import (
	"context"
	"errors"
	"testing"

	"github.com/hupe1980/weft"
	"github.com/hupe1980/weft/blobstore"
	"github.com/hupe1980/weft/codec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chain(ids ...string) *weft.Graph {
	b := weft.NewBuilder()
	b.AddPath(ids...)
	return b.Finalize()
}

func TestSaveLoad(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()
	g := chain("a", "b", "c")

	require.NoError(t, Save(ctx, store, "deps.wg", g, codec.WithCompression(codec.CompressionLZ4)))

	out, err := Load(ctx, store, "deps.wg")
	require.NoError(t, err)
	assert.True(t, g.Equal(out))
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(context.Background(), blobstore.NewMemoryStore(), "nope")
	assert.ErrorIs(t, err, blobstore.ErrNotFound)
}

func TestLoad_Corrupt(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()
	require.NoError(t, store.Put(ctx, "bad.wg", []byte{codec.FormatVersion, 0xde, 0xad, 0xbe, 0xef}))

	_, err := Load(ctx, store, "bad.wg")
	assert.ErrorIs(t, err, codec.ErrCorruptData)
}

func TestSaveAllLoadAll(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()

	graphs := map[string]*weft.Graph{
		"svc/a.wg": chain("x", "y"),
		"svc/b.wg": chain("p", "q", "r"),
		"svc/c.wg": weft.NewBuilder().Finalize(),
	}
	require.NoError(t, SaveAll(ctx, store, graphs))
	require.NoError(t, store.Put(ctx, "other/d.wg", []byte("ignored")))

	loaded, err := LoadAll(ctx, store, "svc/")
	require.NoError(t, err)
	require.Len(t, loaded, len(graphs))
	for name, g := range graphs {
		assert.True(t, g.Equal(loaded[name]), name)
	}
}

func TestLoadAll_PropagatesFirstError(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()
	require.NoError(t, Save(ctx, store, "g/ok.wg", chain("a", "b")))
	require.NoError(t, store.Put(ctx, "g/broken.wg", []byte{9, 9, 9}))

	loaded, err := LoadAll(ctx, store, "g/")
	assert.ErrorIs(t, err, codec.ErrUnsupportedVersion)
	assert.Nil(t, loaded)
}

type failingStore struct {
	*blobstore.MemoryStore
	err error
}

func (f failingStore) Put(context.Context, string, []byte) error { return f.err }

func TestSaveAll_StoreError(t *testing.T) {
	boom := errors.New("boom")
	store := failingStore{MemoryStore: blobstore.NewMemoryStore(), err: boom}

	err := SaveAll(context.Background(), store, map[string]*weft.Graph{"a": chain("a")})
	assert.ErrorIs(t, err, boom)
}
