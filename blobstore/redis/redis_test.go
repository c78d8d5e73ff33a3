package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/hupe1980/weft/blobstore"
	"github.com/hupe1980/weft/blobstore/storetest"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, optFns ...Option) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	s := NewStore(client, optFns...)
	t.Cleanup(func() { _ = s.Close() })
	return s, mr
}

func TestStore_Conformance(t *testing.T) {
	s, _ := newTestStore(t)
	storetest.Run(t, s)
}

func TestStore_IgnoresForeignKeys(t *testing.T) {
	s, mr := newTestStore(t, WithKeyPrefix("app:"))
	require.NoError(t, mr.Set("other:graph", "x"))
	require.NoError(t, s.Put(context.Background(), "graph", []byte("y")))

	names, err := s.List(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, []string{"graph"}, names)
	assert.True(t, mr.Exists("app:graph"))
}

func TestStore_GlobCharactersInPrefix(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.Put(ctx, "a*b", []byte("1")))
	require.NoError(t, s.Put(ctx, "axb", []byte("2")))

	names, err := s.List(ctx, "a*")
	require.NoError(t, err)
	assert.Equal(t, []string{"a*b"}, names)
}

func TestStore_TTL(t *testing.T) {
	s, mr := newTestStore(t, WithTTL(time.Minute))
	ctx := context.Background()
	require.NoError(t, s.Put(ctx, "tmp", []byte("x")))

	mr.FastForward(2 * time.Minute)

	_, err := s.Get(ctx, "tmp")
	assert.ErrorIs(t, err, blobstore.ErrNotFound)
}

func TestNew(t *testing.T) {
	mr := miniredis.RunT(t)
	s, err := New("redis://" + mr.Addr() + "/0")
	require.NoError(t, err)
	defer s.Close()
	require.NoError(t, s.Ping(context.Background()))

	_, err = New("://bad")
	assert.Error(t, err)
}

func TestEscapeGlob(t *testing.T) {
	assert.Equal(t, `weft:\*\?\[x\]`, escapeGlob("weft:*?[x]"))
	assert.Equal(t, "plain", escapeGlob("plain"))
}
