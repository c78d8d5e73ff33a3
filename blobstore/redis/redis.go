// Package redis provides a blobstore.BlobStore backed by Redis string values.
//
// Blob names are stored under a key prefix (default "weft:blob:"), which keeps
// List scans confined to the store's own keys.
package redis

import (
	"context"
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/hupe1980/weft/blobstore"
	"github.com/redis/go-redis/v9"
)

// DefaultKeyPrefix namespaces blob keys in a shared Redis database.
const DefaultKeyPrefix = "weft:blob:"

// Store implements blobstore.BlobStore on a Redis client.
type Store struct {
	client    redis.UniversalClient
	keyPrefix string
	ttl       time.Duration
	scanCount int64
}

var _ blobstore.BlobStore = (*Store)(nil)

// Option configures a Store.
type Option func(*Store)

// WithKeyPrefix overrides DefaultKeyPrefix.
func WithKeyPrefix(prefix string) Option {
	return func(s *Store) {
		s.keyPrefix = prefix
	}
}

// WithTTL expires blobs after ttl. Zero keeps them forever.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// NewStore wraps an existing client. The caller owns the client.
func NewStore(client redis.UniversalClient, optFns ...Option) *Store {
	s := &Store{
		client:    client,
		keyPrefix: DefaultKeyPrefix,
		scanCount: 256,
	}
	for _, fn := range optFns {
		fn(s)
	}
	return s
}

// New parses a redis:// URL and connects a new client.
func New(url string, optFns ...Option) (*Store, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	return NewStore(redis.NewClient(opts), optFns...), nil
}

// Close closes the underlying client.
func (s *Store) Close() error {
	return s.client.Close()
}

// Ping checks connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *Store) key(name string) string {
	return s.keyPrefix + name
}

// Put implements blobstore.BlobStore. SET replaces the value atomically.
func (s *Store) Put(ctx context.Context, name string, data []byte) error {
	return s.client.Set(ctx, s.key(name), data, s.ttl).Err()
}

// Get implements blobstore.BlobStore.
func (s *Store) Get(ctx context.Context, name string) ([]byte, error) {
	data, err := s.client.Get(ctx, s.key(name)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, blobstore.ErrNotFound
		}
		return nil, err
	}
	return data, nil
}

// Delete implements blobstore.BlobStore.
func (s *Store) Delete(ctx context.Context, name string) error {
	return s.client.Del(ctx, s.key(name)).Err()
}

// List scans keys incrementally; SCAN may return a key twice, so results are deduplicated.
func (s *Store) List(ctx context.Context, prefix string) ([]string, error) {
	match := escapeGlob(s.key(prefix)) + "*"

	var names []string
	iter := s.client.Scan(ctx, 0, match, s.scanCount).Iterator()
	for iter.Next(ctx) {
		names = append(names, strings.TrimPrefix(iter.Val(), s.keyPrefix))
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}

	slices.Sort(names)
	return slices.Compact(names), nil
}

// escapeGlob quotes the characters SCAN MATCH treats as patterns.
func escapeGlob(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch r {
		case '*', '?', '[', ']', '\\':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
