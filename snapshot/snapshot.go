// Package snapshot persists frozen graphs to a blobstore.BlobStore using the codec format.
package snapshot

import (
	"context"
	"fmt"
	"sync"

	"github.com/hupe1980/weft"
	"github.com/hupe1980/weft/blobstore"
	"github.com/hupe1980/weft/codec"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency bounds SaveAll and LoadAll.
const DefaultConcurrency = 8

// Save encodes g and stores it under name.
func Save(ctx context.Context, store blobstore.BlobStore, name string, g *weft.Graph, opts ...codec.Option) error {
	data, err := codec.Encode(g, opts...)
	if err != nil {
		return fmt.Errorf("snapshot: encode %s: %w", name, err)
	}
	if err := store.Put(ctx, name, data); err != nil {
		return fmt.Errorf("snapshot: put %s: %w", name, err)
	}
	return nil
}

// Load fetches and decodes the graph stored under name.
// A missing blob matches blobstore.ErrNotFound, a damaged one codec.ErrCorruptData.
func Load(ctx context.Context, store blobstore.BlobStore, name string) (*weft.Graph, error) {
	data, err := store.Get(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("snapshot: get %s: %w", name, err)
	}
	g, err := codec.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("snapshot: decode %s: %w", name, err)
	}
	return g, nil
}

// SaveAll stores every graph concurrently. The first error cancels the remaining uploads.
func SaveAll(ctx context.Context, store blobstore.BlobStore, graphs map[string]*weft.Graph, opts ...codec.Option) error {
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(DefaultConcurrency)

	for name, g := range graphs {
		eg.Go(func() error {
			return Save(ctx, store, name, g, opts...)
		})
	}
	return eg.Wait()
}

// LoadAll loads every blob whose name starts with prefix.
func LoadAll(ctx context.Context, store blobstore.BlobStore, prefix string) (map[string]*weft.Graph, error) {
	names, err := store.List(ctx, prefix)
	if err != nil {
		return nil, fmt.Errorf("snapshot: list %q: %w", prefix, err)
	}

	var (
		mu     sync.Mutex
		graphs = make(map[string]*weft.Graph, len(names))
	)

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(DefaultConcurrency)

	for _, name := range names {
		eg.Go(func() error {
			g, err := Load(ctx, store, name)
			if err != nil {
				return err
			}
			mu.Lock()
			graphs[name] = g
			mu.Unlock()
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return graphs, nil
}
