// Package blobstore provides the storage abstraction for encoded graph snapshots.
//
// BlobStore is the interface for reading and writing named blobs.
// Implementations must be safe for concurrent use.
//
// # Built-in Implementations
//
//   - LocalStore: local filesystem, atomic writes via rename
//   - MemoryStore: in-memory, for tests and ephemeral pipelines
//   - ThrottledStore: byte-rate limiting wrapper around any BlobStore
//   - s3.Store: Amazon S3 with multipart uploads
//   - minio.Store: MinIO and other S3-compatible servers
//   - badger.Store: embedded BadgerDB key-value store
//   - redis.Store: Redis strings under a key prefix
//
// # Custom Implementations
//
// Implement the BlobStore interface to support custom storage backends:
//
//	type BlobStore interface {
//	    Put(ctx, name, data) error        // Atomic write
//	    Get(ctx, name) ([]byte, error)    // ErrNotFound if missing
//	    Delete(ctx, name) error           // Missing blobs are not an error
//	    List(ctx, prefix) ([]string, error)
//	}
package blobstore
