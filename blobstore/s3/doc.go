// Package s3 provides an S3 implementation of the blobstore.BlobStore interface.
//
// # Usage
//
//	store, err := s3.New(ctx, "my-bucket", "graphs/")
//
//	err = snapshot.Save(ctx, store, "deps.wg", g)
//
// # Features
//
//   - CRC32C integrity checksums on every upload
//   - Multipart uploads for large graphs
//   - Automatic pagination for listing
//   - Configurable prefix for multi-tenant isolation
package s3
