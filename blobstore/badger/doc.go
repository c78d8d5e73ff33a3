// Package badger provides a blobstore.BlobStore backed by an embedded BadgerDB.
//
// Each blob is a single key. Keys are the blob names prefixed with a
// configurable namespace, so one database can host several stores.
//
//	store, err := badger.Open(badger.DefaultConfig("/var/lib/weft"))
//	defer store.Close()
//
//	err = snapshot.Save(ctx, store, "deps.wg", g)
package badger
