package blobstore_test

import (
	"testing"

	"github.com/hupe1980/weft/blobstore"
	"github.com/hupe1980/weft/blobstore/storetest"
)

func TestMemoryStore_Conformance(t *testing.T) {
	storetest.Run(t, blobstore.NewMemoryStore())
}

func TestLocalStore_Conformance(t *testing.T) {
	storetest.Run(t, blobstore.NewLocalStore(t.TempDir()))
}

func TestThrottledStore_Conformance(t *testing.T) {
	storetest.Run(t, blobstore.NewThrottledStore(blobstore.NewMemoryStore(), 1<<20))
}
