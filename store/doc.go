// Package store persists documents in compressed form.
//
// A document is encoded with package encode, compressed with one of the
// supported codecs and written out; reading reverses the steps. Failures
// of the compression layer are always reported as *CompressionError,
// which matches ErrCompression with errors.Is.
//
//	err := store.WriteFile("doc.json.zst", node, store.Zstd)
//	node, err := store.ReadFile("doc.json.zst")
package store
