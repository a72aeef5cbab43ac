package hash

import "github.com/cespare/xxhash/v2"

// Key computes the xxHash64 of a shared-string payload. The hash is the
// interning key for the document's shared-string table.
func Key(data []byte) uint64 {
	return xxhash.Sum64(data)
}
