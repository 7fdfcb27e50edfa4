// Package hash provides the xxHash64 checksums of entities and archive frames.
package hash

import "github.com/cespare/xxhash/v2"

// Sum64 computes the xxHash64 of data.
func Sum64(data []byte) uint64 {
	return xxhash.Sum64(data)
}
