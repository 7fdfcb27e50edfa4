package archive

import "github.com/arloliu/cmpent/internal/hash"

func checksum(b []byte) uint64 {
	return hash.Sum64(b)
}
