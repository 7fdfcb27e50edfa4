//go:build cgo_zstd

package compress

import (
	"fmt"

	"github.com/valyala/gozstd"

	"github.com/arloliu/cmpent/format"
)

const zstdCgoLevel = 3

// Compress appends the Zstandard compressed form of src to dst.
func (ZstdCodec) Compress(dst, src []byte) ([]byte, error) {
	return gozstd.CompressLevel(dst, src, zstdCgoLevel), nil
}

// Decompress appends the decompressed form of src to dst.
func (ZstdCodec) Decompress(dst, src []byte, size int) ([]byte, error) {
	if err := checkSize(size); err != nil {
		return dst, err
	}

	start := len(dst)
	out, err := gozstd.Decompress(dst, src)
	if err != nil {
		return dst, fmt.Errorf("zstd decompression failed: %w", err)
	}
	if n := len(out) - start; n != size {
		return dst, sizeMismatch(format.CompressionZstd, n, size)
	}

	return out, nil
}
