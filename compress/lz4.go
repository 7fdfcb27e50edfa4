package compress

import (
	"fmt"
	"sync"

	"github.com/pierrec/lz4/v4"

	"github.com/arloliu/cmpent/format"
)

// lz4CompressorPool pools lz4.Compressor instances; each carries a hash table
// that benefits from reuse.
var lz4CompressorPool = sync.Pool{
	New: func() any {
		return &lz4.Compressor{}
	},
}

// LZ4Codec provides LZ4 block compression for archive frames. It has the fastest
// decompression of the built-in codecs.
type LZ4Codec struct{}

var _ Codec = LZ4Codec{}

// NewLZ4Codec creates a new LZ4 codec.
func NewLZ4Codec() LZ4Codec {
	return LZ4Codec{}
}

// Type returns format.CompressionLZ4.
func (LZ4Codec) Type() format.CompressionType {
	return format.CompressionLZ4
}

// Compress appends the LZ4 block encoding of src to dst.
func (LZ4Codec) Compress(dst, src []byte) ([]byte, error) {
	if len(src) == 0 {
		return dst, nil
	}

	dst, start := grow(dst, lz4.CompressBlockBound(len(src)))

	lc, _ := lz4CompressorPool.Get().(*lz4.Compressor)
	defer lz4CompressorPool.Put(lc)

	n, err := lc.CompressBlock(src, dst[start:])
	if err != nil {
		return dst[:start], fmt.Errorf("lz4 compression failed: %w", err)
	}

	return dst[:start+n], nil
}

// Decompress appends the decoded form of the LZ4 block src to dst.
func (LZ4Codec) Decompress(dst, src []byte, size int) ([]byte, error) {
	if err := checkSize(size); err != nil {
		return dst, err
	}
	if len(src) == 0 {
		if size != 0 {
			return dst, sizeMismatch(format.CompressionLZ4, 0, size)
		}

		return dst, nil
	}

	out, start := grow(dst, size)
	n, err := lz4.UncompressBlock(src, out[start:])
	if err != nil {
		return dst, fmt.Errorf("lz4 decompression failed: %w", err)
	}
	if n != size {
		return dst, sizeMismatch(format.CompressionLZ4, n, size)
	}

	return out, nil
}
