//go:build !cgo_zstd

package compress

import (
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"

	"github.com/arloliu/cmpent/format"
)

// zstdDecoderPool pools zstd decoders for reuse; the decoder runs without
// allocations after a warmup.
var zstdDecoderPool = sync.Pool{
	New: func() any {
		decoder, err := zstd.NewReader(nil,
			zstd.WithDecoderConcurrency(1),
			zstd.WithDecoderLowmem(false),
			zstd.WithDecoderMaxMemory(MaxDecompressedSize),
		)
		if err != nil {
			// This should never happen with valid options
			panic(fmt.Sprintf("failed to create zstd decoder for pool: %v", err))
		}

		return decoder
	},
}

// zstdEncoderPool pools zstd encoders for reuse.
var zstdEncoderPool = sync.Pool{
	New: func() any {
		encoder, err := zstd.NewWriter(nil,
			zstd.WithEncoderLevel(zstd.SpeedDefault),
			zstd.WithEncoderCRC(false), // frames carry their own xxhash
		)
		if err != nil {
			// This should never happen with valid options
			panic(fmt.Sprintf("failed to create zstd encoder for pool: %v", err))
		}

		return encoder
	},
}

// Compress appends the Zstandard compressed form of src to dst.
func (ZstdCodec) Compress(dst, src []byte) ([]byte, error) {
	encoder, _ := zstdEncoderPool.Get().(*zstd.Encoder)
	defer zstdEncoderPool.Put(encoder)

	return encoder.EncodeAll(src, dst), nil
}

// Decompress appends the decompressed form of src to dst.
func (ZstdCodec) Decompress(dst, src []byte, size int) ([]byte, error) {
	if err := checkSize(size); err != nil {
		return dst, err
	}

	decoder, _ := zstdDecoderPool.Get().(*zstd.Decoder)
	defer zstdDecoderPool.Put(decoder)

	start := len(dst)
	if cap(dst)-start < size {
		dst, _ = grow(dst, size)
		dst = dst[:start]
	}

	out, err := decoder.DecodeAll(src, dst)
	if err != nil {
		return dst, fmt.Errorf("zstd decompression failed: %w", err)
	}
	if n := len(out) - start; n != size {
		return dst, sizeMismatch(format.CompressionZstd, n, size)
	}

	return out, nil
}
