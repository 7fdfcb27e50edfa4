package compress

import (
	"fmt"

	"github.com/arloliu/cmpent/errs"
	"github.com/arloliu/cmpent/format"
)

// MaxDecompressedSize bounds the output of Decompress. It matches the largest
// compression entity.
const MaxDecompressedSize = 1<<24 - 1

// Codec compresses and decompresses archive frame bodies.
//
// Both operations append to dst and return the extended slice, so callers can
// reuse pooled buffers. src and dst must not overlap.
type Codec interface {
	// Type returns the compression type recorded in archive frames.
	Type() format.CompressionType

	// Compress appends the compressed form of src to dst.
	Compress(dst, src []byte) ([]byte, error)

	// Decompress appends the decompressed form of src to dst.
	//
	// size is the expected decompressed length. Returns an error wrapping
	// errs.ErrDecompressedSizeDiff if the output length differs.
	Decompress(dst, src []byte, size int) ([]byte, error)
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone: NewNoOpCodec(),
	format.CompressionZstd: NewZstdCodec(),
	format.CompressionS2:   NewS2Codec(),
	format.CompressionLZ4:  NewLZ4Codec(),
}

// GetCodec retrieves the built-in Codec for the specified compression type.
//
// Returns:
//   - Codec: shared codec, safe for concurrent use
//   - error: errs.ErrUnsupportedCodec for an unknown type
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("%w: %s", errs.ErrUnsupportedCodec, compressionType)
}

// checkSize validates a decompression size before any output is produced.
func checkSize(size int) error {
	if size < 0 || size > MaxDecompressedSize {
		return fmt.Errorf("%w: %d bytes", errs.ErrDecompressedSizeDiff, size)
	}

	return nil
}

// sizeMismatch reports decompressed output whose length differs from the frame.
func sizeMismatch(codec format.CompressionType, got, want int) error {
	return fmt.Errorf("%w: %s produced %d bytes, want %d", errs.ErrDecompressedSizeDiff, codec, got, want)
}

// grow extends dst by n bytes and returns the extended slice and the start of
// the new region.
func grow(dst []byte, n int) ([]byte, int) {
	start := len(dst)
	if cap(dst)-start < n {
		buf := make([]byte, start, start+n)
		copy(buf, dst)
		dst = buf
	}

	return dst[:start+n], start
}
