package compress

import (
	"fmt"

	"github.com/klauspost/compress/s2"

	"github.com/arloliu/cmpent/format"
)

// S2Codec provides S2 block compression, a faster Snappy extension, for archive frames.
type S2Codec struct{}

var _ Codec = S2Codec{}

// NewS2Codec creates a new S2 codec.
func NewS2Codec() S2Codec {
	return S2Codec{}
}

// Type returns format.CompressionS2.
func (S2Codec) Type() format.CompressionType {
	return format.CompressionS2
}

// Compress appends the S2 block encoding of src to dst.
func (S2Codec) Compress(dst, src []byte) ([]byte, error) {
	bound := s2.MaxEncodedLen(len(src))
	if bound < 0 {
		return dst, fmt.Errorf("s2 compression failed: input of %d bytes is too large", len(src))
	}

	dst, start := grow(dst, bound)
	out := s2.Encode(dst[start:], src)

	return dst[:start+len(out)], nil
}

// Decompress appends the decoded form of the S2 block src to dst.
func (S2Codec) Decompress(dst, src []byte, size int) ([]byte, error) {
	if err := checkSize(size); err != nil {
		return dst, err
	}

	n, err := s2.DecodedLen(src)
	if err != nil {
		return dst, fmt.Errorf("s2 decompression failed: %w", err)
	}
	if n != size {
		return dst, sizeMismatch(format.CompressionS2, n, size)
	}

	out, start := grow(dst, size)
	if _, err := s2.Decode(out[start:], src); err != nil {
		return dst, fmt.Errorf("s2 decompression failed: %w", err)
	}

	return out, nil
}
