package compress

import "github.com/arloliu/cmpent/format"

// NoOpCodec stores frame bodies uncompressed.
//
// Compression entity payloads are usually already entropy coded, so this is the
// default archive codec.
type NoOpCodec struct{}

var _ Codec = NoOpCodec{}

// NewNoOpCodec creates a codec that copies data unchanged.
func NewNoOpCodec() NoOpCodec {
	return NoOpCodec{}
}

// Type returns format.CompressionNone.
func (NoOpCodec) Type() format.CompressionType {
	return format.CompressionNone
}

// Compress appends src to dst.
func (NoOpCodec) Compress(dst, src []byte) ([]byte, error) {
	return append(dst, src...), nil
}

// Decompress appends src to dst after checking its length against size.
func (NoOpCodec) Decompress(dst, src []byte, size int) ([]byte, error) {
	if len(src) != size {
		return dst, sizeMismatch(format.CompressionNone, len(src), size)
	}

	return append(dst, src...), nil
}
