package compress

import "github.com/arloliu/cmpent/format"

// ZstdCodec provides Zstandard compression for archive frames.
//
// It gives the best ratio of the built-in codecs and suits archives kept for
// long-term storage. The implementation is pure Go by default; building with the
// cgo_zstd tag switches to the libzstd binding.
type ZstdCodec struct{}

var _ Codec = ZstdCodec{}

// NewZstdCodec creates a new Zstd codec with default settings.
//
// Example:
//
//	codec := NewZstdCodec()
//	compressed, err := codec.Compress(nil, entity.Bytes())
//	if err != nil {
//		return err
//	}
func NewZstdCodec() ZstdCodec {
	return ZstdCodec{}
}

// Type returns format.CompressionZstd.
func (ZstdCodec) Type() format.CompressionType {
	return format.CompressionZstd
}
