// Package compress provides the codecs applied to compression entities stored in
// an archive.
//
// Entity payloads are produced by the on-board entropy coder and rarely shrink
// further, but the headers, raw-mode entities and long runs of similar entities
// do. The archive writer applies one codec to every frame body:
//   - None: no compression, the default
//   - Zstd: best ratio, for long-term storage
//   - S2: balanced speed and ratio
//   - LZ4: fastest decompression
//
// # Usage
//
//	codec, err := compress.GetCodec(format.CompressionZstd)
//	if err != nil {
//	    return err
//	}
//	body, err := codec.Compress(buf[:0], ent.Bytes())
//	...
//	raw, err := codec.Decompress(nil, body, len(ent.Bytes()))
//
// Decompress takes the expected output size from the frame header, so corrupted
// frames are rejected without unbounded allocation.
//
// # Build Tags
//
// The Zstd codec uses github.com/klauspost/compress/zstd. Building with
// -tags cgo_zstd switches it to the libzstd binding github.com/valyala/gozstd.
//
// # Thread Safety
//
// All codecs are stateless values backed by pooled encoders and are safe for
// concurrent use.
package compress
