// Package archive stores sequences of compression entities in a framed stream.
//
// A stream starts with a 24-byte header and is followed by one frame per entity.
// Each frame records the codec applied to the entity bytes, the stored and
// original lengths and the xxHash64 of the entity, so a reader detects truncated,
// corrupted or foreign data before handing an entity out.
//
// # Stream Layout
//
// Stream header (big-endian):
//
//	Offset | Size | Field
//	-------|------|----------------------------------
//	0      | 4    | magic "CMPA"
//	4      | 2    | format version (1)
//	6      | 2    | default compression type
//	8      | 16   | stream id (UUID)
//
// Frame header:
//
//	Offset | Size | Field
//	-------|------|----------------------------------
//	0      | 4    | magic "CMPF"
//	4      | 1    | compression type of this frame
//	5      | 3    | reserved, zero
//	8      | 4    | stored length
//	12     | 4    | entity length
//	16     | 8    | xxHash64 of the entity bytes
//
// The stored body follows the frame header. A frame whose compressed body would
// not be smaller than the entity is stored uncompressed.
//
// # Usage
//
//	w, err := archive.NewWriter(f, archive.WithCompression(format.CompressionZstd))
//	if err != nil {
//	    return err
//	}
//	for _, ent := range entities {
//	    if err := w.Write(ent); err != nil {
//	        return err
//	    }
//	}
//	w.Close()
//
//	r, err := archive.NewReader(f)
//	if err != nil {
//	    return err
//	}
//	defer r.Close()
//	for ent, err := range r.All() {
//	    if err != nil {
//	        return err
//	    }
//	    process(ent)
//	}
package archive
