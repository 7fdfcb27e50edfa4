package archive

import (
	"errors"
	"fmt"
	"io"
	"iter"

	"github.com/google/uuid"

	"github.com/arloliu/cmpent"
	"github.com/arloliu/cmpent/compress"
	"github.com/arloliu/cmpent/errs"
	"github.com/arloliu/cmpent/format"
	"github.com/arloliu/cmpent/internal/hash"
	"github.com/arloliu/cmpent/internal/options"
	"github.com/arloliu/cmpent/internal/pool"
)

// Reader reads compression entities from an archive stream.
//
// A Reader is not safe for concurrent use.
type Reader struct {
	r       io.Reader
	config  *ReaderConfig
	id      uuid.UUID
	comp    format.CompressionType
	hdr     [FrameHeaderSize]byte
	scratch *pool.ByteBuffer
	count   int
	err     error
}

// NewReader reads and validates the stream header from r.
//
// Returns:
//   - *Reader: the reader, positioned at the first frame
//   - error: errs.ErrTruncatedBuffer, errs.ErrInvalidMagic, errs.ErrUnsupportedArchive
//     or errs.ErrUnsupportedCodec
func NewReader(r io.Reader, opts ...ReaderOption) (*Reader, error) {
	config := &ReaderConfig{}
	if err := options.Apply(config, opts...); err != nil {
		return nil, err
	}

	var hdr [StreamHeaderSize]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return nil, fmt.Errorf("read archive header: %w", readError(err))
	}

	if magic := engine.Uint32(hdr[streamMagicOffset:]); magic != StreamMagic {
		return nil, fmt.Errorf("%w: archive magic 0x%08X", errs.ErrInvalidMagic, magic)
	}
	if v := engine.Uint16(hdr[streamVersionOffset:]); v != FormatVersion {
		return nil, fmt.Errorf("%w: version %d", errs.ErrUnsupportedArchive, v)
	}

	comp := format.CompressionType(engine.Uint16(hdr[streamCodecOffset:]))
	if _, err := compress.GetCodec(comp); err != nil {
		return nil, err
	}

	id, err := uuid.FromBytes(hdr[streamIDOffset:])
	if err != nil {
		return nil, fmt.Errorf("read archive header: %w", err)
	}

	return &Reader{
		r:      r,
		config: config,
		id:     id,
		comp:   comp,
	}, nil
}

// readError maps a short read to errs.ErrTruncatedBuffer.
func readError(err error) error {
	if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: %w", errs.ErrTruncatedBuffer, err)
	}

	return err
}

// ID returns the stream id.
func (r *Reader) ID() uuid.UUID {
	return r.id
}

// Compression returns the default compression type recorded in the stream header.
func (r *Reader) Compression() format.CompressionType {
	return r.comp
}

// Count returns the number of entities read.
func (r *Reader) Count() int {
	return r.count
}

// Next reads the next entity.
//
// The returned entity owns its buffer. Next returns io.EOF at the clean end of
// the stream; every other error is sticky.
//
// Returns:
//   - *cmpent.Entity: the parsed entity
//   - error: io.EOF, errs.ErrTruncatedBuffer, errs.ErrInvalidMagic,
//     errs.ErrUnsupportedCodec, errs.ErrInvalidSize, errs.ErrChecksumMismatch or
//     any error of cmpent.Parse
func (r *Reader) Next() (*cmpent.Entity, error) {
	if r.err != nil {
		return nil, r.err
	}

	ent, err := r.next()
	if err != nil {
		if err != io.EOF {
			err = fmt.Errorf("read frame %d: %w", r.count, err)
		}
		r.err = err

		return nil, err
	}
	r.count++

	return ent, nil
}

func (r *Reader) next() (*cmpent.Entity, error) {
	n, err := io.ReadFull(r.r, r.hdr[:])
	if err != nil {
		if n == 0 && errors.Is(err, io.EOF) {
			return nil, io.EOF
		}

		return nil, readError(err)
	}

	if magic := engine.Uint32(r.hdr[frameMagicOffset:]); magic != FrameMagic {
		return nil, fmt.Errorf("%w: frame magic 0x%08X", errs.ErrInvalidMagic, magic)
	}

	codec, err := compress.GetCodec(format.CompressionType(r.hdr[frameCodecOffset]))
	if err != nil {
		return nil, err
	}

	storedLen := int(engine.Uint32(r.hdr[frameStoredLenOffset:]))
	entityLen := int(engine.Uint32(r.hdr[frameEntityLenOffset:]))
	if entityLen < cmpent.GenericHeaderSize || entityLen > cmpent.MaxEntitySize || storedLen > cmpent.MaxEntitySize {
		return nil, fmt.Errorf("%w: stored %d bytes, entity %d bytes", errs.ErrInvalidSize, storedLen, entityLen)
	}

	var data []byte
	if codec.Type() == format.CompressionNone {
		if storedLen != entityLen {
			return nil, fmt.Errorf("%w: stored %d bytes, entity %d bytes", errs.ErrInvalidSize, storedLen, entityLen)
		}
		data = make([]byte, entityLen)
		if _, err := io.ReadFull(r.r, data); err != nil {
			return nil, readError(err)
		}
	} else {
		if r.scratch == nil {
			r.scratch = pool.GetFrameBuffer()
		}
		r.scratch.Reset()
		stored := r.scratch.Extend(storedLen)
		if _, err := io.ReadFull(r.r, stored); err != nil {
			return nil, readError(err)
		}

		data, err = codec.Decompress(make([]byte, 0, entityLen), stored, entityLen)
		if err != nil {
			return nil, err
		}
	}

	if sum := hash.Sum64(data); sum != engine.Uint64(r.hdr[frameChecksumOffset:]) {
		return nil, fmt.Errorf("%w: got 0x%016X", errs.ErrChecksumMismatch, sum)
	}

	ent, err := cmpent.Parse(data, r.config.parseOpts...)
	if err != nil {
		return nil, err
	}
	if int(ent.Size()) != entityLen {
		return nil, fmt.Errorf("%w: entity is %d bytes, frame holds %d", errs.ErrInvalidSize, ent.Size(), entityLen)
	}

	return ent, nil
}

// All returns an iterator over the remaining entities. Iteration stops after the
// first error, which is yielded with a nil entity; the clean end of the stream
// is not an error.
func (r *Reader) All() iter.Seq2[*cmpent.Entity, error] {
	return func(yield func(*cmpent.Entity, error) bool) {
		for {
			ent, err := r.Next()
			if err == io.EOF {
				return
			}
			if !yield(ent, err) || err != nil {
				return
			}
		}
	}
}

// Close releases the reader's buffers. It does not close the underlying reader.
func (r *Reader) Close() error {
	if r.scratch != nil {
		pool.PutFrameBuffer(r.scratch)
		r.scratch = nil
	}
	if r.err == nil {
		r.err = io.EOF
	}

	return nil
}
