package archive

import (
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/arloliu/cmpent"
	"github.com/arloliu/cmpent/format"
	"github.com/arloliu/cmpent/internal/options"
	"github.com/arloliu/cmpent/internal/pool"
)

var errWriterClosed = errors.New("archive writer is closed")

// Writer writes compression entities to an archive stream.
//
// A Writer is not safe for concurrent use.
type Writer struct {
	w      io.Writer
	config *WriterConfig
	buf    *pool.ByteBuffer
	count  int
	err    error
}

// NewWriter writes the stream header to w and returns a Writer for the frames.
//
// Parameters:
//   - w: destination stream
//   - opts: writer options, see WithCompression and WithStreamID
//
// Returns:
//   - *Writer: the writer
//   - error: an invalid option or the error of writing the stream header
func NewWriter(w io.Writer, opts ...WriterOption) (*Writer, error) {
	config := newWriterConfig()
	if err := options.Apply(config, opts...); err != nil {
		return nil, err
	}
	if config.id == uuid.Nil {
		config.id = uuid.New()
	}

	var hdr [StreamHeaderSize]byte
	engine.PutUint32(hdr[streamMagicOffset:], StreamMagic)
	engine.PutUint16(hdr[streamVersionOffset:], FormatVersion)
	engine.PutUint16(hdr[streamCodecOffset:], uint16(config.codec.Type()))
	copy(hdr[streamIDOffset:], config.id[:])

	if _, err := w.Write(hdr[:]); err != nil {
		return nil, fmt.Errorf("write archive header: %w", err)
	}

	return &Writer{
		w:      w,
		config: config,
		buf:    pool.GetFrameBuffer(),
	}, nil
}

// ID returns the stream id.
func (w *Writer) ID() uuid.UUID {
	return w.config.id
}

// Compression returns the compression type applied to frame bodies.
func (w *Writer) Compression() format.CompressionType {
	return w.config.codec.Type()
}

// Count returns the number of entities written.
func (w *Writer) Count() int {
	return w.count
}

// Write appends one entity frame to the stream.
//
// The frame is stored uncompressed when the codec does not make it smaller.
// After a write error every later call returns the same error.
func (w *Writer) Write(ent *cmpent.Entity) error {
	if w.err != nil {
		return w.err
	}

	data := ent.Bytes()
	codec := w.config.codec

	w.buf.Reset()
	hdr := w.buf.Extend(FrameHeaderSize)
	clear(hdr)

	body, err := codec.Compress(w.buf.B, data)
	if err != nil {
		return fmt.Errorf("compress frame %d: %w", w.count, err)
	}
	w.buf.B = body

	compType := codec.Type()
	storedLen := w.buf.Len() - FrameHeaderSize
	if storedLen >= len(data) && compType != format.CompressionNone {
		compType = format.CompressionNone
		storedLen = len(data)
		w.buf.B = append(w.buf.B[:FrameHeaderSize], data...)
	}

	hdr = w.buf.B[:FrameHeaderSize]
	engine.PutUint32(hdr[frameMagicOffset:], FrameMagic)
	hdr[frameCodecOffset] = byte(compType)
	engine.PutUint32(hdr[frameStoredLenOffset:], uint32(storedLen))
	engine.PutUint32(hdr[frameEntityLenOffset:], uint32(len(data)))
	engine.PutUint64(hdr[frameChecksumOffset:], ent.Checksum())

	if _, err := w.buf.WriteTo(w.w); err != nil {
		w.err = fmt.Errorf("write frame %d: %w", w.count, err)
		return w.err
	}
	w.count++

	return nil
}

// Close releases the writer's buffer. It does not close the underlying writer.
func (w *Writer) Close() error {
	if w.buf != nil {
		pool.PutFrameBuffer(w.buf)
		w.buf = nil
	}
	if w.err == nil {
		w.err = errWriterClosed
	}

	return nil
}
