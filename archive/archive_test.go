package archive

import (
	"bytes"
	"errors"
	"io"
	"math/rand"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/cmpent"
	"github.com/arloliu/cmpent/errs"
	"github.com/arloliu/cmpent/format"
	"github.com/arloliu/cmpent/section"
)

var allCompressions = []format.CompressionType{
	format.CompressionNone,
	format.CompressionZstd,
	format.CompressionS2,
	format.CompressionLZ4,
}

// testEntities builds a mix of entities of every header variant.
func testEntities(t *testing.T) []*cmpent.Entity {
	t.Helper()

	rng := rand.New(rand.NewSource(42))
	types := []format.DataType{
		format.DataTypeImagette, format.DataTypeImagetteAdaptive, format.DataTypeOffset,
		format.DataTypeSFx, format.DataTypeFCamImagette, format.DataTypeChunk,
	}

	var ents []*cmpent.Entity
	for i, dt := range types {
		payload := make([]byte, 100*(i+1))
		if i%2 == 0 {
			rng.Read(payload) // incompressible
		}

		cfg := cmpent.Config{
			DataType:     dt,
			CmpMode:      format.CmpModeDiffZero,
			OriginalSize: uint32(4 * len(payload)),
			StartTime:    section.Timestamp{Coarse: uint32(1000 + i)},
			EndTime:      section.Timestamp{Coarse: uint32(1001 + i)},
			ModelID:      uint32(i),
		}
		switch {
		case dt.IsAdaptive():
			cfg.GolombPar, cfg.Spill = 4, 40
			cfg.AP1 = cmpent.Pair{Par: 5, Spill: 50}
			cfg.AP2 = cmpent.Pair{Par: 6, Spill: 60}
		case dt.IsImagette():
			cfg.GolombPar, cfg.Spill = 3, 30
		default:
			cfg.NonIma[0] = cmpent.Pair{Par: 7, Spill: 70}
		}

		ent, err := cmpent.Build(cfg, payload)
		require.NoError(t, err)
		ents = append(ents, ent)
	}

	return ents
}

func writeArchive(t *testing.T, ents []*cmpent.Entity, opts ...WriterOption) (*bytes.Buffer, *Writer) {
	t.Helper()

	var buf bytes.Buffer
	w, err := NewWriter(&buf, opts...)
	require.NoError(t, err)
	for _, ent := range ents {
		require.NoError(t, w.Write(ent))
	}
	require.NoError(t, w.Close())

	return &buf, w
}

func TestArchive_RoundTrip(t *testing.T) {
	ents := testEntities(t)

	for _, comp := range allCompressions {
		t.Run(comp.String(), func(t *testing.T) {
			buf, w := writeArchive(t, ents, WithCompression(comp))
			require.Equal(t, len(ents), w.Count())
			require.Equal(t, comp, w.Compression())

			r, err := NewReader(buf)
			require.NoError(t, err)
			defer r.Close()

			require.Equal(t, w.ID(), r.ID())
			require.Equal(t, comp, r.Compression())

			for i, want := range ents {
				got, err := r.Next()
				require.NoError(t, err, "entity %d", i)
				require.Equal(t, want.Bytes(), got.Bytes())
				require.Equal(t, want.Variant(), got.Variant())
				require.Equal(t, want.Checksum(), got.Checksum())
			}

			_, err = r.Next()
			require.ErrorIs(t, err, io.EOF)
			require.Equal(t, len(ents), r.Count())
		})
	}
}

func TestArchive_All(t *testing.T) {
	ents := testEntities(t)
	buf, _ := writeArchive(t, ents, WithCompression(format.CompressionS2))

	r, err := NewReader(buf)
	require.NoError(t, err)
	defer r.Close()

	var got []*cmpent.Entity
	for ent, err := range r.All() {
		require.NoError(t, err)
		got = append(got, ent)
	}
	require.Len(t, got, len(ents))
	for i := range ents {
		require.Equal(t, ents[i].Bytes(), got[i].Bytes())
	}
}

func TestArchive_AllStopsEarly(t *testing.T) {
	buf, _ := writeArchive(t, testEntities(t))

	r, err := NewReader(buf)
	require.NoError(t, err)

	n := 0
	for range r.All() {
		n++
		if n == 2 {
			break
		}
	}
	require.Equal(t, 2, n)

	// the iterator resumes where it stopped
	ent, err := r.Next()
	require.NoError(t, err)
	require.Equal(t, format.DataTypeOffset, ent.DataType())
}

func TestArchive_EmptyStream(t *testing.T) {
	buf, w := writeArchive(t, nil)
	require.Equal(t, 0, w.Count())
	require.Len(t, buf.Bytes(), StreamHeaderSize)

	r, err := NewReader(buf)
	require.NoError(t, err)
	_, err = r.Next()
	require.ErrorIs(t, err, io.EOF)
}

func TestArchive_StreamID(t *testing.T) {
	id := uuid.MustParse("6f1c2d9e-5a4b-4c3d-8e7f-102132435465")
	buf, w := writeArchive(t, nil, WithStreamID(id))
	require.Equal(t, id, w.ID())
	require.Equal(t, id[:], buf.Bytes()[streamIDOffset:streamIDOffset+16])

	r, err := NewReader(buf)
	require.NoError(t, err)
	require.Equal(t, id, r.ID())

	_, w1 := writeArchive(t, nil)
	_, w2 := writeArchive(t, nil)
	require.NotEqual(t, uuid.Nil, w1.ID())
	require.NotEqual(t, w1.ID(), w2.ID())
}

func TestArchive_IncompressibleFallsBackToNone(t *testing.T) {
	payload := make([]byte, 64*1024)
	rand.New(rand.NewSource(3)).Read(payload)
	random, err := cmpent.Build(cmpent.Config{
		DataType: format.DataTypeImagette,
		CmpMode:  format.CmpModeRaw,
		Raw:      true,
	}, payload)
	require.NoError(t, err)

	buf, _ := writeArchive(t, []*cmpent.Entity{random}, WithCompression(format.CompressionLZ4))

	frame := buf.Bytes()[StreamHeaderSize:]
	require.Equal(t, byte(format.CompressionNone), frame[frameCodecOffset])
	require.Equal(t, uint32(len(random.Bytes())), engine.Uint32(frame[frameStoredLenOffset:]))
	require.Len(t, buf.Bytes(), StreamHeaderSize+FrameHeaderSize+len(random.Bytes()))

	r, err := NewReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	ent, err := r.Next()
	require.NoError(t, err)
	require.Equal(t, random.Bytes(), ent.Bytes())
}

func TestArchive_CompressesZeroPayload(t *testing.T) {
	ent, err := cmpent.Build(cmpent.Config{
		DataType: format.DataTypeBackground,
		CmpMode:  format.CmpModeRaw,
		Raw:      true,
	}, make([]byte, 10000))
	require.NoError(t, err)

	buf, _ := writeArchive(t, []*cmpent.Entity{ent}, WithCompression(format.CompressionZstd))
	frame := buf.Bytes()[StreamHeaderSize:]
	require.Equal(t, byte(format.CompressionZstd), frame[frameCodecOffset])
	require.Less(t, int(engine.Uint32(frame[frameStoredLenOffset:])), 1000)
}

func TestNewWriter_Errors(t *testing.T) {
	_, err := NewWriter(io.Discard, WithCompression(format.CompressionType(9)))
	require.ErrorIs(t, err, errs.ErrUnsupportedCodec)

	_, err = NewWriter(failingWriter{})
	require.ErrorIs(t, err, errWrite)
}

type failingWriter struct{}

var errWrite = errors.New("write failed")

func (failingWriter) Write([]byte) (int, error) {
	return 0, errWrite
}

// failAfter accepts n writes and fails from then on.
type failAfter struct {
	n int
}

func (f *failAfter) Write(p []byte) (int, error) {
	if f.n == 0 {
		return 0, errWrite
	}
	f.n--

	return len(p), nil
}

func TestWriter_StickyError(t *testing.T) {
	ents := testEntities(t)
	w, err := NewWriter(&failAfter{n: 2})
	require.NoError(t, err)

	require.NoError(t, w.Write(ents[0]))
	require.ErrorIs(t, w.Write(ents[1]), errWrite)
	require.ErrorIs(t, w.Write(ents[2]), errWrite)
	require.Equal(t, 1, w.Count())
}

func TestWriter_WriteAfterClose(t *testing.T) {
	w, err := NewWriter(io.Discard)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.NoError(t, w.Close())
	require.Error(t, w.Write(testEntities(t)[0]))
}

func TestNewReader_Errors(t *testing.T) {
	valid, _ := writeArchive(t, nil)

	tests := []struct {
		name   string
		mutate func([]byte) []byte
		err    error
	}{
		{"empty", func([]byte) []byte { return nil }, errs.ErrTruncatedBuffer},
		{"short header", func(b []byte) []byte { return b[:StreamHeaderSize-1] }, errs.ErrTruncatedBuffer},
		{"bad magic", func(b []byte) []byte { b[0] = 'X'; return b }, errs.ErrInvalidMagic},
		{"bad version", func(b []byte) []byte { engine.PutUint16(b[streamVersionOffset:], 2); return b }, errs.ErrUnsupportedArchive},
		{"bad codec", func(b []byte) []byte { engine.PutUint16(b[streamCodecOffset:], 77); return b }, errs.ErrUnsupportedCodec},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := tt.mutate(bytes.Clone(valid.Bytes()))
			_, err := NewReader(bytes.NewReader(data))
			require.ErrorIs(t, err, tt.err)
		})
	}
}

func TestReader_FrameErrors(t *testing.T) {
	ents := testEntities(t)[:1]
	valid, _ := writeArchive(t, ents, WithCompression(format.CompressionNone))
	frameStart := StreamHeaderSize
	bodyStart := StreamHeaderSize + FrameHeaderSize

	tests := []struct {
		name   string
		mutate func([]byte) []byte
		err    error
	}{
		{"truncated frame header", func(b []byte) []byte { return b[:frameStart+10] }, errs.ErrTruncatedBuffer},
		{"truncated body", func(b []byte) []byte { return b[:len(b)-1] }, errs.ErrTruncatedBuffer},
		{"bad frame magic", func(b []byte) []byte { b[frameStart] ^= 0xFF; return b }, errs.ErrInvalidMagic},
		{"bad frame codec", func(b []byte) []byte { b[frameStart+frameCodecOffset] = 0x7F; return b }, errs.ErrUnsupportedCodec},
		{"corrupted body", func(b []byte) []byte { b[len(b)-1] ^= 0x01; return b }, errs.ErrChecksumMismatch},
		{"corrupted checksum", func(b []byte) []byte { b[frameStart+frameChecksumOffset] ^= 0x01; return b }, errs.ErrChecksumMismatch},
		{
			"entity length too small",
			func(b []byte) []byte { engine.PutUint32(b[frameStart+frameEntityLenOffset:], 8); return b },
			errs.ErrInvalidSize,
		},
		{
			"stored length differs",
			func(b []byte) []byte {
				engine.PutUint32(b[frameStart+frameStoredLenOffset:], engine.Uint32(b[frameStart+frameStoredLenOffset:])-1)
				return b
			},
			errs.ErrInvalidSize,
		},
		{
			"entity size field differs",
			func(b []byte) []byte {
				// a shorter entity inside a correctly checksummed frame
				_ = section.FieldEntitySize.Put(b[bodyStart:], uint32(len(b)-bodyStart-1))
				engine.PutUint64(b[frameStart+frameChecksumOffset:], checksum(b[bodyStart:]))
				return b
			},
			errs.ErrInvalidSize,
		},
		{
			"invalid entity",
			func(b []byte) []byte {
				_ = section.FieldDataType.Put(b[bodyStart:], 0)
				engine.PutUint64(b[frameStart+frameChecksumOffset:], checksum(b[bodyStart:]))
				return b
			},
			errs.ErrUnsupportedDataType,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := tt.mutate(bytes.Clone(valid.Bytes()))
			r, err := NewReader(bytes.NewReader(data))
			require.NoError(t, err)

			_, err = r.Next()
			require.ErrorIs(t, err, tt.err)

			// errors are sticky
			_, err2 := r.Next()
			require.Equal(t, err, err2)
		})
	}
}

func TestReader_CorruptedCompressedBody(t *testing.T) {
	ent, err := cmpent.Build(cmpent.Config{
		DataType: format.DataTypeSmearing,
		CmpMode:  format.CmpModeRaw,
	}, bytes.Repeat([]byte("smear"), 2000))
	require.NoError(t, err)

	for _, comp := range allCompressions[1:] {
		t.Run(comp.String(), func(t *testing.T) {
			buf, _ := writeArchive(t, []*cmpent.Entity{ent}, WithCompression(comp))
			data := buf.Bytes()
			data[StreamHeaderSize+FrameHeaderSize+2] ^= 0x55

			r, err := NewReader(bytes.NewReader(data))
			require.NoError(t, err)
			_, err = r.Next()
			require.Error(t, err)
		})
	}
}

func TestReader_WithParseOptions(t *testing.T) {
	ent, err := cmpent.Build(cmpent.Config{
		DataType: format.DataTypeImagette,
		CmpMode:  format.CmpModeRaw,
	}, []byte{1}, cmpent.WithVersionID(cmpent.ToolVersionID(3, 0)))
	require.NoError(t, err)

	buf, _ := writeArchive(t, []*cmpent.Entity{ent})
	data := buf.Bytes()

	r, err := NewReader(bytes.NewReader(data))
	require.NoError(t, err)
	_, err = r.Next()
	require.ErrorIs(t, err, errs.ErrUnsupportedVersion)

	r, err = NewReader(bytes.NewReader(data), WithParseOptions(cmpent.WithMaxToolMajor(3)))
	require.NoError(t, err)
	got, err := r.Next()
	require.NoError(t, err)
	require.Equal(t, ent.Bytes(), got.Bytes())
}

func TestReader_EntitiesOwnTheirBuffers(t *testing.T) {
	ents := testEntities(t)
	buf, _ := writeArchive(t, ents, WithCompression(format.CompressionLZ4))

	r, err := NewReader(buf)
	require.NoError(t, err)
	defer r.Close()

	var got []*cmpent.Entity
	for ent, err := range r.All() {
		require.NoError(t, err)
		got = append(got, ent)
	}

	// later frames must not overwrite earlier entities
	for i := range ents {
		require.Equal(t, ents[i].Bytes(), got[i].Bytes())
	}
}
