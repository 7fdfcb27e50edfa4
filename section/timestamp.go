package section

import (
	"time"

	"github.com/arloliu/cmpent/errs"
)

const (
	// TimestampSize is the packed size of a timestamp in bytes.
	TimestampSize = 6
	// MaxTimestampValue is the largest combined 48-bit timestamp value.
	MaxTimestampValue = 1<<48 - 1
	// FineTicksPerSecond is the resolution of the fine time part.
	FineTicksPerSecond = 1 << 16
)

// Epoch is the reference time of the coarse timestamp part.
var Epoch = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// Timestamp is a coarse+fine time pair bounding an acquisition interval.
type Timestamp struct {
	// Coarse is the number of seconds since Epoch.
	Coarse uint32 `json:"coarse"`
	// Fine is the sub-second part in units of 1/65536 s.
	Fine uint16 `json:"fine"`
}

// NewTimestamp converts t to a Timestamp. Times before Epoch clamp to zero and
// times past the coarse range clamp to the maximum.
func NewTimestamp(t time.Time) Timestamp {
	d := t.Sub(Epoch)
	if d <= 0 {
		return Timestamp{}
	}

	secs := int64(d / time.Second)
	if secs > int64(^uint32(0)) {
		return Timestamp{Coarse: ^uint32(0), Fine: ^uint16(0)}
	}
	nanos := int64(d % time.Second)

	return Timestamp{
		Coarse: uint32(secs),
		Fine:   uint16(nanos * FineTicksPerSecond / int64(time.Second)),
	}
}

// TimestampFromValue splits a combined 48-bit value into its coarse and fine parts.
//
// Returns:
//   - Timestamp: the decoded timestamp
//   - error: ErrFieldOutOfRange if v does not fit in 48 bits
func TimestampFromValue(v uint64) (Timestamp, error) {
	if v > MaxTimestampValue {
		return Timestamp{}, errs.ErrFieldOutOfRange
	}

	return Timestamp{Coarse: uint32(v >> 16), Fine: uint16(v)}, nil
}

// Value returns the combined 48-bit representation, coarse in the upper 32 bits.
func (ts Timestamp) Value() uint64 {
	return uint64(ts.Coarse)<<16 | uint64(ts.Fine)
}

// Time converts the timestamp to wall-clock time.
func (ts Timestamp) Time() time.Time {
	nanos := int64(ts.Fine) * int64(time.Second) / FineTicksPerSecond

	return Epoch.Add(time.Duration(ts.Coarse)*time.Second + time.Duration(nanos))
}

// Before reports whether ts is strictly earlier than other.
func (ts Timestamp) Before(other Timestamp) bool {
	return ts.Value() < other.Value()
}

// Sub returns the duration ts-other in seconds.
func (ts Timestamp) Sub(other Timestamp) float64 {
	return (float64(ts.Value()) - float64(other.Value())) / FineTicksPerSecond
}

// Encode writes the packed timestamp into b[0:6].
func (ts Timestamp) Encode(b []byte) {
	_ = b[TimestampSize-1] // bounds check hint to compiler
	engine.PutUint32(b[0:4], ts.Coarse)
	engine.PutUint16(b[4:6], ts.Fine)
}

// Append appends the packed timestamp to b.
func (ts Timestamp) Append(b []byte) []byte {
	b = engine.AppendUint32(b, ts.Coarse)
	return engine.AppendUint16(b, ts.Fine)
}

// DecodeTimestamp reads a packed timestamp from b[0:6].
func DecodeTimestamp(b []byte) Timestamp {
	_ = b[TimestampSize-1] // bounds check hint to compiler

	return Timestamp{
		Coarse: engine.Uint32(b[0:4]),
		Fine:   engine.Uint16(b[4:6]),
	}
}
