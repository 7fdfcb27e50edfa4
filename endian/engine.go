// Package endian provides byte order utilities for the compression entity wire format.
//
// The entity header is shared with a hardware compression unit and is always
// big-endian. This package wraps encoding/binary so that the header code reads
// and writes through a single EndianEngine, and adds the 24-bit accessors the
// size and spillover fields need.
//
// # Basic Usage
//
//	engine := endian.GetBigEndianEngine()
//	engine.PutUint32(b[0:4], versionID)
//	endian.PutUint24(engine, b[4:7], size)
//
// # Thread Safety
//
// All functions and methods in this package are safe for concurrent use.
// The returned EndianEngine instances are immutable and stateless.
package endian

import (
	"encoding/binary"
)

// MaxUint24 is the largest value a 24-bit field can hold.
const MaxUint24 = 1<<24 - 1

// EndianEngine combines ByteOrder and AppendByteOrder interfaces from encoding/binary
// into a single interface for convenient byte order operations.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetBigEndianEngine returns the big-endian engine used by the entity wire format.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// IsBigEndian reports whether engine writes the most significant byte first.
func IsBigEndian(engine EndianEngine) bool {
	return engine == binary.BigEndian
}

// Uint24 reads a 24-bit unsigned integer from b[0:3] in the byte order of engine.
func Uint24(engine EndianEngine, b []byte) uint32 {
	_ = b[2] // bounds check hint to compiler
	if IsBigEndian(engine) {
		return uint32(b[2]) | uint32(b[1])<<8 | uint32(b[0])<<16
	}

	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16
}

// PutUint24 writes the low 24 bits of v into b[0:3] in the byte order of engine.
func PutUint24(engine EndianEngine, b []byte, v uint32) {
	_ = b[2] // bounds check hint to compiler
	if IsBigEndian(engine) {
		b[0] = byte(v >> 16)
		b[1] = byte(v >> 8)
		b[2] = byte(v)

		return
	}

	b[0] = byte(v)
	b[1] = byte(v >> 8)
	b[2] = byte(v >> 16)
}
