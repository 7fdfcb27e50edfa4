// Package cmpent builds and parses compression entities: self-describing binary
// containers that pair compressed instrument data with the header a decompressor
// needs to read it back.
//
// An entity is one contiguous buffer holding a 32-byte generic header, a specific
// header whose shape depends on the data product type, and the compressed (or raw)
// payload. Every field is big-endian and bit-exact with the format used by the
// hardware compression unit.
//
// # Core Features
//
//   - Build entities from a Config and a payload with a single allocation
//   - Parse stored or received buffers with eager structural validation
//   - Get/set accessors for every header field, range checked against its bit width
//   - Variant-specific accessors that refuse fields outside the entity's header variant
//   - Diagnostic dump of every applicable field
//
// # Basic Usage
//
// Building an imagette entity:
//
//	cfg := cmpent.Config{
//	    DataType:     format.DataTypeImagette,
//	    CmpMode:      format.CmpModeDiffZero,
//	    OriginalSize: 1024,
//	    StartTime:    section.Timestamp{Coarse: 100},
//	    EndTime:      section.Timestamp{Coarse: 105},
//	    GolombPar:    5,
//	    Spill:        64,
//	}
//	ent, err := cmpent.Build(cfg, compressed)
//	if err != nil {
//	    return err
//	}
//	send(ent.Bytes())
//
// Parsing it back:
//
//	ent, err := cmpent.Parse(received)
//	if err != nil {
//	    return err
//	}
//	golomb, err := ent.ImaGolombPar()
//
// # Header Variants
//
// Imagette data types carry one Golomb parameter and spillover threshold, their
// adaptive counterparts add two more pairs, and every other data type carries six
// parameter pairs. Accessors for fields outside the entity's variant return an
// error wrapping errs.ErrFieldNotApplicable.
//
// # Thread Safety
//
// An Entity is not synchronized. Concurrent readers are safe; setters must be
// serialized by the caller.
package cmpent

import (
	"errors"

	"github.com/arloliu/cmpent/errs"
	"github.com/arloliu/cmpent/format"
	"github.com/arloliu/cmpent/section"
)

// entity size limits
const (
	GenericHeaderSize = section.GenericHeaderSize
	MaxEntitySize     = section.MaxEntitySize
)

// tool version written into entities built by this package
const (
	ToolVersionMajor = 1
	ToolVersionMinor = 0
)

// DefaultVersionID is the version id Build writes unless WithVersionID is given.
var DefaultVersionID = ToolVersionID(ToolVersionMajor, ToolVersionMinor)

// ToolVersionID returns the version id of a ground tool version major.minor.
// The major version is truncated to 15 bits.
func ToolVersionID(major, minor uint16) uint32 {
	return section.ToolVersionIDBit | uint32(major&section.ToolVersionMajorMax)<<16 | uint32(minor)
}

// IsToolVersionID reports whether id was generated by ToolVersionID rather than
// by the instrument software.
func IsToolVersionID(id uint32) bool {
	return id&section.ToolVersionIDBit != 0
}

// SplitToolVersionID returns the major and minor version of a tool version id.
func SplitToolVersionID(id uint32) (major, minor uint16) {
	return uint16(id>>16) & section.ToolVersionMajorMax, uint16(id)
}

// CalHeaderSize returns the total header size, generic plus specific, of an entity
// with the given data type and compression mode. The raw bit does not affect it.
//
// Returns:
//   - int: header size in bytes
//   - error: ErrUnsupportedDataType or ErrUnsupportedCmpMode
func CalHeaderSize(dataType format.DataType, mode format.CompressionMode) (int, error) {
	generic, specific, err := section.HeaderSize(dataType, mode)
	if err != nil {
		return 0, wrapVariantError(err)
	}

	return generic + specific, nil
}

// wrapVariantError attaches the offending header field to a variant resolution error.
func wrapVariantError(err error) error {
	switch {
	case errors.Is(err, errs.ErrUnsupportedDataType):
		return errs.NewFieldError(section.FieldDataType.Name, section.DataTypeOffset, err)
	case errors.Is(err, errs.ErrUnsupportedCmpMode):
		return errs.NewFieldError(section.FieldCmpMode.Name, section.CmpModeOffset, err)
	default:
		return err
	}
}
