package section

import (
	"github.com/arloliu/cmpent/errs"
	"github.com/arloliu/cmpent/format"
)

// GenericHeader represents the fixed-size header at the start of every compression entity.
type GenericHeader struct {
	// VersionID identifies the software that produced the entity. Bit 31 marks a
	// ground tool version, see ToolVersionIDBit.
	VersionID uint32 // byte offset 0-3
	// EntitySize is the total entity size in bytes, header and payload. 24 bits.
	EntitySize uint32 // byte offset 4-6
	// OriginalSize is the size of the uncompressed data in bytes. 24 bits.
	OriginalSize uint32 // byte offset 7-9
	// StartTime is the compression start timestamp.
	StartTime Timestamp // byte offset 10-15
	// EndTime is the compression end timestamp.
	EndTime Timestamp // byte offset 16-21
	// DataType is the data product type. 15 bits.
	DataType format.DataType // byte offset 22-23, bits 0-14
	// Raw is set when the payload is the original data stored verbatim.
	Raw bool // byte offset 22-23, bit 15
	// CmpMode is the compression mode used.
	CmpMode format.CompressionMode // byte offset 24
	// ModelValue is the model updating weight used.
	ModelValue uint8 // byte offset 25
	// ModelID identifies the model the data was compressed against.
	ModelID uint16 // byte offset 26-27
	// ModelCounter counts the model updates of ModelID.
	ModelCounter uint8 // byte offset 28
	// MaxUsedBitsVersion selects the max-used-bits registry that applied.
	MaxUsedBitsVersion uint8 // byte offset 29
	// LossyCmpPar is the lossy rounding parameter used.
	LossyCmpPar uint16 // byte offset 30-31
}

// Parse parses the header from a byte slice.
//
// Parameters:
//   - data: Byte slice starting with the header (at least GenericHeaderSize bytes)
//
// Returns:
//   - error: ErrTruncatedBuffer if data is shorter than the header
func (h *GenericHeader) Parse(data []byte) error {
	if len(data) < GenericHeaderSize {
		return errs.NewFieldError("generic_header", 0, errs.ErrTruncatedBuffer)
	}

	h.VersionID = FieldVersionID.Get(data)
	h.EntitySize = FieldEntitySize.Get(data)
	h.OriginalSize = FieldOriginalSize.Get(data)
	h.StartTime = DecodeTimestamp(data[StartTimestampOffset:])
	h.EndTime = DecodeTimestamp(data[EndTimestampOffset:])
	h.DataType = format.DataType(FieldDataType.Get(data))
	h.Raw = FieldRawBit.Get(data) != 0
	h.CmpMode = format.CompressionMode(data[CmpModeOffset])
	h.ModelValue = data[ModelValueOffset]
	h.ModelID = uint16(FieldModelID.Get(data))
	h.ModelCounter = data[ModelCounterOffset]
	h.MaxUsedBitsVersion = data[MaxUsedBitsVersionOffset]
	h.LossyCmpPar = uint16(FieldLossyCmpPar.Get(data))

	return nil
}

// Put writes the header into b[0:GenericHeaderSize].
//
// Returns:
//   - error: *errs.FieldError wrapping ErrFieldOutOfRange if a 24-bit size or the
//     15-bit data type does not fit
func (h *GenericHeader) Put(b []byte) error {
	_ = b[GenericHeaderSize-1] // bounds check hint to compiler

	if err := FieldEntitySize.Check(h.EntitySize); err != nil {
		return err
	}
	if err := FieldOriginalSize.Check(h.OriginalSize); err != nil {
		return err
	}
	if err := FieldDataType.Check(uint32(h.DataType)); err != nil {
		return err
	}

	dataType := uint16(h.DataType)
	if h.Raw {
		dataType |= RawBitMask
	}

	engine.PutUint32(b[VersionIDOffset:], h.VersionID)
	_ = FieldEntitySize.Put(b, h.EntitySize)
	_ = FieldOriginalSize.Put(b, h.OriginalSize)
	h.StartTime.Encode(b[StartTimestampOffset:])
	h.EndTime.Encode(b[EndTimestampOffset:])
	engine.PutUint16(b[DataTypeOffset:], dataType)
	b[CmpModeOffset] = byte(h.CmpMode)
	b[ModelValueOffset] = h.ModelValue
	engine.PutUint16(b[ModelIDOffset:], h.ModelID)
	b[ModelCounterOffset] = h.ModelCounter
	b[MaxUsedBitsVersionOffset] = h.MaxUsedBitsVersion
	engine.PutUint16(b[LossyCmpParOffset:], h.LossyCmpPar)

	return nil
}

// Bytes serializes the GenericHeader into a new byte slice.
// Out-of-range sizes are truncated to 24 bits.
func (h *GenericHeader) Bytes() []byte {
	b := make([]byte, GenericHeaderSize)
	hdr := *h
	hdr.EntitySize &= FieldEntitySize.Mask
	hdr.OriginalSize &= FieldOriginalSize.Mask
	hdr.DataType &= DataTypeMask
	_ = hdr.Put(b)

	return b
}

// IsToolVersion reports whether the version id was generated by the ground tool.
func (h *GenericHeader) IsToolVersion() bool {
	return h.VersionID&ToolVersionIDBit != 0
}

// Variant resolves the specific header variant announced by the header.
func (h *GenericHeader) Variant() (Variant, error) {
	return ResolveVariant(h.DataType, h.CmpMode)
}

// ParseGenericHeader parses a GenericHeader from a byte slice.
//
// Parameters:
//   - data: Byte slice containing header (must be at least GenericHeaderSize bytes)
//
// Returns:
//   - GenericHeader: Parsed header struct
//   - error: ErrTruncatedBuffer if data is too short
func ParseGenericHeader(data []byte) (GenericHeader, error) {
	h := GenericHeader{}
	if err := h.Parse(data); err != nil {
		return GenericHeader{}, err
	}

	return h, nil
}
