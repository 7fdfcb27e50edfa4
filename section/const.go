package section

import "github.com/arloliu/cmpent/endian"

// header section sizes in bytes
const (
	GenericHeaderSize = 32 // fixed generic header size shared by all entities

	SpecificImagetteHeaderSize         = 4  // golomb parameter, spillover threshold, spare
	SpecificImagetteAdaptiveHeaderSize = 12 // imagette pair plus two adaptive pairs and spares
	SpecificNonImagetteHeaderSize      = 32 // six parameter pairs and a spare

	ImagetteHeaderSize         = GenericHeaderSize + SpecificImagetteHeaderSize
	ImagetteAdaptiveHeaderSize = GenericHeaderSize + SpecificImagetteAdaptiveHeaderSize
	NonImagetteHeaderSize      = GenericHeaderSize + SpecificNonImagetteHeaderSize

	MaxEntitySize = endian.MaxUint24 // the entity size field is 24 bits wide
)

// generic header byte offsets
const (
	VersionIDOffset          = 0  // 4 bytes
	EntitySizeOffset         = 4  // 3 bytes
	OriginalSizeOffset       = 7  // 3 bytes
	StartTimestampOffset     = 10 // 6 bytes, coarse then fine
	EndTimestampOffset       = 16 // 6 bytes, coarse then fine
	DataTypeOffset           = 22 // 2 bytes, bit 15 is the raw bit
	CmpModeOffset            = 24 // 1 byte
	ModelValueOffset         = 25 // 1 byte
	ModelIDOffset            = 26 // 2 bytes
	ModelCounterOffset       = 28 // 1 byte
	MaxUsedBitsVersionOffset = 29 // 1 byte
	LossyCmpParOffset        = 30 // 2 bytes
)

// specific header byte offsets
const (
	SpecificHeaderOffset = GenericHeaderSize

	ImaSpillOffset     = SpecificHeaderOffset     // 2 bytes
	ImaGolombParOffset = SpecificHeaderOffset + 2 // 1 byte
	ImaSpare1Offset    = SpecificHeaderOffset + 3 // 1 byte, imagette only

	AP1SpillOffset     = SpecificHeaderOffset + 3 // 2 bytes
	AP1GolombParOffset = SpecificHeaderOffset + 5 // 1 byte
	AP2SpillOffset     = SpecificHeaderOffset + 6 // 2 bytes
	AP2GolombParOffset = SpecificHeaderOffset + 8 // 1 byte

	AdaptiveSpareOffset = SpecificHeaderOffset + 9 // 3 bytes, spare2 and spare3

	NonImaPairSize    = 5                         // 24-bit spillover threshold then 16-bit parameter
	NonImaPairCount   = 6                         // number of parameter pairs
	NonImaSpareOffset = SpecificHeaderOffset + 30 // 2 bytes
)

// data type field bits
const (
	RawBitPos    = 15             // position of the raw bit in the 16-bit data type field
	RawBitMask   = 1 << RawBitPos // mask of the raw bit
	DataTypeMask = RawBitMask - 1 // mask of the data product type
)

// version id bits
const (
	ToolVersionIDBit    = 0x80000000 // set when the entity was produced by the ground tool
	ToolVersionMajorMax = 0x7FFF     // major version occupies bits 16-30
)

var engine = endian.GetBigEndianEngine()
