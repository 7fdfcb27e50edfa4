package cmpent

import (
	"bytes"

	"github.com/arloliu/cmpent/errs"
	"github.com/arloliu/cmpent/format"
	"github.com/arloliu/cmpent/internal/hash"
	"github.com/arloliu/cmpent/section"
)

// Variant returns the specific header variant of the entity.
func (e *Entity) Variant() section.Variant {
	return e.variant
}

// HeaderSize returns the size of the generic and specific headers in bytes.
func (e *Entity) HeaderSize() int {
	return e.variant.HeaderSize()
}

// Bytes returns the entity buffer. The slice aliases the entity.
func (e *Entity) Bytes() []byte {
	return e.buf
}

// CmpData returns the payload following the headers. The slice aliases the entity.
func (e *Entity) CmpData() []byte {
	return e.buf[e.variant.HeaderSize():]
}

// CmpDataSize returns the payload size in bytes.
func (e *Entity) CmpDataSize() int {
	return len(e.buf) - e.variant.HeaderSize()
}

// Header returns a decoded copy of the generic header.
func (e *Entity) Header() section.GenericHeader {
	h, _ := section.ParseGenericHeader(e.buf)
	return h
}

// SpecificSpare returns a copy of the spare bytes of the specific header.
func (e *Entity) SpecificSpare() []byte {
	return bytes.Clone(e.variant.SpareBytes(e.buf))
}

// Checksum returns the xxHash64 of the whole entity.
func (e *Entity) Checksum() uint64 {
	return hash.Sum64(e.buf)
}

// Get reads any header field by its descriptor.
//
// Returns:
//   - uint32: the field value
//   - error: *errs.FieldError wrapping ErrFieldNotApplicable if the field is not
//     part of the entity's variant
func (e *Entity) Get(f section.Field) (uint32, error) {
	if !f.AppliesTo(e.variant) {
		return 0, errs.NewFieldError(f.Name, f.Offset, errs.ErrFieldNotApplicable)
	}

	return f.Get(e.buf), nil
}

func (e *Entity) set(f section.Field, v uint32) error {
	if !f.AppliesTo(e.variant) {
		return errs.NewFieldError(f.Name, f.Offset, errs.ErrFieldNotApplicable)
	}

	return f.Put(e.buf, v)
}

// generic header

// VersionID returns the id of the software that produced the entity.
func (e *Entity) VersionID() uint32 {
	return section.FieldVersionID.Get(e.buf)
}

// SetVersionID sets the version id.
func (e *Entity) SetVersionID(id uint32) {
	_ = section.FieldVersionID.Put(e.buf, id)
}

// Size returns cmp_ent_size, the total entity size in bytes.
// It always equals len(e.Bytes()).
func (e *Entity) Size() uint32 {
	return section.FieldEntitySize.Get(e.buf)
}

// OriginalSize returns the size of the uncompressed data in bytes.
func (e *Entity) OriginalSize() uint32 {
	return section.FieldOriginalSize.Get(e.buf)
}

// SetOriginalSize sets the size of the uncompressed data. 24 bits.
func (e *Entity) SetOriginalSize(v uint32) error {
	return section.FieldOriginalSize.Put(e.buf, v)
}

// StartTimestamp returns the compression start timestamp.
func (e *Entity) StartTimestamp() section.Timestamp {
	return section.DecodeTimestamp(e.buf[section.StartTimestampOffset:])
}

// SetStartTimestamp sets the compression start timestamp.
func (e *Entity) SetStartTimestamp(ts section.Timestamp) {
	ts.Encode(e.buf[section.StartTimestampOffset:])
}

// CoarseStartTime returns the seconds part of the start timestamp.
func (e *Entity) CoarseStartTime() uint32 {
	return section.FieldStartCoarse.Get(e.buf)
}

// SetCoarseStartTime sets the seconds part of the start timestamp.
func (e *Entity) SetCoarseStartTime(v uint32) {
	_ = section.FieldStartCoarse.Put(e.buf, v)
}

// FineStartTime returns the sub-second part of the start timestamp.
func (e *Entity) FineStartTime() uint32 {
	return section.FieldStartFine.Get(e.buf)
}

// SetFineStartTime sets the sub-second part of the start timestamp. 16 bits.
func (e *Entity) SetFineStartTime(v uint32) error {
	return section.FieldStartFine.Put(e.buf, v)
}

// SetStartTimestampValue sets the start timestamp from its combined 48-bit value.
func (e *Entity) SetStartTimestampValue(v uint64) error {
	ts, err := section.TimestampFromValue(v)
	if err != nil {
		return errs.NewFieldError("start_timestamp", section.StartTimestampOffset, err)
	}
	e.SetStartTimestamp(ts)

	return nil
}

// EndTimestamp returns the compression end timestamp.
func (e *Entity) EndTimestamp() section.Timestamp {
	return section.DecodeTimestamp(e.buf[section.EndTimestampOffset:])
}

// SetEndTimestamp sets the compression end timestamp.
func (e *Entity) SetEndTimestamp(ts section.Timestamp) {
	ts.Encode(e.buf[section.EndTimestampOffset:])
}

// CoarseEndTime returns the seconds part of the end timestamp.
func (e *Entity) CoarseEndTime() uint32 {
	return section.FieldEndCoarse.Get(e.buf)
}

// SetCoarseEndTime sets the seconds part of the end timestamp.
func (e *Entity) SetCoarseEndTime(v uint32) {
	_ = section.FieldEndCoarse.Put(e.buf, v)
}

// FineEndTime returns the sub-second part of the end timestamp.
func (e *Entity) FineEndTime() uint32 {
	return section.FieldEndFine.Get(e.buf)
}

// SetFineEndTime sets the sub-second part of the end timestamp. 16 bits.
func (e *Entity) SetFineEndTime(v uint32) error {
	return section.FieldEndFine.Put(e.buf, v)
}

// SetEndTimestampValue sets the end timestamp from its combined 48-bit value.
func (e *Entity) SetEndTimestampValue(v uint64) error {
	ts, err := section.TimestampFromValue(v)
	if err != nil {
		return errs.NewFieldError("end_timestamp", section.EndTimestampOffset, err)
	}
	e.SetEndTimestamp(ts)

	return nil
}

// DataType returns the data product type, without the raw bit.
func (e *Entity) DataType() format.DataType {
	return format.DataType(section.FieldDataType.Get(e.buf))
}

// SetDataType changes the data product type. The raw bit is preserved.
//
// Returns:
//   - error: ErrFieldOutOfRange above 15 bits, ErrUnsupportedDataType for an unknown
//     type, or ErrVariantChange if dt needs a different specific header
func (e *Entity) SetDataType(dt format.DataType) error {
	if err := section.FieldDataType.Check(uint32(dt)); err != nil {
		return err
	}

	v, err := section.ResolveVariant(dt, e.CmpMode())
	if err != nil {
		return wrapVariantError(err)
	}
	if v != e.variant {
		return errs.NewFieldError(section.FieldDataType.Name, section.DataTypeOffset, errs.ErrVariantChange)
	}

	return section.FieldDataType.Put(e.buf, uint32(dt))
}

// RawBit reports whether the payload is the original data stored verbatim.
func (e *Entity) RawBit() bool {
	return section.FieldRawBit.Get(e.buf) != 0
}

// SetRawBit sets or clears the raw bit. The header variant is unaffected.
func (e *Entity) SetRawBit(raw bool) {
	var v uint32
	if raw {
		v = 1
	}
	_ = section.FieldRawBit.Put(e.buf, v)
}

// CmpMode returns the compression mode.
func (e *Entity) CmpMode() format.CompressionMode {
	return format.CompressionMode(section.FieldCmpMode.Get(e.buf))
}

// SetCmpMode sets the compression mode.
//
// Returns:
//   - error: *errs.FieldError wrapping ErrUnsupportedCmpMode for an unknown mode
func (e *Entity) SetCmpMode(mode format.CompressionMode) error {
	if !mode.IsKnown() {
		return errs.NewFieldError(section.FieldCmpMode.Name, section.CmpModeOffset, errs.ErrUnsupportedCmpMode)
	}

	return section.FieldCmpMode.Put(e.buf, uint32(mode))
}

// ModelValue returns the model updating weight.
func (e *Entity) ModelValue() uint32 {
	return section.FieldModelValue.Get(e.buf)
}

// SetModelValue sets the model updating weight. 8 bits.
func (e *Entity) SetModelValue(v uint32) error {
	return section.FieldModelValue.Put(e.buf, v)
}

// ModelID returns the id of the model the data was compressed against.
func (e *Entity) ModelID() uint32 {
	return section.FieldModelID.Get(e.buf)
}

// SetModelID sets the model id. 16 bits.
func (e *Entity) SetModelID(v uint32) error {
	return section.FieldModelID.Put(e.buf, v)
}

// ModelCounter returns the model update counter.
func (e *Entity) ModelCounter() uint32 {
	return section.FieldModelCounter.Get(e.buf)
}

// SetModelCounter sets the model update counter. 8 bits.
func (e *Entity) SetModelCounter(v uint32) error {
	return section.FieldModelCounter.Put(e.buf, v)
}

// MaxUsedBitsVersion returns the version of the max-used-bits registry.
func (e *Entity) MaxUsedBitsVersion() uint32 {
	return section.FieldMaxUsedBitsVersion.Get(e.buf)
}

// SetMaxUsedBitsVersion sets the max-used-bits registry version. 8 bits.
func (e *Entity) SetMaxUsedBitsVersion(v uint32) error {
	return section.FieldMaxUsedBitsVersion.Put(e.buf, v)
}

// LossyCmpPar returns the lossy rounding parameter.
func (e *Entity) LossyCmpPar() uint32 {
	return section.FieldLossyCmpPar.Get(e.buf)
}

// SetLossyCmpPar sets the lossy rounding parameter. 16 bits.
func (e *Entity) SetLossyCmpPar(v uint32) error {
	return section.FieldLossyCmpPar.Put(e.buf, v)
}

// imagette and adaptive imagette specific header

// ImaSpill returns the imagette spillover threshold.
func (e *Entity) ImaSpill() (uint32, error) {
	return e.Get(section.FieldImaSpill)
}

// SetImaSpill sets the imagette spillover threshold. 16 bits.
func (e *Entity) SetImaSpill(v uint32) error {
	return e.set(section.FieldImaSpill, v)
}

// ImaGolombPar returns the imagette Golomb parameter.
func (e *Entity) ImaGolombPar() (uint32, error) {
	return e.Get(section.FieldImaGolombPar)
}

// SetImaGolombPar sets the imagette Golomb parameter. 8 bits.
func (e *Entity) SetImaGolombPar(v uint32) error {
	return e.set(section.FieldImaGolombPar, v)
}

// AP1Spill returns the spillover threshold of the first adaptive parameter set.
func (e *Entity) AP1Spill() (uint32, error) {
	return e.Get(section.FieldAP1Spill)
}

// SetAP1Spill sets the spillover threshold of the first adaptive parameter set. 16 bits.
func (e *Entity) SetAP1Spill(v uint32) error {
	return e.set(section.FieldAP1Spill, v)
}

// AP1GolombPar returns the Golomb parameter of the first adaptive parameter set.
func (e *Entity) AP1GolombPar() (uint32, error) {
	return e.Get(section.FieldAP1GolombPar)
}

// SetAP1GolombPar sets the Golomb parameter of the first adaptive parameter set. 8 bits.
func (e *Entity) SetAP1GolombPar(v uint32) error {
	return e.set(section.FieldAP1GolombPar, v)
}

// AP2Spill returns the spillover threshold of the second adaptive parameter set.
func (e *Entity) AP2Spill() (uint32, error) {
	return e.Get(section.FieldAP2Spill)
}

// SetAP2Spill sets the spillover threshold of the second adaptive parameter set. 16 bits.
func (e *Entity) SetAP2Spill(v uint32) error {
	return e.set(section.FieldAP2Spill, v)
}

// AP2GolombPar returns the Golomb parameter of the second adaptive parameter set.
func (e *Entity) AP2GolombPar() (uint32, error) {
	return e.Get(section.FieldAP2GolombPar)
}

// SetAP2GolombPar sets the Golomb parameter of the second adaptive parameter set. 8 bits.
func (e *Entity) SetAP2GolombPar(v uint32) error {
	return e.set(section.FieldAP2GolombPar, v)
}

// non-imagette specific header

// NonImaSpill returns the spillover threshold of parameter pair n (1-6).
func (e *Entity) NonImaSpill(n int) (uint32, error) {
	f, err := section.NonImaSpillField(n)
	if err != nil {
		return 0, err
	}

	return e.Get(f)
}

// SetNonImaSpill sets the spillover threshold of parameter pair n (1-6). 24 bits.
func (e *Entity) SetNonImaSpill(n int, v uint32) error {
	f, err := section.NonImaSpillField(n)
	if err != nil {
		return err
	}

	return e.set(f, v)
}

// NonImaCmpPar returns the compression parameter of parameter pair n (1-6).
func (e *Entity) NonImaCmpPar(n int) (uint32, error) {
	f, err := section.NonImaCmpParField(n)
	if err != nil {
		return 0, err
	}

	return e.Get(f)
}

// SetNonImaCmpPar sets the compression parameter of parameter pair n (1-6). 16 bits.
func (e *Entity) SetNonImaCmpPar(n int, v uint32) error {
	f, err := section.NonImaCmpParField(n)
	if err != nil {
		return err
	}

	return e.set(f, v)
}
