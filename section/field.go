package section

import (
	"strconv"

	"github.com/arloliu/cmpent/endian"
	"github.com/arloliu/cmpent/errs"
)

// Field describes one header field: where it lives in the entity buffer, how
// wide it is and which header variants contain it.
//
// A field occupies Width bytes starting at Offset. Its value is the big-endian
// word at that position, shifted right by Shift and masked with Mask, so fields
// sharing a word (the data type and its raw bit) are read and written without
// disturbing each other.
type Field struct {
	Name     string
	Offset   int
	Width    int
	Shift    uint
	Mask     uint32
	variants uint8
}

func newField(name string, offset, width int, variants uint8) Field {
	return Field{
		Name:     name,
		Offset:   offset,
		Width:    width,
		Mask:     uint32(uint64(1)<<(8*width) - 1),
		variants: variants,
	}
}

// generic header fields
var (
	FieldVersionID          = newField("version_id", VersionIDOffset, 4, setAll)
	FieldEntitySize         = newField("cmp_ent_size", EntitySizeOffset, 3, setAll)
	FieldOriginalSize       = newField("original_size", OriginalSizeOffset, 3, setAll)
	FieldStartCoarse        = newField("coarse_start_time", StartTimestampOffset, 4, setAll)
	FieldStartFine          = newField("fine_start_time", StartTimestampOffset+4, 2, setAll)
	FieldEndCoarse          = newField("coarse_end_time", EndTimestampOffset, 4, setAll)
	FieldEndFine            = newField("fine_end_time", EndTimestampOffset+4, 2, setAll)
	FieldCmpMode            = newField("cmp_mode", CmpModeOffset, 1, setAll)
	FieldModelValue         = newField("model_value", ModelValueOffset, 1, setAll)
	FieldModelID            = newField("model_id", ModelIDOffset, 2, setAll)
	FieldModelCounter       = newField("model_counter", ModelCounterOffset, 1, setAll)
	FieldMaxUsedBitsVersion = newField("max_used_bits_version", MaxUsedBitsVersionOffset, 1, setAll)
	FieldLossyCmpPar        = newField("lossy_cmp_par", LossyCmpParOffset, 2, setAll)

	FieldDataType = Field{
		Name: "data_type", Offset: DataTypeOffset, Width: 2,
		Mask: DataTypeMask, variants: setAll,
	}
	FieldRawBit = Field{
		Name: "data_type_raw_bit", Offset: DataTypeOffset, Width: 2,
		Shift: RawBitPos, Mask: 1, variants: setAll,
	}
)

// specific header fields
var (
	FieldImaSpill     = newField("ima_spill", ImaSpillOffset, 2, setImagette|setImagetteAdaptive)
	FieldImaGolombPar = newField("ima_golomb_par", ImaGolombParOffset, 1, setImagette|setImagetteAdaptive)
	FieldAP1Spill     = newField("ima_ap1_spill", AP1SpillOffset, 2, setImagetteAdaptive)
	FieldAP1GolombPar = newField("ima_ap1_golomb_par", AP1GolombParOffset, 1, setImagetteAdaptive)
	FieldAP2Spill     = newField("ima_ap2_spill", AP2SpillOffset, 2, setImagetteAdaptive)
	FieldAP2GolombPar = newField("ima_ap2_golomb_par", AP2GolombParOffset, 1, setImagetteAdaptive)

	nonImaSpill  [NonImaPairCount]Field
	nonImaCmpPar [NonImaPairCount]Field
)

func init() {
	for i := range NonImaPairCount {
		off := SpecificHeaderOffset + i*NonImaPairSize
		n := strconv.Itoa(i + 1)
		nonImaSpill[i] = newField("non_ima_spill"+n, off, 3, setNonImagette)
		nonImaCmpPar[i] = newField("non_ima_cmp_par"+n, off+3, 2, setNonImagette)
	}
}

// NonImaSpillField returns the spillover threshold field of pair n (1-6).
func NonImaSpillField(n int) (Field, error) {
	if n < 1 || n > NonImaPairCount {
		return Field{}, errs.NewFieldError("non_ima_spill", SpecificHeaderOffset, errs.ErrFieldOutOfRange)
	}

	return nonImaSpill[n-1], nil
}

// NonImaCmpParField returns the compression parameter field of pair n (1-6).
func NonImaCmpParField(n int) (Field, error) {
	if n < 1 || n > NonImaPairCount {
		return Field{}, errs.NewFieldError("non_ima_cmp_par", SpecificHeaderOffset, errs.ErrFieldOutOfRange)
	}

	return nonImaCmpPar[n-1], nil
}

// GenericFields returns the generic header fields in wire order.
func GenericFields() []Field {
	return []Field{
		FieldVersionID, FieldEntitySize, FieldOriginalSize,
		FieldStartCoarse, FieldStartFine, FieldEndCoarse, FieldEndFine,
		FieldDataType, FieldRawBit, FieldCmpMode, FieldModelValue,
		FieldModelID, FieldModelCounter, FieldMaxUsedBitsVersion, FieldLossyCmpPar,
	}
}

// SpecificFields returns every specific header field in wire order, across all variants.
func SpecificFields() []Field {
	fields := []Field{
		FieldImaSpill, FieldImaGolombPar,
		FieldAP1Spill, FieldAP1GolombPar, FieldAP2Spill, FieldAP2GolombPar,
	}
	for i := range NonImaPairCount {
		fields = append(fields, nonImaSpill[i], nonImaCmpPar[i])
	}

	return fields
}

// VariantFields returns the specific header fields present in variant v, in wire order.
func VariantFields(v Variant) []Field {
	var fields []Field
	for _, f := range SpecificFields() {
		if f.AppliesTo(v) {
			fields = append(fields, f)
		}
	}

	return fields
}

// AppliesTo reports whether the field is present in variant v.
func (f Field) AppliesTo(v Variant) bool {
	return v != VariantNone && f.variants&(1<<v) != 0
}

// Max returns the largest value the field can hold.
func (f Field) Max() uint32 {
	return f.Mask
}

// Check returns a *errs.FieldError wrapping ErrFieldOutOfRange if v does not fit the field.
func (f Field) Check(v uint32) error {
	if v > f.Mask {
		return errs.NewFieldError(f.Name, f.Offset, errs.ErrFieldOutOfRange)
	}

	return nil
}

// Get reads the field value from an entity buffer.
// The buffer must hold at least Offset+Width bytes.
func (f Field) Get(b []byte) uint32 {
	return (f.word(b) >> f.Shift) & f.Mask
}

// Put writes v into the field of an entity buffer, leaving other bits of the
// word untouched.
//
// Returns:
//   - error: *errs.FieldError wrapping ErrFieldOutOfRange if v does not fit the field
func (f Field) Put(b []byte, v uint32) error {
	if err := f.Check(v); err != nil {
		return err
	}

	w := f.word(b)&^(f.Mask<<f.Shift) | v<<f.Shift
	f.putWord(b, w)

	return nil
}

func (f Field) word(b []byte) uint32 {
	p := b[f.Offset : f.Offset+f.Width]
	switch f.Width {
	case 1:
		return uint32(p[0])
	case 2:
		return uint32(engine.Uint16(p))
	case 3:
		return endian.Uint24(engine, p)
	default:
		return engine.Uint32(p)
	}
}

func (f Field) putWord(b []byte, w uint32) {
	p := b[f.Offset : f.Offset+f.Width]
	switch f.Width {
	case 1:
		p[0] = byte(w)
	case 2:
		engine.PutUint16(p, uint16(w))
	case 3:
		endian.PutUint24(engine, p, w)
	default:
		engine.PutUint32(p, w)
	}
}
