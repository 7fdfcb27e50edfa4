package section

import (
	"github.com/arloliu/cmpent/errs"
	"github.com/arloliu/cmpent/format"
)

// Variant identifies which specific header follows the generic header.
type Variant uint8

const (
	VariantNone             Variant = iota // VariantNone is the zero value; no entity has it.
	VariantImagette                        // VariantImagette carries one golomb/spill pair.
	VariantImagetteAdaptive                // VariantImagetteAdaptive adds the two adaptive pairs.
	VariantNonImagette                     // VariantNonImagette carries six parameter pairs.
)

// variant bit sets used by the field table
const (
	setImagette         = 1 << VariantImagette
	setImagetteAdaptive = 1 << VariantImagetteAdaptive
	setNonImagette      = 1 << VariantNonImagette
	setAll              = setImagette | setImagetteAdaptive | setNonImagette
)

func (v Variant) String() string {
	switch v {
	case VariantImagette:
		return "imagette"
	case VariantImagetteAdaptive:
		return "imagette-adaptive"
	case VariantNonImagette:
		return "non-imagette"
	default:
		return "none"
	}
}

// SpecificSize returns the specific header size of the variant in bytes.
func (v Variant) SpecificSize() int {
	switch v {
	case VariantImagette:
		return SpecificImagetteHeaderSize
	case VariantImagetteAdaptive:
		return SpecificImagetteAdaptiveHeaderSize
	case VariantNonImagette:
		return SpecificNonImagetteHeaderSize
	default:
		return 0
	}
}

// HeaderSize returns the generic plus specific header size of the variant in bytes.
func (v Variant) HeaderSize() int {
	return GenericHeaderSize + v.SpecificSize()
}

// spareRange returns the offset and length of the spare bytes in the specific header.
func (v Variant) spareRange() (int, int) {
	switch v {
	case VariantImagette:
		return ImaSpare1Offset, 1
	case VariantImagetteAdaptive:
		return AdaptiveSpareOffset, 3
	case VariantNonImagette:
		return NonImaSpareOffset, 2
	default:
		return 0, 0
	}
}

// SpareBytes returns the spare region of the specific header within an entity buffer.
// The returned slice aliases b.
func (v Variant) SpareBytes(b []byte) []byte {
	off, n := v.spareRange()

	return b[off : off+n]
}

// ResolveVariant selects the specific header variant for a data type and compression mode.
//
// The raw bit must already be stripped from dataType; it never changes the variant.
// This is the single gate through which every header sizing decision passes.
//
// Returns:
//   - Variant: the selected variant
//   - error: ErrUnsupportedDataType or ErrUnsupportedCmpMode
func ResolveVariant(dataType format.DataType, mode format.CompressionMode) (Variant, error) {
	if !mode.IsKnown() {
		return VariantNone, errs.ErrUnsupportedCmpMode
	}

	if !dataType.IsKnown() {
		return VariantNone, errs.ErrUnsupportedDataType
	}

	switch {
	case dataType.IsAdaptive():
		return VariantImagetteAdaptive, nil
	case dataType.IsImagette():
		return VariantImagette, nil
	default:
		return VariantNonImagette, nil
	}
}

// HeaderSize resolves the variant and returns the generic and specific header sizes.
func HeaderSize(dataType format.DataType, mode format.CompressionMode) (generic int, specific int, err error) {
	v, err := ResolveVariant(dataType, mode)
	if err != nil {
		return 0, 0, err
	}

	return GenericHeaderSize, v.SpecificSize(), nil
}
