package cmpent

import (
	"bytes"

	"github.com/arloliu/cmpent/errs"
	"github.com/arloliu/cmpent/format"
	"github.com/arloliu/cmpent/internal/options"
	"github.com/arloliu/cmpent/section"
)

// Entity is a compression entity: one buffer holding the generic header, the
// specific header of the entity's variant and the payload.
//
// Every accessor reads or writes the buffer in place. An Entity returned by Build
// or Parse has passed all structural checks, so generic getters never fail.
type Entity struct {
	buf     []byte
	variant section.Variant
}

// Build creates an entity from a configuration and a payload.
//
// The payload is the compressed data, or the original data when cfg.Raw is set.
// Build allocates exactly one buffer of the final entity size and never modifies
// cfg or payload.
//
// Parameters:
//   - cfg: header values of the entity
//   - payload: bytes stored after the header
//   - opts: build options, see WithVersionID
//
// Returns:
//   - *Entity: the built entity
//   - error: ErrUnsupportedDataType, ErrUnsupportedCmpMode, ErrEntityTooLarge,
//     ErrFieldOutOfRange or ErrFieldNotApplicable
func Build(cfg Config, payload []byte, opts ...BuildOption) (*Entity, error) {
	bc := newBuildConfig()
	if err := options.Apply(bc, opts...); err != nil {
		return nil, err
	}

	v, err := cfg.Variant()
	if err != nil {
		return nil, err
	}

	size := v.HeaderSize() + len(payload)
	if size > MaxEntitySize {
		return nil, errs.NewFieldError(section.FieldEntitySize.Name, section.EntitySizeOffset, errs.ErrEntityTooLarge)
	}

	if err := cfg.validate(v); err != nil {
		return nil, err
	}

	buf := make([]byte, size)

	hdr := section.GenericHeader{
		VersionID:          bc.versionID,
		EntitySize:         uint32(size),
		OriginalSize:       cfg.OriginalSize,
		StartTime:          cfg.StartTime,
		EndTime:            cfg.EndTime,
		DataType:           cfg.DataType,
		Raw:                cfg.Raw,
		CmpMode:            cfg.CmpMode,
		ModelValue:         uint8(cfg.ModelValue),
		ModelID:            uint16(cfg.ModelID),
		ModelCounter:       uint8(cfg.ModelCounter),
		MaxUsedBitsVersion: uint8(cfg.MaxUsedBitsVersion),
		LossyCmpPar:        uint16(cfg.LossyCmpPar),
	}
	if err := hdr.Put(buf); err != nil {
		return nil, err
	}

	for _, fv := range cfg.specificValues() {
		if !fv.field.AppliesTo(v) {
			continue
		}
		if err := fv.field.Put(buf, fv.value); err != nil {
			return nil, err
		}
	}

	copy(buf[v.HeaderSize():], payload)

	return &Entity{buf: buf, variant: v}, nil
}

// Parse validates data as a compression entity and returns a view of it.
//
// By default the entity borrows data: setters write into it and the caller must
// not modify it while the entity is in use. WithCopy makes Parse copy the bytes.
// data may be longer than the entity; the entity covers the first cmp_ent_size bytes.
//
// Returns:
//   - *Entity: the parsed entity
//   - error: a *errs.FieldError wrapping ErrTruncatedBuffer, ErrUnsupportedVersion,
//     ErrUnsupportedDataType, ErrUnsupportedCmpMode or ErrInvalidSize
func Parse(data []byte, opts ...ParseOption) (*Entity, error) {
	pc := newParseConfig()
	if err := options.Apply(pc, opts...); err != nil {
		return nil, err
	}

	if len(data) < GenericHeaderSize {
		return nil, errs.NewFieldError("generic_header", 0, errs.ErrTruncatedBuffer)
	}

	versionID := section.FieldVersionID.Get(data)
	if IsToolVersionID(versionID) {
		if major, _ := SplitToolVersionID(versionID); major > pc.maxToolMajor {
			return nil, errs.NewFieldError(section.FieldVersionID.Name, section.VersionIDOffset, errs.ErrUnsupportedVersion)
		}
	}

	dataType := format.DataType(section.FieldDataType.Get(data))
	mode := format.CompressionMode(section.FieldCmpMode.Get(data))
	v, err := section.ResolveVariant(dataType, mode)
	if err != nil {
		return nil, wrapVariantError(err)
	}

	size := int(section.FieldEntitySize.Get(data))
	if size < v.HeaderSize() || size > MaxEntitySize {
		return nil, errs.NewFieldError(section.FieldEntitySize.Name, section.EntitySizeOffset, errs.ErrInvalidSize)
	}
	if len(data) < size {
		return nil, errs.NewFieldError(section.FieldEntitySize.Name, section.EntitySizeOffset, errs.ErrTruncatedBuffer)
	}

	buf := data[:size:size]
	if pc.copyData {
		buf = bytes.Clone(buf)
	}

	return &Entity{buf: buf, variant: v}, nil
}

// Validate checks the sanity properties that Parse does not enforce.
//
// Returns:
//   - error: *errs.FieldError wrapping ErrInvalidTimestamps if the start timestamp
//     is after the end timestamp
func (e *Entity) Validate() error {
	if e.EndTimestamp().Before(e.StartTimestamp()) {
		return errs.NewFieldError("end_timestamp", section.EndTimestampOffset, errs.ErrInvalidTimestamps)
	}

	return nil
}

// Clone returns a deep copy of the entity.
func (e *Entity) Clone() *Entity {
	return &Entity{buf: bytes.Clone(e.buf), variant: e.variant}
}
