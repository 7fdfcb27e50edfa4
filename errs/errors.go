// Package errs defines the sentinel errors returned by the compression entity packages.
//
// Callers compare with errors.Is. Errors that concern a single header field are
// wrapped in a *FieldError, which records the field name and its byte offset in
// the entity and unwraps to the sentinel.
package errs

import (
	"errors"
	"fmt"
)

// Entity structure errors.
var (
	ErrUnsupportedDataType = errors.New("unsupported compression data type")
	ErrUnsupportedCmpMode  = errors.New("unsupported compression mode")
	ErrUnsupportedVersion  = errors.New("unsupported compression entity version")
	ErrTruncatedBuffer     = errors.New("buffer is shorter than the compression entity")
	ErrInvalidSize         = errors.New("invalid compression entity size")
	ErrEntityTooLarge      = errors.New("compression entity exceeds the maximum size")
)

// Field access errors.
var (
	ErrFieldOutOfRange    = errors.New("value does not fit the field")
	ErrFieldNotApplicable = errors.New("field is not part of the entity header variant")
	ErrVariantChange      = errors.New("change requires a different specific header variant")
	ErrInvalidTimestamps  = errors.New("start timestamp is after end timestamp")
)

// Archive errors.
var (
	ErrInvalidMagic         = errors.New("invalid magic number")
	ErrUnsupportedArchive   = errors.New("unsupported archive version")
	ErrChecksumMismatch     = errors.New("entity checksum mismatch")
	ErrUnsupportedCodec     = errors.New("unsupported archive compression")
	ErrDecompressedSizeDiff = errors.New("decompressed size does not match the frame")
)

// FieldError reports an error concerning one header field.
type FieldError struct {
	// Field is the name of the header field.
	Field string
	// Offset is the byte offset of the field from the start of the entity.
	Offset int
	// Err is the underlying sentinel error.
	Err error
}

// NewFieldError returns a *FieldError for the named field at offset.
func NewFieldError(field string, offset int, err error) *FieldError {
	return &FieldError{Field: field, Offset: offset, Err: err}
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s (field %s at offset %d)", e.Err, e.Field, e.Offset)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}
