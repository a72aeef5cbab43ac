// Package errs defines the error surface of the scenexml codec.
//
// Two structured error types exist, one per direction: DecodeError for the
// read path and EncodeError for the write path. Both wrap an underlying
// cause, so callers match failure kinds with errors.Is against the sentinel
// errors below rather than inspecting concrete types.
package errs

import (
	"errors"
	"fmt"
)

// Sentinel errors for the decode path.
var (
	// ErrUnknownPropertyType reports an external type tag with no registered
	// decode handler.
	ErrUnknownPropertyType = errors.New("unknown property type")

	// ErrMalformedValue reports that a registered handler failed to parse the
	// content of its element.
	ErrMalformedValue = errors.New("malformed property value")

	// ErrTagMismatch reports an element name other than the expected one.
	ErrTagMismatch = errors.New("unexpected element tag")

	// ErrUnexpectedEOF reports a document that ended mid-element.
	ErrUnexpectedEOF = errors.New("unexpected end of document")

	// ErrInvalidDocument reports a structurally invalid scene document,
	// e.g. a missing root element or an unsupported format version.
	ErrInvalidDocument = errors.New("invalid scene document")

	// ErrUnresolvedSharedString reports a shared-string property whose key
	// has no entry in the document's shared-string table.
	ErrUnresolvedSharedString = errors.New("unresolved shared string key")

	// ErrHashCollision reports two distinct shared-string payloads hashing to
	// the same table key. Either payload would silently read back as the
	// other, so the document is rejected on both paths.
	ErrHashCollision = errors.New("shared string hash collision")
)

// Sentinel errors for the encode path.
var (
	// ErrUnsupportedPropertyType reports an in-memory value kind with no
	// registered encode handler.
	ErrUnsupportedPropertyType = errors.New("unsupported property type")

	// ErrInvalidCompression reports an unrecognized container compression type.
	ErrInvalidCompression = errors.New("invalid compression type")
)

// Location identifies a position in the source document for diagnostics.
// Line and Column are 1-based; Offset is the byte offset from the start.
type Location struct {
	Line   int
	Column int
	Offset int64
}

func (l Location) String() string {
	return fmt.Sprintf("line %d, column %d", l.Line, l.Column)
}

// DecodeError wraps a read-path failure together with the document position
// at which it occurred.
type DecodeError struct {
	Loc Location
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: %s", e.Loc, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// NewDecodeError wraps err with the given document location. A nil err
// returns nil.
func NewDecodeError(loc Location, err error) error {
	if err == nil {
		return nil
	}

	return &DecodeError{Loc: loc, Err: err}
}

// EncodeError wraps a write-path failure. Encode failures have no document
// position; they carry the offending kind or the underlying stream error.
type EncodeError struct {
	Err error
}

func (e *EncodeError) Error() string {
	return e.Err.Error()
}

func (e *EncodeError) Unwrap() error {
	return e.Err
}

// NewEncodeError wraps err as an EncodeError. A nil err returns nil, and an
// existing EncodeError is returned unchanged to avoid double wrapping.
func NewEncodeError(err error) error {
	if err == nil {
		return nil
	}

	var ee *EncodeError
	if errors.As(err, &ee) {
		return err
	}

	return &EncodeError{Err: err}
}
