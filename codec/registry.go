package codec

import (
	"fmt"

	"github.com/meshforge/scenexml/errs"
	"github.com/meshforge/scenexml/rtypes"
)

// decodeFunc parses one value element. The reader is positioned just after
// the value's type-tag start element; the handler consumes the content and
// the matching end element.
type decodeFunc func(r *EventReader, state *ParseState, inst rtypes.Ref, property string) (rtypes.Value, error)

// scalarDecoder adapts handlers that need no document state.
func scalarDecoder(fn func(*EventReader) (rtypes.Value, error)) decodeFunc {
	return func(r *EventReader, _ *ParseState, _ rtypes.Ref, _ string) (rtypes.Value, error) {
		return fn(r)
	}
}

// The two dispatch tables below are the whole registry. Supporting a new
// value kind means adding its tag here, its arm to EncodeValue, and its
// handler file; the symmetry test in registry_test.go fails if only one
// direction is added.

// tagDecoders routes external type tags to decode handlers. Decoding faces
// untrusted document text, so an unknown tag is a graceful runtime error,
// not a panic.
var tagDecoders = map[string]decodeFunc{
	BoolTag:         scalarDecoder(decodeBool),
	StringTag:       scalarDecoder(decodeString),
	BinaryStringTag: scalarDecoder(decodeBinaryString),
	Float32Tag:      scalarDecoder(decodeFloat32),
	Float64Tag:      scalarDecoder(decodeFloat64),
	Int32Tag:        scalarDecoder(decodeInt32),
	Int64Tag:        scalarDecoder(decodeInt64),
	EnumTag:         scalarDecoder(decodeEnum),
	Vector2Tag:      scalarDecoder(decodeVector2),
	Vector3Tag:      scalarDecoder(decodeVector3),
	CFrameTag:       scalarDecoder(decodeCFrame),
	Color3Tag:       scalarDecoder(decodeColor3),
	Color3uint8Tag:  scalarDecoder(decodeColor3uint8),
	UDimTag:         scalarDecoder(decodeUDim),
	UDim2Tag:        scalarDecoder(decodeUDim2),
	NumberRangeTag:  scalarDecoder(decodeNumberRange),
	ContentTag:      scalarDecoder(decodeContent),
	RefTag:          decodeRef,
	SharedStringTag: decodeSharedString,

	// Legacy scripts serialize as ProtectedString. The tag is read for
	// backward compatibility but never written; see decodeOnlyTags.
	ProtectedStringTag: scalarDecoder(decodeProtectedString),
}

// decodeOnlyTags lists the tags that intentionally have no encode
// counterpart. Any other asymmetry between the two tables is a bug.
var decodeOnlyTags = map[string]struct{}{
	ProtectedStringTag: {},
}

// DecodeValue parses the property value whose type-tag start element named
// tagName was just consumed, returning the strongly typed value.
//
// Returns:
//   - rtypes.Value: The decoded value, owned by the caller
//   - error: errs.ErrUnknownPropertyType for an unregistered tag, or the
//     handler's own decode failure
func DecodeValue(r *EventReader, state *ParseState, inst rtypes.Ref, property, tagName string) (rtypes.Value, error) {
	decode, ok := tagDecoders[tagName]
	if !ok {
		return nil, r.errHere(fmt.Errorf("%w: %q", errs.ErrUnknownPropertyType, tagName))
	}

	return decode(r, state, inst, property)
}

// EncodeValue writes one property: an element named after the property
// wrapping the value's type-tagged element.
//
// The type switch covers the closed set of rtypes kinds. A kind without an
// arm fails with errs.ErrUnsupportedPropertyType before anything is emitted,
// so a half-written property never reaches the stream.
func EncodeValue(w *EventWriter, state *EmitState, property string, value rtypes.Value) error {
	var encode func() error
	switch v := value.(type) {
	case rtypes.Bool:
		encode = func() error { return encodeBool(w, v) }
	case rtypes.String:
		encode = func() error { return encodeString(w, v) }
	case rtypes.BinaryString:
		encode = func() error { return encodeBinaryString(w, v) }
	case rtypes.Float32:
		encode = func() error { return encodeFloat32(w, v) }
	case rtypes.Float64:
		encode = func() error { return encodeFloat64(w, v) }
	case rtypes.Int32:
		encode = func() error { return encodeInt32(w, v) }
	case rtypes.Int64:
		encode = func() error { return encodeInt64(w, v) }
	case rtypes.Enum:
		encode = func() error { return encodeEnum(w, v) }
	case rtypes.Vector2:
		encode = func() error { return encodeVector2(w, v) }
	case rtypes.Vector3:
		encode = func() error { return encodeVector3(w, v) }
	case rtypes.CFrame:
		encode = func() error { return encodeCFrame(w, v) }
	case rtypes.Color3:
		encode = func() error { return encodeColor3(w, v) }
	case rtypes.Color3uint8:
		encode = func() error { return encodeColor3uint8(w, v) }
	case rtypes.UDim:
		encode = func() error { return encodeUDim(w, v) }
	case rtypes.UDim2:
		encode = func() error { return encodeUDim2(w, v) }
	case rtypes.NumberRange:
		encode = func() error { return encodeNumberRange(w, v) }
	case rtypes.Content:
		encode = func() error { return encodeContent(w, v) }
	case rtypes.Ref:
		encode = func() error { return encodeRef(w, state, v) }
	case rtypes.SharedString:
		encode = func() error { return encodeSharedString(w, state, v) }
	default:
		return errs.NewEncodeError(fmt.Errorf("%w: %s", errs.ErrUnsupportedPropertyType, value.Type()))
	}

	if err := w.OpenElement(property); err != nil {
		return err
	}
	if err := encode(); err != nil {
		return err
	}

	return w.CloseElement()
}
