package codec

import "github.com/meshforge/scenexml/rtypes"

// StringTag is the type tag for text values.
const StringTag = "string"

// ProtectedStringTag is the legacy type tag for script sources. It is
// decode-only: old documents still contain it, but the encoder always emits
// plain strings.
const ProtectedStringTag = "ProtectedString"

func decodeString(r *EventReader) (rtypes.Value, error) {
	text, err := r.ReadInnerText()
	if err != nil {
		return nil, err
	}
	if err := r.ExpectEnd(StringTag); err != nil {
		return nil, err
	}

	return rtypes.String(text), nil
}

func decodeProtectedString(r *EventReader) (rtypes.Value, error) {
	text, err := r.ReadInnerText()
	if err != nil {
		return nil, err
	}
	if err := r.ExpectEnd(ProtectedStringTag); err != nil {
		return nil, err
	}

	return rtypes.String(text), nil
}

func encodeString(w *EventWriter, v rtypes.String) error {
	// WriteTagValue routes through the character-data decision, so strings
	// with outer whitespace come out as CDATA and round-trip exactly.
	return w.WriteTagValue(StringTag, string(v))
}
