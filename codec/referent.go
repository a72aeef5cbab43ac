package codec

import "github.com/meshforge/scenexml/rtypes"

// RefTag is the type tag for instance references. The content is either the
// document referent id of the target or "null".
const RefTag = "Ref"

// refNullText marks a reference that points at no instance.
const refNullText = "null"

// decodeRef needs document state: a reference may name an instance that has
// not been read yet, so the property is recorded as a rewrite and resolved
// after the whole tree is in memory. The placeholder null value is returned
// in the meantime.
func decodeRef(r *EventReader, state *ParseState, inst rtypes.Ref, property string) (rtypes.Value, error) {
	text, err := r.ReadInnerText()
	if err != nil {
		return nil, err
	}
	if err := r.ExpectEnd(RefTag); err != nil {
		return nil, err
	}

	if text != refNullText {
		state.recordRefRewrite(inst, property, text)
	}

	return rtypes.RefNull, nil
}

func encodeRef(w *EventWriter, state *EmitState, v rtypes.Ref) error {
	text := refNullText
	if !v.IsNull() {
		// A target outside the serialized tree has no referent id and is
		// written as null.
		if id, ok := state.LookupReferent(v); ok {
			text = id
		}
	}

	return w.WriteTagValue(RefTag, text)
}
