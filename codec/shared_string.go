package codec

import (
	"fmt"
	"strconv"

	"github.com/meshforge/scenexml/errs"
	"github.com/meshforge/scenexml/rtypes"
)

// SharedStringTag is the type tag for interned binary payloads. The value
// content is the xxHash64 key of the payload, printed as 16 hex digits; the
// payload itself lives in the document's shared-string table.
const SharedStringTag = "SharedString"

// decodeSharedString records a rewrite: the shared-string table sits at the
// end of the document, so the payload is attached after the tree is read.
func decodeSharedString(r *EventReader, state *ParseState, inst rtypes.Ref, property string) (rtypes.Value, error) {
	text, err := r.ReadInnerText()
	if err != nil {
		return nil, err
	}
	if err := r.ExpectEnd(SharedStringTag); err != nil {
		return nil, err
	}

	key, err := strconv.ParseUint(text, 16, 64)
	if err != nil {
		return nil, r.MalformedValue("invalid shared string key " + strconv.Quote(text))
	}

	state.recordSharedStringRewrite(inst, property, key)

	return rtypes.SharedString(nil), nil
}

func encodeSharedString(w *EventWriter, state *EmitState, v rtypes.SharedString) error {
	key, err := state.InternSharedString(v)
	if err != nil {
		return errs.NewEncodeError(err)
	}

	return w.WriteTagValue(SharedStringTag, fmt.Sprintf("%016x", key))
}
