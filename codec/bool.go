package codec

import (
	"strconv"

	"github.com/meshforge/scenexml/rtypes"
)

// BoolTag is the type tag for boolean values.
const BoolTag = "bool"

func decodeBool(r *EventReader) (rtypes.Value, error) {
	text, err := r.ReadInnerText()
	if err != nil {
		return nil, err
	}

	var v rtypes.Bool
	switch text {
	case "true":
		v = true
	case "false":
		v = false
	default:
		return nil, r.MalformedValue("invalid bool value " + strconv.Quote(text))
	}

	if err := r.ExpectEnd(BoolTag); err != nil {
		return nil, err
	}

	return v, nil
}

func encodeBool(w *EventWriter, v rtypes.Bool) error {
	return w.WriteTagValue(BoolTag, bool(v))
}
