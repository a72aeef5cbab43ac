package codec

import (
	"strconv"

	"github.com/meshforge/scenexml/rtypes"
)

// EnumTag is the type tag for enumeration values, serialized as the raw
// item index.
const EnumTag = "token"

func decodeEnum(r *EventReader) (rtypes.Value, error) {
	text, err := r.ReadInnerText()
	if err != nil {
		return nil, err
	}
	if err := r.ExpectEnd(EnumTag); err != nil {
		return nil, err
	}

	v, err := strconv.ParseUint(text, 10, 32)
	if err != nil {
		return nil, r.MalformedValue("invalid enum value " + strconv.Quote(text))
	}

	return rtypes.Enum(uint32(v)), nil
}

func encodeEnum(w *EventWriter, v rtypes.Enum) error {
	return w.WriteTagValue(EnumTag, uint32(v))
}
