package codec

import (
	"strings"

	"github.com/meshforge/scenexml/rtypes"
)

// NumberRangeTag is the type tag for numeric intervals, serialized as two
// space-separated floats.
const NumberRangeTag = "NumberRange"

func decodeNumberRange(r *EventReader) (rtypes.Value, error) {
	text, err := r.ReadInnerText()
	if err != nil {
		return nil, err
	}
	if err := r.ExpectEnd(NumberRangeTag); err != nil {
		return nil, err
	}

	parts := strings.Fields(text)
	if len(parts) != 2 {
		return nil, r.MalformedValue("expected two numbers in range, got " + strings.Join(parts, " "))
	}

	min, err := parseFloatText(r, parts[0], 32)
	if err != nil {
		return nil, err
	}
	max, err := parseFloatText(r, parts[1], 32)
	if err != nil {
		return nil, err
	}

	return rtypes.NumberRange{Min: float32(min), Max: float32(max)}, nil
}

func encodeNumberRange(w *EventWriter, v rtypes.NumberRange) error {
	text := floatString(float64(v.Min), 32) + " " + floatString(float64(v.Max), 32)
	return w.WriteTagValue(NumberRangeTag, text)
}
