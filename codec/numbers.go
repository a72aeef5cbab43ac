package codec

import (
	"math"
	"strconv"

	"github.com/meshforge/scenexml/rtypes"
)

// Type tags for the numeric scalar kinds.
const (
	Float32Tag = "float"
	Float64Tag = "double"
	Int32Tag   = "int"
	Int64Tag   = "int64"
)

func decodeFloat32(r *EventReader) (rtypes.Value, error) {
	v, err := readFloatElement(r, Float32Tag, 32)
	if err != nil {
		return nil, err
	}

	return rtypes.Float32(v), nil
}

func decodeFloat64(r *EventReader) (rtypes.Value, error) {
	v, err := readFloatElement(r, Float64Tag, 64)
	if err != nil {
		return nil, err
	}

	return rtypes.Float64(v), nil
}

func decodeInt32(r *EventReader) (rtypes.Value, error) {
	text, err := r.ReadInnerText()
	if err != nil {
		return nil, err
	}
	if err := r.ExpectEnd(Int32Tag); err != nil {
		return nil, err
	}

	v, err := strconv.ParseInt(text, 10, 32)
	if err != nil {
		return nil, r.MalformedValue("invalid int value " + strconv.Quote(text))
	}

	return rtypes.Int32(int32(v)), nil
}

func decodeInt64(r *EventReader) (rtypes.Value, error) {
	text, err := r.ReadInnerText()
	if err != nil {
		return nil, err
	}
	if err := r.ExpectEnd(Int64Tag); err != nil {
		return nil, err
	}

	v, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return nil, r.MalformedValue("invalid int64 value " + strconv.Quote(text))
	}

	return rtypes.Int64(v), nil
}

func encodeFloat32(w *EventWriter, v rtypes.Float32) error {
	return w.WriteTagValue(Float32Tag, float32(v))
}

func encodeFloat64(w *EventWriter, v rtypes.Float64) error {
	return w.WriteTagValue(Float64Tag, float64(v))
}

func encodeInt32(w *EventWriter, v rtypes.Int32) error {
	return w.WriteTagValue(Int32Tag, int32(v))
}

func encodeInt64(w *EventWriter, v rtypes.Int64) error {
	return w.WriteTagValue(Int64Tag, int64(v))
}

// readFloatElement reads a leaf element holding one float and consumes its
// end tag.
func readFloatElement(r *EventReader, tag string, bits int) (float64, error) {
	text, err := r.ReadInnerText()
	if err != nil {
		return 0, err
	}
	if err := r.ExpectEnd(tag); err != nil {
		return 0, err
	}

	return parseFloatText(r, text, bits)
}

// parseFloatText parses a float, honoring the format's spellings for the
// non-finite values.
func parseFloatText(r *EventReader, text string, bits int) (float64, error) {
	switch text {
	case "INF":
		return math.Inf(1), nil
	case "-INF":
		return math.Inf(-1), nil
	case "NAN":
		return math.NaN(), nil
	}

	v, err := strconv.ParseFloat(text, bits)
	if err != nil {
		return 0, r.MalformedValue("invalid float value " + strconv.Quote(text))
	}

	return v, nil
}

// floatString formats a float the way the writer does, for handlers that
// compose multi-number text payloads.
func floatString(v float64, bits int) string {
	return string(appendFloat(nil, v, bits))
}
