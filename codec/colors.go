package codec

import (
	"strconv"

	"github.com/meshforge/scenexml/rtypes"
)

// Type tags for the color kinds.
const (
	Color3Tag      = "Color3"
	Color3uint8Tag = "Color3uint8"
)

var color3Fields = []string{"R", "G", "B"}

func decodeColor3(r *EventReader) (rtypes.Value, error) {
	fields, err := readFloatFields(r, color3Fields)
	if err != nil {
		return nil, err
	}
	if err := r.ExpectEnd(Color3Tag); err != nil {
		return nil, err
	}

	return rtypes.Color3{R: fields[0], G: fields[1], B: fields[2]}, nil
}

// Color3uint8 serializes as a single packed 0xRRGGBB integer rather than
// tagged components.
func decodeColor3uint8(r *EventReader) (rtypes.Value, error) {
	text, err := r.ReadInnerText()
	if err != nil {
		return nil, err
	}
	if err := r.ExpectEnd(Color3uint8Tag); err != nil {
		return nil, err
	}

	packed, err := strconv.ParseUint(text, 10, 32)
	if err != nil {
		return nil, r.MalformedValue("invalid packed color value " + strconv.Quote(text))
	}

	return rtypes.Color3uint8FromPacked(uint32(packed)), nil
}

func encodeColor3(w *EventWriter, v rtypes.Color3) error {
	if err := w.OpenElement(Color3Tag); err != nil {
		return err
	}
	if err := WriteTagArray(w, []float32{v.R, v.G, v.B}, color3Fields); err != nil {
		return err
	}

	return w.CloseElement()
}

func encodeColor3uint8(w *EventWriter, v rtypes.Color3uint8) error {
	return w.WriteTagValue(Color3uint8Tag, v.Packed())
}
