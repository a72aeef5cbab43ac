package codec

import "github.com/meshforge/scenexml/rtypes"

// Type tags for the vector kinds.
const (
	Vector2Tag = "Vector2"
	Vector3Tag = "Vector3"
)

var (
	vector2Fields = []string{"X", "Y"}
	vector3Fields = []string{"X", "Y", "Z"}
)

func decodeVector2(r *EventReader) (rtypes.Value, error) {
	fields, err := readFloatFields(r, vector2Fields)
	if err != nil {
		return nil, err
	}
	if err := r.ExpectEnd(Vector2Tag); err != nil {
		return nil, err
	}

	return rtypes.Vector2{X: fields[0], Y: fields[1]}, nil
}

func decodeVector3(r *EventReader) (rtypes.Value, error) {
	fields, err := readFloatFields(r, vector3Fields)
	if err != nil {
		return nil, err
	}
	if err := r.ExpectEnd(Vector3Tag); err != nil {
		return nil, err
	}

	return rtypes.Vector3{X: fields[0], Y: fields[1], Z: fields[2]}, nil
}

func encodeVector2(w *EventWriter, v rtypes.Vector2) error {
	if err := w.OpenElement(Vector2Tag); err != nil {
		return err
	}
	if err := WriteTagArray(w, []float32{v.X, v.Y}, vector2Fields); err != nil {
		return err
	}

	return w.CloseElement()
}

func encodeVector3(w *EventWriter, v rtypes.Vector3) error {
	if err := w.OpenElement(Vector3Tag); err != nil {
		return err
	}
	if err := WriteTagArray(w, []float32{v.X, v.Y, v.Z}, vector3Fields); err != nil {
		return err
	}

	return w.CloseElement()
}

// readFloatFields reads one tagged float element per field name, in order.
func readFloatFields(r *EventReader, fields []string) ([]float32, error) {
	out := make([]float32, len(fields))
	for i, field := range fields {
		text, err := r.ReadTagValue(field)
		if err != nil {
			return nil, err
		}
		v, err := parseFloatText(r, text, 32)
		if err != nil {
			return nil, err
		}
		out[i] = float32(v)
	}

	return out, nil
}
