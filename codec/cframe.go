package codec

import "github.com/meshforge/scenexml/rtypes"

// CFrameTag is the type tag for 3D transforms.
const CFrameTag = "CoordinateFrame"

// cframeFields is the serialized field order: position, then the rotation
// matrix row by row.
var cframeFields = []string{
	"X", "Y", "Z",
	"R00", "R01", "R02",
	"R10", "R11", "R12",
	"R20", "R21", "R22",
}

func decodeCFrame(r *EventReader) (rtypes.Value, error) {
	fields, err := readFloatFields(r, cframeFields)
	if err != nil {
		return nil, err
	}
	if err := r.ExpectEnd(CFrameTag); err != nil {
		return nil, err
	}

	v := rtypes.CFrame{
		Position: rtypes.Vector3{X: fields[0], Y: fields[1], Z: fields[2]},
	}
	copy(v.Rotation[:], fields[3:])

	return v, nil
}

func encodeCFrame(w *EventWriter, v rtypes.CFrame) error {
	if err := w.OpenElement(CFrameTag); err != nil {
		return err
	}

	components := v.Components()
	if err := WriteTagArray(w, components[:], cframeFields); err != nil {
		return err
	}

	return w.CloseElement()
}
