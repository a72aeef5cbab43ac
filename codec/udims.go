package codec

import (
	"strconv"

	"github.com/meshforge/scenexml/rtypes"
)

// Type tags for the screen-dimension kinds.
const (
	UDimTag  = "UDim"
	UDim2Tag = "UDim2"
)

func decodeUDim(r *EventReader) (rtypes.Value, error) {
	v, err := readUDimFields(r, "S", "O")
	if err != nil {
		return nil, err
	}
	if err := r.ExpectEnd(UDimTag); err != nil {
		return nil, err
	}

	return v, nil
}

func decodeUDim2(r *EventReader) (rtypes.Value, error) {
	x, err := readUDimFields(r, "XS", "XO")
	if err != nil {
		return nil, err
	}
	y, err := readUDimFields(r, "YS", "YO")
	if err != nil {
		return nil, err
	}
	if err := r.ExpectEnd(UDim2Tag); err != nil {
		return nil, err
	}

	return rtypes.UDim2{X: x, Y: y}, nil
}

func encodeUDim(w *EventWriter, v rtypes.UDim) error {
	if err := w.OpenElement(UDimTag); err != nil {
		return err
	}
	if err := writeUDimFields(w, v, "S", "O"); err != nil {
		return err
	}

	return w.CloseElement()
}

func encodeUDim2(w *EventWriter, v rtypes.UDim2) error {
	if err := w.OpenElement(UDim2Tag); err != nil {
		return err
	}
	if err := writeUDimFields(w, v.X, "XS", "XO"); err != nil {
		return err
	}
	if err := writeUDimFields(w, v.Y, "YS", "YO"); err != nil {
		return err
	}

	return w.CloseElement()
}

// readUDimFields reads one scale/offset pair under the given field tags.
func readUDimFields(r *EventReader, scaleTag, offsetTag string) (rtypes.UDim, error) {
	scaleText, err := r.ReadTagValue(scaleTag)
	if err != nil {
		return rtypes.UDim{}, err
	}
	scale, err := parseFloatText(r, scaleText, 32)
	if err != nil {
		return rtypes.UDim{}, err
	}

	offsetText, err := r.ReadTagValue(offsetTag)
	if err != nil {
		return rtypes.UDim{}, err
	}
	offset, err := strconv.ParseInt(offsetText, 10, 32)
	if err != nil {
		return rtypes.UDim{}, r.MalformedValue("invalid offset value " + strconv.Quote(offsetText))
	}

	return rtypes.UDim{Scale: float32(scale), Offset: int32(offset)}, nil
}

func writeUDimFields(w *EventWriter, v rtypes.UDim, scaleTag, offsetTag string) error {
	if err := w.WriteTagValue(scaleTag, v.Scale); err != nil {
		return err
	}

	return w.WriteTagValue(offsetTag, v.Offset)
}
