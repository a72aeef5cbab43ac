package codec

import (
	"encoding/base64"
	"strings"
	"unicode"

	"github.com/meshforge/scenexml/rtypes"
)

// BinaryStringTag is the type tag for opaque binary payloads.
const BinaryStringTag = "BinaryString"

func decodeBinaryString(r *EventReader) (rtypes.Value, error) {
	text, err := r.ReadInnerText()
	if err != nil {
		return nil, err
	}
	if err := r.ExpectEnd(BinaryStringTag); err != nil {
		return nil, err
	}

	// Tolerate wrapped base64: some emitters break the payload into lines.
	text = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}

		return r
	}, text)

	data, err := base64.StdEncoding.DecodeString(text)
	if err != nil {
		return nil, r.MalformedValue("invalid base64 payload: " + err.Error())
	}

	return rtypes.BinaryString(data), nil
}

func encodeBinaryString(w *EventWriter, v rtypes.BinaryString) error {
	return w.WriteTagValue(BinaryStringTag, base64.StdEncoding.EncodeToString(v))
}
