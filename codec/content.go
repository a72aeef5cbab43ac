package codec

import (
	"fmt"

	"github.com/meshforge/scenexml/errs"
	"github.com/meshforge/scenexml/rtypes"
)

// ContentTag is the type tag for asset references. The value holds either a
// <url> child with the asset URL or an empty <null> child.
const ContentTag = "Content"

func decodeContent(r *EventReader) (rtypes.Value, error) {
	start, err := r.NextStart()
	if err != nil {
		return nil, err
	}
	if start == nil {
		return nil, r.errHere(fmt.Errorf("%w: Content value missing url or null child", errs.ErrMalformedValue))
	}

	var v rtypes.Content
	switch start.Name {
	case "url":
		url, err := r.ReadInnerText()
		if err != nil {
			return nil, err
		}
		if err := r.ExpectEnd("url"); err != nil {
			return nil, err
		}
		v = rtypes.Content{URL: url}

	case "null":
		if err := r.ExpectEnd("null"); err != nil {
			return nil, err
		}

	default:
		return nil, r.errHere(fmt.Errorf("%w: unexpected Content child <%s>", errs.ErrMalformedValue, start.Name))
	}

	if err := r.ExpectEnd(ContentTag); err != nil {
		return nil, err
	}

	return v, nil
}

func encodeContent(w *EventWriter, v rtypes.Content) error {
	if err := w.OpenElement(ContentTag); err != nil {
		return err
	}

	if v.IsNull() {
		if err := w.OpenElement("null"); err != nil {
			return err
		}
		if err := w.CloseElement(); err != nil {
			return err
		}
	} else if err := w.WriteTagValue("url", v.URL); err != nil {
		return err
	}

	return w.CloseElement()
}
