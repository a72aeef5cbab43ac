package scenexml

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/meshforge/scenexml/codec"
	"github.com/meshforge/scenexml/compress"
	"github.com/meshforge/scenexml/errs"
	"github.com/meshforge/scenexml/format"
	"github.com/meshforge/scenexml/rtypes"
)

// Deserialize reads a scene document from r and returns its root instances.
//
// Both plain XML documents and compressed containers produced by Serialize
// are accepted; the container is detected by its magic prefix.
//
// A failure aborts the whole document: a single malformed or unknown
// property invalidates the structural integrity of the remainder, so there
// is no partial result.
//
// Returns:
//   - []*Instance: The root instances of the document, owned by the caller
//   - error: errs.DecodeError carrying the document position of the failure
func Deserialize(r io.Reader) ([]*Instance, error) {
	head := make([]byte, len(containerMagic)+1)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, errs.NewDecodeError(errs.Location{Line: 1, Column: 1}, err)
	}

	if n == len(head) && string(head[:len(containerMagic)]) == containerMagic {
		compression := format.CompressionType(head[len(containerMagic)])
		codecImpl, err := compress.GetCodec(compression)
		if err != nil {
			return nil, errs.NewDecodeError(errs.Location{Line: 1, Column: 1}, err)
		}

		rest, err := io.ReadAll(r)
		if err != nil {
			return nil, errs.NewDecodeError(errs.Location{Line: 1, Column: 1}, err)
		}

		payload, err := codecImpl.Decompress(rest)
		if err != nil {
			return nil, errs.NewDecodeError(errs.Location{Line: 1, Column: 1},
				fmt.Errorf("failed to decompress document: %w", err))
		}

		return deserializeDocument(bytes.NewReader(payload))
	}

	return deserializeDocument(io.MultiReader(bytes.NewReader(head[:n]), r))
}

func deserializeDocument(r io.Reader) ([]*Instance, error) {
	er := codec.NewEventReader(r)
	state := codec.NewParseState()
	byIdentity := make(map[rtypes.Ref]*Instance)

	root, err := er.ExpectStart(rootTag)
	if err != nil {
		return nil, err
	}
	if version, ok := root.Attr("version"); !ok || version != formatVersion {
		return nil, errs.NewDecodeError(er.Position(),
			fmt.Errorf("%w: unsupported format version %q", errs.ErrInvalidDocument, version))
	}

	var roots []*Instance
	for {
		start, err := er.NextStart()
		if err != nil {
			return nil, err
		}
		if start == nil {
			break
		}

		switch start.Name {
		case itemTag:
			inst, err := readInstance(er, state, *start, byIdentity)
			if err != nil {
				return nil, err
			}
			roots = append(roots, inst)

		case sharedStringsTag:
			if err := readSharedStrings(er, state); err != nil {
				return nil, err
			}

		default:
			return nil, errs.NewDecodeError(er.Position(),
				fmt.Errorf("%w: unexpected element <%s>", errs.ErrInvalidDocument, start.Name))
		}
	}

	if err := er.ExpectEnd(rootTag); err != nil {
		return nil, err
	}

	if err := applyRewrites(er, state, byIdentity); err != nil {
		return nil, err
	}

	return roots, nil
}

func readInstance(er *codec.EventReader, state *codec.ParseState, start codec.StartElement, byIdentity map[rtypes.Ref]*Instance) (*Instance, error) {
	class, ok := start.Attr("class")
	if !ok || class == "" {
		return nil, errs.NewDecodeError(er.Position(),
			fmt.Errorf("%w: Item missing class attribute", errs.ErrInvalidDocument))
	}

	inst := NewInstance(class, "")
	if refID, ok := start.Attr("referent"); ok && refID != "" {
		state.AddReferent(refID, inst.Ref)
	}
	byIdentity[inst.Ref] = inst

	for {
		child, err := er.NextStart()
		if err != nil {
			return nil, err
		}
		if child == nil {
			break
		}

		switch child.Name {
		case propertiesTag:
			if err := readProperties(er, state, inst); err != nil {
				return nil, err
			}

		case itemTag:
			childInst, err := readInstance(er, state, *child, byIdentity)
			if err != nil {
				return nil, err
			}
			inst.Children = append(inst.Children, childInst)

		default:
			return nil, errs.NewDecodeError(er.Position(),
				fmt.Errorf("%w: unexpected element <%s> in Item", errs.ErrInvalidDocument, child.Name))
		}
	}

	return inst, er.ExpectEnd(itemTag)
}

func readProperties(er *codec.EventReader, state *codec.ParseState, inst *Instance) error {
	for {
		prop, err := er.NextStart()
		if err != nil {
			return err
		}
		if prop == nil {
			break
		}

		typeStart, err := er.NextStart()
		if err != nil {
			return err
		}
		if typeStart == nil {
			return errs.NewDecodeError(er.Position(),
				fmt.Errorf("%w: property %q missing value element", errs.ErrInvalidDocument, prop.Name))
		}

		value, err := codec.DecodeValue(er, state, inst.Ref, prop.Name, typeStart.Name)
		if err != nil {
			return err
		}
		if err := er.ExpectEnd(prop.Name); err != nil {
			return err
		}

		if prop.Name == "Name" {
			if name, ok := value.(rtypes.String); ok {
				inst.Name = string(name)
				continue
			}
		}
		inst.Properties[prop.Name] = value
	}

	return er.ExpectEnd(propertiesTag)
}

func readSharedStrings(er *codec.EventReader, state *codec.ParseState) error {
	for {
		entry, err := er.NextStart()
		if err != nil {
			return err
		}
		if entry == nil {
			break
		}
		if entry.Name != sharedStringTag {
			return errs.NewDecodeError(er.Position(),
				fmt.Errorf("%w: unexpected element <%s> in shared string table", errs.ErrInvalidDocument, entry.Name))
		}

		keyText, ok := entry.Attr("key")
		if !ok {
			return errs.NewDecodeError(er.Position(),
				fmt.Errorf("%w: shared string entry missing key attribute", errs.ErrInvalidDocument))
		}
		key, err := strconv.ParseUint(keyText, 16, 64)
		if err != nil {
			return er.MalformedValue("invalid shared string key " + strconv.Quote(keyText))
		}

		text, err := er.ReadInnerText()
		if err != nil {
			return err
		}
		if err := er.ExpectEnd(sharedStringTag); err != nil {
			return err
		}

		data, err := decodeBase64Text(text)
		if err != nil {
			return er.MalformedValue("invalid shared string payload: " + err.Error())
		}
		if err := state.AddSharedString(key, data); err != nil {
			return errs.NewDecodeError(er.Position(), err)
		}
	}

	return er.ExpectEnd(sharedStringsTag)
}

// applyRewrites resolves Ref and SharedString properties recorded during the
// tree walk. Referent targets and the shared-string table may appear after
// their first use, so this runs once the whole document is in memory.
func applyRewrites(er *codec.EventReader, state *codec.ParseState, byIdentity map[rtypes.Ref]*Instance) error {
	for _, rw := range state.RefRewrites() {
		inst := byIdentity[rw.Instance]
		if inst == nil {
			continue
		}
		if target, ok := state.LookupReferent(rw.ReferentID); ok {
			inst.Properties[rw.Property] = target
		} else {
			// Dangling reference; the property stays null rather than
			// failing the document.
			inst.Properties[rw.Property] = rtypes.RefNull
		}
	}

	for _, rw := range state.SharedStringRewrites() {
		inst := byIdentity[rw.Instance]
		if inst == nil {
			continue
		}
		payload, ok := state.LookupSharedString(rw.Key)
		if !ok {
			return errs.NewDecodeError(er.Position(),
				fmt.Errorf("%w: %016x", errs.ErrUnresolvedSharedString, rw.Key))
		}
		inst.Properties[rw.Property] = rtypes.SharedString(payload)
	}

	return nil
}

func decodeBase64Text(text string) ([]byte, error) {
	text = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}

		return r
	}, text)

	return base64.StdEncoding.DecodeString(text)
}
