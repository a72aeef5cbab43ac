package scenexml

import (
	"encoding/base64"
	"fmt"
	"io"
	"sort"

	"github.com/meshforge/scenexml/codec"
	"github.com/meshforge/scenexml/compress"
	"github.com/meshforge/scenexml/errs"
	"github.com/meshforge/scenexml/format"
	"github.com/meshforge/scenexml/internal/options"
	"github.com/meshforge/scenexml/internal/pool"
	"github.com/meshforge/scenexml/rtypes"
)

const (
	rootTag          = "scenexml"
	formatVersion    = "1"
	itemTag          = "Item"
	propertiesTag    = "Properties"
	sharedStringsTag = "SharedStrings"
	sharedStringTag  = "SharedString"

	// containerMagic prefixes a compressed document container. Plain XML
	// never starts with these bytes, so Deserialize can sniff the format.
	containerMagic = "SXZ1"
)

type serializeConfig struct {
	indent      string
	compression format.CompressionType
}

// SerializeOption configures Serialize.
type SerializeOption = options.Option[*serializeConfig]

// WithIndent sets the indentation string for one nesting level. The default
// is two spaces.
func WithIndent(indent string) SerializeOption {
	return options.NoError(func(cfg *serializeConfig) {
		cfg.indent = indent
	})
}

// WithCompression wraps the serialized document in a compressed container
// using the given codec. The default is CompressionNone, which emits plain
// XML.
func WithCompression(compression format.CompressionType) SerializeOption {
	return options.New(func(cfg *serializeConfig) error {
		if _, err := compress.GetCodec(compression); err != nil {
			return err
		}
		cfg.compression = compression

		return nil
	})
}

// Serialize writes the scene trees rooted at roots to w.
//
// Referent ids and the shared-string table are scoped to this call; the same
// trees serialize to identical bytes every time.
//
// Returns:
//   - error: errs.EncodeError on stream or codec failures, or an
//     unsupported-type error for a property value with no registered handler
func Serialize(w io.Writer, roots []*Instance, opts ...SerializeOption) error {
	cfg := &serializeConfig{indent: "  ", compression: format.CompressionNone}
	if err := options.Apply(cfg, opts...); err != nil {
		return err
	}

	if cfg.compression == format.CompressionNone {
		return serializeDocument(w, roots, cfg.indent)
	}

	codecImpl, err := compress.GetCodec(cfg.compression)
	if err != nil {
		return err
	}

	buf := pool.GetDocBuffer()
	defer pool.PutDocBuffer(buf)

	if err := serializeDocument(buf, roots, cfg.indent); err != nil {
		return err
	}

	payload, err := codecImpl.Compress(buf.Bytes())
	if err != nil {
		return errs.NewEncodeError(fmt.Errorf("failed to compress document: %w", err))
	}

	header := append([]byte(containerMagic), byte(cfg.compression))
	if _, err := w.Write(header); err != nil {
		return errs.NewEncodeError(err)
	}
	if _, err := w.Write(payload); err != nil {
		return errs.NewEncodeError(err)
	}

	return nil
}

func serializeDocument(w io.Writer, roots []*Instance, indent string) error {
	ew := codec.NewEventWriter(w, indent)
	state := codec.NewEmitState()

	// Pre-assign referent ids over the whole forest so Ref properties can
	// point forward to instances serialized later.
	for _, root := range roots {
		assignReferents(state, root)
	}

	if err := ew.OpenElementAttrs(rootTag, codec.Attr{Name: "version", Value: formatVersion}); err != nil {
		return err
	}

	for _, root := range roots {
		if err := writeInstance(ew, state, root); err != nil {
			return err
		}
	}

	if err := writeSharedStrings(ew, state); err != nil {
		return err
	}

	return ew.CloseElement()
}

func assignReferents(state *codec.EmitState, inst *Instance) {
	state.AssignReferent(inst.Ref)
	for _, child := range inst.Children {
		assignReferents(state, child)
	}
}

func writeInstance(ew *codec.EventWriter, state *codec.EmitState, inst *Instance) error {
	id, _ := state.LookupReferent(inst.Ref)
	err := ew.OpenElementAttrs(itemTag,
		codec.Attr{Name: "class", Value: inst.ClassName},
		codec.Attr{Name: "referent", Value: id},
	)
	if err != nil {
		return err
	}

	if err := ew.OpenElement(propertiesTag); err != nil {
		return err
	}
	if err := codec.EncodeValue(ew, state, "Name", rtypes.String(inst.Name)); err != nil {
		return err
	}

	// Sorted property order keeps output deterministic across runs.
	names := make([]string, 0, len(inst.Properties))
	for name := range inst.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := codec.EncodeValue(ew, state, name, inst.Properties[name]); err != nil {
			return err
		}
	}
	if err := ew.CloseElement(); err != nil {
		return err
	}

	for _, child := range inst.Children {
		if err := writeInstance(ew, state, child); err != nil {
			return err
		}
	}

	return ew.CloseElement()
}

// writeSharedStrings emits the document trailer holding each interned
// payload once, keyed by hash.
func writeSharedStrings(ew *codec.EventWriter, state *codec.EmitState) error {
	order, table := state.SharedStrings()
	if len(order) == 0 {
		return nil
	}

	if err := ew.OpenElement(sharedStringsTag); err != nil {
		return err
	}

	for _, key := range order {
		err := ew.OpenElementAttrs(sharedStringTag,
			codec.Attr{Name: "key", Value: fmt.Sprintf("%016x", key)},
		)
		if err != nil {
			return err
		}
		if err := ew.WriteText(base64.StdEncoding.EncodeToString(table[key])); err != nil {
			return err
		}
		if err := ew.CloseElement(); err != nil {
			return err
		}
	}

	return ew.CloseElement()
}
