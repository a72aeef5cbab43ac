// Package scenexml implements a hierarchical, human-readable XML format for
// persisting typed 3D-scene objects and their properties.
//
// A document is a tree of instances. Each instance has a class name, a name,
// a set of typed properties (see the rtypes package for the supported value
// kinds), and children. The format preserves exact string content, including
// leading and trailing whitespace, by switching to CDATA literal blocks when
// plain character data would be normalized on read.
//
// # Basic Usage
//
// Serializing a scene:
//
//	part := scenexml.NewInstance("Part", "Floor")
//	part.Properties["Visible"] = rtypes.Bool(true)
//	part.Properties["CFrame"] = rtypes.NewCFrame(0, -0.5, 0)
//
//	var buf bytes.Buffer
//	if err := scenexml.Serialize(&buf, []*scenexml.Instance{part}); err != nil {
//	    return err
//	}
//
// Deserializing:
//
//	roots, err := scenexml.Deserialize(&buf)
//	if err != nil {
//	    return err
//	}
//
// Large scenes can be wrapped in a compressed container:
//
//	err := scenexml.Serialize(w, roots, scenexml.WithCompression(format.CompressionZstd))
//
// Deserialize detects the container automatically.
//
// # Package Structure
//
// The codec package holds the streaming event writer/reader and the type
// dispatch registry; rtypes defines the closed set of property value kinds;
// compress provides the container codecs. This package ties them together
// into whole-document serialization.
package scenexml

import (
	"strconv"
	"sync/atomic"

	"github.com/meshforge/scenexml/rtypes"
)

// Instance is one object in a scene tree.
type Instance struct {
	// Ref is the in-memory identity of the instance. Ref property values on
	// other instances point at it. Identities are unique within a process.
	Ref rtypes.Ref

	// ClassName identifies the engine class the instance deserializes into.
	ClassName string

	// Name is the display name, serialized as the "Name" string property.
	Name string

	// Properties holds the instance's typed property values, keyed by
	// property name. Name is kept out of this map.
	Properties map[string]rtypes.Value

	// Children are the child instances, serialized in order.
	Children []*Instance
}

var refCounter atomic.Uint64

// NewInstance creates an instance with a fresh identity and an empty
// property set.
func NewInstance(className, name string) *Instance {
	return &Instance{
		Ref:        rtypes.Ref("inst-" + strconv.FormatUint(refCounter.Add(1), 10)),
		ClassName:  className,
		Name:       name,
		Properties: make(map[string]rtypes.Value),
	}
}

// AddChild appends child to the instance and returns it.
func (inst *Instance) AddChild(child *Instance) *Instance {
	inst.Children = append(inst.Children, child)
	return child
}

// FindFirstChild returns the first direct child with the given name, or nil.
func (inst *Instance) FindFirstChild(name string) *Instance {
	for _, child := range inst.Children {
		if child.Name == name {
			return child
		}
	}

	return nil
}
