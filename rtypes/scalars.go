package rtypes

// Bool is a boolean property value.
type Bool bool

func (Bool) Type() Type { return TypeBool }
func (Bool) isValue()   {}

// String is a text property value. Content round-trips exactly, including
// leading and trailing whitespace.
type String string

func (String) Type() Type { return TypeString }
func (String) isValue()   {}

// BinaryString is an opaque binary payload, serialized as base64.
type BinaryString []byte

func (BinaryString) Type() Type { return TypeBinaryString }
func (BinaryString) isValue()   {}

// Float32 is a single-precision float property value.
type Float32 float32

func (Float32) Type() Type { return TypeFloat32 }
func (Float32) isValue()   {}

// Float64 is a double-precision float property value.
type Float64 float64

func (Float64) Type() Type { return TypeFloat64 }
func (Float64) isValue()   {}

// Int32 is a 32-bit integer property value.
type Int32 int32

func (Int32) Type() Type { return TypeInt32 }
func (Int32) isValue()   {}

// Int64 is a 64-bit integer property value.
type Int64 int64

func (Int64) Type() Type { return TypeInt64 }
func (Int64) isValue()   {}

// Enum is an enumeration property value, stored as the raw item index.
type Enum uint32

func (Enum) Type() Type { return TypeEnum }
func (Enum) isValue()   {}

// Content is an asset reference property value. An empty URL is the null
// content.
type Content struct {
	URL string
}

func (Content) Type() Type { return TypeContent }
func (Content) isValue()   {}

// IsNull reports whether the content points at no asset.
func (c Content) IsNull() bool { return c.URL == "" }

// Ref is an instance identity. As a property value it points at another
// instance in the same document; RefNull points at nothing.
type Ref string

// RefNull is the null instance reference.
const RefNull = Ref("")

func (Ref) Type() Type { return TypeRef }
func (Ref) isValue()   {}

// IsNull reports whether the reference points at no instance.
func (r Ref) IsNull() bool { return r == RefNull }

// SharedString is a binary payload interned in the document-wide
// shared-string table, so identical payloads are stored once per document.
type SharedString []byte

func (SharedString) Type() Type { return TypeSharedString }
func (SharedString) isValue()   {}
