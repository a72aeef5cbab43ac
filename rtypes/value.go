package rtypes

// Type discriminates the concrete kind held by a Value.
type Type uint8

const (
	TypeBool Type = iota + 1
	TypeString
	TypeBinaryString
	TypeFloat32
	TypeFloat64
	TypeInt32
	TypeInt64
	TypeEnum
	TypeVector2
	TypeVector3
	TypeCFrame
	TypeColor3
	TypeColor3uint8
	TypeUDim
	TypeUDim2
	TypeNumberRange
	TypeContent
	TypeRef
	TypeSharedString
	TypeRay
)

func (t Type) String() string {
	switch t {
	case TypeBool:
		return "Bool"
	case TypeString:
		return "String"
	case TypeBinaryString:
		return "BinaryString"
	case TypeFloat32:
		return "Float32"
	case TypeFloat64:
		return "Float64"
	case TypeInt32:
		return "Int32"
	case TypeInt64:
		return "Int64"
	case TypeEnum:
		return "Enum"
	case TypeVector2:
		return "Vector2"
	case TypeVector3:
		return "Vector3"
	case TypeCFrame:
		return "CFrame"
	case TypeColor3:
		return "Color3"
	case TypeColor3uint8:
		return "Color3uint8"
	case TypeUDim:
		return "UDim"
	case TypeUDim2:
		return "UDim2"
	case TypeNumberRange:
		return "NumberRange"
	case TypeContent:
		return "Content"
	case TypeRef:
		return "Ref"
	case TypeSharedString:
		return "SharedString"
	case TypeRay:
		return "Ray"
	default:
		return "Unknown"
	}
}

// Value is one property value of a scene instance. Exactly one concrete kind
// is active; the interface is sealed to this package.
type Value interface {
	// Type returns the kind discriminator for the concrete value.
	Type() Type

	isValue()
}
