package rtypes

// Vector2 is a 2D vector property value.
type Vector2 struct {
	X, Y float32
}

func (Vector2) Type() Type { return TypeVector2 }
func (Vector2) isValue()   {}

// Vector3 is a 3D vector property value.
type Vector3 struct {
	X, Y, Z float32
}

func (Vector3) Type() Type { return TypeVector3 }
func (Vector3) isValue()   {}

// Ray is a 3D ray property value. The codec has no handler for it yet;
// encoding a Ray fails with an unsupported-type error.
type Ray struct {
	Origin    Vector3
	Direction Vector3
}

func (Ray) Type() Type { return TypeRay }
func (Ray) isValue()   {}
