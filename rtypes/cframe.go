package rtypes

// CFrame is a 3D transform property value: a position plus a 3x3 rotation
// matrix in row-major order.
type CFrame struct {
	Position Vector3
	Rotation [9]float32
}

func (CFrame) Type() Type { return TypeCFrame }
func (CFrame) isValue()   {}

// NewCFrame returns the identity transform at the given position.
func NewCFrame(x, y, z float32) CFrame {
	return CFrame{
		Position: Vector3{X: x, Y: y, Z: z},
		Rotation: [9]float32{
			1, 0, 0,
			0, 1, 0,
			0, 0, 1,
		},
	}
}

// Components returns the serialized field order: position first, then the
// rotation matrix row by row.
func (c CFrame) Components() [12]float32 {
	return [12]float32{
		c.Position.X, c.Position.Y, c.Position.Z,
		c.Rotation[0], c.Rotation[1], c.Rotation[2],
		c.Rotation[3], c.Rotation[4], c.Rotation[5],
		c.Rotation[6], c.Rotation[7], c.Rotation[8],
	}
}
