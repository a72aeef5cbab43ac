package rtypes

// UDim is a one-axis screen dimension: a fraction of the parent size plus a
// pixel offset.
type UDim struct {
	Scale  float32
	Offset int32
}

func (UDim) Type() Type { return TypeUDim }
func (UDim) isValue()   {}

// UDim2 is a two-axis screen dimension.
type UDim2 struct {
	X, Y UDim
}

func (UDim2) Type() Type { return TypeUDim2 }
func (UDim2) isValue()   {}

// NumberRange is a closed numeric interval property value.
type NumberRange struct {
	Min, Max float32
}

func (NumberRange) Type() Type { return TypeNumberRange }
func (NumberRange) isValue()   {}
