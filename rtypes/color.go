package rtypes

// Color3 is an RGB color property value with float components in [0, 1].
type Color3 struct {
	R, G, B float32
}

func (Color3) Type() Type { return TypeColor3 }
func (Color3) isValue()   {}

// Color3uint8 is an RGB color property value with 8-bit components,
// serialized as a single packed 24-bit integer.
type Color3uint8 struct {
	R, G, B uint8
}

func (Color3uint8) Type() Type { return TypeColor3uint8 }
func (Color3uint8) isValue()   {}

// Packed returns the color as 0xRRGGBB.
func (c Color3uint8) Packed() uint32 {
	return uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

// Color3uint8FromPacked unpacks a 0xRRGGBB integer; higher bits are ignored.
func Color3uint8FromPacked(packed uint32) Color3uint8 {
	return Color3uint8{
		R: uint8(packed >> 16),
		G: uint8(packed >> 8),
		B: uint8(packed),
	}
}
