// Package rtypes defines the closed set of property value kinds that can
// appear on a scene instance.
//
// Value is a sealed interface: every concrete kind lives in this package and
// carries a Type discriminator. The codec package type-switches over the
// concrete kinds on the write path, so a kind added here without a matching
// codec handler fails encoding with a typed error instead of corrupting the
// output.
package rtypes
