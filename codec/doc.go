// Package codec implements the scene document property codec: a streaming
// XML event writer and reader plus the bidirectional dispatch registry that
// binds external type tags to typed decode/encode handlers.
//
// The write path is built around one rule: a string whose first or last rune
// is whitespace must be emitted as a CDATA literal block, because the format
// normalizes the outer whitespace of plain character data. Every handler
// that emits text funnels through that decision in EventWriter.WriteText.
//
// The dispatch registry is asymmetric on purpose. Decoding faces untrusted
// external tags, so it is a runtime map lookup that fails gracefully with
// errs.ErrUnknownPropertyType. Encoding faces the closed set of rtypes
// kinds, so it is a type switch over the sealed Value interface; a kind
// without an arm fails with errs.ErrUnsupportedPropertyType. Both tables
// live side by side in registry.go so additions stay symmetric.
package codec
