// Package compress provides container compression codecs for serialized
// scene documents.
//
// Compression is applied to the whole XML payload after serialization. Scene
// documents are verbose markup with heavily repeated element names, so even
// fast codecs reach high ratios. Supported algorithms:
//
//   - None: no compression (debuggable plain XML)
//   - Zstd: best ratio, the default for archived scenes
//   - S2: balanced ratio and speed
//   - LZ4: fastest decompression, for load-time critical assets
//
// The package defines Compressor, Decompressor, and their combination Codec.
// Codecs are selected through format.CompressionType; GetCodec returns a
// shared built-in instance.
package compress
