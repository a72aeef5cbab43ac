package compress

// ZstdCompressor provides Zstandard compression. It has the best ratio of
// the supported codecs and is the default for archived scene documents.
//
// Two implementations exist, selected by build tag: a cgo-backed variant
// using valyala/gozstd and a pure-Go variant using klauspost/compress/zstd.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd compressor with default settings.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
