package compress

// ZstdCompressor provides Zstandard compression.
//
// The pure-Go implementation from klauspost/compress is used by default;
// building with the gozstd tag (and cgo) switches to the libzstd bindings.
// Both produce standard zstd frames.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd compressor with default settings.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
