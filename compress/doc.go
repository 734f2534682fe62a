// Package compress provides the compression codecs used for iqrfit input
// files and result archives.
//
// Two shapes of API are offered:
//
//   - Codec compresses and decompresses whole payloads in memory. Result
//     archives are small JSON documents and are encoded in one shot.
//   - NewReader wraps an io.Reader with a streaming decompressor so that large
//     input files can be parsed without first loading the compressed bytes.
//
// # Supported Algorithms
//
//   - None: data is passed through unchanged
//   - Zstd: best ratio, used by default for archives
//   - S2: fast, Snappy compatible
//   - LZ4: fastest decompression
//   - Gzip: for inputs produced by common tooling
//
// The algorithm for a file is chosen from its extension with Detect:
//
//	ct := compress.Detect("data.txt.zst") // format.CompressionZstd
//	rc, err := compress.NewReader(f, ct)
//
// Codecs are safe for concurrent use; internal encoders and decoders are
// pooled.
//
// Note that S2 and LZ4 codecs produce block-format payloads, while NewReader
// expects the framed stream formats written by the s2 and lz4 command line
// tools. Archives are always read back through the codec that wrote them.
package compress
