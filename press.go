// Package pack is a workbench for comparing text compression algorithms.
//
// It contains two codecs written from scratch:
//  - huffman: canonical Huffman coding with a bit-packed container
//  - lz77: a sliding-window compressor with bitstream and text encodings
//
// and thin wrappers around mature libraries (flate, brotli, snappy, lz4,
// zstd) so that all of them can be measured the same way. Every codec works
// on whole in-memory buffers and keeps no state between calls.
package pack

import "time"

// A Codec compresses and decompresses whole buffers.
type Codec interface {
	// Name returns a short identifier such as "huffman" or "brotli".
	Name() string

	// Compress returns the compressed form of src.
	Compress(src []byte) ([]byte, error)

	// Decompress reverses Compress.
	Decompress(src []byte) ([]byte, error)
}

// Measure compresses src with c and reports how well it did.
func Measure(c Codec, src []byte) ([]byte, Stats, error) {
	start := time.Now()
	compressed, err := c.Compress(src)
	if err != nil {
		return nil, Stats{}, err
	}
	return compressed, NewStats(len(src), len(compressed), time.Since(start)), nil
}
