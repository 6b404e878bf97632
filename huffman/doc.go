// Package huffman implements canonical Huffman coding of text.
//
// Compress counts symbol frequencies, builds a Huffman tree, keeps only the
// resulting code lengths and re-derives canonical codes from them, so the
// container needs to carry nothing but (symbol, length) pairs:
//
//     16 bits   number of symbols N
//     N times   16-bit symbol, 5-bit code length
//     32 bits   number of encoded bits
//     ...       encoded bits, zero-padded to a byte boundary
//
// All fields are written most significant bit first. Symbols are limited to
// the 16-bit range by the header format.
//
// CompressExplicit produces a separate, byte-aligned format that stores each
// code verbatim instead of relying on canonical reconstruction.
//
// References:
//
//     <https://en.wikipedia.org/wiki/Canonical_Huffman_code>
//
package huffman
