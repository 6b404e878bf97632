// Package lz77 implements a sliding-window LZ77 compressor for text.
//
// Compression produces a sequence of triples (offset, length, next symbol),
// found by a greedy longest-match search over the window. The triples can
// then be serialized two ways:
//
// Bits packs each triple into a bitstream. A literal is a 0 flag followed
// by an 8-bit symbol. A match is a 1 flag, offset-1 in ceil(log2(window))
// bits, the length in ceil(log2(buffer+1)) bits, a presence bit, and the
// 8-bit next symbol when the presence bit is set. The field widths are not
// stored, so the decoder must be given the same Params as the encoder.
//
// Text renders triples as "(offset,length,symbol)" tokens separated by
// spaces, e.g. "(0,0,a) (0,0,b) (2,2,a)". It can carry any symbol.
package lz77
