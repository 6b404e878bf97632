package huffman

import "github.com/textpack/pack"

// Codec adapts the canonical container to pack.Codec. Input must be valid
// UTF-8 text.
type Codec struct{}

func (Codec) Name() string { return "huffman" }

func (Codec) Compress(src []byte) ([]byte, error) {
	return Compress(string(src))
}

func (Codec) Decompress(src []byte) ([]byte, error) {
	text, err := Decompress(src)
	return []byte(text), err
}

// ExplicitCodec adapts the explicit-code container to pack.Codec.
type ExplicitCodec struct{}

func (ExplicitCodec) Name() string { return "huffman-explicit" }

func (ExplicitCodec) Compress(src []byte) ([]byte, error) {
	return CompressExplicit(string(src))
}

func (ExplicitCodec) Decompress(src []byte) ([]byte, error) {
	text, err := DecompressExplicit(src)
	return []byte(text), err
}

var (
	_ pack.Codec = Codec{}
	_ pack.Codec = ExplicitCodec{}
)
