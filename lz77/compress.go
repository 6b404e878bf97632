package lz77

import (
	"fmt"
	"time"

	"github.com/textpack/pack"
)

// Result holds both serializations of one compression run.
type Result struct {
	Triples []Triple

	// Packed is the bitstream form.
	Packed []byte

	// Sequence is the text form.
	Sequence string

	// Stats compares the UTF-8 size of the input with len(Packed).
	Stats pack.Stats
}

// Compress finds the triples for text and serializes them both ways. Text
// containing symbols above U+00FF cannot be packed into the bitstream and
// fails with pack.ErrUnrepresentableSymbol; use FindTriples and EncodeText
// for such input.
func Compress(text string, p Params) (*Result, error) {
	start := time.Now()
	triples, err := FindTriples(text, p)
	if err != nil {
		return nil, err
	}
	packed, err := EncodeBits(triples, p)
	if err != nil {
		return nil, err
	}
	res := &Result{
		Triples:  triples,
		Packed:   packed,
		Sequence: EncodeText(triples),
	}
	res.Stats = pack.NewStats(len(text), len(packed), time.Since(start))
	return res, nil
}

// An Encoding selects one of the two serializations.
type Encoding int

const (
	Bits Encoding = iota
	Text
)

func (e Encoding) String() string {
	switch e {
	case Bits:
		return "bits"
	case Text:
		return "text"
	}
	return fmt.Sprintf("Encoding(%d)", int(e))
}

// ParseEncoding is the inverse of Encoding.String.
func ParseEncoding(s string) (Encoding, error) {
	switch s {
	case "bits":
		return Bits, nil
	case "text":
		return Text, nil
	}
	return 0, fmt.Errorf("lz77: unknown encoding %q: %w", s, pack.ErrInvalidInput)
}

// Encode serializes triples with the chosen encoding.
func Encode(triples []Triple, p Params, e Encoding) ([]byte, error) {
	switch e {
	case Bits:
		return EncodeBits(triples, p)
	case Text:
		if err := p.Validate(); err != nil {
			return nil, err
		}
		return []byte(EncodeText(triples)), nil
	}
	return nil, fmt.Errorf("lz77: %v: %w", e, pack.ErrInvalidInput)
}

// Decode reverses Encode.
func Decode(data []byte, p Params, e Encoding) (string, error) {
	switch e {
	case Bits:
		return DecodeBits(data, p)
	case Text:
		if len(data) == 0 {
			return "", p.Validate()
		}
		return DecodeText(string(data), p)
	}
	return "", fmt.Errorf("lz77: %v: %w", e, pack.ErrInvalidInput)
}

// Codec adapts the compressor to pack.Codec. Input must be valid UTF-8.
type Codec struct {
	Params
	Encoding Encoding
}

func (c Codec) Name() string {
	return "lz77-" + c.Encoding.String()
}

func (c Codec) Compress(src []byte) ([]byte, error) {
	triples, err := FindTriples(string(src), c.Params)
	if err != nil {
		return nil, err
	}
	return Encode(triples, c.Params, c.Encoding)
}

func (c Codec) Decompress(src []byte) ([]byte, error) {
	text, err := Decode(src, c.Params, c.Encoding)
	if err != nil {
		return nil, err
	}
	return []byte(text), nil
}

var _ pack.Codec = Codec{}
