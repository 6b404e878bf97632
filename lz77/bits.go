package lz77

import (
	"fmt"

	"github.com/textpack/pack"
	"github.com/textpack/pack/bitstream"
)

const symbolWidth = 8

// maxBitsSymbol is the largest symbol the 8-bit field can carry.
const maxBitsSymbol = 1<<symbolWidth - 1

// EncodeBits packs triples into the bitstream form.
func EncodeBits(triples []Triple, p Params) ([]byte, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	offsetWidth, lengthWidth := p.offsetWidth(), p.lengthWidth()

	w := bitstream.NewWriter()
	for i, t := range triples {
		if t.HasNext && (t.Next < 0 || t.Next > maxBitsSymbol) {
			return nil, fmt.Errorf("lz77: triple %d: symbol %U does not fit in %d bits: %w", i, t.Next, symbolWidth, pack.ErrUnrepresentableSymbol)
		}

		if t.Length == 0 {
			if !t.HasNext {
				return nil, fmt.Errorf("lz77: triple %d is empty: %w", i, pack.ErrInvalidInput)
			}
			w.WriteBool(false)
			w.WriteBits(uint64(t.Next), symbolWidth)
			continue
		}

		if t.Offset < 1 || t.Offset > p.WindowSize || t.Length > p.BufferSize {
			return nil, fmt.Errorf("lz77: triple %d %v does not fit window %d, buffer %d: %w", i, t, p.WindowSize, p.BufferSize, pack.ErrInvalidInput)
		}
		w.WriteBool(true)
		w.WriteBits(uint64(t.Offset-1), offsetWidth)
		w.WriteBits(uint64(t.Length), lengthWidth)
		w.WriteBool(t.HasNext)
		if t.HasNext {
			w.WriteBits(uint64(t.Next), symbolWidth)
		}
	}
	return w.Bytes(), nil
}

// DecodeBits unpacks a bitstream produced by EncodeBits with the same
// Params and replays it. Zero padding at the end is skipped; a stream that
// runs out in the middle of a triple fails with pack.ErrMalformedContainer.
func DecodeBits(data []byte, p Params) (string, error) {
	triples, err := parseBits(data, p)
	if err != nil {
		return "", err
	}
	return Replay(triples, p)
}

func parseBits(data []byte, p Params) ([]Triple, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	offsetWidth, lengthWidth := p.offsetWidth(), p.lengthWidth()

	var triples []Triple
	r := bitstream.NewReader(data)
	for !r.PaddingOnly() {
		start := r.Pos()
		t, err := readTriple(r, offsetWidth, lengthWidth)
		if err != nil {
			return nil, fmt.Errorf("lz77: triple %d at bit %d: %w", len(triples), start, err)
		}
		triples = append(triples, t)
	}
	return triples, nil
}

func readTriple(r *bitstream.Reader, offsetWidth, lengthWidth uint8) (Triple, error) {
	var t Triple
	match, err := r.ReadBool()
	if err != nil {
		return t, err
	}

	if match {
		offset, err := r.ReadBits(offsetWidth)
		if err != nil {
			return t, err
		}
		length, err := r.ReadBits(lengthWidth)
		if err != nil {
			return t, err
		}
		if length == 0 {
			return t, fmt.Errorf("match of length 0: %w", pack.ErrMalformedContainer)
		}
		t.Offset = int(offset) + 1
		t.Length = int(length)
		if t.HasNext, err = r.ReadBool(); err != nil || !t.HasNext {
			return t, err
		}
	} else {
		t.HasNext = true
	}

	next, err := r.ReadBits(symbolWidth)
	if err != nil {
		return t, err
	}
	t.Next = rune(next)
	return t, nil
}
