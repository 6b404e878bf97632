package huffman

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/textpack/pack"
	"github.com/textpack/pack/bitstream"
)

const (
	countBits  = 16
	symbolBits = 16
	lengthBits = 5
	totalBits  = 32
)

// Compress encodes text into the canonical Huffman container. Empty text
// yields an empty container.
func Compress(text string) ([]byte, error) {
	if text == "" {
		return []byte{}, nil
	}

	freqs, err := CountFrequencies(text)
	if err != nil {
		return nil, err
	}
	if len(freqs) > math.MaxUint16 {
		return nil, fmt.Errorf("huffman: %d distinct symbols do not fit the 16-bit count: %w", len(freqs), pack.ErrUnrepresentableSymbol)
	}
	table, codes, err := CanonicalTable(freqs)
	if err != nil {
		return nil, err
	}

	var encodedBits uint64
	for symbol, freq := range freqs {
		encodedBits += uint64(freq) * uint64(codes[symbol].Size)
	}
	if encodedBits > math.MaxUint32 {
		return nil, fmt.Errorf("huffman: %d encoded bits do not fit the 32-bit count: %w", encodedBits, pack.ErrInvalidInput)
	}

	w := bitstream.NewWriter()
	w.WriteBits(uint64(len(table)), countBits)
	for _, item := range table {
		w.WriteBits(uint64(item.Symbol), symbolBits)
		w.WriteBits(uint64(item.Length), lengthBits)
	}
	w.WriteBits(encodedBits, totalBits)
	for _, r := range text {
		hc := codes[r]
		w.WriteBits(uint64(hc.Bits), hc.Size)
	}
	return w.Bytes(), nil
}

// CompressStats is like Compress but also reports sizes and timing. The
// original size is the UTF-8 length of text.
func CompressStats(text string) ([]byte, pack.Stats, error) {
	start := time.Now()
	out, err := Compress(text)
	if err != nil {
		return nil, pack.Stats{}, err
	}
	return out, pack.NewStats(len(text), len(out), time.Since(start)), nil
}

// Decompress decodes a container produced by Compress.
func Decompress(data []byte) (string, error) {
	if len(data) == 0 {
		return "", nil
	}

	r := bitstream.NewReader(data)
	n, err := r.ReadBits(countBits)
	if err != nil {
		return "", fmt.Errorf("huffman: reading symbol count: %w", err)
	}

	table := make(Table, 0, n)
	for i := uint64(0); i < n; i++ {
		symbol, err := r.ReadBits(symbolBits)
		if err != nil {
			return "", fmt.Errorf("huffman: reading symbol %d of %d: %w", i, n, err)
		}
		length, err := r.ReadBits(lengthBits)
		if err != nil {
			return "", fmt.Errorf("huffman: reading code length %d of %d: %w", i, n, err)
		}
		table = append(table, SymbolLength{Symbol: rune(symbol), Length: uint8(length)})
	}

	count, err := r.ReadBits(totalBits)
	if err != nil {
		return "", fmt.Errorf("huffman: reading bit count: %w", err)
	}
	if count > uint64(r.Remaining()) {
		return "", fmt.Errorf("huffman: header declares %d bits, only %d present: %w", count, r.Remaining(), pack.ErrMalformedContainer)
	}
	if n == 0 {
		if count != 0 {
			return "", fmt.Errorf("huffman: %d bits declared with no symbols: %w", count, pack.ErrMalformedContainer)
		}
		return "", nil
	}

	codes, err := table.Codes()
	if err != nil {
		return "", fmt.Errorf("huffman: bad code table: %v: %w", err, pack.ErrMalformedContainer)
	}
	d := newDecoder(codes)

	var sb strings.Builder
	if err := d.decode(&sb, r, int(count)); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// decoder maps codes back to symbols.
type decoder struct {
	table   map[Code]rune
	maxSize uint8
}

func newDecoder(codes map[rune]Code) decoder {
	d := decoder{table: make(map[Code]rune, len(codes))}
	for symbol, hc := range codes {
		d.table[hc] = symbol
		if hc.Size > d.maxSize {
			d.maxSize = hc.Size
		}
	}
	return d
}

// decode walks exactly count bits of r one at a time, emitting a symbol
// each time the accumulated bits form a known code.
func (d decoder) decode(sb *strings.Builder, r *bitstream.Reader, count int) error {
	var hc Code
	for i := 0; i < count; i++ {
		bit, err := r.ReadBits(1)
		if err != nil {
			return fmt.Errorf("huffman: reading payload: %w", err)
		}
		hc.Bits = hc.Bits<<1 | uint32(bit)
		hc.Size++
		if symbol, found := d.table[hc]; found {
			sb.WriteRune(symbol)
			hc = Code{}
			continue
		}
		if hc.Size >= d.maxSize {
			return fmt.Errorf("huffman: no code matches %s at bit %d: %w", hc, r.Pos(), pack.ErrMalformedContainer)
		}
	}
	if hc.Size != 0 {
		return fmt.Errorf("huffman: payload ends inside code %s: %w", hc, pack.ErrMalformedContainer)
	}
	return nil
}
