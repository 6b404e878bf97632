package huffman

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"sort"
	"strings"

	ihuffman "github.com/icza/huffman"
	"github.com/textpack/pack"
	"github.com/textpack/pack/bitstream"
)

// CompressExplicit encodes text into the byte-aligned explicit-code
// container:
//
//     uint16    number of symbols N
//     N times   uint16 symbol, uint8 code length L, ceil(L/8) code bytes
//     uint32    number of encoded bits
//     ...       encoded bits, zero-padded to a byte boundary
//
// Integers are big-endian. Codes are stored as-is, most significant bit
// first and zero-padded, so the decoder does not need the canonical rules.
// The format is not compatible with Compress.
func CompressExplicit(text string) ([]byte, error) {
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

	symbols := freqs.Symbols()
	codes, err := explicitCodes(symbols, freqs)
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

	var buf bytes.Buffer
	buf.Write(binary.BigEndian.AppendUint16(nil, uint16(len(symbols))))
	for _, symbol := range symbols {
		hc := codes[symbol]
		buf.Write(binary.BigEndian.AppendUint16(nil, uint16(symbol)))
		buf.WriteByte(hc.Size)
		cw := bitstream.NewWriter()
		cw.WriteBits(uint64(hc.Bits), hc.Size)
		buf.Write(cw.Bytes())
	}
	buf.Write(binary.BigEndian.AppendUint32(nil, uint32(encodedBits)))

	w := bitstream.NewWriter()
	for _, r := range text {
		hc := codes[r]
		w.WriteBits(uint64(hc.Bits), hc.Size)
	}
	buf.Write(w.Bytes())
	return buf.Bytes(), nil
}

// explicitCodes builds a tree with icza/huffman and reads each leaf's path
// code off it.
func explicitCodes(symbols []rune, freqs Frequencies) (map[rune]Code, error) {
	leaves := make([]*ihuffman.Node, len(symbols))
	for i, symbol := range symbols {
		leaves[i] = &ihuffman.Node{Value: ihuffman.ValueType(symbol), Count: int(freqs[symbol])}
	}
	// Build reorders its argument.
	ihuffman.Build(append([]*ihuffman.Node(nil), leaves...))

	codes := make(map[rune]Code, len(leaves))
	for _, leaf := range leaves {
		depth := 0
		for n := leaf; n.Parent != nil; n = n.Parent {
			depth++
		}
		if depth > MaxCodeLength {
			return nil, fmt.Errorf("huffman: symbol %U needs %d bits: %w", rune(leaf.Value), depth, pack.ErrCodeLengthOverflow)
		}
		bits, size := leaf.Code()
		if size == 0 {
			// A lone leaf is the root and has an empty path.
			bits, size = 0, 1
		}
		codes[rune(leaf.Value)] = MakeCode(size, uint32(bits))
	}
	return codes, nil
}

// DecompressExplicit decodes a container produced by CompressExplicit.
func DecompressExplicit(data []byte) (string, error) {
	if len(data) == 0 {
		return "", nil
	}

	pos := 0
	take := func(n int, what string) ([]byte, error) {
		if len(data)-pos < n {
			return nil, fmt.Errorf("huffman: reading %s: need %d bytes, have %d: %w", what, n, len(data)-pos, pack.ErrMalformedContainer)
		}
		b := data[pos : pos+n]
		pos += n
		return b, nil
	}

	head, err := take(2, "symbol count")
	if err != nil {
		return "", err
	}
	n := int(binary.BigEndian.Uint16(head))

	codes := make(map[rune]Code, n)
	seen := make(map[Code]bool, n)
	for i := 0; i < n; i++ {
		entry, err := take(3, "code entry")
		if err != nil {
			return "", err
		}
		symbol := rune(binary.BigEndian.Uint16(entry))
		size := entry[2]
		if size == 0 || size > MaxCodeLength {
			return "", fmt.Errorf("huffman: symbol %U has code length %d: %w", symbol, size, pack.ErrMalformedContainer)
		}
		raw, err := take((int(size)+7)/8, "code bits")
		if err != nil {
			return "", err
		}
		bits, err := bitstream.NewReader(raw).ReadBits(size)
		if err != nil {
			return "", fmt.Errorf("huffman: code for symbol %U: %w", symbol, err)
		}
		hc := MakeCode(size, uint32(bits))
		if _, dup := codes[symbol]; dup || seen[hc] {
			return "", fmt.Errorf("huffman: symbol %U or code %s listed twice: %w", symbol, hc, pack.ErrMalformedContainer)
		}
		codes[symbol] = hc
		seen[hc] = true
	}
	if err := checkPrefixFree(seen); err != nil {
		return "", err
	}

	tail, err := take(4, "bit count")
	if err != nil {
		return "", err
	}
	count := int(binary.BigEndian.Uint32(tail))
	payload := data[pos:]
	if count > len(payload)*8 {
		return "", fmt.Errorf("huffman: header declares %d bits, only %d present: %w", count, len(payload)*8, pack.ErrMalformedContainer)
	}
	if n == 0 {
		if count != 0 {
			return "", fmt.Errorf("huffman: %d bits declared with no symbols: %w", count, pack.ErrMalformedContainer)
		}
		return "", nil
	}

	var sb strings.Builder
	if err := newDecoder(codes).decode(&sb, bitstream.NewReader(payload), count); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// checkPrefixFree sorts the codes lexicographically. A code that is a prefix
// of another sorts directly before some code it is a prefix of.
func checkPrefixFree(codes map[Code]bool) error {
	list := make([]Code, 0, len(codes))
	for hc := range codes {
		list = append(list, hc)
	}
	key := func(hc Code) uint64 {
		return uint64(hc.Bits) << (MaxCodeLength + 1 - hc.Size)
	}
	sort.Slice(list, func(i, j int) bool {
		a, b := key(list[i]), key(list[j])
		if a != b {
			return a < b
		}
		return list[i].Size < list[j].Size
	})
	for i := 1; i < len(list); i++ {
		if list[i-1].IsPrefixOf(list[i]) {
			return fmt.Errorf("huffman: code %s is a prefix of %s: %w", list[i-1], list[i], pack.ErrMalformedContainer)
		}
	}
	return nil
}
