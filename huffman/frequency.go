package huffman

import (
	"fmt"
	"math"
	"sort"
	"unicode/utf8"

	"github.com/textpack/pack"
)

// MaxSymbol is the largest symbol the 16-bit header field can carry.
const MaxSymbol = rune(math.MaxUint16)

// Frequencies maps each symbol of a text to its number of occurrences.
type Frequencies map[rune]uint32

// CountFrequencies tallies the symbols of text. It rejects text that is not
// valid UTF-8 and symbols above MaxSymbol.
func CountFrequencies(text string) (Frequencies, error) {
	if !utf8.ValidString(text) {
		return nil, fmt.Errorf("huffman: input is not valid UTF-8: %w", pack.ErrInvalidInput)
	}
	freqs := make(Frequencies)
	for i, r := range text {
		if r > MaxSymbol {
			return nil, fmt.Errorf("huffman: symbol %U at byte %d: %w", r, i, pack.ErrUnrepresentableSymbol)
		}
		if freqs[r] == math.MaxUint32 {
			return nil, fmt.Errorf("huffman: symbol %U occurs more than %d times: %w", r, uint32(math.MaxUint32), pack.ErrInvalidInput)
		}
		freqs[r]++
	}
	return freqs, nil
}

// Symbols returns the symbols of f in ascending order.
func (f Frequencies) Symbols() []rune {
	symbols := make([]rune, 0, len(f))
	for s := range f {
		symbols = append(symbols, s)
	}
	sort.Slice(symbols, func(i, j int) bool { return symbols[i] < symbols[j] })
	return symbols
}
