package huffman

import (
	"fmt"
	"sort"

	"github.com/textpack/pack"
)

// SymbolLength pairs a symbol with the length of its code.
type SymbolLength struct {
	Symbol rune
	Length uint8
}

// A Table lists the code length of every symbol in use. It is all that is
// needed to rebuild a canonical code.
type Table []SymbolLength

// Sort orders the table by (Length, Symbol) ascending, the order in which
// canonical codes are assigned.
func (table Table) Sort() {
	sort.Sort(bySize(table))
}

// MaxLength returns the longest code length in the table.
func (table Table) MaxLength() uint8 {
	var max uint8
	for _, item := range table {
		if item.Length > max {
			max = item.Length
		}
	}
	return max
}

// Codes sorts the table and assigns canonical codes: the first symbol gets
// the all-zero code of its length, and each following code is the previous
// one plus one, shifted left by the growth in length.
//
// Lengths above MaxCodeLength fail with pack.ErrCodeLengthOverflow. Zero
// lengths, repeated symbols and oversubscribed tables (more codes than
// their lengths leave room for) fail with pack.ErrInvalidInput.
func (table Table) Codes() (map[rune]Code, error) {
	if len(table) == 0 {
		return nil, fmt.Errorf("huffman: empty code length table: %w", pack.ErrInvalidInput)
	}
	for _, item := range table {
		if item.Length > MaxCodeLength {
			return nil, fmt.Errorf("huffman: symbol %U has code length %d, max %d: %w", item.Symbol, item.Length, MaxCodeLength, pack.ErrCodeLengthOverflow)
		}
		if item.Length == 0 {
			return nil, fmt.Errorf("huffman: symbol %U has code length 0: %w", item.Symbol, pack.ErrInvalidInput)
		}
	}

	table.Sort()

	codes := make(map[rune]Code, len(table))
	lastSize := table[0].Length
	nextCode := uint64(0)
	for _, item := range table {
		if item.Length > lastSize {
			nextCode <<= item.Length - lastSize
			lastSize = item.Length
		}
		if nextCode >= 1<<item.Length {
			return nil, fmt.Errorf("huffman: code lengths are oversubscribed at symbol %U: %w", item.Symbol, pack.ErrInvalidInput)
		}
		if _, dup := codes[item.Symbol]; dup {
			return nil, fmt.Errorf("huffman: symbol %U listed twice: %w", item.Symbol, pack.ErrInvalidInput)
		}
		codes[item.Symbol] = MakeCode(item.Length, uint32(nextCode))
		nextCode++
	}
	return codes, nil
}

// CanonicalTable builds a tree from freqs and returns its sorted code length
// table together with the canonical codes derived from it.
func CanonicalTable(freqs Frequencies) (Table, map[rune]Code, error) {
	tree, err := BuildTree(freqs)
	if err != nil {
		return nil, nil, err
	}
	table := tree.Lengths()
	codes, err := table.Codes()
	if err != nil {
		return nil, nil, err
	}
	return table, codes, nil
}

// type bySize {{{

type bySize []SymbolLength

func (list bySize) Len() int {
	return len(list)
}

func (list bySize) Swap(i, j int) {
	list[i], list[j] = list[j], list[i]
}

func (list bySize) Less(i, j int) bool {
	a, b := list[i], list[j]
	if a.Length != b.Length {
		return a.Length < b.Length
	}
	return a.Symbol < b.Symbol
}

var _ sort.Interface = bySize(nil)

// }}}
