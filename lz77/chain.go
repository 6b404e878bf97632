package lz77

// HashChain is an implementation of the Searcher interface that
// chains together the positions holding each symbol, so that a search only
// visits window positions whose first symbol matches. It reports exactly
// the same matches as a WindowSearcher with the same Params.
type HashChain struct {
	Params

	// chain[i] is the previous position holding src[i], or -1.
	chain []int32
}

// NewHashChain indexes src for searching.
func NewHashChain(src []rune, p Params) *HashChain {
	q := &HashChain{
		Params: p,
		chain:  make([]int32, len(src)),
	}
	table := make(map[rune]int32)
	for i, c := range src {
		candidate, ok := table[c]
		if !ok {
			candidate = -1
		}
		q.chain[i] = candidate
		table[c] = int32(i)
	}
	return q
}

// Search walks the chain from pos back to the start of the window. The
// chain runs from the nearest candidate to the most distant, so a match
// replaces the best one when it is at least as long.
func (q *HashChain) Search(src []rune, pos int) AbsoluteMatch {
	best := AbsoluteMatch{Start: pos, End: pos}
	if pos >= len(q.chain) {
		return best
	}
	start := pos - q.WindowSize

	for j := int(q.chain[pos]); j >= 0 && j >= start; j = int(q.chain[j]) {
		n := extendMatch(src, j, pos, q.BufferSize)
		if n >= best.Length() {
			best = AbsoluteMatch{Start: pos, End: pos + n, Match: j}
		}
	}
	return best
}

// extendMatch returns how many symbols starting at j match those starting
// at pos, up to limit. The match stops at pos.
func extendMatch(src []rune, j, pos, limit int) int {
	n := 0
	for n < limit && pos+n < len(src) && j+n < pos && src[j+n] == src[pos+n] {
		n++
	}
	return n
}
