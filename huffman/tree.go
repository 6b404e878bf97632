package huffman

import (
	"container/heap"
	"fmt"
	"math"

	"github.com/chronos-tachyon/assert"
	"github.com/textpack/pack"
)

const noChild = -1

// node is an entry in a Tree's arena. Leaves have no children; internal
// nodes have exactly two and no symbol.
type node struct {
	symbol rune
	freq   uint32
	seq    uint32
	left   int
	right  int
}

func (n node) isLeaf() bool {
	return n.left == noChild
}

// A Tree is a Huffman tree stored as an arena of nodes indexed by id.
// It only lives long enough to extract code lengths from it.
type Tree struct {
	nodes []node
	root  int
}

// sequence hands out creation numbers. Nodes with equal frequency are
// ordered by creation number, which makes the tree shape a function of the
// frequencies alone.
type sequence uint32

func (s *sequence) next() uint32 {
	n := uint32(*s)
	*s++
	return n
}

func (t *Tree) add(seq *sequence, n node) int {
	n.seq = seq.next()
	t.nodes = append(t.nodes, n)
	return len(t.nodes) - 1
}

// BuildTree builds a Huffman tree whose leaves are exactly the symbols of
// freqs. Leaves are created in ascending symbol order, and the two nodes
// removed from the queue at each step become the left and right children
// of the new node, in that order.
func BuildTree(freqs Frequencies) (*Tree, error) {
	if len(freqs) == 0 {
		return nil, fmt.Errorf("huffman: empty frequency map: %w", pack.ErrInvalidInput)
	}

	symbols := freqs.Symbols()
	t := &Tree{nodes: make([]node, 0, 2*len(symbols)-1)}
	h := &nodeHeap{tree: t, ids: make([]int, 0, len(symbols))}
	var seq sequence

	for _, symbol := range symbols {
		freq := freqs[symbol]
		if freq == 0 {
			return nil, fmt.Errorf("huffman: symbol %U has zero frequency: %w", symbol, pack.ErrInvalidInput)
		}
		if symbol < 0 || symbol > MaxSymbol {
			return nil, fmt.Errorf("huffman: symbol %U: %w", symbol, pack.ErrUnrepresentableSymbol)
		}
		h.ids = append(h.ids, t.add(&seq, node{symbol: symbol, freq: freq, left: noChild, right: noChild}))
	}
	heap.Init(h)

	for h.Len() > 1 {
		a := heap.Pop(h).(int)
		b := heap.Pop(h).(int)

		// Compute freqSum using saturating addition
		freqSum := t.nodes[a].freq + t.nodes[b].freq
		if freqSum < t.nodes[a].freq {
			freqSum = math.MaxUint32
		}

		heap.Push(h, t.add(&seq, node{symbol: -1, freq: freqSum, left: a, right: b}))
	}

	t.root = heap.Pop(h).(int)
	assert.Assertf(len(t.nodes) == 2*len(symbols)-1, "tree has %d nodes for %d leaves", len(t.nodes), len(symbols))
	return t, nil
}

// walk visits every leaf with its depth and path code (left = 0, right = 1).
// Paths longer than 32 bits keep only their last 32 bits in code.
func (t *Tree) walk(visit func(symbol rune, depth int, code uint32)) {
	type stackItem struct {
		id    int
		depth int
		code  uint32
	}

	stack := []stackItem{{id: t.root}}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		n := t.nodes[top.id]
		if n.isLeaf() {
			visit(n.symbol, top.depth, top.code)
			continue
		}
		// Push right first so the left subtree is visited first.
		stack = append(stack,
			stackItem{n.right, top.depth + 1, top.code<<1 | 1},
			stackItem{n.left, top.depth + 1, top.code << 1})
	}
}

// Lengths returns the code length of every leaf, left to right. A tree with
// a single leaf gives that symbol length 1.
func (t *Tree) Lengths() Table {
	var table Table
	t.walk(func(symbol rune, depth int, _ uint32) {
		if depth == 0 {
			depth = 1
		}
		if depth > math.MaxUint8 {
			depth = math.MaxUint8
		}
		table = append(table, SymbolLength{Symbol: symbol, Length: uint8(depth)})
	})
	return table
}

// Codes returns the path code of every leaf. These are the tree's own
// codes, before canonicalization; the single-leaf tree yields code "0".
func (t *Tree) Codes() (map[rune]Code, error) {
	codes := make(map[rune]Code)
	var err error
	t.walk(func(symbol rune, depth int, code uint32) {
		if depth > MaxCodeLength {
			if err == nil {
				err = fmt.Errorf("huffman: symbol %U needs %d bits: %w", symbol, depth, pack.ErrCodeLengthOverflow)
			}
			return
		}
		if depth == 0 {
			depth = 1
		}
		codes[symbol] = MakeCode(uint8(depth), code)
	})
	if err != nil {
		return nil, err
	}
	return codes, nil
}

// type nodeHeap {{{

type nodeHeap struct {
	tree *Tree
	ids  []int
}

func (h *nodeHeap) Len() int {
	return len(h.ids)
}

func (h *nodeHeap) Swap(i, j int) {
	h.ids[i], h.ids[j] = h.ids[j], h.ids[i]
}

func (h *nodeHeap) Less(i, j int) bool {
	a, b := h.tree.nodes[h.ids[i]], h.tree.nodes[h.ids[j]]
	if a.freq != b.freq {
		return a.freq < b.freq
	}
	return a.seq < b.seq
}

func (h *nodeHeap) Push(x interface{}) {
	h.ids = append(h.ids, x.(int))
}

func (h *nodeHeap) Pop() interface{} {
	last := len(h.ids) - 1
	x := h.ids[last]
	h.ids = h.ids[:last]
	return x
}

var _ heap.Interface = (*nodeHeap)(nil)

// }}}
