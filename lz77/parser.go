package lz77

import (
	"fmt"
	"unicode/utf8"

	"github.com/textpack/pack"
)

// An AbsoluteMatch is like a Triple, but it stores indexes into the symbol
// sequence instead of lengths.
type AbsoluteMatch struct {
	// Start is the index of the first symbol.
	Start int

	// End is the index of the symbol after the last symbol
	// (so that End - Start = Length).
	End int

	// Match is the index of the previous data that matches
	// (Start - Match = Offset).
	Match int
}

// Length returns End - Start.
func (m AbsoluteMatch) Length() int {
	return m.End - m.Start
}

// A Searcher is the source of matches for a GreedyParser, looking for a
// match at one position at a time.
type Searcher interface {
	// Search returns the match to use at pos. A zero-length match means
	// there is none.
	Search(src []rune, pos int) AbsoluteMatch
}

// A WindowSearcher compares the lookahead against every position of the
// window, left to right, and keeps the first longest match. A match never
// runs past the end of the window.
type WindowSearcher struct {
	Params
}

func (s WindowSearcher) Search(src []rune, pos int) AbsoluteMatch {
	start := pos - s.WindowSize
	if start < 0 {
		start = 0
	}
	best := AbsoluteMatch{Start: pos, End: pos}

	for j := start; j < pos; j++ {
		n := extendMatch(src, j, pos, s.BufferSize)
		// Only a strictly longer match replaces the best one, so the
		// most distant of equally long matches wins.
		if n > best.Length() {
			best = AbsoluteMatch{Start: pos, End: pos + n, Match: j}
		}
	}
	return best
}

// A GreedyParser implements the greedy matching strategy: It goes from the
// start of the input to the end, taking the match its Searcher reports at
// each position together with the symbol that follows it.
type GreedyParser struct {
	Searcher Searcher
}

// Parse appends the triples for src to dst and returns dst.
func (p GreedyParser) Parse(dst []Triple, src []rune) []Triple {
	for i := 0; i < len(src); {
		m := p.Searcher.Search(src, i)
		if m.Length() == 0 {
			dst = append(dst, Triple{Next: src[i], HasNext: true})
			i++
			continue
		}

		t := Triple{Offset: m.Start - m.Match, Length: m.Length()}
		if m.End < len(src) {
			t.Next = src[m.End]
			t.HasNext = true
		}
		dst = append(dst, t)
		i = m.End + 1
	}
	return dst
}

// FindTriples runs the greedy window search over text, which must be valid
// UTF-8.
func FindTriples(text string, p Params) ([]Triple, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if !utf8.ValidString(text) {
		return nil, fmt.Errorf("lz77: input is not valid UTF-8: %w", pack.ErrInvalidInput)
	}
	src := []rune(text)
	parser := GreedyParser{Searcher: NewHashChain(src, p)}
	return parser.Parse(make([]Triple, 0, len(src)/2+1), src), nil
}
