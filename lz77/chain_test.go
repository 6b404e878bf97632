package lz77

import (
	"math/rand"
	"reflect"
	"strings"
	"testing"
)

func TestHashChainMatchesWindowSearcher(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	alphabets := []string{"ab", "abc", "abcdefgh", "аб в"}
	params := []Params{{1, 1}, {2, 3}, {6, 6}, {16, 4}, {64, 15}}

	for _, alphabet := range alphabets {
		letters := []rune(alphabet)
		for round := 0; round < 20; round++ {
			src := make([]rune, rng.Intn(200))
			for i := range src {
				src[i] = letters[rng.Intn(len(letters))]
			}
			for _, p := range params {
				want := GreedyParser{Searcher: WindowSearcher{p}}.Parse(nil, src)
				got := GreedyParser{Searcher: NewHashChain(src, p)}.Parse(nil, src)
				if !reflect.DeepEqual(got, want) {
					t.Fatalf("%q %+v:\ngot  %v\nwant %v", string(src), p, got, want)
				}
			}
		}
	}
}

func TestHashChainPrefersDistantMatch(t *testing.T) {
	src := []rune("xyzxyzxyz")
	q := NewHashChain(src, Params{WindowSize: 6, BufferSize: 3})
	m := q.Search(src, 6)
	if m.Match != 0 || m.Length() != 3 {
		t.Fatalf("got match at %d of length %d, want 0 and 3", m.Match, m.Length())
	}
}

func BenchmarkSearchers(b *testing.B) {
	src := []rune(strings.Repeat("the quick brown fox jumps over the lazy dog. ", 100))
	p := Params{WindowSize: 4096, BufferSize: 15}
	b.Run("window", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			GreedyParser{Searcher: WindowSearcher{p}}.Parse(nil, src)
		}
	})
	b.Run("chain", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			GreedyParser{Searcher: NewHashChain(src, p)}.Parse(nil, src)
		}
	})
}
