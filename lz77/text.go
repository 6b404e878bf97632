package lz77

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/textpack/pack"
)

// EncodeText renders triples as space-separated "(offset,length,symbol)"
// tokens. A triple without a next symbol leaves the symbol slot empty.
func EncodeText(triples []Triple) string {
	var sb strings.Builder
	for i, t := range triples {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteByte('(')
		sb.WriteString(strconv.Itoa(t.Offset))
		sb.WriteByte(',')
		sb.WriteString(strconv.Itoa(t.Length))
		sb.WriteByte(',')
		if t.HasNext {
			sb.WriteRune(t.Next)
		}
		sb.WriteByte(')')
	}
	return sb.String()
}

// ParseText reads a sequence written by EncodeText. Tokens may be separated
// by any amount of white space. The symbol slot holds at most one symbol,
// so "(0,0,))" is a literal ')' and "(3,2,)" has no next symbol.
func ParseText(seq string) ([]Triple, error) {
	s := textScanner{src: seq}
	var triples []Triple
	for {
		s.skipSpace()
		if s.done() {
			break
		}
		t, err := s.triple()
		if err != nil {
			return nil, err
		}
		triples = append(triples, t)
	}
	if len(triples) == 0 {
		return nil, fmt.Errorf("lz77: no triples in sequence: %w", pack.ErrInvalidInput)
	}
	return triples, nil
}

// DecodeText parses seq and replays it. Each offset is checked against the
// output decoded so far before it is used.
func DecodeText(seq string, p Params) (string, error) {
	if err := p.Validate(); err != nil {
		return "", err
	}
	triples, err := ParseText(seq)
	if err != nil {
		return "", err
	}
	return Replay(triples, p)
}

type textScanner struct {
	src string
	pos int
}

func (s *textScanner) done() bool {
	return s.pos >= len(s.src)
}

func (s *textScanner) peek() (rune, int) {
	if s.done() {
		return utf8.RuneError, 0
	}
	return utf8.DecodeRuneInString(s.src[s.pos:])
}

func (s *textScanner) skipSpace() {
	for !s.done() {
		r, size := s.peek()
		if !unicode.IsSpace(r) {
			return
		}
		s.pos += size
	}
}

func (s *textScanner) errorf(format string, args ...interface{}) error {
	return fmt.Errorf("lz77: at byte %d: %s: %w", s.pos, fmt.Sprintf(format, args...), pack.ErrInvalidInput)
}

func (s *textScanner) expect(want byte) error {
	if s.done() || s.src[s.pos] != want {
		return s.errorf("expected %q", want)
	}
	s.pos++
	return nil
}

func (s *textScanner) number() (int, error) {
	start := s.pos
	for !s.done() && s.src[s.pos] >= '0' && s.src[s.pos] <= '9' {
		s.pos++
	}
	if start == s.pos {
		return 0, s.errorf("expected a number")
	}
	n, err := strconv.Atoi(s.src[start:s.pos])
	if err != nil {
		return 0, s.errorf("bad number %q", s.src[start:s.pos])
	}
	return n, nil
}

func (s *textScanner) triple() (Triple, error) {
	var t Triple
	var err error
	if err = s.expect('('); err != nil {
		return t, err
	}
	if t.Offset, err = s.number(); err != nil {
		return t, err
	}
	if err = s.expect(','); err != nil {
		return t, err
	}
	if t.Length, err = s.number(); err != nil {
		return t, err
	}
	if err = s.expect(','); err != nil {
		return t, err
	}

	r, size := s.peek()
	if size == 0 {
		return t, s.errorf("unterminated triple")
	}
	if r == utf8.RuneError && size == 1 {
		return t, s.errorf("invalid UTF-8")
	}
	s.pos += size
	if r == ')' {
		// Either the closing parenthesis of an empty slot, or a ')' symbol
		// followed by the real one.
		if s.done() || s.src[s.pos] != ')' {
			return t, nil
		}
		s.pos++
		t.Next, t.HasNext = ')', true
		return t, nil
	}
	t.Next, t.HasNext = r, true
	return t, s.expect(')')
}
