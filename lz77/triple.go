package lz77

import (
	"fmt"
	mathbits "math/bits"

	"github.com/textpack/pack"
)

// A Triple is the basic unit of LZ77 compression: copy Length symbols
// starting Offset symbols back from the end of the output, then append
// Next if HasNext is set. A Triple with Length 0 is a literal.
type Triple struct {
	Offset  int
	Length  int
	Next    rune
	HasNext bool
}

func (t Triple) String() string {
	if !t.HasNext {
		return fmt.Sprintf("(%d,%d,)", t.Offset, t.Length)
	}
	return fmt.Sprintf("(%d,%d,%c)", t.Offset, t.Length, t.Next)
}

// Params are the window and lookahead sizes. They are part of the bitstream
// format, not just tuning knobs.
type Params struct {
	// WindowSize is the number of already-seen symbols a match may start in.
	WindowSize int

	// BufferSize is the longest match that will be emitted.
	BufferSize int
}

// Validate checks that both sizes are at least 1.
func (p Params) Validate() error {
	if p.WindowSize < 1 || p.BufferSize < 1 {
		return fmt.Errorf("lz77: window size %d and buffer size %d must be at least 1: %w", p.WindowSize, p.BufferSize, pack.ErrInvalidInput)
	}
	return nil
}

// offsetWidth is ceil(log2(WindowSize)). Offsets run from 1 to WindowSize
// and are stored minus one, which always fits.
func (p Params) offsetWidth() uint8 {
	return uint8(mathbits.Len(uint(p.WindowSize - 1)))
}

// lengthWidth is ceil(log2(BufferSize+1)).
func (p Params) lengthWidth() uint8 {
	return uint8(mathbits.Len(uint(p.BufferSize)))
}

// output replays triples.
type output struct {
	p   Params
	buf []rune
}

func (o *output) apply(t Triple) error {
	if t.Offset < 0 || t.Length < 0 {
		return fmt.Errorf("lz77: negative field in %v: %w", t, pack.ErrInvalidInput)
	}
	if t.Length > o.p.BufferSize {
		return fmt.Errorf("lz77: length %d exceeds buffer size %d: %w", t.Length, o.p.BufferSize, pack.ErrInvalidInput)
	}
	if t.Length > 0 {
		if t.Offset == 0 || t.Offset > len(o.buf) || t.Offset > o.p.WindowSize {
			return fmt.Errorf("lz77: offset %d with %d symbols decoded and window %d: %w", t.Offset, len(o.buf), o.p.WindowSize, pack.ErrOffsetOutOfRange)
		}
		// Copy one symbol at a time so that a copy longer than its offset
		// re-reads what it has just written.
		start := len(o.buf) - t.Offset
		for i := 0; i < t.Length; i++ {
			o.buf = append(o.buf, o.buf[start+i])
		}
	} else if t.Offset > len(o.buf) {
		return fmt.Errorf("lz77: offset %d with %d symbols decoded: %w", t.Offset, len(o.buf), pack.ErrOffsetOutOfRange)
	}
	if t.HasNext {
		o.buf = append(o.buf, t.Next)
	}
	return nil
}

// Replay decodes a triple sequence back into text.
func Replay(triples []Triple, p Params) (string, error) {
	if err := p.Validate(); err != nil {
		return "", err
	}
	o := output{p: p}
	for _, t := range triples {
		if err := o.apply(t); err != nil {
			return "", err
		}
	}
	return string(o.buf), nil
}
