// Package bitstream packs fixed-width fields into bytes, most significant bit
// first, and reads them back. No field is self-delimiting: a reader must ask
// for exactly the widths the writer used, in the same order.
package bitstream

import (
	"bytes"
	"fmt"

	"github.com/icza/bitio"
	"github.com/textpack/pack"
)

// MaxWidth is the widest field that can be written or read in one call.
const MaxWidth = 64

// A Writer accumulates bits in memory.
type Writer struct {
	buf bytes.Buffer
	w   *bitio.Writer
	n   int
}

// NewWriter returns an empty Writer.
func NewWriter() *Writer {
	bw := new(Writer)
	bw.w = bitio.NewWriter(&bw.buf)
	return bw
}

// WriteBits appends the low width bits of value, most significant first.
// Higher bits of value are ignored.
func (bw *Writer) WriteBits(value uint64, width uint8) {
	if width == 0 {
		return
	}
	if width < MaxWidth {
		value &= 1<<width - 1
	}
	// Writes to a bytes.Buffer cannot fail.
	_ = bw.w.WriteBits(value, width)
	bw.n += int(width)
}

// WriteBool appends a single bit.
func (bw *Writer) WriteBool(b bool) {
	_ = bw.w.WriteBool(b)
	bw.n++
}

// Len returns the number of bits written so far.
func (bw *Writer) Len() int {
	return bw.n
}

// Bytes zero-pads the stream to a byte boundary and returns it. The Writer
// must not be used afterwards.
func (bw *Writer) Bytes() []byte {
	_ = bw.w.Close()
	return bw.buf.Bytes()
}

// A Reader reads fields from a packed byte slice.
type Reader struct {
	data []byte
	r    *bitio.Reader
	pos  int
}

// NewReader returns a Reader positioned at the first bit of data.
func NewReader(data []byte) *Reader {
	return &Reader{
		data: data,
		r:    bitio.NewReader(bytes.NewReader(data)),
	}
}

// ReadBits reads a field of the given width. It fails with
// pack.ErrMalformedContainer if fewer than width bits remain.
func (br *Reader) ReadBits(width uint8) (uint64, error) {
	if width == 0 {
		return 0, nil
	}
	if int(width) > br.Remaining() {
		return 0, fmt.Errorf("need %d bits at bit %d, have %d: %w", width, br.pos, br.Remaining(), pack.ErrMalformedContainer)
	}
	v, err := br.r.ReadBits(width)
	if err != nil {
		return 0, fmt.Errorf("reading %d bits at bit %d: %v: %w", width, br.pos, err, pack.ErrMalformedContainer)
	}
	br.pos += int(width)
	return v, nil
}

// ReadBool reads a single bit.
func (br *Reader) ReadBool() (bool, error) {
	v, err := br.ReadBits(1)
	return v == 1, err
}

// Pos returns the number of bits consumed so far.
func (br *Reader) Pos() int {
	return br.pos
}

// Remaining returns the number of unread bits, padding included.
func (br *Reader) Remaining() int {
	return len(br.data)*8 - br.pos
}

// PaddingOnly reports whether what is left of the stream can only be the
// zero padding added by Writer.Bytes: fewer than 8 bits, all of them zero.
func (br *Reader) PaddingOnly() bool {
	n := br.Remaining()
	if n >= 8 {
		return false
	}
	if n == 0 {
		return true
	}
	last := br.data[len(br.data)-1]
	return last&(1<<uint(n)-1) == 0
}
