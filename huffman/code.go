package huffman

import (
	"fmt"
	"strconv"
)

// MaxCodeLength is the longest code the container's 5-bit length field can
// describe.
const MaxCodeLength = 31

// Code represents a sequence of bits.
type Code struct {
	// Size holds the number of valid bits.
	Size uint8

	// Bits holds the actual values of the bits. The most significant of the
	// Size low bits is the first bit.
	Bits uint32
}

// MakeCode is a convenience function that constructs a Code.
func MakeCode(size uint8, bits uint32) Code {
	return Code{Size: size, Bits: bits}
}

// IsPrefixOf reports whether hc is a prefix of other. Every code is a prefix
// of itself.
func (hc Code) IsPrefixOf(other Code) bool {
	if hc.Size > other.Size {
		return false
	}
	return other.Bits>>(other.Size-hc.Size) == hc.Bits
}

// String returns the string representation of this Code.
func (hc Code) String() string {
	if hc.Size == 0 {
		return "\"\""
	}
	format := "%0" + strconv.FormatUint(uint64(hc.Size), 10) + "b"
	return strconv.Quote(fmt.Sprintf(format, hc.Bits))
}

var _ fmt.Stringer = Code{}
