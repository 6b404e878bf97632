package pack

import "errors"

// Errors reported by the codecs. They are usually wrapped with more context,
// so test for them with errors.Is.
var (
	// ErrInvalidInput reports an argument the codec cannot work with, such as
	// an empty frequency map or a zero window size.
	ErrInvalidInput = errors.New("pack: invalid input")

	// ErrCodeLengthOverflow reports a Huffman code longer than 31 bits.
	ErrCodeLengthOverflow = errors.New("pack: Huffman code length exceeds 31 bits")

	// ErrMalformedContainer reports compressed data that ends early or does
	// not decode to whole symbols.
	ErrMalformedContainer = errors.New("pack: malformed container")

	// ErrOffsetOutOfRange reports an LZ77 back-reference that points before
	// the start of the output.
	ErrOffsetOutOfRange = errors.New("pack: offset out of range")

	// ErrUnrepresentableSymbol reports a symbol too wide for the field that
	// has to carry it.
	ErrUnrepresentableSymbol = errors.New("pack: unrepresentable symbol")
)
