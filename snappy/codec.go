// Package snappy wraps github.com/golang/snappy block encoding as a
// pack.Codec.
package snappy

import (
	"fmt"

	"github.com/golang/snappy"
	"github.com/textpack/pack"
)

// Codec is a pack.Codec for Snappy blocks.
type Codec struct{}

func (Codec) Name() string { return "snappy" }

func (Codec) Compress(src []byte) ([]byte, error) {
	return snappy.Encode(nil, src), nil
}

func (Codec) Decompress(src []byte) ([]byte, error) {
	out, err := snappy.Decode(nil, src)
	if err != nil {
		return nil, fmt.Errorf("snappy: %v: %w", err, pack.ErrMalformedContainer)
	}
	return out, nil
}

var _ pack.Codec = Codec{}
