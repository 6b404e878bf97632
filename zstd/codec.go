// Package zstd wraps github.com/klauspost/compress/zstd as a pack.Codec.
package zstd

import (
	"fmt"

	"github.com/klauspost/compress/zstd"
	"github.com/textpack/pack"
)

// Codec is a pack.Codec for Zstandard frames.
type Codec struct {
	// Level is a zstd command-line style level (1–22), mapped to the
	// nearest level the encoder implements. 0 selects the default.
	Level int
}

func (Codec) Name() string { return "zstd" }

func (c Codec) Compress(src []byte) ([]byte, error) {
	level := zstd.SpeedDefault
	if c.Level > 0 {
		level = zstd.EncoderLevelFromZstd(c.Level)
	}
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(level))
	if err != nil {
		return nil, err
	}
	defer enc.Close()
	return enc.EncodeAll(src, nil), nil
}

func (Codec) Decompress(src []byte) ([]byte, error) {
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	out, err := dec.DecodeAll(src, nil)
	if err != nil {
		return nil, fmt.Errorf("zstd: %v: %w", err, pack.ErrMalformedContainer)
	}
	return out, nil
}

var _ pack.Codec = Codec{}
