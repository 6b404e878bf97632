// Package lz4 wraps the LZ4 frame format from github.com/pierrec/lz4/v4 as a
// pack.Codec.
package lz4

import (
	"bytes"
	"fmt"
	"io"

	"github.com/pierrec/lz4/v4"
	"github.com/textpack/pack"
)

var levels = [...]lz4.CompressionLevel{
	lz4.Fast,
	lz4.Level1, lz4.Level2, lz4.Level3, lz4.Level4, lz4.Level5,
	lz4.Level6, lz4.Level7, lz4.Level8, lz4.Level9,
}

// Codec is a pack.Codec for LZ4 frames.
type Codec struct {
	// Level is 0 for the fast compressor, or 1–9 for the high-compression
	// one. Other values are clamped.
	Level int
}

func (c Codec) level() lz4.CompressionLevel {
	if c.Level < 0 {
		return levels[0]
	}
	if c.Level >= len(levels) {
		return levels[len(levels)-1]
	}
	return levels[c.Level]
}

func (Codec) Name() string { return "lz4" }

func (c Codec) Compress(src []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw := lz4.NewWriter(&buf)
	if err := zw.Apply(lz4.CompressionLevelOption(c.level()), lz4.ChecksumOption(true)); err != nil {
		return nil, err
	}
	if _, err := zw.Write(src); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (Codec) Decompress(src []byte) ([]byte, error) {
	out, err := io.ReadAll(lz4.NewReader(bytes.NewReader(src)))
	if err != nil {
		return nil, fmt.Errorf("lz4: %v: %w", err, pack.ErrMalformedContainer)
	}
	return out, nil
}

var _ pack.Codec = Codec{}
