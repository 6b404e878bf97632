// Package brotli wraps github.com/andybalholm/brotli as a pack.Codec.
package brotli

import (
	"bytes"
	"fmt"
	"io"

	"github.com/andybalholm/brotli"
	"github.com/textpack/pack"
)

// Codec is a pack.Codec for Brotli streams.
type Codec struct {
	// Quality runs from 0 to 11; values outside the range are clamped.
	Quality int
}

func (c Codec) quality() int {
	if c.Quality < brotli.BestSpeed {
		return brotli.BestSpeed
	}
	if c.Quality > brotli.BestCompression {
		return brotli.BestCompression
	}
	return c.Quality
}

func (Codec) Name() string { return "brotli" }

func (c Codec) Compress(src []byte) ([]byte, error) {
	var buf bytes.Buffer
	bw := brotli.NewWriterLevel(&buf, c.quality())
	if _, err := bw.Write(src); err != nil {
		return nil, err
	}
	if err := bw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (Codec) Decompress(src []byte) ([]byte, error) {
	out, err := io.ReadAll(brotli.NewReader(bytes.NewReader(src)))
	if err != nil {
		return nil, fmt.Errorf("brotli: %v: %w", err, pack.ErrMalformedContainer)
	}
	return out, nil
}

var _ pack.Codec = Codec{}
