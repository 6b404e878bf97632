// Package flate compresses with DEFLATE in zlib framing.
package flate

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"
	"github.com/textpack/pack"
)

// Codec is a pack.Codec for zlib streams.
type Codec struct {
	// Level is the compression level. Levels 1–9 are available; levels
	// outside this range will be replaced with the closest level available.
	Level int
}

func (c Codec) level() int {
	if c.Level < 1 {
		return 1
	}
	if c.Level > 9 {
		return 9
	}
	return c.Level
}

func (Codec) Name() string { return "deflate" }

func (c Codec) Compress(src []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw, err := zlib.NewWriterLevel(&buf, c.level())
	if err != nil {
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
	zr, err := zlib.NewReader(bytes.NewReader(src))
	if err != nil {
		return nil, fmt.Errorf("flate: %v: %w", err, pack.ErrMalformedContainer)
	}
	defer zr.Close()
	out, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("flate: %v: %w", err, pack.ErrMalformedContainer)
	}
	return out, nil
}

var _ pack.Codec = Codec{}
