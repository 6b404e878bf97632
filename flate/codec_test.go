package flate

import (
	"bytes"
	"compress/zlib"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/textpack/pack"
)

var sample = []byte(strings.Repeat("HelloHelloHelloHelloHelloHello, world. ", 100))

func TestEncode(t *testing.T) {
	for _, level := range []int{-3, 1, 6, 9, 42} {
		compressed, err := Codec{Level: level}.Compress(sample)
		if err != nil {
			t.Fatal(err)
		}
		zr, err := zlib.NewReader(bytes.NewReader(compressed))
		if err != nil {
			t.Fatal(err)
		}
		decompressed, err := io.ReadAll(zr)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(decompressed, sample) {
			t.Fatalf("level %d: decompressed output doesn't match", level)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	c := Codec{Level: 9}
	for _, src := range [][]byte{nil, []byte("a"), sample} {
		compressed, err := c.Compress(src)
		if err != nil {
			t.Fatal(err)
		}
		decompressed, err := c.Decompress(compressed)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(decompressed, src) {
			t.Fatalf("decompressed output doesn't match: got %q", decompressed)
		}
	}
}

func TestDecompressGarbage(t *testing.T) {
	_, err := Codec{}.Decompress([]byte("not a zlib stream"))
	if !errors.Is(err, pack.ErrMalformedContainer) {
		t.Fatalf("got %v, wanted ErrMalformedContainer", err)
	}
}
