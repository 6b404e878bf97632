package zstd

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/textpack/pack"
)

func test(t *testing.T, c Codec, data []byte) {
	compressed, err := c.Compress(data)
	if err != nil {
		t.Fatal(err)
	}
	sr, err := zstd.NewReader(bytes.NewReader(compressed))
	if err != nil {
		t.Fatal(err)
	}
	defer sr.Close()
	decompressed, err := io.ReadAll(sr)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(decompressed, data) {
		t.Fatal("decompressed output doesn't match")
	}
}

var sample = bytes.Repeat([]byte("HelloHelloHelloHelloHello, world. "), 100)

func TestEncodeDefault(t *testing.T) {
	test(t, Codec{}, sample)
}

func TestEncodeBest(t *testing.T) {
	test(t, Codec{Level: 19}, sample)
}

func TestRoundTrip(t *testing.T) {
	c := Codec{Level: 3}
	compressed, err := c.Compress(sample)
	if err != nil {
		t.Fatal(err)
	}
	decompressed, err := c.Decompress(compressed)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(decompressed, sample) {
		t.Fatal("decompressed output doesn't match")
	}
}

func TestDecompressGarbage(t *testing.T) {
	_, err := Codec{}.Decompress([]byte("no magic number here"))
	if !errors.Is(err, pack.ErrMalformedContainer) {
		t.Fatalf("got %v, wanted ErrMalformedContainer", err)
	}
}
