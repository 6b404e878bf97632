package snappy

import (
	"bytes"
	"errors"
	"testing"

	"github.com/golang/snappy"
	"github.com/textpack/pack"
)

func TestEncode(t *testing.T) {
	data := bytes.Repeat([]byte("HelloHelloHello, world. "), 50)
	compressed, err := Codec{}.Compress(data)
	if err != nil {
		t.Fatal(err)
	}
	n, err := snappy.DecodedLen(compressed)
	if err != nil {
		t.Fatal(err)
	}
	if n != len(data) {
		t.Fatalf("Got %d bytes, wanted %d", n, len(data))
	}
	decompressed, err := Codec{}.Decompress(compressed)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(decompressed, data) {
		t.Fatal("decompressed output doesn't match")
	}
}

func TestDecompressCorrupt(t *testing.T) {
	// Claims 100 bytes of output, then stops.
	_, err := Codec{}.Decompress([]byte{100, 0x00})
	if !errors.Is(err, pack.ErrMalformedContainer) {
		t.Fatalf("got %v, wanted ErrMalformedContainer", err)
	}
}
