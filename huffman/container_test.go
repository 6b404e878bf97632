package huffman

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/textpack/pack"
	"github.com/textpack/pack/bitstream"
)

var roundTripTexts = []string{
	"",
	"a",
	"aaaaaaaa",
	"AAAABBBCCD",
	"abracadabra",
	"HelloHelloHelloHelloHelloHelloHelloHelloHelloHello, world",
	"Съешь же ещё этих мягких французских булок, да выпей чаю.",
	"\x00\x00\x01 nul bytes are symbols too",
	"\uFFFF\uFFFE edge of the 16-bit range",
	strings.Repeat("the quick brown fox jumps over the lazy dog. ", 200),
}

func TestCompress_RoundTrip(t *testing.T) {
	for _, text := range roundTripTexts {
		compressed, err := Compress(text)
		if err != nil {
			t.Fatalf("Compress(%.20q): %v", text, err)
		}
		decompressed, err := Decompress(compressed)
		if err != nil {
			t.Fatalf("Decompress(%.20q): %v", text, err)
		}
		if decompressed != text {
			t.Fatalf("decompressed output doesn't match: got %.40q, want %.40q", decompressed, text)
		}
	}
}

func TestCompress_Empty(t *testing.T) {
	compressed, err := Compress("")
	if err != nil {
		t.Fatal(err)
	}
	if len(compressed) != 0 {
		t.Fatalf("got %d bytes for empty text", len(compressed))
	}
	text, err := Decompress(nil)
	if err != nil || text != "" {
		t.Fatalf("Decompress(nil) = %q, %v", text, err)
	}
}

func TestCompress_Layout(t *testing.T) {
	compressed, err := Compress("AAAABBBCCD")
	if err != nil {
		t.Fatal(err)
	}

	// 16 + 4*(16+5) + 32 + 19 = 151 bits
	if len(compressed) != 19 {
		t.Fatalf("got %d bytes, wanted 19", len(compressed))
	}

	r := bitstream.NewReader(compressed)
	read := func(width uint8) uint64 {
		v, err := r.ReadBits(width)
		if err != nil {
			t.Fatal(err)
		}
		return v
	}

	if n := read(16); n != 4 {
		t.Fatalf("symbol count %d, wanted 4", n)
	}
	expect := Table{{'A', 1}, {'B', 2}, {'C', 3}, {'D', 3}}
	for _, item := range expect {
		symbol, length := read(16), read(5)
		if rune(symbol) != item.Symbol || uint8(length) != item.Length {
			t.Errorf("entry (%q, %d), wanted (%q, %d)", rune(symbol), length, item.Symbol, item.Length)
		}
	}
	if n := read(32); n != 19 {
		t.Fatalf("bit count %d, wanted 19", n)
	}
	// AAAA BBB CC D with A=0 B=10 C=110 D=111
	if payload := read(19); payload != 0x55B7 {
		t.Errorf("payload %019b, wanted %019b", payload, 0x55B7)
	}
	if !r.PaddingOnly() {
		t.Errorf("%d unexpected bits after payload", r.Remaining())
	}
}

func TestCompress_SingleSymbol(t *testing.T) {
	compressed, err := Compress("aaaaaaaa")
	if err != nil {
		t.Fatal(err)
	}
	// 16 + 21 + 32 + 8 = 77 bits
	if len(compressed) != 10 {
		t.Fatalf("got %d bytes, wanted 10", len(compressed))
	}
	text, err := Decompress(compressed)
	if err != nil {
		t.Fatal(err)
	}
	if text != "aaaaaaaa" {
		t.Fatalf("got %q", text)
	}
}

func TestCompress_Unrepresentable(t *testing.T) {
	_, err := Compress("emoji \U0001F600")
	if !errors.Is(err, pack.ErrUnrepresentableSymbol) {
		t.Fatalf("got %v, wanted ErrUnrepresentableSymbol", err)
	}
}

func TestCompress_InvalidUTF8(t *testing.T) {
	for _, text := range []string{"a\xffb", "\xc3", "ok \xed\xa0\x80"} {
		if _, err := Compress(text); !errors.Is(err, pack.ErrInvalidInput) {
			t.Errorf("Compress(%q): got %v, wanted ErrInvalidInput", text, err)
		}
	}
}

func TestCompress_Reproducible(t *testing.T) {
	text := "mississippi river banks"
	first, err := Compress(text)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 20; i++ {
		again, err := Compress(text)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(first, again) {
			t.Fatalf("run %d produced different output", i)
		}
	}
}

func buildContainer(table Table, count uint32, payload uint64, payloadBits uint8) []byte {
	w := bitstream.NewWriter()
	w.WriteBits(uint64(len(table)), 16)
	for _, item := range table {
		w.WriteBits(uint64(item.Symbol), 16)
		w.WriteBits(uint64(item.Length), 5)
	}
	w.WriteBits(uint64(count), 32)
	w.WriteBits(payload, payloadBits)
	return w.Bytes()
}

func TestDecompress_Malformed(t *testing.T) {
	good, err := Compress("AAAABBBCCD")
	if err != nil {
		t.Fatal(err)
	}

	type testRow struct {
		name string
		data []byte
	}

	testData := [...]testRow{
		{name: "one byte", data: good[:1]},
		{name: "cut in table", data: good[:6]},
		{name: "cut in bit count", data: good[:13]},
		{name: "cut in payload", data: good[:len(good)-1]},
		{name: "bits without symbols", data: buildContainer(nil, 3, 0, 3)},
		// a=0 b=10 leaves "11" unassigned.
		{name: "unknown code", data: buildContainer(Table{{'a', 1}, {'b', 2}}, 3, 0x7, 3)},
		{name: "ends mid-code", data: buildContainer(Table{{'a', 1}, {'b', 2}}, 2, 0x1, 2)},
		{name: "zero length", data: buildContainer(Table{{'a', 0}}, 1, 0, 1)},
		{name: "oversubscribed", data: buildContainer(Table{{'a', 1}, {'b', 1}, {'c', 1}}, 1, 0, 1)},
	}
	for _, row := range testData {
		t.Run(row.name, func(t *testing.T) {
			_, err := Decompress(row.data)
			if !errors.Is(err, pack.ErrMalformedContainer) {
				t.Errorf("got %v, wanted ErrMalformedContainer", err)
			}
		})
	}
}

func TestDecompress_IgnoresPadding(t *testing.T) {
	// "ab" with a=0 b=1, followed by padding that would decode as more a's.
	data := buildContainer(Table{{'a', 1}, {'b', 1}}, 2, 0x1, 2)
	text, err := Decompress(data)
	if err != nil {
		t.Fatal(err)
	}
	if text != "ab" {
		t.Fatalf("got %q, wanted %q", text, "ab")
	}
}

func TestCompressStats(t *testing.T) {
	text := strings.Repeat("abcabcabd", 50)
	compressed, stats, err := CompressStats(text)
	if err != nil {
		t.Fatal(err)
	}
	if stats.OriginalSize != len(text) || stats.CompressedSize != len(compressed) {
		t.Errorf("wrong sizes: %+v", stats)
	}
	if stats.Ratio <= 0 {
		t.Errorf("expected positive ratio, got %v", stats.Ratio)
	}
}

func TestCodec(t *testing.T) {
	for _, c := range []pack.Codec{Codec{}, ExplicitCodec{}} {
		t.Run(c.Name(), func(t *testing.T) {
			src := []byte("HelloHelloHelloHelloHello, world")
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

			if _, err := c.Compress([]byte{0xff, 0xfe}); !errors.Is(err, pack.ErrInvalidInput) {
				t.Errorf("invalid UTF-8: got %v, wanted ErrInvalidInput", err)
			}
		})
	}
}

func BenchmarkCompress(b *testing.B) {
	b.StopTimer()
	b.ReportAllocs()
	text := strings.Repeat("the quick brown fox jumps over the lazy dog. ", 1000)
	b.SetBytes(int64(len(text)))
	compressed, err := Compress(text)
	if err != nil {
		b.Fatal(err)
	}
	b.ReportMetric(float64(len(text))/float64(len(compressed)), "ratio")
	b.StartTimer()
	for i := 0; i < b.N; i++ {
		Compress(text)
	}
}
