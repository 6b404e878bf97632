package pack

import (
	"testing"
	"time"
)

func TestNewStats(t *testing.T) {
	type testRow struct {
		name       string
		original   int
		compressed int
		ratio      float64
	}

	testData := [...]testRow{
		{name: "empty", original: 0, compressed: 0, ratio: 0},
		{name: "half", original: 100, compressed: 50, ratio: 50},
		{name: "grew", original: 10, compressed: 20, ratio: -100},
		{name: "unchanged", original: 8, compressed: 8, ratio: 0},
	}
	for _, row := range testData {
		t.Run(row.name, func(t *testing.T) {
			s := NewStats(row.original, row.compressed, time.Millisecond)
			if s.Ratio != row.ratio {
				t.Errorf("wrong ratio:\n\texpect: %v\n\tactual: %v", row.ratio, s.Ratio)
			}
			if s.OriginalSize != row.original || s.CompressedSize != row.compressed {
				t.Errorf("sizes not preserved: %+v", s)
			}
		})
	}
}

func TestStatsString(t *testing.T) {
	s := NewStats(200, 50, 1500*time.Microsecond)
	expect := "200 -> 50 bytes (75.00%) in 1.50 ms"
	if actual := s.String(); actual != expect {
		t.Errorf("wrong output:\n\texpect: %s\n\tactual: %s", expect, actual)
	}
}

type halvingCodec struct{}

func (halvingCodec) Name() string { return "halving" }

func (halvingCodec) Compress(src []byte) ([]byte, error) {
	dst := make([]byte, len(src)/2)
	return dst, nil
}

func (halvingCodec) Decompress(src []byte) ([]byte, error) {
	return nil, ErrInvalidInput
}

func TestMeasure(t *testing.T) {
	out, s, err := Measure(halvingCodec{}, make([]byte, 40))
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 20 {
		t.Fatalf("got %d bytes, wanted 20", len(out))
	}
	if s.Ratio != 50 {
		t.Errorf("got ratio %v, wanted 50", s.Ratio)
	}
}
