package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/textpack/pack"
	"github.com/textpack/pack/huffman"
	"github.com/textpack/pack/lz77"
)

func TestExitCode(t *testing.T) {
	type testRow struct {
		name   string
		err    error
		expect int
	}

	testData := [...]testRow{
		{"invalid input", pack.ErrInvalidInput, exitBadInput},
		{"wrapped invalid input", fmt.Errorf("in.txt: %w", pack.ErrInvalidInput), exitBadInput},
		{"unrepresentable", fmt.Errorf("lz77: %w", pack.ErrUnrepresentableSymbol), exitBadInput},
		{"malformed", fmt.Errorf("huffman: %w", pack.ErrMalformedContainer), exitFailure},
		{"overflow", pack.ErrCodeLengthOverflow, exitFailure},
		{"offset", pack.ErrOffsetOutOfRange, exitFailure},
		{"missing file", &os.PathError{Op: "open", Path: "x", Err: os.ErrNotExist}, exitFailure},
		{"other", errors.New("boom"), exitFailure},
	}
	for _, row := range testData {
		t.Run(row.name, func(t *testing.T) {
			if actual := exitCode(row.err); actual != row.expect {
				t.Errorf("wrong exit code: expect %d, actual %d", row.expect, actual)
			}
		})
	}
}

func TestTranscode(t *testing.T) {
	text := "Съешь же ещё этих мягких французских булок, да выпей чаю. " +
		"the quick brown fox jumps over the lazy dog, the lazy dog sleeps."
	ascii := "abracadabra abracadabra, the rain in spain falls mainly on the plain"
	p := lz77.Params{WindowSize: 64, BufferSize: 15}

	type testRow struct {
		codec pack.Codec
		input string
	}

	testData := [...]testRow{
		{huffman.Codec{}, text},
		{huffman.ExplicitCodec{}, text},
		{lz77.Codec{Params: p, Encoding: lz77.Bits}, ascii},
		{lz77.Codec{Params: p, Encoding: lz77.Text}, text},
	}
	for _, row := range testData {
		t.Run(row.codec.Name(), func(t *testing.T) {
			dir := t.TempDir()
			in := filepath.Join(dir, "in.txt")
			packed := filepath.Join(dir, "in.packed")
			out := filepath.Join(dir, "out.txt")
			if err := os.WriteFile(in, []byte(row.input), 0o644); err != nil {
				t.Fatal(err)
			}

			if err := transcode(row.codec, false, in, packed); err != nil {
				t.Fatal(err)
			}
			if err := transcode(row.codec, true, packed, out); err != nil {
				t.Fatal(err)
			}

			got, err := os.ReadFile(out)
			if err != nil {
				t.Fatal(err)
			}
			if string(got) != row.input {
				t.Fatalf("decompressed output doesn't match: got %q", got)
			}
		})
	}
}

func TestTranscodeErrors(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.bin")
	if err := os.WriteFile(bad, []byte{'a', 0xff, 'b'}, 0o644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "out")

	err := transcode(huffman.Codec{}, false, bad, out)
	if code := exitCode(err); code != exitBadInput {
		t.Errorf("invalid UTF-8: got %v (exit %d), want exit %d", err, code, exitBadInput)
	}

	err = transcode(huffman.Codec{}, true, bad, out)
	if !errors.Is(err, pack.ErrMalformedContainer) || exitCode(err) != exitFailure {
		t.Errorf("corrupt container: got %v (exit %d), want exit %d", err, exitCode(err), exitFailure)
	}

	err = transcode(huffman.Codec{}, false, filepath.Join(dir, "missing"), out)
	if exitCode(err) != exitFailure {
		t.Errorf("missing file: got %v (exit %d), want exit %d", err, exitCode(err), exitFailure)
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Error("output written despite errors")
	}
}

func TestCompressLZ77Sequence(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.txt")
	packed := filepath.Join(dir, "in.lz77")
	seq := filepath.Join(dir, "in.seq")
	input := "abcabcabc (parenthesised) abcabc"
	if err := os.WriteFile(in, []byte(input), 0o644); err != nil {
		t.Fatal(err)
	}

	p := lz77.Params{WindowSize: 16, BufferSize: 6}
	if err := compressLZ77(p, in, packed, seq); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(packed)
	if err != nil {
		t.Fatal(err)
	}
	fromBits, err := lz77.DecodeBits(data, p)
	if err != nil {
		t.Fatal(err)
	}
	sequence, err := os.ReadFile(seq)
	if err != nil {
		t.Fatal(err)
	}
	fromText, err := lz77.DecodeText(string(sequence), p)
	if err != nil {
		t.Fatal(err)
	}
	if fromBits != input || fromText != input {
		t.Fatalf("got %q from bits and %q from text, want %q", fromBits, fromText, input)
	}
}
