package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/op/go-logging"

	"github.com/textpack/pack"
	"github.com/textpack/pack/archive"
	"github.com/textpack/pack/brotli"
	"github.com/textpack/pack/flate"
	"github.com/textpack/pack/huffman"
	"github.com/textpack/pack/lz77"
)

var log = logging.MustGetLogger("pack")

const progName = "pack"
const usageMessageRaw = `
Usage: pack [GLOBAL-OPTIONS] COMMAND [OPTIONS] ARGS...

Global options:
  -config FILE
	Read codec defaults from the JSON file FILE.
  -debug
	Log every step to standard error.

Commands:
  huffman [-d] [-explicit] IN OUT
	Huffman-code the UTF-8 text in IN.  -explicit selects the
	byte-aligned container that stores codes verbatim.
  lz77 [-d] [-window N] [-buffer N] [-format bits|text] [-sequence FILE] IN OUT
	LZ77-compress IN.  The same window and buffer must be
	given to decompress.  -sequence also writes the triples
	as text to FILE when compressing to the bits format.
  deflate [-d] [-level N] IN OUT
  brotli [-d] [-quality N] IN OUT
  zip OUT FILES...
	Store FILES in the ZIP archive OUT.
  unzip ARCHIVE DIR
	Extract ARCHIVE into DIR.
  bench [-json] FILE
	Run every codec over FILE and check each round trip.

Codecs available:$codecs
`

type nullWriter struct{}

func (n *nullWriter) Write(p []byte) (int, error) {
	return len(p), nil
}

func codecsReadable() string {
	result := ""
	for _, c := range benchCodecs(defaultConfig()) {
		result += "\n  " + c.Name()
	}
	return result
}

func usageMessage() string {
	template := strings.TrimLeft(usageMessageRaw, "\n")
	return strings.NewReplacer("$codecs", codecsReadable()).Replace(template)
}

func usageErrorf(detailFmt string, detailArgs ...interface{}) {
	detail := fmt.Sprintf(detailFmt, detailArgs...)
	fmt.Fprintf(os.Stderr, "%s: %s\n%s", progName, detail, usageMessage())
	os.Exit(exitUsage)
}

const (
	exitUsage    = 64
	exitBadInput = 65
	exitFailure  = 1
)

// exitCode classifies err. Bad input is a warning; anything else, including
// corrupt data and I/O failures, is critical.
func exitCode(err error) int {
	if errors.Is(err, pack.ErrInvalidInput) || errors.Is(err, pack.ErrUnrepresentableSymbol) {
		return exitBadInput
	}
	return exitFailure
}

func exitError(err error) {
	code := exitCode(err)
	if code == exitBadInput {
		log.Warningf("%v", err)
	} else {
		log.Criticalf("%v", err)
	}
	os.Exit(code)
}

var leveledLogBackend logging.LeveledBackend

func startLogging() {
	backend := logging.NewLogBackend(os.Stderr, progName+": ", 0)
	formatSpec := "%{color:bold}%{level:-8s}%{color:reset} %{message}"
	formatter := logging.MustStringFormatter(formatSpec)
	formatted := logging.NewBackendFormatter(backend, formatter)
	leveled := logging.AddModuleLevel(formatted)
	leveled.SetLevel(logging.INFO, "")
	logging.SetBackend(leveled)
	leveledLogBackend = leveled
}

func newFlagSet(name string) *flag.FlagSet {
	if name == "" {
		name = progName
	}
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() {}
	fs.SetOutput(&nullWriter{})
	return fs
}

func parseFlags(fs *flag.FlagSet, args []string, want int, expected string) []string {
	argErr := fs.Parse(args)
	if argErr == flag.ErrHelp {
		io.WriteString(os.Stdout, usageMessage())
		os.Exit(0)
	} else if argErr != nil {
		usageErrorf("%s", argErr.Error())
	}
	if want >= 0 && fs.NArg() != want {
		usageErrorf("%s: expected %s", fs.Name(), expected)
	}
	return fs.Args()
}

// transcode reads in, runs c over it and writes the result to out.
func transcode(c pack.Codec, decompress bool, in, out string) error {
	src, err := os.ReadFile(in)
	if err != nil {
		return err
	}

	var dst []byte
	if decompress {
		dst, err = c.Decompress(src)
		if err != nil {
			return fmt.Errorf("%s: %w", in, err)
		}
		log.Infof("%s: %d -> %d bytes", c.Name(), len(src), len(dst))
	} else {
		var stats pack.Stats
		dst, stats, err = pack.Measure(c, src)
		if err != nil {
			return fmt.Errorf("%s: %w", in, err)
		}
		log.Infof("%s: %v", c.Name(), stats)
	}

	log.Debugf("writing %s", out)
	return os.WriteFile(out, dst, 0o644)
}

func runHuffman(cfg Config, args []string) error {
	fs := newFlagSet("huffman")
	var decompress, explicit bool
	fs.BoolVar(&decompress, "d", false, "")
	fs.BoolVar(&explicit, "explicit", false, "")
	files := parseFlags(fs, args, 2, "IN OUT")

	var c pack.Codec = huffman.Codec{}
	if explicit {
		c = huffman.ExplicitCodec{}
	}
	return transcode(c, decompress, files[0], files[1])
}

func runLZ77(cfg Config, args []string) error {
	fs := newFlagSet("lz77")
	var decompress bool
	var format, sequencePath string
	p := cfg.lz77Params()
	fs.BoolVar(&decompress, "d", false, "")
	fs.IntVar(&p.WindowSize, "window", p.WindowSize, "")
	fs.IntVar(&p.BufferSize, "buffer", p.BufferSize, "")
	fs.StringVar(&format, "format", lz77.Bits.String(), "")
	fs.StringVar(&sequencePath, "sequence", "", "")
	files := parseFlags(fs, args, 2, "IN OUT")

	enc, err := lz77.ParseEncoding(format)
	if err != nil {
		usageErrorf("%v", err)
	}
	if err := p.Validate(); err != nil {
		usageErrorf("%v", err)
	}
	log.Debugf("lz77: window %d, buffer %d, format %v", p.WindowSize, p.BufferSize, enc)
	if sequencePath != "" {
		if decompress || enc != lz77.Bits {
			usageErrorf("lz77: -sequence only applies when compressing to -format bits")
		}
		return compressLZ77(p, files[0], files[1], sequencePath)
	}
	return transcode(lz77.Codec{Params: p, Encoding: enc}, decompress, files[0], files[1])
}

// compressLZ77 writes the bitstream form of in to out and its triple
// sequence to seq, both from one run.
func compressLZ77(p lz77.Params, in, out, seq string) error {
	src, err := os.ReadFile(in)
	if err != nil {
		return err
	}
	res, err := lz77.Compress(string(src), p)
	if err != nil {
		return fmt.Errorf("%s: %w", in, err)
	}
	log.Infof("lz77-bits: %v, %d triples", res.Stats, len(res.Triples))

	log.Debugf("writing %s", out)
	if err := os.WriteFile(out, res.Packed, 0o644); err != nil {
		return err
	}
	log.Debugf("writing %s", seq)
	return os.WriteFile(seq, []byte(res.Sequence), 0o644)
}

func runDeflate(cfg Config, args []string) error {
	fs := newFlagSet("deflate")
	var decompress bool
	c := flate.Codec{Level: cfg.DeflateLevel}
	fs.BoolVar(&decompress, "d", false, "")
	fs.IntVar(&c.Level, "level", c.Level, "")
	files := parseFlags(fs, args, 2, "IN OUT")
	return transcode(c, decompress, files[0], files[1])
}

func runBrotli(cfg Config, args []string) error {
	fs := newFlagSet("brotli")
	var decompress bool
	c := brotli.Codec{Quality: cfg.BrotliQuality}
	fs.BoolVar(&decompress, "d", false, "")
	fs.IntVar(&c.Quality, "quality", c.Quality, "")
	files := parseFlags(fs, args, 2, "IN OUT")
	return transcode(c, decompress, files[0], files[1])
}

func runZip(cfg Config, args []string) error {
	fs := newFlagSet("zip")
	files := parseFlags(fs, args, -1, "")
	if len(files) < 2 {
		usageErrorf("zip: expected OUT FILES...")
	}
	if err := archive.Create(files[0], files[1:]...); err != nil {
		return err
	}
	log.Infof("zip: wrote %d files to %s", len(files)-1, files[0])
	return nil
}

func runUnzip(cfg Config, args []string) error {
	fs := newFlagSet("unzip")
	files := parseFlags(fs, args, 2, "ARCHIVE DIR")
	written, err := archive.Extract(files[0], files[1])
	for _, path := range written {
		log.Debugf("unzip: %s", path)
	}
	if err != nil {
		return err
	}
	log.Infof("unzip: extracted %d files into %s", len(written), files[1])
	return nil
}

func runBench(cfg Config, args []string) error {
	fs := newFlagSet("bench")
	var asJSON bool
	fs.BoolVar(&asJSON, "json", false, "")
	files := parseFlags(fs, args, 1, "FILE")

	data, err := os.ReadFile(files[0])
	if err != nil {
		return err
	}
	results := bench(data, benchCodecs(cfg))
	if asJSON {
		return writeBenchJSON(os.Stdout, results)
	}
	return writeBenchText(os.Stdout, results)
}

var commands = map[string]func(Config, []string) error{
	"huffman": runHuffman,
	"lz77":    runLZ77,
	"deflate": runDeflate,
	"brotli":  runBrotli,
	"zip":     runZip,
	"unzip":   runUnzip,
	"bench":   runBench,
}

func main() {
	startLogging()

	ourFlags := newFlagSet("")
	var configPath string
	var debugLogging bool
	ourFlags.StringVar(&configPath, "config", "", "")
	ourFlags.BoolVar(&debugLogging, "debug", false, "")
	args := parseFlags(ourFlags, os.Args[1:], -1, "")

	if debugLogging {
		leveledLogBackend.SetLevel(logging.DEBUG, "")
	}

	if len(args) == 0 {
		usageErrorf("no command given")
	}
	run, ok := commands[args[0]]
	if !ok {
		usageErrorf("unknown command %q", args[0])
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		exitError(err)
	}
	log.Debugf("config: %+v", cfg)

	if err := run(cfg, args[1:]); err != nil {
		exitError(err)
	}
}
