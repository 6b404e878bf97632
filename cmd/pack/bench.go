package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/goccy/go-json"
	"github.com/pierrec/xxHash/xxHash32"

	"github.com/textpack/pack"
	"github.com/textpack/pack/brotli"
	"github.com/textpack/pack/flate"
	"github.com/textpack/pack/huffman"
	"github.com/textpack/pack/lz4"
	"github.com/textpack/pack/lz77"
	"github.com/textpack/pack/snappy"
	"github.com/textpack/pack/zstd"
)

func benchCodecs(cfg Config) []pack.Codec {
	p := cfg.lz77Params()
	return []pack.Codec{
		huffman.Codec{},
		huffman.ExplicitCodec{},
		lz77.Codec{Params: p, Encoding: lz77.Bits},
		lz77.Codec{Params: p, Encoding: lz77.Text},
		flate.Codec{Level: cfg.DeflateLevel},
		brotli.Codec{Quality: cfg.BrotliQuality},
		snappy.Codec{},
		lz4.Codec{},
		zstd.Codec{Level: cfg.ZstdLevel},
	}
}

type benchResult struct {
	Codec string `json:"codec"`
	pack.Stats
	Checksum uint32 `json:"checksum"`
	Err      string `json:"error,omitempty"`
}

// bench runs every codec over data. A codec that cannot handle the input, or
// whose output does not decompress to the same xxHash32 checksum, gets its
// error recorded instead of aborting the run.
func bench(data []byte, codecs []pack.Codec) []benchResult {
	want := xxHash32.Checksum(data, 0)
	results := make([]benchResult, 0, len(codecs))
	for _, c := range codecs {
		r := benchResult{Codec: c.Name()}
		compressed, stats, err := pack.Measure(c, data)
		if err != nil {
			log.Debugf("%s: %v", c.Name(), err)
			r.Err = err.Error()
			results = append(results, r)
			continue
		}
		r.Stats = stats

		decompressed, err := c.Decompress(compressed)
		if err != nil {
			r.Err = err.Error()
		} else {
			r.Checksum = xxHash32.Checksum(decompressed, 0)
			if r.Checksum != want {
				r.Err = fmt.Sprintf("checksum mismatch: %08x, want %08x", r.Checksum, want)
			}
		}
		log.Debugf("%s: %v", c.Name(), stats)
		results = append(results, r)
	}
	return results
}

func writeBenchText(w io.Writer, results []benchResult) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "codec\toriginal\tcompressed\tsaved\tms\tchecksum\t")
	for _, r := range results {
		if r.Err != "" {
			fmt.Fprintf(tw, "%s\t-\t-\t-\t-\t%s\t\n", r.Codec, r.Err)
			continue
		}
		fmt.Fprintf(tw, "%s\t%d\t%d\t%.2f%%\t%.3f\t%08x\t\n",
			r.Codec, r.OriginalSize, r.CompressedSize, r.Ratio,
			r.Elapsed.Seconds()*1000, r.Checksum)
	}
	return tw.Flush()
}

func writeBenchJSON(w io.Writer, results []benchResult) error {
	out, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return err
	}
	out = append(out, '\n')
	_, err = w.Write(out)
	return err
}
