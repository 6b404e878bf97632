package pack

import (
	"fmt"
	"time"
)

// Stats describes a single compression run. It is observational only and is
// never part of any container format.
type Stats struct {
	OriginalSize   int           `json:"original_size"`
	CompressedSize int           `json:"compressed_size"`
	Ratio          float64       `json:"ratio"` // percent saved; negative when the output grew
	Elapsed        time.Duration `json:"elapsed_ns"`
}

// NewStats fills in Ratio as (1 - compressed/original) * 100, or 0 when
// original is 0.
func NewStats(original, compressed int, elapsed time.Duration) Stats {
	s := Stats{
		OriginalSize:   original,
		CompressedSize: compressed,
		Elapsed:        elapsed,
	}
	if original > 0 {
		s.Ratio = (1 - float64(compressed)/float64(original)) * 100
	}
	return s
}

func (s Stats) String() string {
	return fmt.Sprintf("%d -> %d bytes (%.2f%%) in %.2f ms", s.OriginalSize, s.CompressedSize, s.Ratio, float64(s.Elapsed)/float64(time.Millisecond))
}
