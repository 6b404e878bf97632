package main

import (
	"fmt"
	"os"

	"github.com/goccy/go-json"

	"github.com/textpack/pack"
	"github.com/textpack/pack/lz77"
)

// Config holds the defaults for the codec flags. Any field missing from the
// config file keeps its built-in value.
type Config struct {
	WindowSize    int `json:"window_size"`
	BufferSize    int `json:"buffer_size"`
	DeflateLevel  int `json:"deflate_level"`
	BrotliQuality int `json:"brotli_quality"`
	ZstdLevel     int `json:"zstd_level"`
}

func defaultConfig() Config {
	return Config{
		WindowSize:    4096,
		BufferSize:    15,
		DeflateLevel:  9,
		BrotliQuality: 11,
		ZstdLevel:     3,
	}
}

func (c Config) lz77Params() lz77.Params {
	return lz77.Params{WindowSize: c.WindowSize, BufferSize: c.BufferSize}
}

func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config %s: %v: %w", path, err, pack.ErrInvalidInput)
	}
	if err := cfg.lz77Params().Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}
