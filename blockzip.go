package blockzip

import (
	"errors"
	"fmt"
	"runtime"
	"sync/atomic"
	"time"
)

// Algorithm represents a block compression codec
type Algorithm string

const (
	AlgorithmZlib   Algorithm = "zlib"
	AlgorithmGzip   Algorithm = "gzip"
	AlgorithmZstd   Algorithm = "zstd"
	AlgorithmLZ4    Algorithm = "lz4"
	AlgorithmBrotli Algorithm = "brotli"
	AlgorithmSnappy Algorithm = "snappy"
)

// DefaultBlockSize is the block size used when Config.BlockSize is zero.
const DefaultBlockSize = 1024 * 1024 // 1 MiB

// Config holds block compression configuration
type Config struct {
	// Algorithm to use for compression (default: zlib)
	Algorithm Algorithm

	// Compression level (codec-specific)
	// zlib/gzip: 1-9
	// zstd: 1-22
	// lz4: 1-9
	// brotli: 1-11
	// snappy: no levels
	// 0 selects the codec's best-compression setting.
	Level int

	// BlockSize is the partition granularity in bytes (default: 1 MiB).
	// Every block except possibly the last holds exactly BlockSize bytes.
	BlockSize int

	// Workers is the number of compression goroutines. Must be >= 1;
	// DefaultConfig and the preset constructors use runtime.NumCPU.
	Workers int
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Algorithm: AlgorithmZlib,
		Level:     0, // codec's best compression
		BlockSize: DefaultBlockSize,
		Workers:   runtime.NumCPU(),
	}
}

// Stats holds compression statistics for a Compressor
type Stats struct {
	BlocksCompressed int64
	BytesIn          int64
	BytesOut         int64
	Duration         time.Duration
}

// Ratio returns compressed size over original size (lower is better).
func (s *Stats) Ratio() float64 {
	if s.BytesIn == 0 {
		return 0
	}
	return float64(s.BytesOut) / float64(s.BytesIn)
}

// SpaceSaving returns the percentage of space saved (0-100).
func (s *Stats) SpaceSaving() float64 {
	if s.BytesIn == 0 {
		return 0
	}
	return (1 - float64(s.BytesOut)/float64(s.BytesIn)) * 100
}

var (
	ErrUnsupportedAlgorithm = errors.New("blockzip: unsupported compression algorithm")
	ErrInvalidLevel         = errors.New("blockzip: invalid compression level")
	ErrInvalidBlockSize     = errors.New("blockzip: block size must be at least 1 byte")
	ErrInvalidWorkers       = errors.New("blockzip: worker count must be at least 1")
	ErrBadMagic             = errors.New("blockzip: not a blockzip container")
	ErrUnsupportedVersion   = errors.New("blockzip: unsupported container version")
	ErrCorrupted            = errors.New("blockzip: corrupted container")
)

// BlockError reports a codec failure for a single block. A failed block
// aborts the whole pipeline: skipping it would desynchronize every record
// that follows it in the container.
type BlockError struct {
	Index int
	Err   error
}

func (e *BlockError) Error() string {
	return fmt.Sprintf("blockzip: compress block %d: %v", e.Index, e.Err)
}

func (e *BlockError) Unwrap() error { return e.Err }

// Compressor partitions payloads into blocks, compresses them in parallel
// and writes framed containers.
type Compressor struct {
	config *Config
	stats  Stats
}

// New creates a Compressor, validating the configuration. A nil config
// selects DefaultConfig. An empty algorithm and a zero block size take
// their defaults; a worker count below 1 is always a configuration error,
// rejected here, before any compression work can start.
func New(config *Config) (*Compressor, error) {
	if config == nil {
		config = DefaultConfig()
	}

	cfg := *config // keep the caller's struct untouched
	if cfg.Algorithm == "" {
		cfg.Algorithm = AlgorithmZlib
	}
	if cfg.BlockSize == 0 {
		cfg.BlockSize = DefaultBlockSize
	}

	if _, ok := algorithmCodes[cfg.Algorithm]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, cfg.Algorithm)
	}
	if cfg.BlockSize < 1 {
		return nil, ErrInvalidBlockSize
	}
	if cfg.Workers < 1 {
		return nil, ErrInvalidWorkers
	}
	if err := validateLevel(cfg.Algorithm, cfg.Level); err != nil {
		return nil, err
	}

	return &Compressor{config: &cfg}, nil
}

// Config returns a copy of the resolved configuration.
func (c *Compressor) Config() Config {
	return *c.config
}

// Stats returns a snapshot of the statistics accumulated so far.
func (c *Compressor) Stats() *Stats {
	return &Stats{
		BlocksCompressed: atomic.LoadInt64(&c.stats.BlocksCompressed),
		BytesIn:          atomic.LoadInt64(&c.stats.BytesIn),
		BytesOut:         atomic.LoadInt64(&c.stats.BytesOut),
		Duration:         time.Duration(atomic.LoadInt64((*int64)(&c.stats.Duration))),
	}
}

// ResetStats resets statistics to zero
func (c *Compressor) ResetStats() {
	atomic.StoreInt64(&c.stats.BlocksCompressed, 0)
	atomic.StoreInt64(&c.stats.BytesIn, 0)
	atomic.StoreInt64(&c.stats.BytesOut, 0)
	atomic.StoreInt64((*int64)(&c.stats.Duration), 0)
}
