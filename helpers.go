package blockzip

import (
	"bytes"
	"io"
	"runtime"
)

// Preset configurations for common use cases

// FastestConfig returns a configuration optimized for throughput
func FastestConfig() *Config {
	return &Config{
		Algorithm: AlgorithmSnappy,
		Level:     0, // snappy has no levels
		BlockSize: DefaultBlockSize,
		Workers:   runtime.NumCPU(),
	}
}

// RecommendedConfig returns the recommended configuration for general use
// Uses zstd which provides excellent compression with good speed
func RecommendedConfig() *Config {
	return &Config{
		Algorithm: AlgorithmZstd,
		Level:     3,
		BlockSize: DefaultBlockSize,
		Workers:   runtime.NumCPU(),
	}
}

// BestCompressionConfig returns a configuration optimized for maximum
// compression. Use for static content or write-once/read-many scenarios
func BestCompressionConfig() *Config {
	return &Config{
		Algorithm: AlgorithmBrotli,
		Level:     11,
		BlockSize: DefaultBlockSize,
		Workers:   runtime.NumCPU(),
	}
}

// CompatibleConfig returns a configuration using gzip for maximum
// compatibility of the per-block payloads
func CompatibleConfig() *Config {
	return &Config{
		Algorithm: AlgorithmGzip,
		Level:     9,
		BlockSize: DefaultBlockSize,
		Workers:   runtime.NumCPU(),
	}
}

// CompressBytes compresses a byte slice using the specified algorithm and
// level. The destination buffer is pre-sized from CompressBound.
func CompressBytes(data []byte, algo Algorithm, level int) ([]byte, error) {
	buf := bytes.NewBuffer(make([]byte, 0, CompressBound(algo, len(data))))

	zw, err := createCompressor(algo, buf, level)
	if err != nil {
		return nil, err
	}
	if _, err := zw.Write(data); err != nil {
		zw.Close()
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecompressBytes decompresses a byte slice using the specified algorithm
func DecompressBytes(data []byte, algo Algorithm) ([]byte, error) {
	zr, err := createDecompressor(algo, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	return io.ReadAll(zr)
}

// GetCompressionRatio calculates the compression ratio for given original
// and compressed sizes. Returns a value between 0 and 1, where lower is
// better. E.g., 0.5 means the compressed size is 50% of the original
func GetCompressionRatio(originalSize, compressedSize int64) float64 {
	if originalSize == 0 {
		return 0
	}
	return float64(compressedSize) / float64(originalSize)
}

// GetCompressionPercentage calculates the compression percentage. Returns
// the percentage of space saved (0-100). E.g., 50 means 50% space savings
func GetCompressionPercentage(originalSize, compressedSize int64) float64 {
	if originalSize == 0 {
		return 0
	}
	return (1 - float64(compressedSize)/float64(originalSize)) * 100
}
