package blockzip

import (
	"compress/gzip"
	"fmt"
	"io"

	"github.com/andybalholm/brotli"
	"github.com/golang/snappy"
	"github.com/klauspost/compress/zlib"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// createCompressor creates a compressor for the specified algorithm.
// A level of 0 selects the codec's best-compression setting.
func createCompressor(algo Algorithm, w io.Writer, level int) (io.WriteCloser, error) {
	if err := validateLevel(algo, level); err != nil {
		return nil, err
	}
	switch algo {
	case AlgorithmZlib:
		return createZlibCompressor(w, level)
	case AlgorithmGzip:
		return createGzipCompressor(w, level)
	case AlgorithmZstd:
		return createZstdCompressor(w, level)
	case AlgorithmLZ4:
		return createLZ4Compressor(w, level)
	case AlgorithmBrotli:
		return createBrotliCompressor(w, level)
	case AlgorithmSnappy:
		return createSnappyCompressor(w, level)
	default:
		return nil, ErrUnsupportedAlgorithm
	}
}

// createDecompressor creates a decompressor for the specified algorithm
func createDecompressor(algo Algorithm, r io.Reader) (io.ReadCloser, error) {
	switch algo {
	case AlgorithmZlib:
		return zlib.NewReader(r)
	case AlgorithmGzip:
		return gzip.NewReader(r)
	case AlgorithmZstd:
		return createZstdDecompressor(r)
	case AlgorithmLZ4:
		return io.NopCloser(lz4.NewReader(r)), nil
	case AlgorithmBrotli:
		return io.NopCloser(brotli.NewReader(r)), nil
	case AlgorithmSnappy:
		return io.NopCloser(snappy.NewReader(r)), nil
	default:
		return nil, ErrUnsupportedAlgorithm
	}
}

// validateLevel reports whether level is valid for the algorithm.
// 0 is always valid and means "best compression".
func validateLevel(algo Algorithm, level int) error {
	if level == 0 {
		return nil
	}
	maxLevel := 0
	switch algo {
	case AlgorithmZlib, AlgorithmGzip:
		maxLevel = 9
	case AlgorithmZstd:
		maxLevel = 22
	case AlgorithmLZ4:
		maxLevel = 9
	case AlgorithmBrotli:
		maxLevel = 11
	case AlgorithmSnappy:
		maxLevel = 0 // snappy has no levels
	default:
		return ErrUnsupportedAlgorithm
	}
	if level < 0 || level > maxLevel {
		return fmt.Errorf("%w: %s level %d", ErrInvalidLevel, algo, level)
	}
	return nil
}

// CompressBound returns a worst-case output size for compressing n input
// bytes with the given algorithm, suitable for pre-sizing destination
// buffers. The actual output is truncated to its real length.
func CompressBound(algo Algorithm, n int) int {
	switch algo {
	case AlgorithmSnappy:
		return snappy.MaxEncodedLen(n) + 64
	case AlgorithmLZ4:
		return lz4.CompressBlockBound(n) + 64
	default:
		// deflate-family codecs expand incompressible input by well
		// under 0.5%, plus a small fixed header and trailer
		return n + n/255 + 64
	}
}

// Zlib implementation using github.com/klauspost/compress/zlib
func createZlibCompressor(w io.Writer, level int) (io.WriteCloser, error) {
	if level == 0 {
		level = zlib.BestCompression
	}
	return zlib.NewWriterLevel(w, level)
}

// Gzip implementation using standard library
func createGzipCompressor(w io.Writer, level int) (io.WriteCloser, error) {
	if level == 0 {
		level = gzip.BestCompression
	}
	return gzip.NewWriterLevel(w, level)
}

// Zstd implementation using github.com/klauspost/compress/zstd
func createZstdCompressor(w io.Writer, level int) (io.WriteCloser, error) {
	enc := zstd.SpeedBestCompression
	if level != 0 {
		enc = zstd.EncoderLevelFromZstd(level)
	}
	return zstd.NewWriter(w, zstd.WithEncoderLevel(enc))
}

func createZstdDecompressor(r io.Reader) (io.ReadCloser, error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, err
	}
	return dec.IOReadCloser(), nil
}

// lz4 frame levels indexed by Config.Level; 0 maps to the highest level
var lz4Levels = [...]lz4.CompressionLevel{
	lz4.Level9, // 0 = best compression
	lz4.Level1, lz4.Level2, lz4.Level3, lz4.Level4, lz4.Level5,
	lz4.Level6, lz4.Level7, lz4.Level8, lz4.Level9,
}

// LZ4 implementation using github.com/pierrec/lz4/v4 (frame format)
func createLZ4Compressor(w io.Writer, level int) (io.WriteCloser, error) {
	zw := lz4.NewWriter(w)
	if err := zw.Apply(lz4.CompressionLevelOption(lz4Levels[level])); err != nil {
		return nil, err
	}
	return zw, nil
}

// Brotli implementation using github.com/andybalholm/brotli
func createBrotliCompressor(w io.Writer, level int) (io.WriteCloser, error) {
	if level == 0 {
		level = brotli.BestCompression
	}
	return brotli.NewWriterLevel(w, level), nil
}

// Snappy implementation using github.com/golang/snappy (framed stream)
func createSnappyCompressor(w io.Writer, level int) (io.WriteCloser, error) {
	// snappy has no compression levels
	return snappy.NewBufferedWriter(w), nil
}
