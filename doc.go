// Package blockzip compresses a byte payload as a sequence of fixed-size
// blocks, spreading the per-block compression work across worker goroutines
// and framing the results into a sequential binary container.
//
// The input is split into 1 MiB blocks (configurable), each block is
// compressed independently at the codec's best-compression setting, and the
// compressed blocks are written out in their original order behind a small
// self-describing header. Because blocks are independent, compression
// parallelizes across as many workers as requested; because records are
// written only after every worker has joined, the output is byte-identical
// regardless of worker count.
//
// # Features
//
//   - Parallel block compression with a fixed worker count
//   - 6 codecs: zlib, gzip, zstd, lz4, brotli, snappy
//   - Self-describing container: magic, version, codec, block size and count
//   - Per-record xxhash64 checksums
//   - Deterministic output independent of worker count
//   - Statistics tracking
//
// # Quick Start
//
//	import "github.com/absfs/blockzip"
//
//	c, _ := blockzip.New(blockzip.DefaultConfig())
//	err := c.CompressFile(blockzip.OSFiler(), "notes.txt", "notes.txt.bzc")
//
// Or from memory:
//
//	var out bytes.Buffer
//	c, _ := blockzip.New(&blockzip.Config{Algorithm: blockzip.AlgorithmZstd, Workers: 4})
//	err := c.Compress(&out, payload)
//
// # Container Format
//
// All integers are little-endian.
//
//	header: "BZC1" | version u8 | algorithm u8 | reserved u16 | blockSize u32 | blockCount u32
//	record: originalSize u32 | compressedSize u32 | payload | xxhash64(payload) u64
//
// Records appear strictly in original block order. A consumer reconstructs
// the payload by decompressing each record in sequence; ReadContainer parses
// and verifies a container without decompressing it.
//
// # Codec Selection Guide
//
//   - Default: Zlib (level 9) - dependable ratios everywhere
//   - General Purpose: Zstd - best balance of speed and compression
//   - Maximum Speed: LZ4 or Snappy - ultra-fast, moderate compression
//   - Maximum Compression: Brotli (level 11) - best for static content
//   - Maximum Compatibility: Gzip - universally supported
package blockzip
