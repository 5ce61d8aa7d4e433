package blockzip

import (
	"bytes"
)

// Block is the unit of parallel work: one contiguous slice of the input
// together with its compressed form.
type Block struct {
	// Index is the block's position in partition order and the sole
	// ordering key for the container.
	Index int

	// Raw is the block's slice of the original payload. Every block holds
	// exactly the configured block size except possibly the last.
	Raw []byte

	// Compressed is populated exactly once, by the worker that owns the
	// block's index range, and read only after all workers have joined.
	Compressed []byte
}

// Partition splits data into blocks of blockSize bytes. The returned blocks
// reference data rather than copying it, cover it without gaps or overlaps,
// and are indexed 0..n-1 in byte order. The last block holds the remainder;
// empty input yields no blocks.
func Partition(data []byte, blockSize int) []Block {
	if blockSize < 1 || len(data) == 0 {
		return nil
	}

	count := (len(data) + blockSize - 1) / blockSize
	blocks := make([]Block, count)
	for i := 0; i < count; i++ {
		start := i * blockSize
		end := start + blockSize
		if end > len(data) {
			end = len(data)
		}
		blocks[i] = Block{Index: i, Raw: data[start:end]}
	}
	return blocks
}

// compressBlock compresses a single block in place. The destination buffer
// is pre-sized to the codec's worst-case bound and truncated to the actual
// output length by the buffer itself. Stateless across blocks; a failure is
// reported as a BlockError carrying the block's index.
func compressBlock(b *Block, algo Algorithm, level int) error {
	buf := bytes.NewBuffer(make([]byte, 0, CompressBound(algo, len(b.Raw))))

	zw, err := createCompressor(algo, buf, level)
	if err != nil {
		return &BlockError{Index: b.Index, Err: err}
	}
	if _, err := zw.Write(b.Raw); err != nil {
		zw.Close()
		return &BlockError{Index: b.Index, Err: err}
	}
	if err := zw.Close(); err != nil {
		return &BlockError{Index: b.Index, Err: err}
	}

	b.Compressed = buf.Bytes()
	return nil
}
