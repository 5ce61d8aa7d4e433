package blockzip

import (
	"fmt"
	"io"
	"os"
	"sync/atomic"
	"time"

	"github.com/absfs/absfs"
)

// Compress partitions src into blocks, compresses them in parallel and
// writes the framed container to dst. Output bytes are identical for any
// worker count: records are written in block order, single-threaded, after
// every worker has joined. Any block failure aborts before the first byte
// of output is written.
func (c *Compressor) Compress(dst io.Writer, src []byte) error {
	start := time.Now()

	blocks := Partition(src, c.config.BlockSize)

	err := compressBlocks(blocks, c.config.Workers, func(b *Block) error {
		if err := compressBlock(b, c.config.Algorithm, c.config.Level); err != nil {
			return err
		}
		atomic.AddInt64(&c.stats.BlocksCompressed, 1)
		atomic.AddInt64(&c.stats.BytesIn, int64(len(b.Raw)))
		atomic.AddInt64(&c.stats.BytesOut, int64(len(b.Compressed)))
		return nil
	})
	if err != nil {
		return err
	}

	if err := writeContainer(dst, c.config.Algorithm, c.config.BlockSize, blocks); err != nil {
		return err
	}

	atomic.AddInt64((*int64)(&c.stats.Duration), int64(time.Since(start)))
	return nil
}

// CompressFile reads the file at inPath through fsys, compresses it and
// writes the container to outPath. The whole input is held in memory while
// it is being compressed, so inputs must fit in available memory.
//
// A failure while writing can leave a partial container behind; callers that
// need atomicity should write to a temporary name and rename.
func (c *Compressor) CompressFile(fsys absfs.Filer, inPath, outPath string) error {
	in, err := fsys.OpenFile(inPath, os.O_RDONLY, 0)
	if err != nil {
		return fmt.Errorf("blockzip: open %s: %w", inPath, err)
	}
	data, err := io.ReadAll(in)
	in.Close()
	if err != nil {
		return fmt.Errorf("blockzip: read %s: %w", inPath, err)
	}

	out, err := fsys.OpenFile(outPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0666)
	if err != nil {
		return fmt.Errorf("blockzip: create %s: %w", outPath, err)
	}

	if err := c.Compress(out, data); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("blockzip: close %s: %w", outPath, err)
	}
	return nil
}
