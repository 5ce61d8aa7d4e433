// Command blockzip compresses a file into a blockzip container, splitting it
// into fixed-size blocks and compressing the blocks in parallel.
//
// Usage:
//
//	blockzip [flags] input [output]
//
// When no output is given the container is written next to the input with a
// ".bzc" extension. When -workers is 0 the worker count is read
// interactively.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/chzyer/readline"

	"github.com/absfs/blockzip"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("blockzip", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: blockzip [flags] input [output]\n\nFlags:\n")
		fs.PrintDefaults()
	}

	var (
		algoName  = fs.String("algorithm", "zlib", "codec: zlib, gzip, zstd, lz4, brotli or snappy")
		level     = fs.Int("level", 0, "compression level (0 = codec's best compression)")
		blockSize = fs.Int("block-size", blockzip.DefaultBlockSize, "block size in bytes")
		workers   = fs.Int("workers", 0, "compression goroutines (0 = ask interactively)")
		verify    = fs.Bool("verify", false, "re-read the written container and verify checksums")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}

	if fs.NArg() < 1 || fs.NArg() > 2 {
		fs.Usage()
		return fmt.Errorf("expected input [output], got %d arguments", fs.NArg())
	}
	inPath := fs.Arg(0)
	outPath := inPath + blockzip.Extension
	if fs.NArg() == 2 {
		outPath = fs.Arg(1)
	}

	algo, ok := blockzip.ParseAlgorithm(*algoName)
	if !ok {
		return fmt.Errorf("unknown algorithm %q", *algoName)
	}

	n := *workers
	if n == 0 {
		var err error
		n, err = promptWorkers()
		if err != nil {
			return err
		}
	}

	c, err := blockzip.New(&blockzip.Config{
		Algorithm: algo,
		Level:     *level,
		BlockSize: *blockSize,
		Workers:   n,
	})
	if err != nil {
		return err
	}

	start := time.Now()
	if err := c.CompressFile(blockzip.OSFiler(), inPath, outPath); err != nil {
		return err
	}
	elapsed := time.Since(start)

	stats := c.Stats()
	fmt.Printf("Compressed %d blocks (%d -> %d bytes, %.1f%% saved) in %s with %d workers.\n",
		stats.BlocksCompressed, stats.BytesIn, stats.BytesOut, stats.SpaceSaving(), elapsed, n)
	fmt.Printf("Container written to %s\n", outPath)

	if *verify {
		f, err := os.Open(outPath)
		if err != nil {
			return err
		}
		defer f.Close()
		info, err := blockzip.VerifyContainer(f)
		if err != nil {
			return err
		}
		fmt.Printf("Verified %d records (%s, block size %d).\n",
			info.BlockCount, info.Algorithm, info.BlockSize)
	}
	return nil
}

// promptWorkers reads the worker count interactively.
func promptWorkers() (int, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "Number of workers: ",
		InterruptPrompt: "^C",
	})
	if err != nil {
		return 0, fmt.Errorf("initializing prompt: %w", err)
	}
	defer rl.Close()

	line, err := rl.Readline()
	if err != nil {
		return 0, fmt.Errorf("reading worker count: %w", err)
	}
	n, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		return 0, fmt.Errorf("worker count must be a number, got %q", strings.TrimSpace(line))
	}
	return n, nil
}
