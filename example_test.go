package blockzip_test

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/absfs/blockzip"
)

func Example_basic() {
	// Compress an in-memory payload into a container
	payload := bytes.Repeat([]byte("Hello, block-compressed world! "), 2048)

	c, err := blockzip.New(&blockzip.Config{
		Algorithm: blockzip.AlgorithmZlib,
		BlockSize: 16 * 1024,
		Workers:   4,
	})
	if err != nil {
		log.Fatal(err)
	}

	var container bytes.Buffer
	if err := c.Compress(&container, payload); err != nil {
		log.Fatal(err)
	}

	// Reassemble the payload record by record
	restored, err := blockzip.ExtractContainer(bytes.NewReader(container.Bytes()))
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Round trip intact: %v\n", bytes.Equal(restored, payload))
	fmt.Printf("Blocks: %d\n", c.Stats().BlocksCompressed)

	// Output:
	// Round trip intact: true
	// Blocks: 4
}

func Example_files() {
	// An in-memory filesystem stands in for the host filesystem here;
	// pass blockzip.OSFiler() to work with real files.
	fsys := blockzip.NewMemFiler()

	f, err := fsys.OpenFile("notes.txt", os.O_WRONLY|os.O_CREATE, 0644)
	if err != nil {
		log.Fatal(err)
	}
	if _, err := f.Write(bytes.Repeat([]byte("meeting notes\n"), 1000)); err != nil {
		log.Fatal(err)
	}
	f.Close()

	c, err := blockzip.New(blockzip.DefaultConfig())
	if err != nil {
		log.Fatal(err)
	}
	if err := c.CompressFile(fsys, "notes.txt", "notes.txt.bzc"); err != nil {
		log.Fatal(err)
	}

	out, err := fsys.OpenFile("notes.txt.bzc", os.O_RDONLY, 0)
	if err != nil {
		log.Fatal(err)
	}
	raw, err := io.ReadAll(out)
	out.Close()
	if err != nil {
		log.Fatal(err)
	}

	info, err := blockzip.VerifyContainer(bytes.NewReader(raw))
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Container holds %d block(s) of %s data\n", info.BlockCount, info.Algorithm)

	// Output:
	// Container holds 1 block(s) of zlib data
}

func Example_statistics() {
	payload := bytes.Repeat([]byte("statistics are ambient, not optional. "), 4096)

	c, err := blockzip.New(blockzip.RecommendedConfig())
	if err != nil {
		log.Fatal(err)
	}

	var container bytes.Buffer
	if err := c.Compress(&container, payload); err != nil {
		log.Fatal(err)
	}

	stats := c.Stats()
	fmt.Printf("Compressed %d bytes, saved more than half: %v\n",
		stats.BytesIn, stats.SpaceSaving() > 50)

	// Output:
	// Compressed 155648 bytes, saved more than half: true
}
