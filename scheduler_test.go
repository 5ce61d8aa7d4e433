package blockzip

import (
	"errors"
	"sync/atomic"
	"testing"
)

func TestCompressBlocksVisitsEveryBlockOnce(t *testing.T) {
	const count = 23

	for _, workers := range []int{1, 2, 3, count, count + 5, 100} {
		blocks := make([]Block, count)
		for i := range blocks {
			blocks[i] = Block{Index: i, Raw: []byte{byte(i)}}
		}

		visits := make([]int32, count)
		err := compressBlocks(blocks, workers, func(b *Block) error {
			atomic.AddInt32(&visits[b.Index], 1)
			return nil
		})
		if err != nil {
			t.Fatalf("workers=%d: %v", workers, err)
		}

		for i, v := range visits {
			if v != 1 {
				t.Fatalf("workers=%d: block %d compressed %d times", workers, i, v)
			}
		}
	}
}

func TestCompressBlocksMoreWorkersThanBlocks(t *testing.T) {
	blocks := make([]Block, 2)
	var calls int32
	err := compressBlocks(blocks, 16, func(b *Block) error {
		atomic.AddInt32(&calls, 1)
		return nil
	})
	if err != nil {
		t.Fatalf("idle workers must not error: %v", err)
	}
	if calls != 2 {
		t.Fatalf("got %d compression calls, want 2", calls)
	}
}

func TestCompressBlocksNoBlocks(t *testing.T) {
	err := compressBlocks(nil, 4, func(b *Block) error {
		t.Fatal("compress called with no blocks")
		return nil
	})
	if err != nil {
		t.Fatalf("empty sequence must not error: %v", err)
	}
}

func TestCompressBlocksRejectsZeroWorkers(t *testing.T) {
	blocks := make([]Block, 4)
	var calls int32
	err := compressBlocks(blocks, 0, func(b *Block) error {
		atomic.AddInt32(&calls, 1)
		return nil
	})
	if !errors.Is(err, ErrInvalidWorkers) {
		t.Fatalf("got %v, want ErrInvalidWorkers", err)
	}
	if calls != 0 {
		t.Fatal("no compression work may start with an invalid worker count")
	}
}

// A failing block aborts the pipeline, but only after every worker has
// joined: workers that already started keep running to completion.
func TestCompressBlocksSurfacesFailure(t *testing.T) {
	const count = 12
	blocks := make([]Block, count)
	for i := range blocks {
		blocks[i] = Block{Index: i}
	}

	boom := &BlockError{Index: 5, Err: errors.New("codec exploded")}
	var calls int32
	err := compressBlocks(blocks, 3, func(b *Block) error {
		atomic.AddInt32(&calls, 1)
		if b.Index == 5 {
			return boom
		}
		return nil
	})

	var be *BlockError
	if !errors.As(err, &be) {
		t.Fatalf("got %v, want *BlockError", err)
	}
	if be.Index != 5 {
		t.Fatalf("BlockError index %d, want 5", be.Index)
	}
	// worker 1 owns [4,8) and stops after block 5; the other workers
	// finish their ranges
	if calls < count-2 {
		t.Fatalf("only %d calls recorded, workers abandoned their ranges", calls)
	}
}

func TestCompressBlocksReportsOneOfManyFailures(t *testing.T) {
	blocks := make([]Block, 8)
	for i := range blocks {
		blocks[i] = Block{Index: i}
	}

	err := compressBlocks(blocks, 4, func(b *Block) error {
		return &BlockError{Index: b.Index, Err: errors.New("bad block")}
	})
	var be *BlockError
	if !errors.As(err, &be) {
		t.Fatalf("got %v, want *BlockError", err)
	}
}
