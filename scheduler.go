package blockzip

import (
	"sync"
)

// compressBlocks fans the block sequence out across exactly `workers`
// goroutines and blocks until every one of them has finished.
//
// Work is assigned statically: worker t owns the contiguous index range
// [t*perWorker, min((t+1)*perWorker, len(blocks))) with perWorker =
// ceil(len(blocks)/workers). The ranges are disjoint, so each block has
// exactly one writer and no locking is needed on block contents. Workers
// whose range is empty (workers > block count) simply return.
//
// Every worker runs to completion even when another worker fails; errors
// are surfaced only after the join. When several workers fail, the one with
// the lowest worker index wins.
func compressBlocks(blocks []Block, workers int, compress func(*Block) error) error {
	if workers < 1 {
		return ErrInvalidWorkers
	}

	perWorker := (len(blocks) + workers - 1) / workers

	var wg sync.WaitGroup
	errs := make([]error, workers)

	for t := 0; t < workers; t++ {
		start := t * perWorker
		end := start + perWorker
		if start > len(blocks) {
			start = len(blocks)
		}
		if end > len(blocks) {
			end = len(blocks)
		}

		wg.Add(1)
		go func(t int, owned []Block) {
			defer wg.Done()
			for i := range owned {
				if err := compress(&owned[i]); err != nil {
					errs[t] = err
					return
				}
			}
		}(t, blocks[start:end])
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
