package anvil

import (
	"errors"
	"fmt"
	"sync"

	"github.com/overworld-dev/anvil-node/pkg/local_chunk_storage/chunk"
	"github.com/overworld-dev/anvil-node/pkg/local_chunk_storage/region"
	"github.com/overworld-dev/anvil-node/pkg/util"
)

// IterationPrm groups the parameters of Iterate and IterateRegion.
type IterationPrm struct {
	handler      func(chunk.Pos, *chunk.Chunk) error
	faultHandler func(chunk.Pos, error) error
	pool         util.WorkerPool
}

// WithHandler sets the function called for every decoded chunk. When a
// worker pool is set, the handler is called from pool goroutines and must be
// safe for concurrent use.
func (p *IterationPrm) WithHandler(f func(chunk.Pos, *chunk.Chunk) error) {
	p.handler = f
}

// WithFaultHandler sets the function called when one chunk cannot be read or
// decoded. Returning nil skips the chunk and continues; returning an error
// aborts the iteration with it. Default is to abort on the first fault.
func (p *IterationPrm) WithFaultHandler(f func(chunk.Pos, error) error) {
	p.faultHandler = f
}

// WithWorkerPool sets the pool decoding chunk payloads. Payload records are
// always read from disk sequentially; only decompression and NBT decoding
// are fanned out. Default is decoding in the calling goroutine.
func (p *IterationPrm) WithWorkerPool(pool util.WorkerPool) {
	p.pool = pool
}

// Iterate walks every chunk of every region file of the world in
// unspecified order. A missing region directory yields an empty iteration.
func (s *Store) Iterate(prm IterationPrm) error {
	positions, err := region.List(s.regionDir)
	if err != nil {
		if errors.Is(err, region.ErrNotFound) {
			return nil
		}

		return err
	}

	for _, p := range positions {
		if err := s.IterateRegion(p, prm); err != nil {
			return err
		}
	}

	return nil
}

// IterateRegion walks every chunk recorded in one region file. The store
// lock is held for the whole pass over the region, so concurrent lookups
// wait for it to finish.
func (s *Store) IterateRegion(p region.Pos, prm IterationPrm) error {
	if prm.faultHandler == nil {
		prm.faultHandler = func(_ chunk.Pos, err error) error { return err }
	}
	if prm.pool == nil {
		prm.pool = util.NewPseudoWorkerPool()
		defer prm.pool.Release()
	}

	s.mtx.Lock()
	defer s.mtx.Unlock()

	h, err := s.regions.Get(p)
	if err != nil {
		if errors.Is(err, region.ErrNotFound) {
			return nil
		}

		return fmt.Errorf("load region %s: %w", p, err)
	}

	var (
		wg sync.WaitGroup

		faultMtx sync.Mutex
		iterErr  error
	)

	fault := func(pos chunk.Pos, err error) {
		faultMtx.Lock()
		defer faultMtx.Unlock()

		if iterErr == nil {
			iterErr = prm.faultHandler(pos, err)
		}
	}

	aborted := func() bool {
		faultMtx.Lock()
		defer faultMtx.Unlock()

		return iterErr != nil
	}

	for idx := 0; idx < region.TableLen; idx++ {
		if aborted() {
			break
		}

		pos := p.ChunkAt(idx)

		payload, err := h.ReadRecord(idx)
		if err != nil {
			fault(pos, err)
			continue
		}

		if payload == nil {
			continue
		}

		timestamp := h.Header().Timestamp(idx)

		wg.Add(1)
		err = prm.pool.Submit(func() {
			defer wg.Done()

			c, err := decodeChunk(payload, timestamp)
			if err != nil {
				fault(pos, err)
				return
			}

			if err := prm.handler(pos, c); err != nil {
				fault(pos, err)
			}
		})
		if err != nil {
			wg.Done()
			fault(pos, err)
		}
	}

	wg.Wait()

	return iterErr
}
