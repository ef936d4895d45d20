package anvil

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/Tnze/go-mc/nbt"
	"github.com/overworld-dev/anvil-node/pkg/local_chunk_storage/chunk"
	"github.com/overworld-dev/anvil-node/pkg/local_chunk_storage/compression"
	"github.com/overworld-dev/anvil-node/pkg/local_chunk_storage/region"
)

// ReadChunk reads and decodes the chunk at the given position. A missing
// region file and a zeroed location word both mean the chunk was never
// generated: ReadChunk returns nil, nil for them, errors are reserved for
// real failures.
//
// Corruption of the on-disk record surfaces as region.ErrBadSectorOffset,
// region.ErrBadChunkSize, compression.UnknownSchemeError or
// ErrIncompleteChunkRead. None of them is retried or repaired.
func (s *Store) ReadChunk(pos chunk.Pos) (*chunk.Chunk, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if s.chunks != nil {
		if c, ok := s.chunks.Get(pos); ok {
			if s.metrics != nil {
				s.metrics.IncDecodedCacheHit()
			}

			return c, nil
		}
	}

	start := s.now()

	h, err := s.regions.Get(region.FromChunk(pos))
	if err != nil {
		if errors.Is(err, region.ErrNotFound) {
			return nil, nil
		}

		return nil, fmt.Errorf("load region for chunk %s: %w", pos, err)
	}

	idx := pos.Index()

	payload, err := h.ReadRecord(idx)
	if err != nil {
		return nil, fmt.Errorf("read record of chunk %s: %w", pos, err)
	}

	if payload == nil {
		return nil, nil
	}

	c, err := decodeChunk(payload, h.Header().Timestamp(idx))
	if err != nil {
		return nil, fmt.Errorf("decode chunk %s: %w", pos, err)
	}

	if s.chunks != nil {
		s.chunks.Add(pos, c)
	}

	if s.metrics != nil {
		s.metrics.AddReadDuration(s.now().Sub(start))
	}

	return c, nil
}

// decodeChunk turns a raw payload record (compression scheme tag plus NBT
// bytes) and a header timestamp into a decoded chunk.
func decodeChunk(payload []byte, timestamp uint32) (*chunk.Chunk, error) {
	data, err := compression.Decompress(payload)
	if err != nil {
		return nil, err
	}

	r := bytes.NewReader(data)

	var tree map[string]any
	if _, err := nbt.NewDecoder(r).Decode(&tree); err != nil {
		return nil, fmt.Errorf("decode NBT: %w", err)
	}

	if r.Len() > 0 {
		return nil, ErrIncompleteChunkRead
	}

	return chunk.New(tree, timestamp, data), nil
}
