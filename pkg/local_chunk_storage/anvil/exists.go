package anvil

import (
	"errors"
	"fmt"

	"github.com/overworld-dev/anvil-node/pkg/local_chunk_storage/chunk"
	"github.com/overworld-dev/anvil-node/pkg/local_chunk_storage/region"
)

// HasChunk reports whether a chunk exists at the given position. A missing
// region file and a zeroed location word both report false without error;
// only real failures propagate.
//
// Like ReadChunk, a positive answer refreshes the region's last-use time and
// may evict unrelated regions via the capacity check.
func (s *Store) HasChunk(pos chunk.Pos) (bool, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	h, err := s.regions.Get(region.FromChunk(pos))
	if err != nil {
		if errors.Is(err, region.ErrNotFound) {
			return false, nil
		}

		return false, fmt.Errorf("load region for chunk %s: %w", pos, err)
	}

	return !h.Header().Location(pos.Index()).Zero(), nil
}
