// Package anvil implements read access to Anvil world storage: a directory
// of region files, each aggregating a 32x32 grid of chunks. The store
// resolves chunk positions to region files and byte offsets, keeps a bounded
// cache of open region files and decodes chunk payload records into NBT
// trees.
package anvil

import (
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/simplelru"
	"github.com/overworld-dev/anvil-node/pkg/local_chunk_storage/chunk"
	"github.com/overworld-dev/anvil-node/pkg/local_chunk_storage/regioncache"
)

// ErrIncompleteChunkRead is returned when a chunk's NBT tree decodes
// successfully but leaves trailing bytes in the payload. A record must hold
// exactly one tree.
var ErrIncompleteChunkRead = errors.New("not all chunk NBT data was read")

// Store provides read access to the chunks of one world.
//
// A single mutex guards the region cache and all region file I/O: at most
// one lookup is in flight at a time, across all regions. This rules out two
// goroutines racing to open or evict the same region at the cost of
// serializing reads; effects of concurrent lookups are linearizable.
type Store struct {
	cfg

	regionDir string

	mtx     sync.Mutex
	regions *regioncache.Cache

	// decoded-chunk cache, nil unless WithChunkCacheSize is given
	chunks *simplelru.LRU[chunk.Pos, *chunk.Chunk]
}

// New creates a store over the world rooted at the given path. Region files
// are expected in the "region" subdirectory of the root. At most maxOpen
// region files are kept open simultaneously; an open region idle for longer
// than retention is closed before unrelated regions are considered for
// forced eviction.
//
// maxOpen must be positive, New panics otherwise.
func New(worldRoot string, maxOpen int, retention time.Duration, opts ...Option) *Store {
	s := new(Store)
	initConfig(&s.cfg)

	for i := range opts {
		opts[i](&s.cfg)
	}

	s.regionDir = filepath.Join(worldRoot, "region")

	cacheOpts := []regioncache.Option{
		regioncache.WithLogger(s.log),
		regioncache.WithRetention(retention),
		regioncache.WithClock(s.now),
	}
	if s.rand != nil {
		cacheOpts = append(cacheOpts, regioncache.WithRand(s.rand))
	}
	if s.metrics != nil {
		cacheOpts = append(cacheOpts, regioncache.WithMetrics(s.metrics))
	}

	s.regions = regioncache.New(s.regionDir, maxOpen, cacheOpts...)

	if s.chunkCacheSize > 0 {
		cache, err := simplelru.NewLRU[chunk.Pos, *chunk.Chunk](s.chunkCacheSize, nil)
		if err != nil {
			panic(fmt.Errorf("could not create decoded chunk cache of size %d: %w", s.chunkCacheSize, err))
		}

		s.chunks = cache
	}

	return s
}

// Path returns the region directory served by the store.
func (s *Store) Path() string {
	return s.regionDir
}

// Close closes every open region file. The store must not be used after
// Close.
func (s *Store) Close() error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if s.chunks != nil {
		s.chunks.Purge()
	}

	return s.regions.Close()
}
