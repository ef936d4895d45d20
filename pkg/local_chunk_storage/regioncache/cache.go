// Package regioncache maintains a bounded set of open region files. Open
// file descriptors are a scarce OS resource, so the cache keeps at most a
// configured number of regions open, closing idle ones first and falling
// back to closing an arbitrary one under sustained pressure.
package regioncache

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/overworld-dev/anvil-node/pkg/local_chunk_storage/region"
	"go.uber.org/zap"
)

// Cache maps region positions to open region handles, bounded by a maximum
// handle count.
//
// Cache performs no locking of its own: the owning store serializes all
// calls, the same way simplelru leaves locking to its caller. This keeps
// handle lifetime trivially race-free at the cost of serializing lookups.
type Cache struct {
	cfg

	root    string
	maxOpen int

	regions map[region.Pos]*region.Handle
}

// New creates a cache over region files stored in the given directory,
// holding at most maxOpen handles at a time.
//
// maxOpen must be positive; violating this is a programming error and New
// panics on it.
func New(root string, maxOpen int, opts ...Option) *Cache {
	if maxOpen <= 0 {
		panic(fmt.Sprintf("non-positive open region limit %d", maxOpen))
	}

	c := &Cache{
		root:    root,
		maxOpen: maxOpen,
		regions: make(map[region.Pos]*region.Handle, maxOpen),
	}

	initConfig(&c.cfg)

	for i := range opts {
		opts[i](&c.cfg)
	}

	return c
}

// Get returns the open handle for the given region, opening the file and
// reading its header if the region is not cached yet. Returns
// region.ErrNotFound if the file does not exist on disk.
//
// Every successful call refreshes the handle's last-use time. Inserting a
// new handle may evict unrelated regions, see evict.
//
// A handle is only committed to the cache after its file and header have
// been fully loaded, so a failed load leaves no partial state behind.
func (c *Cache) Get(p region.Pos) (*region.Handle, error) {
	h, ok := c.regions[p]
	if !ok {
		c.evict()

		var err error

		h, err = region.Open(p, filepath.Join(c.root, p.FileName()))
		if err != nil {
			return nil, err
		}

		c.regions[p] = h

		if c.metrics != nil {
			c.metrics.IncRegionMiss()
			c.metrics.SetOpenRegions(len(c.regions))
		}
	} else if c.metrics != nil {
		c.metrics.IncRegionHit()
	}

	h.Touch(c.now())

	return h, nil
}

// evict frees room for one more handle if the cache is at capacity. Handles
// idle longer than the retention duration are closed first. If every cached
// region is still within its retention window, one is picked uniformly at
// random and closed anyway: releasing a descriptor now is preferred over
// tracking exact recency.
func (c *Cache) evict() {
	if len(c.regions) < c.maxOpen {
		return
	}

	now := c.now()

	for p, h := range c.regions {
		if now.Sub(h.LastUse()) >= c.retention {
			c.drop(p, h, false)
		}
	}

	if len(c.regions) < c.maxOpen {
		return
	}

	c.log.Warn("reached open region file limit while all regions are active")

	keys := make([]region.Pos, 0, len(c.regions))
	for p := range c.regions {
		keys = append(keys, p)
	}

	sort.Slice(keys, func(i, j int) bool {
		if keys[i].X != keys[j].X {
			return keys[i].X < keys[j].X
		}
		return keys[i].Z < keys[j].Z
	})

	victim := keys[c.rand.Intn(len(keys))]
	c.drop(victim, c.regions[victim], true)
}

// drop closes and removes one cached handle.
func (c *Cache) drop(p region.Pos, h *region.Handle, forced bool) {
	if err := h.Close(); err != nil {
		c.log.Error("could not close region file",
			zap.Stringer("region", p),
			zap.Error(err),
		)
	} else {
		c.log.Debug("region file closed on evict",
			zap.Stringer("region", p),
			zap.Bool("forced", forced),
		)
	}

	delete(c.regions, p)

	if c.metrics != nil {
		c.metrics.IncRegionEviction(forced)
		c.metrics.SetOpenRegions(len(c.regions))
	}
}

// Len returns the number of currently open regions.
func (c *Cache) Len() int {
	return len(c.regions)
}

// Close closes every cached handle and empties the cache. The first close
// failure is returned, remaining handles are still closed.
func (c *Cache) Close() error {
	var firstErr error

	for p, h := range c.regions {
		if err := h.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("close region file %s: %w", p, err)
		}

		delete(c.regions, p)
	}

	if c.metrics != nil {
		c.metrics.SetOpenRegions(0)
	}

	return firstErr
}
