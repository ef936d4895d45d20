package anvil

import (
	"math/rand"
	"time"

	"github.com/overworld-dev/anvil-node/pkg/local_chunk_storage/regioncache"
	"go.uber.org/zap"
)

// MetricsWriter collects storage activity numbers. Region cache counters are
// forwarded to the embedded regioncache writer.
type MetricsWriter interface {
	regioncache.MetricsWriter

	AddReadDuration(d time.Duration)
	IncDecodedCacheHit()
}

type cfg struct {
	log            *zap.Logger
	rand           *rand.Rand
	now            func() time.Time
	chunkCacheSize int
	metrics        MetricsWriter
}

func initConfig(c *cfg) {
	*c = cfg{
		log: zap.L(),
		now: time.Now,
	}
}

// Option configures a Store.
type Option func(*cfg)

// WithLogger sets the logger. Default is the global zap logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *cfg) {
		c.log = l
	}
}

// WithRand sets the randomness source used by the region cache to pick a
// forced-eviction victim. Default is a time-seeded source.
func WithRand(r *rand.Rand) Option {
	return func(c *cfg) {
		c.rand = r
	}
}

// WithClock sets the time source used for region last-use tracking.
func WithClock(now func() time.Time) Option {
	return func(c *cfg) {
		c.now = now
	}
}

// WithChunkCacheSize enables an LRU cache of the given size over decoded
// chunks. Chunks served from it do not touch the region file and do not
// refresh the region's last-use time. Default is 0, disabled.
func WithChunkCacheSize(n int) Option {
	return func(c *cfg) {
		c.chunkCacheSize = n
	}
}

// WithMetrics sets the metrics writer. Default is none.
func WithMetrics(m MetricsWriter) Option {
	return func(c *cfg) {
		c.metrics = m
	}
}
