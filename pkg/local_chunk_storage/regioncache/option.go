package regioncache

import (
	"math/rand"
	"time"

	"go.uber.org/zap"
)

// MetricsWriter collects cache activity numbers. Implementations must be
// cheap: methods are called while the store lock is held.
type MetricsWriter interface {
	IncRegionHit()
	IncRegionMiss()
	IncRegionEviction(forced bool)
	SetOpenRegions(n int)
}

type cfg struct {
	log       *zap.Logger
	retention time.Duration
	rand      *rand.Rand
	now       func() time.Time
	metrics   MetricsWriter
}

const defaultRetention = 5 * time.Minute

func initConfig(c *cfg) {
	*c = cfg{
		log:       zap.L(),
		retention: defaultRetention,
		rand:      rand.New(rand.NewSource(time.Now().UnixNano())),
		now:       time.Now,
	}
}

// Option configures a Cache.
type Option func(*cfg)

// WithLogger sets the logger. Default is the global zap logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *cfg) {
		c.log = l
	}
}

// WithRetention sets how long a region may stay idle before it becomes
// eligible for eviction. Default is 5 minutes.
func WithRetention(d time.Duration) Option {
	return func(c *cfg) {
		c.retention = d
	}
}

// WithRand sets the randomness source used to pick a victim when every
// cached region is still active. Default is a time-seeded source; tests
// inject a fixed seed to drive the forced-eviction path deterministically.
func WithRand(r *rand.Rand) Option {
	return func(c *cfg) {
		c.rand = r
	}
}

// WithClock sets the time source used for last-use tracking.
func WithClock(now func() time.Time) Option {
	return func(c *cfg) {
		c.now = now
	}
}

// WithMetrics sets the metrics writer. Default is none.
func WithMetrics(m MetricsWriter) Option {
	return func(c *cfg) {
		c.metrics = m
	}
}
