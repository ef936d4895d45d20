package metrics

import (
	"time"

	"github.com/overworld-dev/anvil-node/pkg/local_chunk_storage/anvil"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "anvil_node"

const storageSubsystem = "chunk_storage"

// StorageMetrics accumulates activity numbers of one chunk store. It
// implements anvil.MetricsWriter.
type StorageMetrics struct {
	regionHits       prometheus.Counter
	regionMisses     prometheus.Counter
	regionEvictions  *prometheus.CounterVec
	openRegions      prometheus.Gauge
	readDuration     prometheus.Histogram
	decodedCacheHits prometheus.Counter
}

var _ anvil.MetricsWriter = (*StorageMetrics)(nil)

// NewStorageMetrics creates and registers storage metrics in the default
// prometheus registry.
func NewStorageMetrics() *StorageMetrics {
	m := &StorageMetrics{
		regionHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: storageSubsystem,
			Name:      "region_cache_hits",
			Help:      "Number of lookups served by an already open region file",
		}),
		regionMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: storageSubsystem,
			Name:      "region_cache_misses",
			Help:      "Number of lookups that had to open a region file",
		}),
		regionEvictions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: storageSubsystem,
			Name:      "region_evictions",
			Help:      "Number of region files closed by the cache",
		}, []string{"forced"}),
		openRegions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: storageSubsystem,
			Name:      "open_regions",
			Help:      "Number of currently open region files",
		}),
		readDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: storageSubsystem,
			Name:      "read_chunk_time",
			Help:      "Chunk read and decode time",
		}),
		decodedCacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: storageSubsystem,
			Name:      "decoded_cache_hits",
			Help:      "Number of reads served by the decoded chunk cache",
		}),
	}

	prometheus.MustRegister(
		m.regionHits,
		m.regionMisses,
		m.regionEvictions,
		m.openRegions,
		m.readDuration,
		m.decodedCacheHits,
	)

	return m
}

// IncRegionHit implements anvil.MetricsWriter.
func (m *StorageMetrics) IncRegionHit() {
	m.regionHits.Inc()
}

// IncRegionMiss implements anvil.MetricsWriter.
func (m *StorageMetrics) IncRegionMiss() {
	m.regionMisses.Inc()
}

// IncRegionEviction implements anvil.MetricsWriter.
func (m *StorageMetrics) IncRegionEviction(forced bool) {
	if forced {
		m.regionEvictions.WithLabelValues("true").Inc()
	} else {
		m.regionEvictions.WithLabelValues("false").Inc()
	}
}

// SetOpenRegions implements anvil.MetricsWriter.
func (m *StorageMetrics) SetOpenRegions(n int) {
	m.openRegions.Set(float64(n))
}

// AddReadDuration implements anvil.MetricsWriter.
func (m *StorageMetrics) AddReadDuration(d time.Duration) {
	m.readDuration.Observe(d.Seconds())
}

// IncDecodedCacheHit implements anvil.MetricsWriter.
func (m *StorageMetrics) IncDecodedCacheHit() {
	m.decodedCacheHits.Inc()
}
