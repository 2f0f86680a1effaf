package monitoring

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusRegistry implements Registry on top of
// github.com/prometheus/client_golang, exposing counters/histograms
// prefixed "loom_".
type PrometheusRegistry struct {
	pollRenders    prometheus.Counter
	pollMutations  prometheus.Counter
	dirtyScopes    prometheus.Histogram
	layoutMeasures prometheus.Histogram
	cacheHits      prometheus.Counter
	cacheMisses    prometheus.Counter
	cacheEvictions prometheus.Counter
	repaintNodes   *prometheus.CounterVec
}

// NewPrometheusRegistry registers every metric against reg and returns the
// collector. Panics on duplicate registration, matching
// prometheus.Registerer.MustRegister's fail-fast contract.
func NewPrometheusRegistry(reg prometheus.Registerer) *PrometheusRegistry {
	p := &PrometheusRegistry{
		pollRenders: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "loom_poll_rendered_scopes_total",
			Help: "Total scopes re-rendered across all Poll calls.",
		}),
		pollMutations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "loom_poll_reconcile_mutations_total",
			Help: "Total tree mutations produced by reconciliation across all Poll calls.",
		}),
		dirtyScopes: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "loom_poll_dirty_scopes",
			Help:    "Size of the dirty scope set drained by each Poll call.",
			Buckets: []float64{0, 1, 2, 4, 8, 16, 32, 64, 128},
		}),
		layoutMeasures: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "loom_layout_measure_nodes",
			Help:    "Number of nodes visited by each Torin.Measure pass.",
			Buckets: []float64{1, 4, 16, 64, 256, 1024, 4096},
		}),
		cacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "loom_paragraph_cache_hits_total",
			Help: "Total paragraph cache lookups that reused a cached shape.",
		}),
		cacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "loom_paragraph_cache_misses_total",
			Help: "Total paragraph cache lookups that required a fresh shape.",
		}),
		cacheEvictions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "loom_paragraph_cache_evictions_total",
			Help: "Total paragraph cache entries dropped to stay within capacity.",
		}),
		repaintNodes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "loom_compositor_repaint_nodes_total",
			Help: "Total nodes repainted by CompositeFrame, partitioned by layer.",
		}, []string{"layer"}),
	}

	reg.MustRegister(
		p.pollRenders, p.pollMutations, p.dirtyScopes, p.layoutMeasures,
		p.cacheHits, p.cacheMisses, p.cacheEvictions, p.repaintNodes,
	)
	return p
}

func (p *PrometheusRegistry) RecordPoll(renderedScopes, mutations int) {
	p.pollRenders.Add(float64(renderedScopes))
	p.pollMutations.Add(float64(mutations))
}

func (p *PrometheusRegistry) RecordDirtyScopes(n int) {
	p.dirtyScopes.Observe(float64(n))
}

func (p *PrometheusRegistry) RecordLayoutMeasure(nodes int) {
	p.layoutMeasures.Observe(float64(nodes))
}

func (p *PrometheusRegistry) RecordCacheHit() {
	p.cacheHits.Inc()
}

func (p *PrometheusRegistry) RecordCacheMiss() {
	p.cacheMisses.Inc()
}

func (p *PrometheusRegistry) RecordCacheEviction() {
	p.cacheEvictions.Inc()
}

func (p *PrometheusRegistry) RecordRepaintNodes(layer int16, n int) {
	p.repaintNodes.WithLabelValues(strconv.FormatInt(int64(layer), 10)).Add(float64(n))
}
