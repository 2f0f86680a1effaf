package monitoring

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGlobalRegistryDefaultsToNoOp(t *testing.T) {
	defer SetGlobalRegistry(nil)
	SetGlobalRegistry(nil)

	r := GetGlobalRegistry()
	require.NotNil(t, r)
	_, ok := r.(NoOpRegistry)
	assert.True(t, ok)

	require.NotPanics(t, func() {
		r.RecordPoll(3, 7)
		r.RecordDirtyScopes(3)
		r.RecordLayoutMeasure(42)
		r.RecordCacheHit()
		r.RecordCacheMiss()
		r.RecordCacheEviction()
		r.RecordRepaintNodes(2, 5)
	})
}

func TestSetGlobalRegistry(t *testing.T) {
	defer SetGlobalRegistry(nil)

	reg := prometheus.NewRegistry()
	pr := NewPrometheusRegistry(reg)
	SetGlobalRegistry(pr)

	assert.Same(t, pr, GetGlobalRegistry())
}

func TestPrometheusRegistryRecordsCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	pr := NewPrometheusRegistry(reg)

	pr.RecordPoll(2, 5)
	pr.RecordCacheHit()
	pr.RecordCacheHit()
	pr.RecordCacheMiss()
	pr.RecordRepaintNodes(1, 10)

	metrics, err := reg.Gather()
	require.NoError(t, err)

	values := map[string]float64{}
	for _, mf := range metrics {
		for _, m := range mf.GetMetric() {
			switch {
			case m.GetCounter() != nil:
				values[mf.GetName()] += m.GetCounter().GetValue()
			case m.GetHistogram() != nil:
				values[mf.GetName()] += float64(m.GetHistogram().GetSampleCount())
			}
		}
	}

	assert.Equal(t, float64(2), values["loom_poll_rendered_scopes_total"])
	assert.Equal(t, float64(5), values["loom_poll_reconcile_mutations_total"])
	assert.Equal(t, float64(2), values["loom_paragraph_cache_hits_total"])
	assert.Equal(t, float64(1), values["loom_paragraph_cache_misses_total"])
	assert.Equal(t, float64(10), values["loom_compositor_repaint_nodes_total"])
}
