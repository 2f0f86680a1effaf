// Package monitoring is the pluggable metrics registry for pkg/runtime: a
// Registry interface recording renders per poll, dirty-scope counts,
// reconcile mutation counts, layout measure counts, paragraph cache hit/
// miss/eviction, and repaint node counts per layer.
//
// Monitoring is entirely optional. By default GetGlobalRegistry returns
// NoOpRegistry, whose methods are empty and cost nothing; call
// SetGlobalRegistry with a PrometheusRegistry to start collecting.
package monitoring
