// Package runtime is the glue layer between the reactive scope runtime,
// the element-tree reconciler, the layout engine, the event router, and
// the compositor: it owns one Runtime per window/host and wires the
// scope runtime's Poll to tree reconciliation, reconciliation's mutations
// to layout re-measurement and the router's hit-testable frame, and
// layout/paint to the host-supplied RenderFunc/Measurer.
//
// A host drives the pipeline itself (Poll, Layout, HandleEvent,
// CompositeFrame in a loop); this package only supplies the object that
// gets driven.
//
// New's functional options (WithCacheCapacity, WithErrorReporter,
// WithMetricsRegistry) configure the paragraph cache and wire
// pkg/observability/pkg/monitoring into the three subsystems that expose
// an OnError hook.
package runtime
