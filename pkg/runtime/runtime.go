package runtime

import (
	"sync"

	"github.com/loomui/loom/pkg/core"
	"github.com/loomui/loom/pkg/input"
	"github.com/loomui/loom/pkg/layout"
	"github.com/loomui/loom/pkg/monitoring"
	"github.com/loomui/loom/pkg/observability"
	"github.com/loomui/loom/pkg/paint"
	"github.com/loomui/loom/pkg/style"
	"github.com/loomui/loom/pkg/tree"
)

// Runtime wires the reactive scope runtime, the element-tree reconciler,
// the layout engine, the event router, the layer set, the paragraph cache,
// and the compositor into one cohesive pipeline: a host drives it by
// calling HandleEvent/Poll/Layout/CompositeFrame in a loop.
type Runtime struct {
	mu sync.Mutex

	RT     *core.Runtime
	Tree   *tree.Tree
	Torin  *layout.Torin
	Router *input.Router
	Layers *paint.LayerSet
	Cache  *paint.ParagraphCache
	Paint  *paint.Compositor

	styles map[tree.NodeID]style.Style

	// layerInherit holds, per styled node, what paint.ResolveLayer
	// produced for its styled descendants to inherit: the childInherited
	// relative layer value and the styled nesting depth to resolve from.
	layerInherit map[tree.NodeID]layerInherit

	focusOrder []input.Focusable

	FocusedAccessibilityID input.AccessibilityID

	metrics monitoring.Registry
}

type config struct {
	cacheCapacity int
	reporter      observability.ErrorReporter
	registry      monitoring.Registry
}

// Option configures a Runtime built by New.
type Option func(*config)

// WithCacheCapacity bounds the paragraph cache's entry count. Zero (the
// default) means the paragraph cache's own default capacity.
func WithCacheCapacity(n int) Option {
	return func(c *config) { c.cacheCapacity = n }
}

// WithErrorReporter installs reporter as the global observability sink and
// wires it into RT.OnError, Torin.OnError, and Router.OnError.
func WithErrorReporter(reporter observability.ErrorReporter) Option {
	return func(c *config) { c.reporter = reporter }
}

// WithMetricsRegistry records Poll/Layout/CompositeFrame metrics into
// registry instead of the zero-overhead default.
func WithMetricsRegistry(registry monitoring.Registry) Option {
	return func(c *config) { c.registry = registry }
}

// New builds a Runtime with every subsystem wired together, ready for a
// host to Mount a root element tree into.
func New(opts ...Option) *Runtime {
	cfg := config{registry: monitoring.NoOpRegistry{}}
	for _, opt := range opts {
		opt(&cfg)
	}

	rt := core.NewRuntime()
	rtree := tree.NewTree(rt)
	layers := paint.NewLayerSet()
	router := input.NewRouter()
	torin := layout.NewTorin()

	if cfg.reporter != nil {
		observability.SetErrorReporter(cfg.reporter)
		rt.OnError = observability.Sink("core")
		torin.OnError = observability.Sink("layout")
		router.OnError = observability.Sink("input")
	}

	rtm := &Runtime{
		RT:           rt,
		Tree:         rtree,
		Torin:        torin,
		Router:       router,
		Layers:       layers,
		Cache:        paint.NewParagraphCache(cfg.cacheCapacity),
		Paint:        paint.NewCompositor(layers),
		styles:       make(map[tree.NodeID]style.Style),
		layerInherit: make(map[tree.NodeID]layerInherit),
		metrics:      cfg.registry,
	}
	return rtm
}

// Mount builds the initial element tree from roots and syncs the result
// into layout, routing, layering, and the compositor's invalidation set.
func (rt *Runtime) Mount(roots []tree.Element) error {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	muts, err := rt.Tree.Mount(roots)
	if err != nil {
		return err
	}
	rt.applyMutationsLocked(muts)
	return nil
}

// Poll drains the reactive runtime's dirty set, reconciles every
// re-rendered scope's new output against the element tree, and syncs the
// resulting mutations into the rest of the pipeline. Returns the number
// of scopes that were re-rendered.
func (rt *Runtime) Poll() (int, error) {
	results := rt.RT.Poll()
	rt.metrics.RecordDirtyScopes(len(results))
	if len(results) == 0 {
		return 0, nil
	}

	rt.mu.Lock()
	defer rt.mu.Unlock()

	totalMutations := 0
	for _, res := range results {
		if res.Err != nil {
			continue
		}
		scope := rt.Tree.ScopeByID(res.ScopeID)
		if scope == nil {
			continue
		}
		output, _ := res.Output.(tree.Element)
		muts, err := rt.Tree.ReconcileScope(scope, output)
		if err != nil {
			rt.metrics.RecordPoll(len(results), totalMutations)
			return len(results), err
		}
		totalMutations += len(muts)
		rt.applyMutationsLocked(muts)
	}
	rt.metrics.RecordPoll(len(results), totalMutations)
	return len(results), nil
}

// HasPendingWork reports whether a scope is dirty and awaiting the next
// Poll.
func (rt *Runtime) HasPendingWork() bool {
	return rt.RT.HasPendingWork()
}

// Layout measures the tree against viewport, making every node's area and
// inner area available through rt (which implements paint.Surface and
// input.Frame).
func (rt *Runtime) Layout(viewport layout.Rect, measurer layout.Measurer) {
	rt.mu.Lock()
	root := layout.NodeID(rt.Tree.Root)
	nodeCount := rt.countNodesLocked(rt.Tree.Root)
	rt.mu.Unlock()
	rt.Torin.Measure(root, viewport, measurer)
	rt.metrics.RecordLayoutMeasure(nodeCount)
}

func (rt *Runtime) countNodesLocked(id tree.NodeID) int {
	node := rt.Tree.Node(id)
	if node == nil {
		return 0
	}
	n := 1
	for _, child := range node.Children {
		n += rt.countNodesLocked(child)
	}
	return n
}

// HandleEvent routes ev through the event router against the current
// frame (this Runtime's own layer/layout/style state), returning the
// node the event targeted, if any.
func (rt *Runtime) HandleEvent(ev input.Event) (input.NodeID, bool, bool) {
	return rt.Router.Dispatch(rt.asFrame(), ev)
}

// Navigate moves focus in dir along the declared focus order, returning
// the newly focused node's accessibility id.
func (rt *Runtime) Navigate(dir input.FocusDirection) (input.AccessibilityID, error) {
	id, err := rt.Router.FocusAccessibilityNode(rt, dir)
	if err != nil {
		return 0, err
	}
	rt.FocusedAccessibilityID = id
	return id, nil
}

// SetFocusables replaces the declared focus traversal order used by
// Navigate.
func (rt *Runtime) SetFocusables(order []input.Focusable) {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	rt.focusOrder = order
}

// CompositeFrame re-paints every node invalidated since the last call,
// skipping subtrees outside their clipping ancestors' viewports, and
// records the number of nodes repainted per layer.
func (rt *Runtime) CompositeFrame(render paint.RenderFunc) int {
	perLayer := make(map[int16]int)
	wrapped := func(id paint.NodeID, tr any) {
		if layer, ok := rt.Layers.Layer(id); ok {
			perLayer[layer]++
		}
		render(id, tr)
	}
	painted := rt.Paint.Commit(rt, wrapped, rt.Tree)
	for layer, n := range perLayer {
		rt.metrics.RecordRepaintNodes(layer, n)
	}
	return painted
}
