package paint

import "sync"

// Surface is the per-frame geometry the compositor needs to decide what to
// repaint, independent of pkg/layout's types so this package stays
// decoupled; pkg/runtime adapts between the two.
type Surface interface {
	// Area returns id's last computed rectangle.
	Area(id NodeID) (Rect, bool)
	// Viewports returns id's ancestor clipping boxes; id is skipped
	// entirely if its area fails to intersect every one of them.
	Viewports(id NodeID) []Rect
	// Children returns id's direct children in document pre-order.
	Children(id NodeID) []NodeID
	// PositionIndependent reports whether id's layout is resolved against
	// the root rectangle rather than its parent's placement (Global,
	// Fixed), so ancestor invalidation must not cascade into it.
	PositionIndependent(id NodeID) bool
}

// RenderFunc paints one repainted node. tree is the host's opaque per-frame
// context (element/layout tree handle), threaded through unchanged.
type RenderFunc func(id NodeID, tree any)

// Compositor tracks invalidated nodes across frames and, on Commit,
// computes and paints the minimal repainted set per layer: expand
// invalidation to descendants, then for each layer ascending, repaint
// nodes that are invalidated or whose area touches/contains an invalidated
// node's area.
type Compositor struct {
	mu sync.Mutex
	layers *LayerSet
	invalidated map[NodeID]struct{}
}

// NewCompositor creates a Compositor over layers, which pkg/runtime keeps
// in sync with the reconciled tree's layer attributes.
func NewCompositor(layers *LayerSet) *Compositor {
	return &Compositor{layers: layers, invalidated: make(map[NodeID]struct{})}
}

// Invalidate marks id dirty for the next Commit. A style change invalidates
// just id; a layout change should also invalidate id's subtree by calling
// Invalidate on each descendant (pkg/runtime does this using the same
// children walk Commit performs internally).
func (c *Compositor) Invalidate(id NodeID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidated[id] = struct{}{}
}

// InvalidatedCount reports how many nodes are pending repaint, for tests
// and devtools instrumentation.
func (c *Compositor) InvalidatedCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.invalidated)
}

// Commit expands the invalidated set to descendants, walks every layer in
// ascending order, and calls render for each node that must repaint —
// either because it was invalidated or because its area touches/contains
// an invalidated node's area — skipping nodes whose area fails to
// intersect one of their viewports. It clears the invalidated set before
// returning and reports how many nodes were painted.
func (c *Compositor) Commit(surface Surface, render RenderFunc, tree any) int {
	c.mu.Lock()
	seed := make([]NodeID, 0, len(c.invalidated))
	for id := range c.invalidated {
		seed = append(seed, id)
	}
	c.invalidated = make(map[NodeID]struct{})
	layers := c.layers
	c.mu.Unlock()

	expanded := expandInvalidated(surface, seed)
	if len(expanded) == 0 {
		return 0
	}

	invalidAreas := make([]Rect, 0, len(expanded))
	for id := range expanded {
		if area, ok := surface.Area(id); ok {
			invalidAreas = append(invalidAreas, area)
		}
	}

	painted := 0
	for _, layer := range layers.AscendingLayers() {
		for _, id := range layers.Nodes(layer) {
			area, ok := surface.Area(id)
			if !ok || !withinViewports(surface, id, area) {
				continue
			}
			_, isInvalid := expanded[id]
			if !isInvalid {
				isInvalid = overlapsAny(area, invalidAreas)
			}
			if !isInvalid {
				continue
			}
			render(id, tree)
			painted++
		}
	}
	return painted
}

// expandInvalidated adds every descendant of each seed node: every
// descendant of an invalidated node is itself invalidated, since this
// engine's layout classes (save Global/Fixed, which ignore ancestor
// placement entirely and are re-measured independently) all resolve
// relative to their parent.
func expandInvalidated(surface Surface, seed []NodeID) map[NodeID]struct{} {
	out := make(map[NodeID]struct{}, len(seed))
	stack := append([]NodeID(nil), seed...)
	for _, id := range seed {
		out[id] = struct{}{}
	}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, child := range surface.Children(id) {
			if _, seen := out[child]; seen {
				continue
			}
			if surface.PositionIndependent(child) {
				continue
			}
			out[child] = struct{}{}
			stack = append(stack, child)
		}
	}
	return out
}

func withinViewports(s Surface, id NodeID, area Rect) bool {
	for _, vp := range s.Viewports(id) {
		if !vp.Intersects(area) {
			return false
		}
	}
	return true
}

func overlapsAny(area Rect, candidates []Rect) bool {
	for _, c := range candidates {
		if c.TouchesOrContains(area) {
			return true
		}
	}
	return false
}
