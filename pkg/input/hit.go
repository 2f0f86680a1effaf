package input

// Rect is an axis-aligned rectangle in layout space, kept independent of
// pkg/layout.Rect so this package stays decoupled from the layout engine's
// types; pkg/runtime adapts between the two.
type Rect struct {
	X, Y, W, H float64
}

func (r Rect) contains(p Point) bool {
	return p.X >= r.X && p.X <= r.X+r.W && p.Y >= r.Y && p.Y <= r.Y+r.H
}

// Frame is the per-frame geometry snapshot the router hit-tests against.
// pkg/runtime implements it over the reconciled tree and the layout
// engine's last computed rectangles.
type Frame interface {
	// LayersTopFirst returns every hit-testable node id ordered by layer
	// descending (front-most first), document pre-order within a layer.
	LayersTopFirst() []NodeID
	// Area returns a node's last computed rectangle.
	Area(id NodeID) (Rect, bool)
	// Viewports returns id's ancestor clipping boxes, in any order; the
	// node is hit only if the point lies inside every one of them.
	Viewports(id NodeID) []Rect
	// IsSolid reports whether id has an opaque background that blocks
	// does_go_through_solid()-false events from reaching nodes beneath it.
	IsSolid(id NodeID) bool
	// Ancestors returns id's ancestor chain in root-to-parent order
	// (root first, immediate parent last), excluding id itself.
	Ancestors(id NodeID) []NodeID
	// Exists reports whether id is still present in the current tree,
	// used to discard events whose target was torn down between queue
	// and dispatch.
	Exists(id NodeID) bool
}

// HitTestChain returns the candidate nodes at point, front-most first,
// truncated after the first solid node unless ev.DoesGoThroughSolid().
func HitTestChain(f Frame, at Point, ev Event) []NodeID {
	var chain []NodeID
	goesThrough := ev.DoesGoThroughSolid()
	for _, id := range f.LayersTopFirst() {
		area, ok := f.Area(id)
		if !ok || !area.contains(at) {
			continue
		}
		if !withinViewports(f, id, at) {
			continue
		}
		chain = append(chain, id)
		if f.IsSolid(id) && !goesThrough {
			break
		}
	}
	return chain
}

func withinViewports(f Frame, id NodeID, at Point) bool {
	for _, vp := range f.Viewports(id) {
		if !vp.contains(at) {
			return false
		}
	}
	return true
}

// HitTest returns the single front-most target at point for ev, i.e. the
// first entry of HitTestChain.
func HitTest(f Frame, at Point, ev Event) (NodeID, bool) {
	chain := HitTestChain(f, at, ev)
	if len(chain) == 0 {
		return 0, false
	}
	return chain[0], true
}
