package runtime

import (
	"github.com/loomui/loom/pkg/input"
	"github.com/loomui/loom/pkg/layout"
	"github.com/loomui/loom/pkg/paint"
	"github.com/loomui/loom/pkg/style"
	"github.com/loomui/loom/pkg/tree"
)

// Runtime adapts its reconciled tree and layout results to the geometry
// shapes pkg/input and pkg/paint each hit-test and composite against. The
// three packages deliberately declare their own NodeID and Rect types to
// stay decoupled from pkg/tree and pkg/layout; this file is the one place
// that bridges them.

func (rt *Runtime) styleFor(id tree.NodeID) (style.Style, bool) {
	s, ok := rt.styles[id]
	return s, ok
}

// StyleFor returns the style last synced for id, if any. Exported for hosts
// that need it outside the paint.Surface/input.Frame adapters below — a
// render_fn choosing colors and borders, for instance.
func (rt *Runtime) StyleFor(id tree.NodeID) (style.Style, bool) {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	return rt.styleFor(id)
}

func (rt *Runtime) ancestorsLocked(id tree.NodeID) []tree.NodeID {
	var chain []tree.NodeID
	n := rt.Tree.Node(id)
	for n != nil && n.HasParent {
		chain = append(chain, n.ParentID)
		n = rt.Tree.Node(n.ParentID)
	}
	// reverse into root-to-parent order
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain
}

func (rt *Runtime) viewportsLocked(id tree.NodeID) []layout.Rect {
	var out []layout.Rect
	for _, anc := range rt.ancestorsLocked(id) {
		s, ok := rt.styleFor(anc)
		if !ok || s.Overflow != style.OverflowClip {
			continue
		}
		area, _, ok := rt.Torin.Get(layout.NodeID(anc))
		if !ok {
			continue
		}
		out = append(out, area)
	}
	return out
}

// --- paint.Surface ---

func (rt *Runtime) Area(id paint.NodeID) (paint.Rect, bool) {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	area, _, ok := rt.Torin.Get(layout.NodeID(id))
	if !ok {
		return paint.Rect{}, false
	}
	return toPaintRect(area), true
}

func (rt *Runtime) Viewports(id paint.NodeID) []paint.Rect {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	vps := rt.viewportsLocked(tree.NodeID(id))
	out := make([]paint.Rect, len(vps))
	for i, v := range vps {
		out[i] = toPaintRect(v)
	}
	return out
}

func (rt *Runtime) Children(id paint.NodeID) []paint.NodeID {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	n := rt.Tree.Node(tree.NodeID(id))
	if n == nil {
		return nil
	}
	out := make([]paint.NodeID, len(n.Children))
	for i, c := range n.Children {
		out[i] = paint.NodeID(c)
	}
	return out
}

// PositionIndependent satisfies paint.Surface: Global/Fixed nodes are
// placed against the root rectangle and re-measured independently of
// ancestor placement, so ancestor invalidation must not cascade into them.
func (rt *Runtime) PositionIndependent(id paint.NodeID) bool {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	kind, ok := rt.Torin.PositionKind(layout.NodeID(id))
	if !ok {
		return false
	}
	return kind == layout.PositionGlobal || kind == layout.PositionFixed
}

func toPaintRect(r layout.Rect) paint.Rect {
	return paint.Rect{X: r.Origin.X, Y: r.Origin.Y, W: r.Size.Width, H: r.Size.Height}
}

// --- input.Frame ---

func (rt *Runtime) LayersTopFirst() []input.NodeID {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	layers := rt.Layers.AscendingLayers()
	var out []input.NodeID
	for i := len(layers) - 1; i >= 0; i-- {
		nodes := rt.Layers.Nodes(layers[i])
		for j := len(nodes) - 1; j >= 0; j-- {
			out = append(out, input.NodeID(nodes[j]))
		}
	}
	return out
}

func (rt *Runtime) inputAreaLocked(id input.NodeID) (input.Rect, bool) {
	area, _, ok := rt.Torin.Get(layout.NodeID(id))
	if !ok {
		return input.Rect{}, false
	}
	return toInputRect(area), true
}

// inputArea backs frameView.Area for input.Frame. It has its own name
// because *Runtime's Area method already serves paint.Surface.
func (rt *Runtime) inputArea(id input.NodeID) (input.Rect, bool) {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	return rt.inputAreaLocked(id)
}

func toInputRect(r layout.Rect) input.Rect {
	return input.Rect{X: r.Origin.X, Y: r.Origin.Y, W: r.Size.Width, H: r.Size.Height}
}

func (rt *Runtime) inputViewports(id input.NodeID) []input.Rect {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	vps := rt.viewportsLocked(tree.NodeID(id))
	out := make([]input.Rect, len(vps))
	for i, v := range vps {
		out[i] = toInputRect(v)
	}
	return out
}

func (rt *Runtime) isSolid(id input.NodeID) bool {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	s, ok := rt.styleFor(tree.NodeID(id))
	return ok && s.IsSolid()
}

func (rt *Runtime) inputAncestors(id input.NodeID) []input.NodeID {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	chain := rt.ancestorsLocked(tree.NodeID(id))
	out := make([]input.NodeID, len(chain))
	for i, c := range chain {
		out[i] = input.NodeID(c)
	}
	return out
}

func (rt *Runtime) exists(id input.NodeID) bool {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	return rt.Tree.Node(tree.NodeID(id)) != nil
}

// frameView adapts *Runtime to input.Frame without exporting Go's
// interface methods under names that collide with paint.Surface's
// identically-named, differently-typed Area/Viewports/Children.
type frameView struct{ rt *Runtime }

func (f frameView) LayersTopFirst() []input.NodeID          { return f.rt.LayersTopFirst() }
func (f frameView) Area(id input.NodeID) (input.Rect, bool) { return f.rt.inputArea(id) }
func (f frameView) Viewports(id input.NodeID) []input.Rect  { return f.rt.inputViewports(id) }
func (f frameView) IsSolid(id input.NodeID) bool            { return f.rt.isSolid(id) }
func (f frameView) Ancestors(id input.NodeID) []input.NodeID {
	return f.rt.inputAncestors(id)
}
func (f frameView) Exists(id input.NodeID) bool { return f.rt.exists(id) }

// asFrame returns rt's input.Frame view, used by HandleEvent.
func (rt *Runtime) asFrame() input.Frame { return frameView{rt} }

// FocusablesInOrder implements input.FocusGraph over the declared focus
// order, as last set by SetFocusables.
func (rt *Runtime) FocusablesInOrder() []input.Focusable {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	out := make([]input.Focusable, len(rt.focusOrder))
	copy(out, rt.focusOrder)
	return out
}
