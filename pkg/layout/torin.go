package layout

import (
	"sync"
)

// maxRecursionDepth bounds measurement recursion. A node whose Inner size
// depends, through some chain of descendants, back on an ancestor sized
// Inner in the opposite direction would otherwise recurse forever; at this
// depth the engine gives up and reports a zero size for the offending
// subtree.
const maxRecursionDepth = 64

// Measurer shapes the intrinsic size of a node that depends on its own
// content rather than (only) its children's layout — typically text. It is
// invoked while resolving a width or height sized Inner, InnerPercent or
// FillMinimum on a node that has no layout children of its own to derive a
// bounding box from, once for each such axis resolved; HasLayoutReferences
// alone does not cause a call.
// The returned cache value is opaque to the engine and handed back
// unchanged on the next call for the same node, letting a paragraph shaper
// avoid re-shaping unchanged text.
type Measurer interface {
	Measure(id NodeID, availableWidth, availableHeight float64, prevCache any) (size Size2D, cache any, ok bool)
}

type computedEntry struct {
	area, inner Rect
	lastAvailable Rect
	hasAvailable bool
}

// Torin is the layout engine: it owns the node configuration tree and the
// cached results of the last measurement pass.
type Torin struct {
	mu sync.Mutex

	nodes map[NodeID]*Node
	children map[NodeID][]NodeID
	parent map[NodeID]NodeID
	hasParent map[NodeID]bool

	computed map[NodeID]*computedEntry
	caches map[NodeID]any
	dirty map[NodeID]struct{}

	// OnError receives non-fatal layout errors: malformed Calc
	// expressions and recursion-depth cycle breaks.
	OnError func(error)
}

// NewTorin creates an empty engine.
func NewTorin() *Torin {
	return &Torin{
		nodes: make(map[NodeID]*Node),
		children: make(map[NodeID][]NodeID),
		parent: make(map[NodeID]NodeID),
		hasParent: make(map[NodeID]bool),
		computed: make(map[NodeID]*computedEntry),
		caches: make(map[NodeID]any),
		dirty: make(map[NodeID]struct{}),
	}
}

// SetNode registers or updates a node's layout configuration and marks it
// (and its ancestors) dirty.
func (t *Torin) SetNode(id NodeID, parentID NodeID, hasParent bool, node Node) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.nodes[id] = &node
	t.hasParent[id] = hasParent
	if hasParent {
		t.parent[id] = parentID
	}
	t.markDirtyLocked(id)
}

// SetChildren replaces id's child order and marks id dirty.
func (t *Torin) SetChildren(id NodeID, kids []NodeID) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.children[id] = kids
	t.markDirtyLocked(id)
}

// Remove discards a single node's configuration and cached result. Callers
// remove a subtree bottom-up, mirroring pkg/tree's teardown ordering.
func (t *Torin) Remove(id NodeID) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.nodes, id)
	delete(t.children, id)
	delete(t.parent, id)
	delete(t.hasParent, id)
	delete(t.computed, id)
	delete(t.caches, id)
	delete(t.dirty, id)
}

// MarkDirty flags id and every ancestor as needing remeasurement. A node's
// dirty children propagate upward immediately here rather than being
// recomputed lazily at measure time.
func (t *Torin) MarkDirty(id NodeID) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.markDirtyLocked(id)
}

func (t *Torin) markDirtyLocked(id NodeID) {
	for {
		t.dirty[id] = struct{}{}
		if !t.hasParent[id] {
			return
		}
		id = t.parent[id]
	}
}

// Get returns the last computed area/inner_area for id.
func (t *Torin) Get(id NodeID) (area Rect, inner Rect, ok bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	c, ok := t.computed[id]
	if !ok {
		return Rect{}, Rect{}, false
	}
	return c.area, c.inner, true
}

// PositionKind returns id's placement strategy, if id is registered.
// Callers use this to tell nodes whose layout is resolved relative to
// their parent (Static, Absolute) from nodes placed against the root
// rectangle independent of ancestor placement (Global, Fixed).
func (t *Torin) PositionKind(id NodeID) (PositionKind, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	n, ok := t.nodes[id]
	if !ok {
		return PositionStatic, false
	}
	return n.Position.Kind, true
}

// Measure computes (or reuses cached) area/inner_area rectangles for root
// and every descendant, against rootRect as the viewport.
func (t *Torin) Measure(root NodeID, rootRect Rect, measurer Measurer) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.measureNode(root, rootRect, rootRect.Origin, rootRect, measurer, 0)
}

func (t *Torin) logError(err error) {
	if t.OnError != nil {
		t.OnError(err)
	}
}

// measureNode computes id's area/inner_area. sizingCtx is the parent's
// inner rectangle (its Size is what Percent/Fill/Calc resolve against;
// its Origin is irrelevant here). origin is where id's margin-box begins,
// as decided by the parent's phase-2 placement (or rootRect's origin, for
// the root).
func (t *Torin) measureNode(id NodeID, sizingCtx Rect, origin Point2D, rootRect Rect, measurer Measurer, depth int) (Rect, Rect) {
	node, ok := t.nodes[id]
	if !ok {
		return Rect{}, Rect{}
	}

	cacheKey := Rect{Origin: origin, Size: sizingCtx.Size}
	if cached, ok := t.computed[id]; ok {
		if _, isDirty := t.dirty[id]; !isDirty && cached.hasAvailable && cached.lastAvailable == cacheKey {
			return cached.area, cached.inner
		}
	}

	if depth > maxRecursionDepth {
		t.logError(&LayoutCycleError{NodeID: uint64(id)})
		entry := &computedEntry{lastAvailable: cacheKey, hasAvailable: true}
		t.computed[id] = entry
		delete(t.dirty, id)
		return Rect{}, Rect{}
	}

	w, h := t.resolveSelfSize(id, node, sizingCtx, rootRect, measurer, depth)
	w = clampAxis(w, node.MinWidth, node.HasMinWidth, node.MaxWidth, node.HasMaxWidth, sizingCtx, rootRect, true)
	h = clampAxis(h, node.MinHeight, node.HasMinHeight, node.MaxHeight, node.HasMaxHeight, sizingCtx, rootRect, false)

	area := Rect{
		Origin: Point2D{X: origin.X + node.Margin.Left, Y: origin.Y + node.Margin.Top},
		Size: Size2D{Width: w, Height: h},
	}
	inner := Rect{
		Origin: Point2D{X: area.Origin.X + node.Padding.Left, Y: area.Origin.Y + node.Padding.Top},
		Size: Size2D{
			Width: max0(w - node.Padding.Horizontal()),
			Height: max0(h - node.Padding.Vertical()),
		},
	}

	t.layoutChildren(id, node, inner, rootRect, measurer, depth+1)

	area.Origin.X += node.OffsetX
	area.Origin.Y += node.OffsetY
	inner.Origin.X += node.OffsetX
	inner.Origin.Y += node.OffsetY

	t.computed[id] = &computedEntry{area: area, inner: inner, lastAvailable: cacheKey, hasAvailable: true}
	delete(t.dirty, id)
	return area, inner
}

func max0(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}

func clampAxis(v float64, min Size, hasMin bool, max Size, hasMax bool, available Rect, rootRect Rect, isWidth bool) float64 {
	if hasMin {
		if mv, err := resolveDirect(min, available, rootRect, isWidth); err == nil && v < mv {
			v = mv
		}
	}
	if hasMax {
		if mv, err := resolveDirect(max, available, rootRect, isWidth); err == nil && v > mv {
			v = mv
		}
	}
	return v
}

func resolveDirect(s Size, available Rect, rootRect Rect, isWidth bool) (float64, error) {
	ctx := axisCtx(available, rootRect, isWidth)
	return s.resolve(ctx)
}

func axisCtx(parentInner Rect, rootRect Rect, axisIsWidth bool) calcContext {
	var current, cross, rootCurrent float64
	if axisIsWidth {
		current = parentInner.Size.Width
		cross = parentInner.Size.Height
		rootCurrent = rootRect.Size.Width
	} else {
		current = parentInner.Size.Height
		cross = parentInner.Size.Width
		rootCurrent = rootRect.Size.Height
	}
	return calcContext{
		ParentWidth: parentInner.Size.Width,
		ParentHeight: parentInner.Size.Height,
		ParentCross: cross,
		ParentCurrent: current,
		RootWidth: rootRect.Size.Width,
		RootHeight: rootRect.Size.Height,
		RootCurrent: rootCurrent,
		Scale: 1,
	}
}

// resolveSelfSize resolves a node's own width/height. Pixels/Percent/
// RootPercent/Calc resolve directly against the space the parent allocated;
// Inner/FillMinimum recurse into children first to find their bounding
// size; Fill is resolved to the allocated space itself (the parent already
// reserved the right amount during its own phase-1 distribution — see
// layoutChildren).
func (t *Torin) resolveSelfSize(id NodeID, node *Node, available Rect, rootRect Rect, measurer Measurer, depth int) (float64, float64) {
	w := t.resolveAxis(id, node, node.Width, available, rootRect, measurer, depth, true)
	h := t.resolveAxis(id, node, node.Height, available, rootRect, measurer, depth, false)
	return w, h
}

func (t *Torin) resolveAxis(id NodeID, node *Node, size Size, available Rect, rootRect Rect, measurer Measurer, depth int, isWidth bool) float64 {
	switch size.Kind {
	case Fill:
		if isWidth {
			return available.Size.Width
		}
		return available.Size.Height
	case Inner, FillMinimum:
		bounded := t.measureIntrinsic(id, node, available, rootRect, measurer, depth, isWidth)
		if size.Kind == Inner {
			return bounded
		}
		fillShare := available.Size.Width
		if !isWidth {
			fillShare = available.Size.Height
		}
		if bounded > fillShare {
			return bounded
		}
		return fillShare
	case InnerPercent:
		bounded := t.measureIntrinsic(id, node, available, rootRect, measurer, depth, isWidth)
		return size.Value / 100 * bounded
	default:
		ctx := axisCtx(available, rootRect, isWidth)
		v, err := size.resolve(ctx)
		if err != nil {
			t.logError(err)
			return 0
		}
		return v
	}
}

// measureIntrinsic computes a node's content-driven bounding size along one
// axis: either from its own measurer callback (leaf nodes with no layout
// children, e.g. text) or from the bounding box of its measured children.
func (t *Torin) measureIntrinsic(id NodeID, node *Node, available Rect, rootRect Rect, measurer Measurer, depth int, isWidth bool) float64 {
	kids := t.children[id]
	if len(kids) == 0 {
		if measurer != nil {
			prevCache := t.caches[id]
			size, cache, ok := measurer.Measure(id, available.Size.Width, available.Size.Height, prevCache)
			if ok {
				t.caches[id] = cache
				if isWidth {
					return size.Width
				}
				return size.Height
			}
		}
		return 0
	}

	var mainSum, crossMax float64
	for i, kid := range kids {
		kidNode, ok := t.nodes[kid]
		if !ok {
			continue
		}
		kw := t.resolveAxis(kid, kidNode, kidNode.Width, available, rootRect, measurer, depth+1, true)
		kh := t.resolveAxis(kid, kidNode, kidNode.Height, available, rootRect, measurer, depth+1, false)
		if node.Direction == Horizontal {
			mainSum += kw
			if i > 0 {
				mainSum += node.Spacing
			}
			if kh > crossMax {
				crossMax = kh
			}
		} else {
			mainSum += kh
			if i > 0 {
				mainSum += node.Spacing
			}
			if kw > crossMax {
				crossMax = kw
			}
		}
	}

	if node.Direction == Horizontal {
		if isWidth {
			return mainSum
		}
		return crossMax
	}
	if isWidth {
		return crossMax
	}
	return mainSum
}
