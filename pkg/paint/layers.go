package paint

import "sort"

// Rect is an axis-aligned rectangle in layout space, kept independent of
// pkg/layout.Rect so this package stays decoupled; pkg/runtime adapts
// between the two.
type Rect struct {
	X, Y, W, H float64
}

func (r Rect) right() float64 { return r.X + r.W }
func (r Rect) bottom() float64 { return r.Y + r.H }

// Contains reports whether r fully contains other.
func (r Rect) Contains(other Rect) bool {
	return other.X >= r.X && other.Y >= r.Y && other.right() <= r.right() && other.bottom() <= r.bottom()
}

// Intersects reports whether r and other overlap, counting touching
// edges as overlap.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.right() && other.X <= r.right() && r.Y <= other.bottom() && other.Y <= r.bottom()
}

// TouchesOrContains reports whether r touches or fully contains other —
// the compositor's exact overlap predicate (Intersects already includes
// touching edges, so this is an alias kept for naming clarity at call
// sites).
func (r Rect) TouchesOrContains(other Rect) bool {
	return r.Intersects(other)
}

// ResolveLayer turns a node's own declared layer offset into the absolute
// stacking layer LayerSet.Assign expects, and the relative value its
// children in turn inherit. relativeLayer is the value the node declares
// for itself (0 if unset); depth is its nesting depth among styled
// ancestors; inheritedRelativeLayer is the childInherited value its
// nearest styled ancestor produced (0 at the root). A node's own
// declared layer raises or lowers it relative to where its parent's
// subtree already sits, rather than naming an absolute index directly,
// so reordering an ancestor's layer shifts every descendant with it.
func ResolveLayer(relativeLayer int16, depth int, inheritedRelativeLayer int16) (absolute int16, childInherited int16) {
	absolute = -relativeLayer + int16(depth) - inheritedRelativeLayer
	childInherited = relativeLayer + inheritedRelativeLayer
	return absolute, childInherited
}

// LayerSet maintains the layer -> ordered-node-id assignment the
// compositor renders back-to-front, one node list per layer number
// rendered in ascending layer order.
type LayerSet struct {
	byLayer map[int16][]NodeID
	nodeOf map[NodeID]int16
}

// NewLayerSet creates an empty LayerSet.
func NewLayerSet() *LayerSet {
	return &LayerSet{byLayer: make(map[int16][]NodeID), nodeOf: make(map[NodeID]int16)}
}

// Assign places id on layer, in document pre-order among id's siblings on
// that layer — callers are expected to call Assign in tree pre-order as
// nodes are created, so that nodes sharing a layer draw in document
// order. Re-assigning id to a new layer removes it from its previous
// one.
func (s *LayerSet) Assign(id NodeID, layer int16) {
	if prev, ok := s.nodeOf[id]; ok {
		if prev == layer {
			return
		}
		s.removeFrom(prev, id)
	}
	s.byLayer[layer] = append(s.byLayer[layer], id)
	s.nodeOf[id] = layer
}

// Remove discards id from whichever layer it occupies.
func (s *LayerSet) Remove(id NodeID) {
	layer, ok := s.nodeOf[id]
	if !ok {
		return
	}
	s.removeFrom(layer, id)
	delete(s.nodeOf, id)
}

func (s *LayerSet) removeFrom(layer int16, id NodeID) {
	nodes := s.byLayer[layer]
	for i, n := range nodes {
		if n == id {
			s.byLayer[layer] = append(nodes[:i], nodes[i+1:]...)
			break
		}
	}
	if len(s.byLayer[layer]) == 0 {
		delete(s.byLayer, layer)
	}
}

// Layer returns the layer id currently occupies, and whether it is tracked.
func (s *LayerSet) Layer(id NodeID) (int16, bool) {
	l, ok := s.nodeOf[id]
	return l, ok
}

// AscendingLayers returns the set's layer numbers in ascending order, the
// order the compositor draws them back-to-front.
func (s *LayerSet) AscendingLayers() []int16 {
	out := make([]int16, 0, len(s.byLayer))
	for l := range s.byLayer {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Nodes returns layer's nodes in document pre-order (insertion order).
func (s *LayerSet) Nodes(layer int16) []NodeID {
	return append([]NodeID(nil), s.byLayer[layer]...)
}
