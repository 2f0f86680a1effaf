package paint

import (
	"sort"
	"testing"
)

type fakeSurface struct {
	areas               map[NodeID]Rect
	children            map[NodeID][]NodeID
	positionIndependent map[NodeID]bool
}

func (f *fakeSurface) Area(id NodeID) (Rect, bool) {
	r, ok := f.areas[id]
	return r, ok
}

func (f *fakeSurface) Viewports(NodeID) []Rect { return nil }

func (f *fakeSurface) Children(id NodeID) []NodeID { return f.children[id] }

func (f *fakeSurface) PositionIndependent(id NodeID) bool { return f.positionIndependent[id] }

func TestCompositorCommitPaintsOnlyInvalidatedAndOverlapping(t *testing.T) {
	surface := &fakeSurface{
		areas: map[NodeID]Rect{
			1: {X: 0, Y: 0, W: 100, H: 100},
			2: {X: 0, Y: 0, W: 50, H: 50},   // overlaps node 1
			3: {X: 200, Y: 200, W: 10, H: 10}, // does not overlap
		},
		children: map[NodeID][]NodeID{},
	}
	layers := NewLayerSet()
	layers.Assign(1, 0)
	layers.Assign(2, 1)
	layers.Assign(3, 1)

	c := NewCompositor(layers)
	c.Invalidate(1)

	var painted []NodeID
	n := c.Commit(surface, func(id NodeID, _ any) { painted = append(painted, id) }, nil)

	if n != 2 {
		t.Fatalf("painted %d nodes, want 2 (1 and overlapping 2)", n)
	}
	sort.Slice(painted, func(i, j int) bool { return painted[i] < painted[j] })
	want := []NodeID{1, 2}
	for i, id := range want {
		if painted[i] != id {
			t.Fatalf("painted = %v, want %v", painted, want)
		}
	}
}

func TestCompositorExpandsInvalidationToDescendants(t *testing.T) {
	surface := &fakeSurface{
		areas: map[NodeID]Rect{
			1: {X: 0, Y: 0, W: 10, H: 10},
			2: {X: 500, Y: 500, W: 10, H: 10},
		},
		children: map[NodeID][]NodeID{
			1: {2},
		},
	}
	layers := NewLayerSet()
	layers.Assign(1, 0)
	layers.Assign(2, 0)

	c := NewCompositor(layers)
	c.Invalidate(1)

	painted := map[NodeID]bool{}
	c.Commit(surface, func(id NodeID, _ any) { painted[id] = true }, nil)

	if !painted[2] {
		t.Fatalf("child of invalidated node should repaint even with a disjoint area")
	}
}

func TestCompositorDoesNotCascadeIntoPositionIndependentChildren(t *testing.T) {
	surface := &fakeSurface{
		areas: map[NodeID]Rect{
			1: {X: 0, Y: 0, W: 10, H: 10},
			2: {X: 500, Y: 500, W: 10, H: 10}, // Global/Fixed child, disjoint area
		},
		children: map[NodeID][]NodeID{
			1: {2},
		},
		positionIndependent: map[NodeID]bool{2: true},
	}
	layers := NewLayerSet()
	layers.Assign(1, 0)
	layers.Assign(2, 0)

	c := NewCompositor(layers)
	c.Invalidate(1)

	painted := map[NodeID]bool{}
	c.Commit(surface, func(id NodeID, _ any) { painted[id] = true }, nil)

	if painted[2] {
		t.Fatalf("position-independent child must not repaint merely because its parent was invalidated")
	}
}

func TestCompositorAscendingLayerOrder(t *testing.T) {
	surface := &fakeSurface{
		areas: map[NodeID]Rect{
			1: {X: 0, Y: 0, W: 10, H: 10},
			2: {X: 0, Y: 0, W: 10, H: 10},
		},
	}
	layers := NewLayerSet()
	layers.Assign(2, 5)
	layers.Assign(1, -1)

	got := layers.AscendingLayers()
	if len(got) != 2 || got[0] != -1 || got[1] != 5 {
		t.Fatalf("ascending layers = %v, want [-1 5]", got)
	}

	c := NewCompositor(layers)
	c.Invalidate(1)
	c.Invalidate(2)
	var order []NodeID
	c.Commit(surface, func(id NodeID, _ any) { order = append(order, id) }, nil)
	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Fatalf("paint order = %v, want [1 2] (back layer first)", order)
	}
}

func TestCompositorCommitClearsInvalidatedSet(t *testing.T) {
	surface := &fakeSurface{areas: map[NodeID]Rect{1: {W: 10, H: 10}}}
	layers := NewLayerSet()
	layers.Assign(1, 0)
	c := NewCompositor(layers)
	c.Invalidate(1)
	c.Commit(surface, func(NodeID, any) {}, nil)

	if got := c.InvalidatedCount(); got != 0 {
		t.Fatalf("invalidated count after commit = %d, want 0", got)
	}
}
