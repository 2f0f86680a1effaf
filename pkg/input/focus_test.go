package input

import "testing"

type fakeFocusGraph struct{ order []Focusable }

func (g fakeFocusGraph) FocusablesInOrder() []Focusable { return g.order }

func TestFocusTraversalNextWrapsAround(t *testing.T) {
	graph := fakeFocusGraph{order: []Focusable{{ID: 1}, {ID: 2}, {ID: 3}}}
	r := NewRouter()
	r.SetFocus(3)

	next, err := r.FocusAccessibilityNode(graph, FocusNext)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if next != 1 {
		t.Fatalf("next focus = %v, want 1 (wrap to start)", next)
	}
}

func TestFocusTraversalPrevWrapsAround(t *testing.T) {
	graph := fakeFocusGraph{order: []Focusable{{ID: 1}, {ID: 2}, {ID: 3}}}
	r := NewRouter()
	r.SetFocus(1)

	prev, err := r.FocusAccessibilityNode(graph, FocusPrev)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if prev != 3 {
		t.Fatalf("prev focus = %v, want 3 (wrap to end)", prev)
	}
}

func TestFocusGroupCyclesUnderArrowKeys(t *testing.T) {
	graph := fakeFocusGraph{order: []Focusable{
		{ID: 1},
		{ID: 2, Group: "g", HasGroup: true},
		{ID: 3, Group: "g", HasGroup: true},
		{ID: 4},
	}}
	r := NewRouter()
	r.SetFocus(2)

	next, err := r.FocusAccessibilityNode(graph, FocusDown)
	if err != nil || next != 3 {
		t.Fatalf("focus = %v, err = %v, want 3", next, err)
	}

	next, err = r.FocusAccessibilityNode(graph, FocusDown)
	if err != nil || next != 2 {
		t.Fatalf("focus = %v, err = %v, want 2 (cycled within group)", next, err)
	}
}

func TestFocusRecoversToRootWhenTargetMissing(t *testing.T) {
	var reported error
	graph := fakeFocusGraph{order: []Focusable{{ID: 10}, {ID: 11}}}
	r := NewRouter()
	r.OnError = func(err error) { reported = err }
	r.SetFocus(999) // not present in graph

	next, err := r.FocusAccessibilityNode(graph, FocusNext)

	if next != 10 {
		t.Fatalf("recovered focus = %v, want 10 (first node, recovers to root)", next)
	}
	if _, ok := err.(*AccessibilityMissingError); !ok {
		t.Fatalf("expected AccessibilityMissingError, got %v", err)
	}
	if reported == nil {
		t.Fatalf("expected OnError to be invoked")
	}
}
