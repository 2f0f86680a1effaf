package paint

import "testing"

func TestResolveLayerRootHasNoInheritance(t *testing.T) {
	absolute, childInherited := ResolveLayer(0, 1, 0)
	if absolute != 1 {
		t.Fatalf("absolute = %d, want 1", absolute)
	}
	if childInherited != 0 {
		t.Fatalf("childInherited = %d, want 0", childInherited)
	}
}

func TestResolveLayerOwnOffsetShiftsAbsoluteDown(t *testing.T) {
	// A node declaring a positive relative layer moves itself to a lower
	// absolute layer (drawn earlier / behind), mirroring calculate_layer's
	// `-relative_layer` term.
	absolute, childInherited := ResolveLayer(2, 1, 0)
	if absolute != -1 {
		t.Fatalf("absolute = %d, want -1", absolute)
	}
	if childInherited != 2 {
		t.Fatalf("childInherited = %d, want 2", childInherited)
	}
}

func TestResolveLayerInheritsAncestorOffset(t *testing.T) {
	// A child of a node that declared relative layer 2 inherits that
	// offset even when it declares none of its own.
	_, parentInherited := ResolveLayer(2, 1, 0)
	absolute, childInherited := ResolveLayer(0, 2, parentInherited)
	if absolute != 0 {
		t.Fatalf("absolute = %d, want 0", absolute)
	}
	if childInherited != 2 {
		t.Fatalf("childInherited = %d, want 2", childInherited)
	}
}

func TestResolveLayerCompoundsAcrossGenerations(t *testing.T) {
	// Each generation's own relative layer adds to what it inherited,
	// so a grandchild's absolute position reflects both ancestors.
	_, gen1 := ResolveLayer(1, 1, 0)
	_, gen2 := ResolveLayer(1, 2, gen1)
	absolute, _ := ResolveLayer(0, 3, gen2)
	if absolute != 1 {
		t.Fatalf("absolute = %d, want 1", absolute)
	}
}

func TestLayerSetAssignReassignsAndTracks(t *testing.T) {
	s := NewLayerSet()
	s.Assign(1, 0)
	s.Assign(2, 0)
	s.Assign(1, 1)

	if l, ok := s.Layer(1); !ok || l != 1 {
		t.Fatalf("Layer(1) = %d, %v, want 1, true", l, ok)
	}
	if nodes := s.Nodes(0); len(nodes) != 1 || nodes[0] != 2 {
		t.Fatalf("Nodes(0) = %v, want [2]", nodes)
	}
	if nodes := s.Nodes(1); len(nodes) != 1 || nodes[0] != 1 {
		t.Fatalf("Nodes(1) = %v, want [1]", nodes)
	}
}
