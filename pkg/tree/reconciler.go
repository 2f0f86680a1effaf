package tree

import (
	"reflect"

	"github.com/loomui/loom/pkg/core"
)

// Mount builds the initial subtree for the root node from rootElems,
// expanding every component synchronously (there is no previous revision to
// defer to).
func (t *Tree) Mount(rootElems []Element) ([]Mutation, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.reconcileChildren(t.Root, rootElems)
}

// ReconcileScope re-expands a single component scope's output against its
// previously reconciled subtree. Called by the runtime glue layer once per
// RenderResult coming out of core.Runtime.Poll.
func (t *Tree) ReconcileScope(scope *core.Scope, output Element) ([]Mutation, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	node := t.nodeForScope(scope.ID)
	if node == nil {
		return nil, nil
	}
	return t.reconcileChildren(node.ID, []Element{output})
}

func (t *Tree) nodeForScope(id core.ScopeID) *Node {
	for _, n := range t.nodes {
		if n.Kind == KindComponent && n.Scope != nil && n.Scope.ID == id {
			return n
		}
	}
	return nil
}

// ScopeByID returns the live Scope backing the component instance at
// scope id, or nil if no node in the tree currently owns it (e.g. it was
// torn down by an earlier mutation in the same Poll pass). Exposed for
// pkg/runtime, which needs to resolve a core.Runtime.Poll RenderResult's
// ScopeID back to the Scope it must reconcile.
func (t *Tree) ScopeByID(id core.ScopeID) *core.Scope {
	t.mu.Lock()
	defer t.mu.Unlock()
	n := t.nodeForScope(id)
	if n == nil {
		return nil
	}
	return n.Scope
}

// nearestScope walks up from id to find the nearest ancestor (or id itself)
// that owns a reactive Scope, used as the parent when spawning a freshly
// inserted component's scope.
func (t *Tree) nearestScope(id NodeID) *core.Scope {
	for {
		n := t.get(id)
		if n == nil {
			return nil
		}
		if n.Kind == KindComponent && n.Scope != nil {
			return n.Scope
		}
		if !n.HasParent {
			return nil
		}
		id = n.ParentID
	}
}

// reconcileChildren is the single-level reconciliation step: match the
// parent's current children against newElems, emit Keep / Insert / Remove
// mutations, and recurse into descendants depth-first.
func (t *Tree) reconcileChildren(parentID NodeID, newElems []Element) ([]Mutation, error) {
	parent := t.get(parentID)
	oldIDs := parent.Children
	oldElems := make([]Element, len(oldIDs))
	for i, id := range oldIDs {
		oldElems[i] = t.get(id).Element
	}

	m := matchChildren(oldIDs, oldElems, newElems)
	lis := longestIncreasingSubsequence(m.oldIndexForNewPos)

	newChildren := make([]NodeID, len(newElems))
	var mutations []Mutation

	for pos, elem := range newElems {
		oldIdx := m.oldIndexForNewPos[pos]
		if oldIdx < 0 {
			id, subMutations, err := t.insertSubtree(parentID, elem, pos)
			if err != nil {
				return nil, err
			}
			newChildren[pos] = id
			mutations = append(mutations, subMutations...)
			continue
		}

		id := oldIDs[oldIdx]
		node := t.get(id)
		newChildren[pos] = id

		mutation, subMutations, err := t.keepNode(node, elem, pos, !lis[pos])
		if err != nil {
			return nil, err
		}
		mutations = append(mutations, mutation)
		mutations = append(mutations, subMutations...)
	}

	for _, oldIdx := range m.unmatchedOld {
		id := oldIDs[oldIdx]
		removed := t.removeSubtree(id)
		mutations = append(mutations, removed...)
	}

	parent.Children = newChildren
	return mutations, nil
}

func (t *Tree) insertSubtree(parentID NodeID, elem Element, pos int) (NodeID, []Mutation, error) {
	id := t.allocID()
	node := &Node{ID: id, ParentID: parentID, HasParent: true, Depth: t.get(parentID).Depth + 1}
	t.nodes[id] = node

	insertOp := Mutation{Op: OpInsert, NewID: id, Element: elem, Position: pos}

	switch e := elem.(type) {
	case *Primitive:
		node.Kind = KindPrimitive
		node.Tag = e.Tag
		node.Element = elem
		childMutations, err := t.reconcileChildren(id, e.Children)
		if err != nil {
			return 0, nil, err
		}
		return id, append([]Mutation{insertOp}, childMutations...), nil

	case *TextElement:
		node.Kind = KindText
		node.Element = elem
		return id, []Mutation{insertOp}, nil

	case *ComponentElement:
		node.Kind = KindComponent
		node.Element = elem
		parentScope := t.nearestScope(parentID)
		scope := t.rt.NewScope(parentScope, e.DevName)
		scope.SetRenderFunc(func(s *core.Scope) (any, error) {
			return e.CompFn(s, e.Props)
		})
		node.Scope = scope

		result := t.rt.RenderNow(scope)
		if result.Err != nil {
			return 0, nil, result.Err
		}
		output, _ := result.Output.(Element)
		if output == nil {
			return id, []Mutation{insertOp}, nil
		}
		childMutations, err := t.reconcileChildren(id, []Element{output})
		if err != nil {
			return 0, nil, err
		}
		return id, append([]Mutation{insertOp}, childMutations...), nil

	default:
		return id, []Mutation{insertOp}, nil
	}
}

func (t *Tree) keepNode(node *Node, elem Element, pos int, moved bool) (Mutation, []Mutation, error) {
	// Identical elements (same pointer, so necessarily equal props/style by
	// construction) short-circuit: no descent.
	if node.Element == elem {
		return Mutation{Op: OpKeep, OldID: node.ID, NewID: node.ID, Element: elem, Position: pos, Moved: moved}, nil, nil
	}

	switch e := elem.(type) {
	case *Primitive:
		old := node.Element.(*Primitive)
		mask := diffPrimitiveMask(old, e)
		node.Element = elem
		childMutations, err := t.reconcileChildren(node.ID, e.Children)
		if err != nil {
			return Mutation{}, nil, err
		}
		return Mutation{Op: OpKeep, OldID: node.ID, NewID: node.ID, Element: elem, Position: pos, Moved: moved, Mask: mask}, childMutations, nil

	case *TextElement:
		old := node.Element.(*TextElement)
		var mask MutationMask
		if old.Content != e.Content {
			mask |= MaskText
		}
		node.Element = elem
		return Mutation{Op: OpKeep, OldID: node.ID, NewID: node.ID, Element: elem, Position: pos, Moved: moved, Mask: mask}, nil, nil

	case *ComponentElement:
		old := node.Element.(*ComponentElement)
		node.Element = elem
		keep := Mutation{Op: OpKeep, OldID: node.ID, NewID: node.ID, Element: elem, Position: pos, Moved: moved}

		if reflect.DeepEqual(old.Props, e.Props) {
			return keep, nil, nil
		}
		node.Scope.SetRenderFunc(func(s *core.Scope) (any, error) {
			return e.CompFn(s, e.Props)
		})
		result := t.rt.RenderNow(node.Scope)
		if result.Err != nil {
			return Mutation{}, nil, result.Err
		}
		output, _ := result.Output.(Element)
		if output == nil {
			return keep, nil, nil
		}
		childMutations, err := t.reconcileChildren(node.ID, []Element{output})
		if err != nil {
			return Mutation{}, nil, err
		}
		return keep, childMutations, nil

	default:
		return Mutation{Op: OpKeep, OldID: node.ID, NewID: node.ID, Element: elem, Position: pos, Moved: moved}, nil, nil
	}
}

// removeSubtree tears down id and its descendants bottom-up (children
// before parent, matching the order Teardown requires) and returns the
// corresponding post-order Remove mutations.
func (t *Tree) removeSubtree(id NodeID) []Mutation {
	node := t.get(id)
	if node == nil {
		return nil
	}

	var mutations []Mutation
	for _, childID := range node.Children {
		mutations = append(mutations, t.removeSubtree(childID)...)
	}

	if node.Kind == KindComponent && node.Scope != nil {
		t.rt.Teardown(node.Scope)
	}
	delete(t.nodes, id)

	mutations = append(mutations, Mutation{Op: OpRemove, OldID: id})
	return mutations
}

func diffPrimitiveMask(old, next *Primitive) MutationMask {
	var mask MutationMask
	if !reflect.DeepEqual(old.Style, next.Style) {
		mask |= MaskStyle
	}
	if !reflect.DeepEqual(old.Layout, next.Layout) {
		mask |= MaskLayout
	}
	if !reflect.DeepEqual(old.Handlers, next.Handlers) {
		mask |= MaskHandlers
	}
	return mask
}
