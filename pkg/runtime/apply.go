package runtime

import (
	"strings"

	"github.com/loomui/loom/pkg/input"
	"github.com/loomui/loom/pkg/layout"
	"github.com/loomui/loom/pkg/paint"
	"github.com/loomui/loom/pkg/style"
	"github.com/loomui/loom/pkg/tree"
)

// applyMutationsLocked syncs one reconciliation pass's edit script into
// layout, routing, layering, and the compositor's invalidation set. Called
// with rt.mu already held.
func (rt *Runtime) applyMutationsLocked(muts []tree.Mutation) {
	for _, m := range muts {
		switch m.Op {
		case tree.OpRemove:
			rt.teardownNodeLocked(m.OldID)

		case tree.OpInsert:
			rt.syncNodeLocked(m.NewID)
			rt.Paint.Invalidate(paint.NodeID(m.NewID))

		case tree.OpKeep:
			rt.syncNodeLocked(m.NewID)
			switch {
			case m.Mask.Has(tree.MaskLayout):
				rt.invalidateSubtreeLocked(m.NewID)
			case m.Mask != 0 || m.Moved:
				rt.Paint.Invalidate(paint.NodeID(m.NewID))
			}
		}
	}
	if len(muts) > 0 {
		rt.syncRootLocked()
	}
}

// syncRootLocked keeps the tree's synthetic root container registered in
// Torin: it carries no Primitive of its own (nothing in pkg/tree ever
// emits a mutation for it), so it fills the viewport by default and its
// child list is refreshed after every batch of mutations.
func (rt *Runtime) syncRootLocked() {
	root := rt.Tree.Node(rt.Tree.Root)
	if root == nil {
		return
	}
	rt.Torin.SetNode(layout.NodeID(rt.Tree.Root), 0, false, layout.Node{
		Width:  layout.SizeFill(),
		Height: layout.SizeFill(),
	})
	rt.Torin.SetChildren(layout.NodeID(rt.Tree.Root), layoutChildrenLocked(rt, root.Children))
}

// syncNodeLocked pushes a live tree node's current Primitive attributes
// (layout config, style, handlers) into the subsystems that care about
// them. A no-op for component and text nodes, which carry none of the
// three.
func (rt *Runtime) syncNodeLocked(id tree.NodeID) {
	node := rt.Tree.Node(id)
	if node == nil || node.Kind != tree.KindPrimitive {
		return
	}
	prim, ok := node.Element.(*tree.Primitive)
	if !ok {
		return
	}

	layoutNode := decodeLayoutNode(prim.Layout)
	parentID, hasParent := nearestLayoutParentLocked(rt, node)
	rt.Torin.SetNode(layout.NodeID(id), parentID, hasParent, layoutNode)
	rt.Torin.SetChildren(layout.NodeID(id), layoutChildrenLocked(rt, node.Children))

	s := decodeStyle(prim.Style)
	rt.styles[id] = s
	rt.Layers.Assign(paint.NodeID(id), rt.resolveLayerLocked(id, tree.NodeID(parentID), hasParent, s.Layer))

	rt.syncHandlersLocked(id, prim.Handlers)
}

// layerInherit is what a styled node passes down for its styled
// descendants to resolve their own layer against: the relative layer
// value inherited so far, and the styled nesting depth it was resolved
// at.
type layerInherit struct {
	relative int16
	depth    int16
}

// resolveLayerLocked computes id's absolute paint layer from its own
// declared relativeLayer and its nearest styled ancestor's inherited
// state (zero at the root), then records id's own childInherited state
// for its descendants.
func (rt *Runtime) resolveLayerLocked(id, parentID tree.NodeID, hasParent bool, relativeLayer int16) int16 {
	var parent layerInherit
	if hasParent {
		parent = rt.layerInherit[parentID]
	}
	absolute, childInherited := paint.ResolveLayer(relativeLayer, int(parent.depth)+1, parent.relative)
	rt.layerInherit[id] = layerInherit{relative: childInherited, depth: parent.depth + 1}
	return absolute
}

// layoutChildrenLocked resolves a tree node's children to the NodeIDs Torin
// should treat as its direct layout children: text nodes carry no layout
// participation of their own and are dropped, and component nodes are
// transparent wrappers whose own reconciled children stand in for them
// (recursively, in case components are nested directly inside one
// another).
func layoutChildrenLocked(rt *Runtime, ids []tree.NodeID) []layout.NodeID {
	var out []layout.NodeID
	for _, id := range ids {
		child := rt.Tree.Node(id)
		if child == nil {
			continue
		}
		switch child.Kind {
		case tree.KindPrimitive:
			out = append(out, layout.NodeID(id))
		case tree.KindComponent:
			out = append(out, layoutChildrenLocked(rt, child.Children)...)
		}
	}
	return out
}

// nearestLayoutParentLocked walks up from node past any component wrappers
// (which never register with Torin) to find the nearest ancestor Torin
// actually knows about, so dirty propagation and cache invalidation reach
// every registered ancestor instead of stopping dead at the first
// component boundary.
func nearestLayoutParentLocked(rt *Runtime, node *tree.Node) (layout.NodeID, bool) {
	if !node.HasParent {
		return 0, false
	}
	id := node.ParentID
	for {
		n := rt.Tree.Node(id)
		if n == nil {
			return 0, false
		}
		if n.Kind != tree.KindComponent {
			return layout.NodeID(id), true
		}
		if !n.HasParent {
			return layout.NodeID(rt.Tree.Root), true
		}
		id = n.ParentID
	}
}

func decodeLayoutNode(v any) layout.Node {
	switch t := v.(type) {
	case layout.Node:
		return t
	case *layout.Node:
		if t != nil {
			return *t
		}
	}
	return layout.NewNode()
}

func decodeStyle(v any) style.Style {
	switch t := v.(type) {
	case style.Style:
		return t
	case *style.Style:
		if t != nil {
			return *t
		}
	}
	return style.NewStyle()
}

// syncHandlersLocked replaces every handler registered on id with the
// ones declared on handlers, keyed by the on{name}/oncapture{name}/
// onglobal{name}/oncaptureglobal{name} convention.
func (rt *Runtime) syncHandlersLocked(id tree.NodeID, handlers map[string]any) {
	rt.Router.Remove(input.NodeID(id))
	for key, v := range handlers {
		name, capture, global := parseHandlerKey(key)
		if name == "" {
			continue
		}
		h, ok := toHandlerFunc(v)
		if !ok {
			continue
		}
		switch {
		case capture && global:
			rt.Router.OnCaptureGlobal(input.NodeID(id), name, h)
		case global:
			rt.Router.OnGlobal(input.NodeID(id), name, h)
		case capture:
			rt.Router.OnCapture(input.NodeID(id), name, h)
		default:
			rt.Router.On(input.NodeID(id), name, h)
		}
	}
}

func toHandlerFunc(v any) (input.HandlerFunc, bool) {
	switch h := v.(type) {
	case input.HandlerFunc:
		return h, true
	case func(*input.Context):
		return h, true
	default:
		return nil, false
	}
}

func parseHandlerKey(key string) (name string, capture, global bool) {
	switch {
	case strings.HasPrefix(key, "oncaptureglobal"):
		return key[len("oncaptureglobal"):], true, true
	case strings.HasPrefix(key, "onglobal"):
		return key[len("onglobal"):], false, true
	case strings.HasPrefix(key, "oncapture"):
		return key[len("oncapture"):], true, false
	case strings.HasPrefix(key, "on"):
		return key[len("on"):], false, false
	default:
		return "", false, false
	}
}

func (rt *Runtime) teardownNodeLocked(id tree.NodeID) {
	rt.Torin.Remove(layout.NodeID(id))
	rt.Router.Remove(input.NodeID(id))
	rt.Layers.Remove(paint.NodeID(id))
	rt.Cache.Release(paint.NodeID(id))
	delete(rt.styles, id)
	delete(rt.layerInherit, id)
	rt.Paint.Invalidate(paint.NodeID(id))
}

// invalidateSubtreeLocked marks id and every descendant dirty for the next
// Commit, with layout changes cascading invalidation to children — except
// Global/Fixed children, whose placement is resolved against the root
// rectangle rather than id's, so id's layout change cannot have moved them.
func (rt *Runtime) invalidateSubtreeLocked(id tree.NodeID) {
	rt.Paint.Invalidate(paint.NodeID(id))
	node := rt.Tree.Node(id)
	if node == nil {
		return
	}
	for _, c := range node.Children {
		if kind, ok := rt.Torin.PositionKind(layout.NodeID(c)); ok {
			if kind == layout.PositionGlobal || kind == layout.PositionFixed {
				continue
			}
		}
		rt.invalidateSubtreeLocked(c)
	}
}
