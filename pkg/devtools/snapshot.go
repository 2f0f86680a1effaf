package devtools

import (
	"time"

	"github.com/loomui/loom/pkg/layout"
	"github.com/loomui/loom/pkg/runtime"
	"github.com/loomui/loom/pkg/tree"
)

// ScopeSnapshot is a read-only view of one tree.Node and the reactive scope
// backing it, if any.
type ScopeSnapshot struct {
	NodeID   tree.NodeID     `json:"node_id"`
	Kind     string          `json:"kind"`
	Tag      string          `json:"tag,omitempty"`
	ScopeID  uint64          `json:"scope_id,omitempty"`
	HasScope bool            `json:"has_scope"`
	Children []ScopeSnapshot `json:"children,omitempty"`
}

// LayoutSnapshot is a read-only view of one node's measured area, as last
// computed by Torin.Measure.
type LayoutSnapshot struct {
	NodeID   tree.NodeID      `json:"node_id"`
	Tag      string           `json:"tag,omitempty"`
	Measured bool             `json:"measured"`
	X        float64          `json:"x"`
	Y        float64          `json:"y"`
	Width    float64          `json:"width"`
	Height   float64          `json:"height"`
	InnerX   float64          `json:"inner_x"`
	InnerY   float64          `json:"inner_y"`
	InnerW   float64          `json:"inner_w"`
	InnerH   float64          `json:"inner_h"`
	Children []LayoutSnapshot `json:"children,omitempty"`
}

func kindString(k tree.NodeKind) string {
	switch k {
	case tree.KindPrimitive:
		return "primitive"
	case tree.KindComponent:
		return "component"
	case tree.KindText:
		return "text"
	default:
		return "unknown"
	}
}

// SnapshotScopes walks rt's element tree from the root and returns a
// snapshot of every node and its backing scope, if it has one.
func SnapshotScopes(rt *runtime.Runtime) (ScopeSnapshot, time.Time) {
	return snapshotScope(rt, rt.Tree.Root), time.Now()
}

func snapshotScope(rt *runtime.Runtime, id tree.NodeID) ScopeSnapshot {
	node := rt.Tree.Node(id)
	if node == nil {
		return ScopeSnapshot{NodeID: id}
	}

	snap := ScopeSnapshot{
		NodeID: node.ID,
		Kind:   kindString(node.Kind),
		Tag:    node.Tag,
	}
	if node.Scope != nil {
		snap.HasScope = true
		snap.ScopeID = uint64(node.Scope.ID)
	}
	for _, childID := range node.Children {
		snap.Children = append(snap.Children, snapshotScope(rt, childID))
	}
	return snap
}

// SnapshotLayout walks rt's element tree from the root and returns the
// last-measured area for every node reachable from it.
func SnapshotLayout(rt *runtime.Runtime) (LayoutSnapshot, time.Time) {
	return snapshotLayout(rt, rt.Tree.Root), time.Now()
}

func snapshotLayout(rt *runtime.Runtime, id tree.NodeID) LayoutSnapshot {
	node := rt.Tree.Node(id)
	if node == nil {
		return LayoutSnapshot{NodeID: id}
	}

	snap := LayoutSnapshot{NodeID: node.ID, Tag: node.Tag}
	if area, inner, ok := rt.Torin.Get(layout.NodeID(node.ID)); ok {
		snap.Measured = true
		snap.X, snap.Y = area.Origin.X, area.Origin.Y
		snap.Width, snap.Height = area.Size.Width, area.Size.Height
		snap.InnerX, snap.InnerY = inner.Origin.X, inner.Origin.Y
		snap.InnerW, snap.InnerH = inner.Size.Width, inner.Size.Height
	}
	for _, childID := range node.Children {
		snap.Children = append(snap.Children, snapshotLayout(rt, childID))
	}
	return snap
}

// FindByTag searches a scope snapshot depth-first for every node whose Tag
// equals tag, returning their node IDs.
func FindByTag(root ScopeSnapshot, tag string) []tree.NodeID {
	var found []tree.NodeID
	if root.Tag == tag {
		found = append(found, root.NodeID)
	}
	for _, child := range root.Children {
		found = append(found, FindByTag(child, tag)...)
	}
	return found
}
