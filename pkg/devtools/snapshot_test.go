package devtools

import (
	"testing"

	"github.com/loomui/loom/pkg/layout"
	"github.com/loomui/loom/pkg/runtime"
	"github.com/loomui/loom/pkg/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotScopesWalksMountedTree(t *testing.T) {
	rt := runtime.New()
	app := &tree.Primitive{Tag: "app", Children: []tree.Element{
		&tree.Primitive{Tag: "child"},
	}}
	require.NoError(t, rt.Mount([]tree.Element{app}))

	// Every mount hangs off the tree's synthetic root container, so the
	// snapshot's top level is that container, not the mounted element.
	snap, at := SnapshotScopes(rt)
	assert.False(t, at.IsZero())
	require.Len(t, snap.Children, 1)
	assert.Equal(t, "app", snap.Children[0].Tag)
	require.Len(t, snap.Children[0].Children, 1)
	assert.Equal(t, "child", snap.Children[0].Children[0].Tag)
	assert.Equal(t, "primitive", snap.Children[0].Children[0].Kind)
}

func TestSnapshotLayoutReportsMeasuredAreas(t *testing.T) {
	rt := runtime.New()
	fill := layout.Node{Width: layout.SizeFill(), Height: layout.SizeFill()}
	app := &tree.Primitive{Tag: "app", Layout: fill}
	require.NoError(t, rt.Mount([]tree.Element{app}))

	rt.Layout(layout.NewRect(0, 0, 100, 50), nil)

	snap, _ := SnapshotLayout(rt)
	require.True(t, snap.Measured)
	assert.Equal(t, float64(100), snap.Width)
	assert.Equal(t, float64(50), snap.Height)

	require.Len(t, snap.Children, 1)
	assert.True(t, snap.Children[0].Measured)
	assert.Equal(t, float64(100), snap.Children[0].Width)
	assert.Equal(t, float64(50), snap.Children[0].Height)
}

func TestFindByTagMatchesNestedNodes(t *testing.T) {
	root := ScopeSnapshot{
		Tag: "root",
		Children: []ScopeSnapshot{
			{NodeID: 2, Tag: "button"},
			{NodeID: 3, Tag: "panel", Children: []ScopeSnapshot{
				{NodeID: 4, Tag: "button"},
			}},
		},
	}

	matches := FindByTag(root, "button")
	assert.ElementsMatch(t, []tree.NodeID{2, 4}, matches)
}
