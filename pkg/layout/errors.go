package layout

import "fmt"

// LayoutCycleError is logged (non-fatal) when measurement recursion hits
// maxRecursionDepth — a node whose Inner size transitively depends on an
// ancestor sized Inner in the opposite direction. The offending subtree
// resolves to a zero-size rectangle.
type LayoutCycleError struct {
	NodeID uint64
}

func (e *LayoutCycleError) Error() string {
	return fmt.Sprintf("layout: cyclic inner-size dependency detected at node %d, recursion bound exceeded", e.NodeID)
}
